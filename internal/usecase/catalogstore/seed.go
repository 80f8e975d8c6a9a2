package catalogstore

import "github.com/sir_venger/panel_lite/internal/models"

// DefaultCatalog возвращает каталог первого запуска: фиксированный набор
// сервисов панели, из которых только schedule получает демонстрационную секцию.
func DefaultCatalog() models.Catalog {
	schedule := models.NewSection("جدول الأسبوع", "مثال على قسم الجدول الدراسي", "text")
	schedule.Content = []models.ContentBlock{
		{Type: "text", Title: "ملاحظة", Content: "سيتم تحديث الجدول أسبوعياً"},
	}

	return models.Catalog{Services: map[string]models.Service{
		"schedule":  {Name: "الجدول الدراسي", Sections: []models.Section{schedule}},
		"homework":  {Name: "الواجبات", Sections: []models.Section{}},
		"ai":        {Name: "ربوت الذكاء الاصطناعي", Sections: []models.Section{}},
		"broadcast": {Name: "البروكاست", Sections: []models.Section{}},
		"programs":  {Name: "البرامج والمسابقات", Sections: []models.Section{}},
		"files":     {Name: "الملفات المرسلة", Sections: []models.Section{}},
		"exams":     {Name: "الاختبارات", Sections: []models.Section{}},
		"contact":   {Name: "تواصل معنا", Sections: []models.Section{}},
	}}
}
