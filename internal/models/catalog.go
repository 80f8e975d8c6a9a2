package models

import "github.com/google/uuid"

// ContentBlock — один блок содержимого внутри секции.
type ContentBlock struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Section описывает пользовательскую единицу контента внутри сервиса.
type Section struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Type        string         `json:"type"`
	Content     []ContentBlock `json:"content"`
}

// Service — именованная категория с упорядоченным списком секций.
type Service struct {
	Name     string    `json:"name"`
	Sections []Section `json:"sections"`
}

// Catalog — корневой документ, хранящий все сервисы панели.
type Catalog struct {
	Services map[string]Service `json:"services"`
}

// NewSection создаёт секцию с новым уникальным идентификатором.
func NewSection(name, description, typ string) Section {
	return Section{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Type:        typ,
		Content:     []ContentBlock{},
	}
}

// Clone возвращает глубокую копию каталога, чтобы не делиться внутренними картами.
func (c Catalog) Clone() Catalog {
	out := Catalog{Services: make(map[string]Service, len(c.Services))}
	for key, svc := range c.Services {
		sections := make([]Section, len(svc.Sections))
		for i, sec := range svc.Sections {
			blocks := make([]ContentBlock, len(sec.Content))
			copy(blocks, sec.Content)
			sec.Content = blocks
			sections[i] = sec
		}
		out.Services[key] = Service{Name: svc.Name, Sections: sections}
	}
	return out
}
