package models

// UploadResult возвращается после успешной загрузки и содержит ключевые метаданные.
type UploadResult struct {
	Filename     string `json:"filename"`
	URL          string `json:"url"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
}
