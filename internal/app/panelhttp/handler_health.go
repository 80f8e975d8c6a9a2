package panelhttp

import (
	"net/http"
	"os"

	"github.com/sir_venger/panel_lite/pkg/httperrors"
)

// healthStats — payload ответа /health.
type healthStats struct {
	OK          bool  `json:"ok"`
	CatalogSeen bool  `json:"catalog_seen"`
	Uploads     int   `json:"uploads"`
	UploadBytes int64 `json:"upload_bytes"`
}

// health возвращает агрегированную статистику по каталогу данных.
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	count, total, err := s.uploads.Stats()
	if err != nil {
		httperrors.Write(w, err)
		return
	}

	_, statErr := os.Stat(s.catalog.Path())

	writeJSON(w, http.StatusOK, healthStats{
		OK:          true,
		CatalogSeen: statErr == nil,
		Uploads:     count,
		UploadBytes: total,
	})
}
