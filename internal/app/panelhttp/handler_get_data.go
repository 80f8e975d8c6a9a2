package panelhttp

import (
	"net/http"

	"github.com/sir_venger/panel_lite/pkg/httperrors"
)

// getData отдаёт текущий каталог; первый вызов на пустом сторе сеет дефолтный.
func (s *Server) getData(w http.ResponseWriter, r *http.Request) {
	catalog, err := s.catalog.Load()
	if err != nil {
		httperrors.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, catalog)
}
