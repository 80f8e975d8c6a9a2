package panelhttp

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sir_venger/panel_lite/pkg/httperrors"
)

// getUpload отдаёт ранее принятый файл по назначенному имени.
func (s *Server) getUpload(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	rc, size, err := s.uploads.Retrieve(name)
	if err != nil {
		httperrors.Write(w, err)
		return
	}
	defer rc.Close()

	ctype := mime.TypeByExtension(filepath.Ext(name))
	if ctype == "" {
		ctype = "application/octet-stream"
	}
	w.Header().Set("Content-Type", ctype)
	w.Header().Set("Content-Length", strconv.FormatInt(size, 10))

	if _, err := io.Copy(w, rc); err != nil {
		// Ответ уже начат, статус менять поздно — фиксируем обрыв в логе.
		s.log.Warnw("stream upload to client failed", "name", name, "error", err)
	}
}
