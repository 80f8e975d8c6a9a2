package panelhttp

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/sir_venger/panel_lite/internal/models"
	"github.com/sir_venger/panel_lite/pkg/httperrors"
)

// uploadResp — тело ответа с метаданными загруженного файла.
type uploadResp struct {
	Success      bool   `json:"success"`
	URL          string `json:"url"`
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
}

// upload принимает один файл: multipart-поле file либо сырое тело с именем
// в заголовке. Лимит размера контролирует сервис загрузок по ходу стрима.
func (s *Server) upload(w http.ResponseWriter, r *http.Request) {
	var (
		res models.UploadResult
		err error
	)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		res, err = s.acceptMultipart(w, r)
		if err != nil {
			// acceptMultipart уже ответил клиенту
			return
		}
	} else {
		res, err = s.uploads.Accept(r.Context(), r.Body, extractFileName(r), r.ContentLength)
		if err != nil {
			httperrors.Write(w, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, uploadResp{
		Success:      true,
		URL:          res.URL,
		Filename:     res.Filename,
		OriginalName: res.OriginalName,
		Size:         res.Size,
	})
}

// acceptMultipart находит поле file и стримит его содержимое в сервис загрузок,
// не буферизуя весь файл в памяти. Ошибка клиенту уже записана, если err != nil.
func (s *Server) acceptMultipart(w http.ResponseWriter, r *http.Request) (models.UploadResult, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		http.Error(w, "invalid multipart body: "+err.Error(), http.StatusBadRequest)
		return models.UploadResult{}, err
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			err = errors.New("file field is required")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return models.UploadResult{}, err
		}
		if err != nil {
			http.Error(w, "invalid multipart body: "+err.Error(), http.StatusBadRequest)
			return models.UploadResult{}, err
		}

		if part.FormName() != "file" {
			continue
		}

		// Размер части в multipart неизвестен заранее — передаём -1, лимит
		// сработает по фактически записанным байтам.
		res, err := s.uploads.Accept(r.Context(), part, part.FileName(), -1)
		if err != nil {
			httperrors.Write(w, err)
			return models.UploadResult{}, err
		}

		return res, nil
	}
}

// extractFileName пытается вытащить имя файла из заголовков или query-параметра.
func extractFileName(r *http.Request) string {
	if v := strings.TrimSpace(r.Header.Get("X-File-Name")); v != "" {
		return v
	}
	if v := strings.TrimSpace(r.Header.Get("X-Filename")); v != "" {
		return v
	}
	if v := strings.TrimSpace(r.URL.Query().Get("filename")); v != "" {
		return v
	}

	return ""
}
