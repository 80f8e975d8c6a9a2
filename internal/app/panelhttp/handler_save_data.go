package panelhttp

import (
	"encoding/json"
	"net/http"

	"github.com/sir_venger/panel_lite/internal/models"
	"github.com/sir_venger/panel_lite/pkg/httperrors"
)

// saveDataRequest — тело запроса полной замены каталога. Указатель отличает
// отсутствующее поле services (ошибка клиента) от пустой карты (валидная замена).
type saveDataRequest struct {
	Services *map[string]models.Service `json:"services" validate:"required"`
}

// saveData целиком заменяет каталог. Частичных обновлений нет: кто последний
// сохранил, тот и прав.
func (s *Server) saveData(w http.ResponseWriter, r *http.Request) {
	var payload saveDataRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid json body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.validate.Struct(payload); err != nil {
		http.Error(w, "services field is required", http.StatusBadRequest)
		return
	}

	if err := s.catalog.Save(models.Catalog{Services: *payload.Services}); err != nil {
		httperrors.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
