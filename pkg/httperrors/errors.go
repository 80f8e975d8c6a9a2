package httperrors

import (
	"errors"
	"net/http"

	"github.com/sir_venger/panel_lite/internal/models"
)

// Write транслирует типизированные ошибки ядра в HTTP-статусы. Ядро про HTTP
// не знает, поэтому всё сопоставление живёт здесь.
func Write(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidPath):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, models.ErrTooLarge):
		http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
	case errors.Is(err, models.ErrStoreUnavailable):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
