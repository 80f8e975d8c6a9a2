package panelhttp

import (
	"encoding/json"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/sir_venger/panel_lite/internal/usecase/catalogstore"
	"github.com/sir_venger/panel_lite/internal/usecase/uploadsvc"
)

// Deps собирает зависимости HTTP-слоя панели.
type Deps struct {
	Catalog   *catalogstore.Store
	Uploads   *uploadsvc.Service
	Log       *zap.SugaredLogger
	StaticDir string
}

type Server struct {
	catalog   *catalogstore.Store
	uploads   *uploadsvc.Service
	log       *zap.SugaredLogger
	validate  *validator.Validate
	staticDir string
}

// NewServer конструктор
func NewServer(deps Deps) http.Handler {
	srv := &Server{
		catalog:   deps.Catalog,
		uploads:   deps.Uploads,
		log:       deps.Log,
		validate:  validator.New(),
		staticDir: deps.StaticDir,
	}

	return srv.routes()
}

// routes регистрирует обработчики каталога, загрузок и статики.
func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(corsAllowAll)

	r.Route("/api", func(api chi.Router) {
		api.Get("/data", s.getData)
		api.Post("/data", s.saveData)
		api.Put("/data", s.saveData)
		api.Post("/upload", s.upload)
	})

	r.Get("/uploads/{name}", s.getUpload)
	r.Get("/health", s.health)

	if s.staticDir != "" {
		panel := filepath.Join(s.staticDir, "panel.html")
		webapp := filepath.Join(s.staticDir, "index.html")
		r.Get("/", servePage(panel))
		r.Get("/admin", servePage(panel))
		r.Get("/webapp", servePage(webapp))
	}

	return r
}

func servePage(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, path)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
