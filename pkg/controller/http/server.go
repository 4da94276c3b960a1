package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/slidekit-lab/slidekit/pkg/usecase"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
}

func New(uc *usecase.UseCases) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}

	r.Use(loggingMiddleware)
	r.Use(panicRecoveryMiddleware)

	r.Get("/", rootHandler)
	r.Get("/health", healthHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/templates", templatesHandler(uc))
		r.Post("/generate", quickGenerateHandler(uc))
		r.Get("/download/{artifactID}", downloadHandler(uc))

		r.Route("/chat", func(r chi.Router) {
			r.Post("/start", chatStartHandler(uc))
			r.Route("/{sessionID}", func(r chi.Router) {
				r.Get("/", chatGetHandler(uc))
				r.Delete("/", chatDeleteHandler(uc))
				r.Post("/message", chatMessageHandler(uc))
				r.Get("/draft", draftGetHandler(uc))
				r.Post("/draft", draftCreateHandler(uc))
				r.Post("/generate", chatGenerateHandler(uc))
			})
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{
		"service": "slidekit",
		"status":  "running",
	})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
