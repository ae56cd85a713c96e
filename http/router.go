package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"
)

// NewRouter returns the full HTTP surface with its middleware stack.
func NewRouter(h *Handler, logger zerolog.Logger) http.Handler {
	router := httprouter.New()

	router.GET("/people", h.ListPeople)
	router.POST("/people", h.CreatePerson)
	router.GET("/people/:id", h.GetPerson)
	router.GET("/count-people", h.CountPeople)
	router.GET("/healthz", h.Health)

	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
	})
	router.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
	})

	var handler http.Handler = router
	handler = middleware.Recoverer(handler)
	handler = RequestLogger(logger)(handler)
	handler = middleware.RealIP(handler)
	handler = middleware.RequestID(handler)

	return handler
}
