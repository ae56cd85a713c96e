package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"

	"people/db"
)

const maxBodyBytes = 1 << 20

var (
	json = jsoniter.ConfigCompatibleWithStandardLibrary

	// NewID generates ids for created people. Tests replace it.
	NewID = uuid.NewV7
)

type Handler struct {
	store  db.Store
	cache  *PersonCache
	logger zerolog.Logger
}

// New wires the handlers. cache may be nil.
func New(store db.Store, cache *PersonCache, logger zerolog.Logger) *Handler {
	return &Handler{store: store, cache: cache, logger: logger}
}

func (h *Handler) log(r *http.Request) *zerolog.Logger {
	l := h.logger.With().Str("request_id", middleware.GetReqID(r.Context())).Logger()
	return &l
}

func (h *Handler) GetPerson(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	param := ps.ByName("id")
	id, err := uuid.Parse(param)
	if err != nil {
		h.log(r).Debug().Str("id", param).Err(err).Msg("get person with invalid uuid")
		respondError(w, http.StatusNotFound, "person not found")
		return
	}

	if body, found := h.cache.Get(id); found {
		writeJSONBytes(w, http.StatusOK, body)
		return
	}

	person, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	body, err := json.Marshal(person)
	if err != nil {
		h.fail(w, r, fmt.Errorf("encode person %s: %w", id, err))
		return
	}

	h.cache.Set(id, body)
	writeJSONBytes(w, http.StatusOK, body)
}

func (h *Handler) ListPeople(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	people, err := h.store.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, people)
}

func (h *Handler) CreatePerson(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req, err := decodeCreatePerson(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.log(r).Debug().Err(err).Msg("rejected create person body")

		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := req.Validate(); err != nil {
		var fields validation.Errors
		if errors.As(err, &fields) {
			h.log(r).Debug().Err(err).Msg("create person failed validation")
			respondValidation(w, fields)
			return
		}
		h.fail(w, r, err)
		return
	}

	id, err := NewID()
	if err != nil {
		h.fail(w, r, fmt.Errorf("generate person id: %w", err))
		return
	}

	person := req.Person(id)
	if err := h.store.Insert(r.Context(), person); err != nil {
		h.fail(w, r, err)
		return
	}

	body, err := json.Marshal(person)
	if err != nil {
		h.fail(w, r, fmt.Errorf("encode person %s: %w", id, err))
		return
	}
	h.cache.Set(id, body)

	h.log(r).Info().Str("id", id.String()).Msg("created person")

	w.Header().Set("Location", fmt.Sprintf("/people/%s", id))
	writeJSONBytes(w, http.StatusCreated, body)
}

func (h *Handler) CountPeople(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	count, err := h.store.Count(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, count)
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// fail maps store and internal errors to a response. Only not-found is a
// client error here; everything else is logged and reported as 500.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.log(r).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		respondError(w, status, http.StatusText(status))
		return
	}
	respondError(w, status, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, db.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
