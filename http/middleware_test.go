package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestRequestLogger_shouldLogStatusAndRequestId(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusTeapot, "short and stout")
	})
	handler := middleware.RequestID(RequestLogger(logger)(next))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/count-people", nil))

	assert.Equal(t, http.StatusTeapot, recorder.Code)
	assert.Contains(t, buf.String(), `"status":418`)
	assert.Contains(t, buf.String(), `"method":"GET"`)
	assert.Contains(t, buf.String(), `"path":"/count-people"`)
	assert.Contains(t, buf.String(), `"request_id":"`)
	assert.Contains(t, buf.String(), `"level":"info"`)
}

func TestRequestLogger_whenHandlerWritesNothing_shouldLog200(t *testing.T) {
	var buf bytes.Buffer

	handler := RequestLogger(zerolog.New(&buf))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Contains(t, buf.String(), `"status":200`)
}

func TestRouter_whenHandlerPanics_shouldRecoverWith500(t *testing.T) {
	var buf bytes.Buffer

	h := New(panickingStore{}, nil, zerolog.Nop())
	router := NewRouter(h, zerolog.New(&buf))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/count-people", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, buf.String(), `"level":"error"`)
}
