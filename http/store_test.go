package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"people/db"
)

type panickingStore struct{}

func (panickingStore) Get(context.Context, uuid.UUID) (db.Person, error) { panic("boom") }
func (panickingStore) Insert(context.Context, db.Person) error { panic("boom") }
func (panickingStore) Count(context.Context) (int, error) { panic("boom") }
func (panickingStore) List(context.Context) ([]db.Person, error) { panic("boom") }

var errUnavailable = errors.New("store unavailable")

type failingStore struct{}

func (failingStore) Get(context.Context, uuid.UUID) (db.Person, error) {
	return db.Person{}, errUnavailable
}
func (failingStore) Insert(context.Context, db.Person) error { return errUnavailable }
func (failingStore) Count(context.Context) (int, error) { return 0, errUnavailable }
func (failingStore) List(context.Context) ([]db.Person, error) { return nil, errUnavailable }

func TestHandlers_whenStoreFails_shouldReturn500WithoutLeakingError(t *testing.T) {
	router := NewRouter(New(failingStore{}, nil, zerolog.Nop()), zerolog.Nop())

	requests := []*http.Request{
		httptest.NewRequest(http.MethodGet, "/people", nil),
		httptest.NewRequest(http.MethodGet, "/count-people", nil),
		httptest.NewRequest(http.MethodGet, "/people/"+uuid.Must(uuid.NewV7()).String(), nil),
	}

	for _, req := range requests {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusInternalServerError, recorder.Code, req.URL.Path)
		assert.NotContains(t, recorder.Body.String(), errUnavailable.Error(), req.URL.Path)
	}
}

func TestStatusFor_shouldMapNotFound(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusFor(db.ErrNotFound))
	assert.Equal(t, http.StatusInternalServerError, statusFor(db.ErrDuplicateID))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errUnavailable))
}
