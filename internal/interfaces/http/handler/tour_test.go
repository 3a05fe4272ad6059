package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	tourapp "github.com/fleischhandel/backend/internal/application/tour"
	"github.com/fleischhandel/backend/internal/domain/shared"
	"github.com/fleischhandel/backend/internal/domain/tour"
	"github.com/fleischhandel/backend/internal/infrastructure/config"
	"github.com/fleischhandel/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type tourRepoStub struct {
	byID map[uuid.UUID]*tour.Tour
}

func newTourRepoStub() *tourRepoStub {
	return &tourRepoStub{byID: make(map[uuid.UUID]*tour.Tour)}
}

func (r *tourRepoStub) FindByID(_ context.Context, id uuid.UUID) (*tour.Tour, error) {
	if t, ok := r.byID[id]; ok {
		return t, nil
	}
	return nil, shared.ErrNotFound
}

func (r *tourRepoStub) FindAll(_ context.Context, _ shared.Filter) ([]tour.Tour, error) {
	out := make([]tour.Tour, 0, len(r.byID))
	for _, t := range r.byID {
		out = append(out, *t)
	}
	return out, nil
}

func (r *tourRepoStub) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.byID)), nil
}

func (r *tourRepoStub) FindByDatumRegion(_ context.Context, datum time.Time, region string) ([]tour.Tour, error) {
	out := []tour.Tour{}
	for _, t := range r.byID {
		if t.Datum.Equal(datum) && (region == "" || t.Region == region) {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *tourRepoStub) FindByAuftrag(_ context.Context, auftragID uuid.UUID, _ time.Time) (*tour.Tour, error) {
	for _, t := range r.byID {
		for _, s := range t.Stops {
			if s.AuftragID == auftragID {
				return t, nil
			}
		}
	}
	return nil, shared.ErrNotFound
}

func (r *tourRepoStub) NextLaufnummer(_ context.Context, datum time.Time, region string) (int, error) {
	next := 1
	for _, t := range r.byID {
		if t.Datum.Equal(datum) && t.Region == region && t.Laufnummer >= next {
			next = t.Laufnummer + 1
		}
	}
	return next, nil
}

func (r *tourRepoStub) Save(_ context.Context, t *tour.Tour) error {
	r.byID[t.ID] = t
	return nil
}

func (r *tourRepoStub) SaveAll(_ context.Context, tours []*tour.Tour) error {
	for _, t := range tours {
		r.byID[t.ID] = t
	}
	return nil
}

func (r *tourRepoStub) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.byID[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func newTestTour(t *testing.T, datum time.Time, region string) *tour.Tour {
	t.Helper()
	tr, err := tour.NewTour(datum, region, decimal.NewFromInt(1200), 1)
	require.NoError(t, err)
	return tr
}

func setupTourRouter(repo *tourRepoStub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := tourapp.NewTourService(repo, config.TourConfig{DefaultMaxGewichtKg: 1200}, zap.NewNop())
	h := NewTourHandler(svc)

	r := gin.New()
	r.POST("/touren", h.Create)
	r.GET("/touren", h.List)
	r.GET("/touren/datum/:datum", h.ListByDatum)
	r.GET("/touren/:id", h.GetByID)
	r.PUT("/touren/:id", h.Update)
	r.PUT("/touren/:id/status", h.SetStatus)
	r.PUT("/touren/:id/reihenfolge", h.ReorderStops)
	r.DELETE("/touren/:id", h.Delete)
	return r
}

func TestTourHandler_Create(t *testing.T) {
	repo := newTourRepoStub()
	router := setupTourRouter(repo)

	body := map[string]any{
		"datum":  "2026-09-01T00:00:00Z",
		"region": "Nord",
	}
	payload, _ := json.Marshal(body)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/touren", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Len(t, repo.byID, 1)
}

func TestTourHandler_Create_MissingRegion(t *testing.T) {
	router := setupTourRouter(newTourRepoStub())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/touren",
		bytes.NewReader([]byte(`{"datum":"2026-09-01T00:00:00Z"}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTourHandler_GetByID_NotFound(t *testing.T) {
	router := setupTourRouter(newTourRepoStub())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/touren/"+uuid.NewString(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTourHandler_List(t *testing.T) {
	repo := newTourRepoStub()
	datum := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	repo.byID[uuid.New()] = newTestTour(t, datum, "Nord")
	repo.byID[uuid.New()] = newTestTour(t, datum, "Sued")
	router := setupTourRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/touren?page=1&page_size=20", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(2), resp.Meta.Total)
}

func TestTourHandler_ListByDatum(t *testing.T) {
	repo := newTourRepoStub()
	datum := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	nord := newTestTour(t, datum, "Nord")
	repo.byID[nord.ID] = nord
	sued := newTestTour(t, datum, "Sued")
	repo.byID[sued.ID] = sued
	router := setupTourRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/touren/datum/2026-09-01?region=Nord", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Nord")
	assert.NotContains(t, w.Body.String(), "Sued")
}

func TestTourHandler_ListByDatum_InvalidDate(t *testing.T) {
	router := setupTourRouter(newTourRepoStub())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/touren/datum/01.09.2026", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTourHandler_SetStatus_InvalidTransition(t *testing.T) {
	repo := newTourRepoStub()
	datum := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	tr := newTestTour(t, datum, "Nord")
	repo.byID[tr.ID] = tr
	router := setupTourRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/touren/"+tr.ID.String()+"/status",
		bytes.NewReader([]byte(`{"status":"abgeschlossen"}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestTourHandler_Delete(t *testing.T) {
	repo := newTourRepoStub()
	datum := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	tr := newTestTour(t, datum, "Nord")
	repo.byID[tr.ID] = tr
	router := setupTourRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/touren/"+tr.ID.String(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, repo.byID)
}
