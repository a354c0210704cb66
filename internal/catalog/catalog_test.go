// AngelaMos | 2026
// catalog_test.go

package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/beanvoyage/storefront/internal/core"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) List(ctx context.Context) ([]Product, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]Product)
	return products, args.Error(1)
}

func (m *mockRepository) GetByID(ctx context.Context, id string) (*Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*Product)
	return p, args.Error(1)
}

func (m *mockRepository) First(ctx context.Context) (*Product, error) {
	args := m.Called(ctx)
	p, _ := args.Get(0).(*Product)
	return p, args.Error(1)
}

func TestParseTastingNotes(t *testing.T) {
	assert.Equal(t, []string{"Brown Sugar", "Citrus", "Orange"}, ParseTastingNotes("Brown Sugar, Citrus,,  Orange "))
	assert.Empty(t, ParseTastingNotes(""))
	assert.Empty(t, ParseTastingNotes(" , "))
}

func TestLevelPercent(t *testing.T) {
	assert.Equal(t, 20, LevelPercent(1))
	assert.Equal(t, 80, LevelPercent(4))
	assert.Equal(t, 100, LevelPercent(5))
	assert.Equal(t, 0, LevelPercent(0))
	assert.Equal(t, 100, LevelPercent(9))
}

func TestRowWithoutTasteHasNilMetadata(t *testing.T) {
	p := productRow{ID: "coffee-009", OriginName: "Flores Bajawa"}.toProduct()
	assert.Nil(t, p.Taste)

	p = productRow{
		ID:           "coffee-001",
		Acidity:      sql.NullInt32{Int32: 2, Valid: true},
		Body:         sql.NullInt32{Int32: 5, Valid: true},
		TastingNotes: sql.NullString{String: "Earthy,Spice", Valid: true},
	}.toProduct()
	require.NotNil(t, p.Taste)
	assert.Equal(t, 5, p.Taste.Body)
	assert.Equal(t, []string{"Earthy", "Spice"}, p.Taste.TastingNotes)
}

func TestGetStoryHandler(t *testing.T) {
	repo := new(mockRepository)
	h := NewHandler(NewService(repo))

	repo.On("GetByID", mock.Anything, "coffee-002").Return(&Product{
		ID:         "coffee-002",
		OriginName: "Bali Kintamani",
		Story:      Story{Region: "Kintamani, Bali", Narrative: "Under Mount Batur."},
		Taste:      &TasteMetadata{Acidity: 5, Body: 2, TastingNotes: []string{"Citrus"}},
	}, nil)
	repo.On("GetByID", mock.Anything, "coffee-404").Return(nil, core.ErrNotFound)

	r := chi.NewRouter()
	h.RegisterRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/coffee-002", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data StoryResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Kintamani, Bali", body.Data.Region)
	assert.Equal(t, 100, body.Data.Taste.AcidityPercent)
	assert.Equal(t, 40, body.Data.Taste.BodyPercent)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/coffee-404", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
