package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	costingapp "github.com/paintfactory/backend/internal/application/costing"
	"github.com/paintfactory/backend/internal/domain/catalog"
	"github.com/paintfactory/backend/internal/domain/shared"
	"github.com/paintfactory/backend/internal/interfaces/http/dto"
)

type mockFinishedGoodRepo struct {
	goods map[uuid.UUID]*catalog.FinishedGood
}

func newMockFinishedGoodRepo() *mockFinishedGoodRepo {
	return &mockFinishedGoodRepo{goods: make(map[uuid.UUID]*catalog.FinishedGood)}
}

func (r *mockFinishedGoodRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.FinishedGood, error) {
	good, ok := r.goods[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return good, nil
}

func (r *mockFinishedGoodRepo) FindByIDWithBOM(ctx context.Context, id uuid.UUID) (*catalog.FinishedGood, error) {
	return r.FindByID(ctx, id)
}

func (r *mockFinishedGoodRepo) FindByProductionCode(_ context.Context, code string) (*catalog.FinishedGood, error) {
	for _, good := range r.goods {
		if good.ProductionCode == code {
			return good, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *mockFinishedGoodRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.FinishedGood, error) {
	out := make([]catalog.FinishedGood, 0, len(r.goods))
	for _, good := range r.goods {
		out = append(out, *good)
	}
	return out, nil
}

func (r *mockFinishedGoodRepo) Save(_ context.Context, good *catalog.FinishedGood) error {
	r.goods[good.ID] = good
	return nil
}

func (r *mockFinishedGoodRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.goods)), nil
}

func seedCostedGood(t *testing.T, repo *mockFinishedGoodRepo) *catalog.FinishedGood {
	t.Helper()

	material, err := catalog.NewRawMaterial(uuid.New(), uuid.New(), "Titanium Dioxide",
		decimal.NewFromInt(1000), decimal.Zero)
	require.NoError(t, err)

	good, err := catalog.NewFinishedGood(uuid.New(), "FG-"+uuid.NewString()[:8], "Interior White 5L",
		time.Now(), "B-1", catalog.QualityGradeA, decimal.NewFromInt(1), decimal.NewFromInt(900),
		[]catalog.ComponentLine{
			catalog.RawMaterialLine(material.ID, decimal.NewFromInt(5)),
		})
	require.NoError(t, err)
	good.Quantity = decimal.NewFromInt(10)
	good.Details[0].RawMaterial = material

	require.NoError(t, repo.Save(context.Background(), good))
	return good
}

func newCostingRouter(repo *mockFinishedGoodRepo) *gin.Engine {
	service := costingapp.NewCostingService(repo, nil)

	r := gin.New()
	api := r.Group("/api/v1")
	NewCostingHandler(service).RegisterRoutes(api)
	return r
}

func TestCostingHandler_UnitCost(t *testing.T) {
	repo := newMockFinishedGoodRepo()
	r := newCostingRouter(repo)
	good := seedCostedGood(t, repo)

	t.Run("returns the rolled-up unit cost", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/finished-goods/"+good.ID.String()+"/unit-cost", nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data := resp.Data.(map[string]any)
		// 5 * 1000 / 10 = 500
		assert.Equal(t, "500", data["unit_cost"])
	})

	t.Run("unknown good returns 404", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/finished-goods/"+uuid.NewString()+"/unit-cost", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed ID returns 400", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/finished-goods/not-a-uuid/unit-cost", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCostingHandler_Margin(t *testing.T) {
	repo := newMockFinishedGoodRepo()
	r := newCostingRouter(repo)
	good := seedCostedGood(t, repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/finished-goods/"+good.ID.String()+"/margin", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]any)
	// selling 900 - cost 500 = 400
	assert.Equal(t, "400", data["unit_margin"])
}
