package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/yieldfood-api/internal/application/dto"
	"github.com/jhoicas/yieldfood-api/internal/application/inventory"
	"github.com/jhoicas/yieldfood-api/internal/application/monitoring"
	"github.com/jhoicas/yieldfood-api/internal/application/sales"
	"github.com/jhoicas/yieldfood-api/internal/domain/entity"
	"github.com/jhoicas/yieldfood-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/yieldfood-api/internal/interfaces/http"
)

type fakePDF struct{}

func (fakePDF) GenerateRestockList(items []dto.RestockSuggestionDTO, _ time.Time) ([]byte, error) {
	return []byte("%PDF-fake"), nil
}

// buildApp router completo sobre el almacén en memoria.
// carne: 1000 g (mínimo 200); pan: 50 u. BURGER-01 = 150 g carne + 1 pan.
func buildApp(t *testing.T) (*fiber.App, *memory.Store) {
	t.Helper()
	s := memory.NewStore()
	min200 := decimal.NewFromInt(200)
	s.PutIngredient(&entity.Ingredient{ID: "beef", UserID: testUserID, Name: "Carne", Unit: "g", CurrentStock: decimal.NewFromInt(1000), MinimumStock: &min200})
	s.PutIngredient(&entity.Ingredient{ID: "bun", UserID: testUserID, Name: "Pan", Unit: "unit", CurrentStock: decimal.NewFromInt(50)})
	s.PutRecipe(&entity.Recipe{
		ID: "burger", UserID: testUserID, Name: "Burger", SKU: "BURGER-01", Servings: decimal.NewFromInt(1), IsActive: true,
		Ingredients: []entity.RecipeIngredient{
			{IngredientID: "beef", IngredientName: "Carne", Quantity: decimal.NewFromInt(150), Unit: "g"},
			{IngredientID: "bun", IngredientName: "Pan", Quantity: decimal.NewFromInt(1), Unit: "unit"},
		},
	})

	ingredients := memory.NewIngredientRepo(s)
	alertsRepo := memory.NewStockAlertRepo(s)
	syncLogs := memory.NewSyncLogRepo(s)
	ledger := inventory.NewStockLedger(memory.NewTxRunner(s))
	alerts := inventory.NewAlertGenerator(alertsRepo)

	processor := sales.NewSaleProcessor(sales.ProcessorDeps{
		Recipes:     memory.NewRecipeRepo(s),
		Ingredients: ingredients,
		SyncLogs:    syncLogs,
		Movements:   memory.NewStockMovementRepo(s),
		Ledger:      ledger,
		Alerts:      alerts,
		Logger:      zerolog.Nop(),
	})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Processor:            processor,
		Monitoring:           monitoring.NewUseCase(alertsRepo, syncLogs),
		StockUC:              inventory.NewStockUseCase(ledger, alerts, ingredients, memory.NewStockMovementRepo(s), zerolog.Nop()),
		RestockUC:            inventory.NewRestockUseCase(ingredients, fakePDF{}),
		DefaultAllowNegative: true,
		JWTSecret:            testJWTSecret,
		AppName:              "yieldfood-test",
	})
	return app, s
}

func call(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Authorization", bearer(t, testUserID))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func syncBody(saleID, sku string, qty int) map[string]any {
	return map[string]any{
		"sale": map[string]any{
			"saleID":      saleID,
			"orderNumber": "ORD-" + saleID,
			"orderStatus": "completed",
			"SaleLines": map[string]any{
				"SaleLine": map[string]any{"lineID": "1", "sku": sku, "description": "Burger", "quantity": qty},
			},
		},
	}
}

func TestHealth_SinToken(t *testing.T) {
	app, _ := buildApp(t)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPI_RequiereToken(t *testing.T) {
	app, _ := buildApp(t)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/stock", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestManualSync_DescuentaStock(t *testing.T) {
	app, _ := buildApp(t)

	resp, body := call(t, app, http.MethodPost, "/api/lightspeed/manual-sync", syncBody("100", "BURGER-01", 2))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var out dto.SaleProcessingResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.True(t, out.Success)
	assert.Equal(t, "100", out.SaleID)
	assert.Equal(t, 1, out.RecipesProcessed)
	assert.Equal(t, 2, out.IngredientsUpdated)
	assert.NotEmpty(t, out.SyncLogID)

	resp, body = call(t, app, http.MethodGet, "/api/stock", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stock []dto.IngredientResponse
	require.NoError(t, json.Unmarshal(body, &stock))
	for _, ing := range stock {
		if ing.ID == "beef" {
			assert.True(t, ing.CurrentStock.Equal(decimal.NewFromInt(700)))
		}
	}

	resp, body = call(t, app, http.MethodGet, "/api/stock/movements?sale_id=100", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var mv struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(body, &mv))
	assert.Equal(t, 2, mv.Total)
}

func TestManualSync_YaProcesada(t *testing.T) {
	app, _ := buildApp(t)

	resp, _ := call(t, app, http.MethodPost, "/api/lightspeed/manual-sync", syncBody("200", "BURGER-01", 1))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := call(t, app, http.MethodPost, "/api/lightspeed/manual-sync", syncBody("200", "BURGER-01", 1))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.SaleProcessingResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.True(t, out.AlreadyProcessed)
	assert.Empty(t, out.Movements)

	resp, body = call(t, app, http.MethodGet, "/api/lightspeed/sync-logs?sale_id=200", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var logs struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(body, &logs))
	assert.Equal(t, 1, logs.Total)
}

func TestManualSync_RecetaInexistente_Retorna422(t *testing.T) {
	app, _ := buildApp(t)

	resp, body := call(t, app, http.MethodPost, "/api/lightspeed/manual-sync", syncBody("300", "PIZZA-99", 1))
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, string(body))

	var out dto.SaleProcessingResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.False(t, out.Success)
	assert.Equal(t, entity.SyncStatusError, out.Status)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, entity.ErrKindRecipeNotFound, out.Errors[0].Kind)
}

func TestManualSync_SinVenta_Retorna400(t *testing.T) {
	app, _ := buildApp(t)
	resp, _ := call(t, app, http.MethodPost, "/api/lightspeed/manual-sync", map[string]any{"validate_only": true})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestManualSync_ValidateOnly_NoModificaStock(t *testing.T) {
	app, s := buildApp(t)
	body := syncBody("400", "BURGER-01", 3)
	body["validate_only"] = true

	resp, raw := call(t, app, http.MethodPost, "/api/lightspeed/manual-sync", body)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	ing, err := memory.NewIngredientRepo(s).GetByID(context.Background(), testUserID, "beef")
	require.NoError(t, err)
	assert.True(t, ing.CurrentStock.Equal(decimal.NewFromInt(1000)))
}

func TestAdjust(t *testing.T) {
	app, _ := buildApp(t)

	resp, body := call(t, app, http.MethodPatch, "/api/stock/beef/adjust", map[string]any{"quantity": "-900", "notes": "merma"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var out dto.AdjustStockResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.True(t, out.NewQuantity.Equal(decimal.NewFromInt(100)))
	require.NotNil(t, out.Alert, "100 < mínimo 200")

	resp, _ = call(t, app, http.MethodPatch, "/api/stock/beef/adjust", map[string]any{"quantity": "-500"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = call(t, app, http.MethodPatch, "/api/stock/missing/adjust", map[string]any{"quantity": "5"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = call(t, app, http.MethodPatch, "/api/stock/beef/adjust", map[string]any{"quantity": "0"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAlerts_ListarYResolver(t *testing.T) {
	app, _ := buildApp(t)

	resp, _ := call(t, app, http.MethodPatch, "/api/stock/beef/adjust", map[string]any{"quantity": "-850"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := call(t, app, http.MethodGet, "/api/lightspeed/stock-alerts", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list struct {
		Total  int                      `json:"total"`
		Alerts []dto.StockAlertResponse `json:"alerts"`
	}
	require.NoError(t, json.Unmarshal(body, &list))
	require.Equal(t, 1, list.Total)

	resp, _ = call(t, app, http.MethodPatch, "/api/lightspeed/stock-alerts/"+list.Alerts[0].ID+"/resolve", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = call(t, app, http.MethodPatch, "/api/lightspeed/stock-alerts/no-existe/resolve", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = call(t, app, http.MethodGet, "/api/lightspeed/stock-alerts?type=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRestockList(t *testing.T) {
	app, _ := buildApp(t)

	resp, _ := call(t, app, http.MethodPatch, "/api/stock/beef/adjust", map[string]any{"quantity": "-900"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := call(t, app, http.MethodGet, "/api/stock/restock-list", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		Total int                        `json:"total"`
		Items []dto.RestockSuggestionDTO `json:"items"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	require.Equal(t, 1, out.Total)
	assert.Equal(t, "beef", out.Items[0].IngredientID)
	assert.True(t, out.Items[0].SuggestedOrderQty.Equal(decimal.NewFromInt(200)), "200×1.5 − 100")

	resp, body = call(t, app, http.MethodGet, "/api/stock/restock-list/pdf", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Equal(t, "%PDF-fake", string(body))
}
