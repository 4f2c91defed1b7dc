package monitoring

import (
	"context"
	"testing"

	"github.com/jhoicas/yieldfood-api/internal/application/dto"
	"github.com/jhoicas/yieldfood-api/internal/domain"
	"github.com/jhoicas/yieldfood-api/internal/domain/entity"
	"github.com/jhoicas/yieldfood-api/internal/infrastructure/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUseCase_AlertsAndSyncLogs(t *testing.T) {
	s := memory.NewStore()
	alerts := memory.NewStockAlertRepo(s)
	logs := memory.NewSyncLogRepo(s)
	uc := NewUseCase(alerts, logs)
	ctx := context.Background()

	_, err := alerts.CreateIfAbsent(ctx, &entity.StockAlert{ID: "a1", UserID: "u1", IngredientID: "i1", AlertType: entity.AlertTypeLowStock})
	require.NoError(t, err)
	_, err = alerts.CreateIfAbsent(ctx, &entity.StockAlert{ID: "a2", UserID: "u1", IngredientID: "i2", AlertType: entity.AlertTypeNegativeStock})
	require.NoError(t, err)

	open, err := uc.ListAlerts(ctx, "u1", dto.StockAlertQuery{Type: entity.AlertTypeNegativeStock})
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "a2", open[0].ID)

	resolved, err := uc.ResolveAlert(ctx, "u1", "a1")
	require.NoError(t, err)
	assert.True(t, resolved.IsResolved)

	_, err = uc.ResolveAlert(ctx, "u1", "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	done, err := uc.ListAlerts(ctx, "u1", dto.StockAlertQuery{Resolved: true})
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, "a1", done[0].ID)

	require.NoError(t, logs.Create(ctx, &entity.SyncLog{ID: "l1", UserID: "u1", SaleID: "s1", Status: entity.SyncStatusSuccess}))
	require.NoError(t, logs.Create(ctx, &entity.SyncLog{ID: "l2", UserID: "u1", SaleID: "s2", Status: entity.SyncStatusError}))

	list, err := uc.ListSyncLogs(ctx, "u1", dto.SyncLogQuery{Status: entity.SyncStatusError})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "s2", list[0].SaleID)

	all, err := uc.ListSyncLogs(ctx, "u1", dto.SyncLogQuery{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "l2", all[0].ID)
}
