package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gastropro/backoffice/internal/database/testutil"
	"github.com/gastropro/backoffice/internal/models"
	apperrors "github.com/gastropro/backoffice/pkg/errors"
)

func TestInventoryAdjustStockRaisesLowStock(t *testing.T) {
	engine, db, _ := newTestEngine(t)
	svc, err := NewInventoryService(db, engine)
	require.NoError(t, err)
	ctx := context.Background()

	item, err := svc.Create(ctx, CreateInventoryItemInput{Name: "Fresh Mint", CurrentStock: 1, Unit: "kg", Threshold: 0.3})
	require.NoError(t, err)

	adjusted, err := svc.AdjustStock(ctx, item.ID, -0.9)
	require.NoError(t, err)
	require.InDelta(t, 0.1, adjusted.Item.CurrentStock, 1e-9)
	require.NotNil(t, adjusted.Alert)
	require.Equal(t, string(EventLowStock), adjusted.Alert.Notification.EventKind)

	// Another decrement inside the window is absorbed by the first alert.
	again, err := svc.AdjustStock(ctx, item.ID, -0.05)
	require.NoError(t, err)
	require.True(t, again.Alert.Suppressed)

	emptied, err := svc.AdjustStock(ctx, item.ID, -again.Item.CurrentStock)
	require.NoError(t, err)
	require.Zero(t, emptied.Item.CurrentStock)
	require.False(t, emptied.Alert.Suppressed)
	require.Equal(t, string(EventOutOfStock), emptied.Alert.Notification.EventKind)

	restocked, err := svc.AdjustStock(ctx, item.ID, 5)
	require.NoError(t, err)
	require.Nil(t, restocked.Alert)
}

func TestInventoryAdjustStockRejectsNegative(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	svc, err := NewInventoryService(db, nil)
	require.NoError(t, err)
	ctx := context.Background()

	item, err := svc.Create(ctx, CreateInventoryItemInput{Name: "Tomatoes", CurrentStock: 2, Threshold: 1})
	require.NoError(t, err)

	_, err = svc.AdjustStock(ctx, item.ID, -3)
	require.ErrorIs(t, err, apperrors.ErrBadRequest)

	stored, err := svc.Get(ctx, item.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, stored.CurrentStock)

	_, err = svc.AdjustStock(ctx, 999, 1)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestInventoryAdjustStockSurvivesAlertFailure(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	evaluator := &failingEvaluator{}
	svc, err := NewInventoryService(db, evaluator)
	require.NoError(t, err)
	ctx := context.Background()

	item, err := svc.Create(ctx, CreateInventoryItemInput{Name: "Olive Oil", CurrentStock: 3, Unit: "L", Threshold: 2})
	require.NoError(t, err)

	adjusted, err := svc.AdjustStock(ctx, item.ID, -2)
	require.NoError(t, err)
	require.Nil(t, adjusted.Alert)
	require.Equal(t, 1, evaluator.calls)

	var stored models.InventoryItem
	require.NoError(t, db.First(&stored, item.ID).Error)
	require.EqualValues(t, 1, stored.CurrentStock)
}

func TestInventoryAdjustStockSkipsHealthyItems(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	evaluator := &failingEvaluator{}
	svc, err := NewInventoryService(db, evaluator)
	require.NoError(t, err)
	ctx := context.Background()

	item, err := svc.Create(ctx, CreateInventoryItemInput{Name: "Lemons", CurrentStock: 10, Unit: "kg", Threshold: 2})
	require.NoError(t, err)

	adjusted, err := svc.AdjustStock(ctx, item.ID, -7.5)
	require.NoError(t, err)
	require.Nil(t, adjusted.Alert)
	require.Zero(t, evaluator.calls)

	_, err = svc.AdjustStock(ctx, item.ID, -0.5)
	require.NoError(t, err)
	require.Equal(t, 1, evaluator.calls)
}

func TestInventorySweepStock(t *testing.T) {
	engine, db, clock := newTestEngine(t)
	svc, err := NewInventoryService(db, engine)
	require.NoError(t, err)
	ctx := context.Background()

	for _, input := range []CreateInventoryItemInput{
		{Name: "Chicken Breast", CurrentStock: 8.5, Unit: "kg", Threshold: 5},
		{Name: "Mozzarella Cheese", CurrentStock: 2, Unit: "kg", Threshold: 5},
		{Name: "White Rum", CurrentStock: 0, Unit: "bottles", Threshold: 3},
	} {
		_, err := svc.Create(ctx, input)
		require.NoError(t, err)
	}

	created, err := svc.SweepStock(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, created)

	created, err = svc.SweepStock(ctx)
	require.NoError(t, err)
	require.Zero(t, created)

	clock.Advance(13 * time.Hour)
	created, err = svc.SweepStock(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, created)
}

func TestInventorySweepStockAggregatesFailures(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	evaluator := &failingEvaluator{}
	svc, err := NewInventoryService(db, evaluator)
	require.NoError(t, err)
	ctx := context.Background()

	for _, name := range []string{"Basil", "Thyme"} {
		_, err := svc.Create(ctx, CreateInventoryItemInput{Name: name, CurrentStock: 0, Threshold: 1})
		require.NoError(t, err)
	}

	created, err := svc.SweepStock(ctx)
	require.Error(t, err)
	require.Zero(t, created)
	require.Equal(t, 2, evaluator.calls)
}

func TestInventoryCreateValidates(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	svc, err := NewInventoryService(db, nil)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateInventoryItemInput{Name: " "})
	require.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = svc.Get(context.Background(), 1)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}
