package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/MKhiriev/go-cv-tailor/internal/config"
	"github.com/MKhiriev/go-cv-tailor/internal/logger"
	"github.com/MKhiriev/go-cv-tailor/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClientStorages(t *testing.T) *ClientStorages {
	t.Helper()

	cfg := config.ClientStorage{Path: filepath.Join(t.TempDir(), "local.db")}
	storages, err := NewClientStorages(cfg, logger.NewLogger("test"))
	require.NoError(t, err)

	return storages
}

func TestLedger_GetBalance_BeforeFirstSync(t *testing.T) {
	storages := newTestClientStorages(t)
	ctx := context.Background()

	_, err := storages.LedgerRepository.GetBalance(ctx)
	assert.ErrorIs(t, err, ErrLedgerNotInitialized)
}

func TestLedger_OverwriteThenRead(t *testing.T) {
	storages := newTestClientStorages(t)
	ctx := context.Background()

	server := models.CreditBalance{
		Available:   3,
		Used:        0,
		TotalEarned: 3,
		LastUpdated: time.Now().Truncate(time.Second),
	}
	require.NoError(t, storages.LedgerRepository.Overwrite(ctx, server))

	got, err := storages.LedgerRepository.GetBalance(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Available)
	assert.Equal(t, int64(0), got.Used)
	assert.Equal(t, int64(3), got.TotalEarned)
}

func TestLedger_SpendUntilExhausted(t *testing.T) {
	storages := newTestClientStorages(t)
	ctx := context.Background()

	require.NoError(t, storages.LedgerRepository.Overwrite(ctx, models.CreditBalance{
		Available: 3, Used: 0, TotalEarned: 3, LastUpdated: time.Now(),
	}))

	// three spends drain the starting grant
	for i := 0; i < 3; i++ {
		balance, err := storages.LedgerRepository.Spend(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2-i), balance.Available)
		assert.Equal(t, int64(i+1), balance.Used)
		assert.Equal(t, int64(3), balance.TotalEarned)
	}

	// fourth spend fails and leaves the counters untouched
	_, err := storages.LedgerRepository.Spend(ctx)
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	balance, err := storages.LedgerRepository.GetBalance(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance.Available)
	assert.Equal(t, int64(3), balance.Used)
}

func TestLedger_SpendBeforeFirstSync(t *testing.T) {
	storages := newTestClientStorages(t)
	ctx := context.Background()

	_, err := storages.LedgerRepository.Spend(ctx)
	assert.ErrorIs(t, err, ErrLedgerNotInitialized)
}

func TestLedger_Grant(t *testing.T) {
	storages := newTestClientStorages(t)
	ctx := context.Background()

	require.NoError(t, storages.LedgerRepository.Overwrite(ctx, models.CreditBalance{
		Available: 0, Used: 5, TotalEarned: 5, LastUpdated: time.Now(),
	}))

	balance, err := storages.LedgerRepository.Grant(ctx, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(20), balance.Available)
	assert.Equal(t, int64(5), balance.Used)
	assert.Equal(t, int64(25), balance.TotalEarned)
}

func TestLedger_OverwriteWinsOverLocalState(t *testing.T) {
	storages := newTestClientStorages(t)
	ctx := context.Background()

	require.NoError(t, storages.LedgerRepository.Overwrite(ctx, models.CreditBalance{
		Available: 3, Used: 0, TotalEarned: 3, LastUpdated: time.Now(),
	}))
	_, err := storages.LedgerRepository.Spend(ctx)
	require.NoError(t, err)

	// the server copy replaces local counters wholesale
	require.NoError(t, storages.LedgerRepository.Overwrite(ctx, models.CreditBalance{
		Available: 10, Used: 1, TotalEarned: 11, LastUpdated: time.Now(),
	}))

	balance, err := storages.LedgerRepository.GetBalance(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(10), balance.Available)
	assert.Equal(t, int64(1), balance.Used)
	assert.Equal(t, int64(11), balance.TotalEarned)
}

func TestLedger_LastGeneration(t *testing.T) {
	storages := newTestClientStorages(t)
	ctx := context.Background()

	require.NoError(t, storages.LedgerRepository.Overwrite(ctx, models.CreditBalance{
		Available: 3, TotalEarned: 3, LastUpdated: time.Now(),
	}))

	// zero before any spend was recorded
	at, err := storages.LedgerRepository.LastGeneration(ctx)
	require.NoError(t, err)
	assert.True(t, at.IsZero())

	stamp := time.Now().Truncate(time.Second)
	require.NoError(t, storages.LedgerRepository.SetLastGeneration(ctx, stamp))

	at, err = storages.LedgerRepository.LastGeneration(ctx)
	require.NoError(t, err)
	assert.WithinDuration(t, stamp, at, time.Second)
}

func TestLedger_LastGenerationSurvivesSync(t *testing.T) {
	storages := newTestClientStorages(t)
	ctx := context.Background()

	require.NoError(t, storages.LedgerRepository.Overwrite(ctx, models.CreditBalance{
		Available: 3, TotalEarned: 3, LastUpdated: time.Now(),
	}))

	stamp := time.Now().Truncate(time.Second)
	require.NoError(t, storages.LedgerRepository.SetLastGeneration(ctx, stamp))

	require.NoError(t, storages.LedgerRepository.Overwrite(ctx, models.CreditBalance{
		Available: 2, Used: 1, TotalEarned: 3, LastUpdated: time.Now(),
	}))

	at, err := storages.LedgerRepository.LastGeneration(ctx)
	require.NoError(t, err)
	assert.WithinDuration(t, stamp, at, time.Second)
}
