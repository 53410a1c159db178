package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportTrade(t *testing.T) {
	f := newTradeFixture(t, TradeValidator{})
	owner := uuid.New()
	trade, err := f.svc.Create(context.Background(), owner, validDraft())
	require.NoError(t, err)

	svc := NewExportService(f.svc, f.uploader, f.clock, zerolog.Nop())
	got, err := svc.Export(context.Background(), owner, trade.ID)
	require.NoError(t, err)

	key := "trade-reports/" + trade.ID.String() + ".json"
	assert.Equal(t, key, got.Key)
	assert.Equal(t, "https://cdn.example.com/"+key, got.Location)

	var report map[string]interface{}
	require.NoError(t, json.Unmarshal(f.uploader.objects[key], &report))
	assert.Contains(t, report, "exported_at")
	exported := report["trade"].(map[string]interface{})
	assert.Equal(t, trade.ID.String(), exported["id"])
	assert.Contains(t, exported, "valuation")
	assert.Contains(t, exported, "analysis")
}

func TestExportErrors(t *testing.T) {
	f := newTradeFixture(t, TradeValidator{})
	owner := uuid.New()
	trade, err := f.svc.Create(context.Background(), owner, validDraft())
	require.NoError(t, err)

	_, err = NewExportService(f.svc, nil, f.clock, zerolog.Nop()).Export(context.Background(), owner, trade.ID)
	assert.ErrorIs(t, err, ErrExportUnavailable)

	_, err = NewExportService(f.svc, f.uploader, f.clock, zerolog.Nop()).Export(context.Background(), uuid.New(), trade.ID)
	assert.ErrorIs(t, err, ErrTradeForbidden)
	assert.Empty(t, f.uploader.objects)
}
