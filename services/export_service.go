package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/Dosada05/trade-machine/storage"
)

const reportContentType = "application/json"

// ReportKey is the object key of a trade's exported report.
func ReportKey(tradeID uuid.UUID) string {
	return fmt.Sprintf("trade-reports/%s.json", tradeID)
}

// TradeReport is the document published by an export.
type TradeReport struct {
	Trade      TradeView `json:"trade"`
	ExportedAt time.Time `json:"exported_at"`
}

type ExportService interface {
	Export(ctx context.Context, userID, tradeID uuid.UUID) (*storage.UploadResult, error)
}

type exportService struct {
	trades   TradeService
	uploader storage.FileUploader
	clock    clockwork.Clock
	logger   zerolog.Logger
}

// NewExportService builds the report exporter. A nil uploader makes every
// export fail with ErrExportUnavailable.
func NewExportService(trades TradeService, uploader storage.FileUploader, clock clockwork.Clock, logger zerolog.Logger) ExportService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &exportService{
		trades:   trades,
		uploader: uploader,
		clock:    clock,
		logger:   logger.With().Str("service", "export").Logger(),
	}
}

func (s *exportService) Export(ctx context.Context, userID, tradeID uuid.UUID) (*storage.UploadResult, error) {
	if s.uploader == nil {
		return nil, ErrExportUnavailable
	}

	trade, err := s.trades.Get(ctx, userID, tradeID)
	if err != nil {
		return nil, err
	}

	body, err := json.MarshalIndent(TradeReport{Trade: *trade, ExportedAt: s.clock.Now().UTC()}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode trade report: %w", err)
	}

	key := ReportKey(tradeID)
	result, err := s.uploader.Upload(ctx, key, reportContentType, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to upload trade report: %w", err)
	}

	s.logger.Info().Str("trade_id", tradeID.String()).Str("key", key).Msg("trade report exported")
	return result, nil
}
