package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"mapup/internal/backend"
	apperrors "mapup/internal/errors"
	"mapup/internal/logging"
	"mapup/internal/model"
)

// ErrStaleData is returned when the upload went through but the stock data
// could not be reloaded afterwards.
var ErrStaleData = errors.New("uploaded, but stock data could not be reloaded")

// UploadService sends dataset files to the backend.
type UploadService interface {
	// Upload streams content to the backend and then reloads the stock data.
	Upload(ctx context.Context, filename string, content io.Reader) ([]model.StockRecord, error)
}

type uploadService struct {
	client backend.Client
	stocks StockService
	log    logging.Logger
}

// NewUploadService builds an UploadService.
func NewUploadService(client backend.Client, stocks StockService, log logging.Logger) UploadService {
	return &uploadService{client: client, stocks: stocks, log: log}
}

func (s *uploadService) Upload(ctx context.Context, filename string, content io.Reader) ([]model.StockRecord, error) {
	if filename == "" || content == nil {
		return nil, apperrors.ErrNoFile
	}
	if err := s.client.UploadFile(ctx, filename, content); err != nil {
		s.log.Error(ctx, "upload file", "filename", filename, "error", err)
		return nil, fmt.Errorf("upload %s: %w", filename, err)
	}
	s.log.Info(ctx, "file uploaded", "filename", filename)

	records, err := s.stocks.Refresh(ctx)
	if err != nil {
		return nil, errors.Join(ErrStaleData, err)
	}
	return records, nil
}
