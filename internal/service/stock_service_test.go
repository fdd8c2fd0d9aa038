package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "mapup/internal/errors"
	"mapup/internal/logging"
	"mapup/internal/model"
)

func sampleRecords() []model.StockRecord {
	return []model.StockRecord{
		{Date: "2024-10-28", Open: decimal.NewFromInt(10), Close: decimal.NewFromInt(11)},
	}
}

func TestStockService_WithoutCacheAlwaysFetches(t *testing.T) {
	mb := new(MockBackend)
	mb.On("FileData", mock.Anything).Return(sampleRecords(), nil).Twice()
	svc := NewStockService(mb, nil, time.Minute, logging.Nop())

	got, err := svc.Records(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = svc.Refresh(context.Background())
	require.NoError(t, err)
	mb.AssertExpectations(t)
}

func TestStockService_WrapsErrors(t *testing.T) {
	mb := new(MockBackend)
	mb.On("FileData", mock.Anything).Return(nil, errors.New("unreachable"))
	svc := NewStockService(mb, nil, 0, logging.Nop())

	_, err := svc.Records(context.Background())
	assert.ErrorContains(t, err, "fetch stock data")
}

func TestUploadService_RefreshesAfterUpload(t *testing.T) {
	mb := new(MockBackend)
	body := bytes.NewBufferString("date,open\n")
	mb.On("UploadFile", mock.Anything, "prices.csv", body).Return(nil)
	mb.On("FileData", mock.Anything).Return(sampleRecords(), nil)

	stocks := NewStockService(mb, nil, 0, logging.Nop())
	svc := NewUploadService(mb, stocks, logging.Nop())

	got, err := svc.Upload(context.Background(), "prices.csv", body)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	mb.AssertExpectations(t)
}

func TestUploadService_Failures(t *testing.T) {
	mb := new(MockBackend)
	svc := NewUploadService(mb, NewStockService(mb, nil, 0, logging.Nop()), logging.Nop())

	_, err := svc.Upload(context.Background(), "", nil)
	assert.ErrorIs(t, err, apperrors.ErrNoFile)

	mb.On("UploadFile", mock.Anything, "x.csv", mock.Anything).Return(errors.New("413"))
	_, err = svc.Upload(context.Background(), "x.csv", bytes.NewBufferString("x"))
	assert.Error(t, err)
	mb.AssertNotCalled(t, "FileData", mock.Anything)
}

func TestUploadService_StaleAfterUpload(t *testing.T) {
	mb := new(MockBackend)
	mb.On("UploadFile", mock.Anything, "x.csv", mock.Anything).Return(nil)
	mb.On("FileData", mock.Anything).Return(nil, errors.New("timeout"))
	svc := NewUploadService(mb, NewStockService(mb, nil, 0, logging.Nop()), logging.Nop())

	_, err := svc.Upload(context.Background(), "x.csv", bytes.NewBufferString("x"))
	assert.ErrorIs(t, err, ErrStaleData)
}
