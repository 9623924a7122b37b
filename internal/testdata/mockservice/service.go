package mockservice

import (
	"context"

	"github.com/stretchr/testify/mock"

	"ads-report-service/internal/model"
	"ads-report-service/internal/service"
)

type Service struct {
	mock.Mock
}

var _ service.ReportService = &Service{}

func (m *Service) GetReport(ctx context.Context, dateRange model.DateRange, demoMode bool) (model.Report, error) {
	args := m.Called(ctx, dateRange, demoMode)
	return args.Get(0).(model.Report), args.Error(1)
}

func (m *Service) Refresh(ctx context.Context, dateRange model.DateRange) (model.Report, error) {
	args := m.Called(ctx, dateRange)
	return args.Get(0).(model.Report), args.Error(1)
}
