package mocksource

import (
	"context"

	"github.com/stretchr/testify/mock"

	"ads-report-service/internal/model"
	"ads-report-service/internal/source"
)

type LeadSource struct {
	mock.Mock
}

var _ source.LeadSource = &LeadSource{}

func (m *LeadSource) FetchLeads(ctx context.Context, dateRange model.DateRange) ([]map[string]string, error) {
	args := m.Called(ctx, dateRange)
	if v := args.Get(0); v != nil {
		return v.([]map[string]string), args.Error(1)
	}
	return nil, args.Error(1)
}

type StatsSource struct {
	mock.Mock

	SourcePlatform model.Platform
}

var _ source.StatsSource = &StatsSource{}

func (m *StatsSource) Platform() model.Platform {
	return m.SourcePlatform
}

func (m *StatsSource) FetchStats(ctx context.Context, dateRange model.DateRange) ([]map[string]any, error) {
	args := m.Called(ctx, dateRange)
	if v := args.Get(0); v != nil {
		return v.([]map[string]any), args.Error(1)
	}
	return nil, args.Error(1)
}
