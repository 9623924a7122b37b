package mockrepository

import (
	"context"

	"github.com/stretchr/testify/mock"

	"ads-report-service/internal/model"
	"ads-report-service/internal/repository"
)

type Repository struct {
	mock.Mock
}

// Interface compliance check
var _ repository.SnapshotRepository = &Repository{}

func (m *Repository) InsertSnapshots(ctx context.Context, snapshots []model.ReportSnapshot) error {
	args := m.Called(ctx, snapshots)
	return args.Error(0)
}

func (m *Repository) RecentSnapshots(ctx context.Context, limit int) ([]model.ReportSnapshot, error) {
	args := m.Called(ctx, limit)
	if v := args.Get(0); v != nil {
		return v.([]model.ReportSnapshot), args.Error(1)
	}
	return nil, args.Error(1)
}
