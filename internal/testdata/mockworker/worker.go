package mockworker

import (
	"github.com/stretchr/testify/mock"

	"ads-report-service/internal/model"
)

type Worker struct {
	mock.Mock
}

func (m *Worker) Enqueue(snapshots []model.ReportSnapshot) {
	m.Called(snapshots)
}

func (m *Worker) Shutdown() {
	m.Called()
}
