package mocks

import (
	"context"

	"github.com/joshu-sajeev/contactrelay/internal/models"
	"github.com/stretchr/testify/mock"
)

type SubmissionRecorderMock struct {
	mock.Mock
}

func (m *SubmissionRecorderMock) Create(ctx context.Context, sub *models.Submission) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}
