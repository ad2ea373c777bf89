package mocks

import (
	"context"

	"github.com/joshu-sajeev/contactrelay/internal/provider"
	"github.com/stretchr/testify/mock"
)

type SenderMock struct {
	mock.Mock
}

func (m *SenderMock) Send(ctx context.Context, msg provider.Message) (provider.Result, error) {
	args := m.Called(ctx, msg)
	return args.Get(0).(provider.Result), args.Error(1)
}

func (m *SenderMock) Name() string {
	return "mock"
}
