package mocks

import (
	"context"

	"github.com/joshu-sajeev/contactrelay/internal/dto"
	"github.com/stretchr/testify/mock"
)

type ContactServiceMock struct {
	mock.Mock
}

func (m *ContactServiceMock) Send(ctx context.Context, req *dto.ContactRequest) (*dto.ContactResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ContactResponse), args.Error(1)
}
