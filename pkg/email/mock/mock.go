package mock_email

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/barangay-connect/backend/pkg/email"
)

type EmailSender struct {
	mock.Mock
}

func (m *EmailSender) Send(ctx context.Context, msg email.Message) error {
	args := m.Called(ctx, msg)

	return args.Error(0)
}
