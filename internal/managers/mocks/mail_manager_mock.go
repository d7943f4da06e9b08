package mocks

import (
	"github.com/stretchr/testify/mock"

	"voyago/internal/schemas"
)

type MockMailManager struct {
	mock.Mock
}

func (m *MockMailManager) SendVerificationMail(email, username, token string) error {
	args := m.Called(email, username, token)
	return args.Error(0)
}

func (m *MockMailManager) SendPasswordResetMail(email, username, token string) error {
	args := m.Called(email, username, token)
	return args.Error(0)
}

func (m *MockMailManager) SendContactMail(form *schemas.ContactRequest) error {
	args := m.Called(form)
	return args.Error(0)
}
