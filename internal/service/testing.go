package service

import (
	"context"

	"github.com/stretchr/testify/mock"
)

const (
	ConnectMethod  = "Connect"
	RegisterMethod = "Register"
	RunMethod      = "Run"
)

var (
	_ Registrar = (*MockRegistrar)(nil)
	_ Server    = (*MockServer)(nil)
)

type MockRegistrar struct {
	mock.Mock
}

func (m *MockRegistrar) Connect() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockRegistrar) Register() error {
	args := m.Called()
	return args.Error(0)
}

type MockServer struct {
	mock.Mock
}

func (m *MockServer) Run(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
