package ssm

import (
	"github.com/stretchr/testify/mock"
)

const (
	ConnectMethod      = "Connect"
	GetParameterMethod = "GetParameter"
)

// Ensure MockClient implements ClientIFace
var _ ClientIFace = (*MockClient)(nil)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) Connect() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockClient) GetParameter(name string) (string, error) {
	args := m.Called(name)
	return args.String(0), args.Error(1)
}
