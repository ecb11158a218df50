package s3

import (
	"github.com/stretchr/testify/mock"
)

const (
	ConnectMethod = "Connect"
	GetMethod     = "Get"
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

func (m *MockClient) Get(bucket string, key string) ([]byte, error) {
	args := m.Called(bucket, key)
	if data := args.Get(0); data != nil {
		return data.([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}
