package storage

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockBlobStore struct {
	mock.Mock
}

func NewMockBlobStore() *MockBlobStore {
	return &MockBlobStore{}
}

func (m *MockBlobStore) WritePart(ctx context.Context, key string, r io.Reader, size int64) error {
	args := m.Called(ctx, key, r, size)
	return args.Error(0)
}

func (m *MockBlobStore) ReadPart(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *MockBlobStore) WriteArtifact(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, key, r, size, contentType)
	return args.Error(0)
}

func (m *MockBlobStore) RemoveObject(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockBlobStore) RemovePrefix(ctx context.Context, prefix string) error {
	args := m.Called(ctx, prefix)
	return args.Error(0)
}

func (m *MockBlobStore) PresignedDownloadURL(ctx context.Context, key string) (string, *time.Time, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Get(1).(*time.Time), args.Error(2)
}
