package mocks

import (
	"context"

	"github.com/metinatakli/movies-catalog-api/internal/domain"
)

type MockFileStorage struct {
	StoreFunc  func(ctx context.Context, container string, file domain.File) (string, error)
	DeleteFunc func(ctx context.Context, url, container string) error
}

func (m *MockFileStorage) Store(ctx context.Context, container string, file domain.File) (string, error) {
	if m.StoreFunc == nil {
		return "http://example.com/static/" + container + "/" + file.Name, nil
	}
	return m.StoreFunc(ctx, container, file)
}

func (m *MockFileStorage) Delete(ctx context.Context, url, container string) error {
	if m.DeleteFunc == nil {
		return nil
	}
	return m.DeleteFunc(ctx, url, container)
}
