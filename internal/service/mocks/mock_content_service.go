package mocks

import (
	"context"
	"io"

	"contentapi/internal/model"
	"contentapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockContentService struct {
	mock.Mock
}

func (m *MockContentService) ListContent(ctx context.Context) (*model.ContentData, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ContentData), args.Error(1)
}

func (m *MockContentService) AddDocument(ctx context.Context, url, title string) (*model.Item, error) {
	args := m.Called(ctx, url, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Item), args.Error(1)
}

func (m *MockContentService) GetDocument(ctx context.Context, id string) (*model.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Item), args.Error(1)
}

func (m *MockContentService) UploadPhoto(ctx context.Context, r io.Reader, originalFilename, contentType string, size int64) (*model.Item, error) {
	args := m.Called(ctx, r, originalFilename, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Item), args.Error(1)
}

func (m *MockContentService) UpdateItemTitle(ctx context.Context, id string, t model.ItemType, title string) (bool, error) {
	args := m.Called(ctx, id, t, title)
	return args.Bool(0), args.Error(1)
}

func (m *MockContentService) DeleteItem(ctx context.Context, id string, t model.ItemType) (bool, error) {
	args := m.Called(ctx, id, t)
	return args.Bool(0), args.Error(1)
}

func (m *MockContentService) DeleteItems(ctx context.Context, refs []service.ItemRef) *service.BulkDeleteResult {
	args := m.Called(ctx, refs)
	return args.Get(0).(*service.BulkDeleteResult)
}
