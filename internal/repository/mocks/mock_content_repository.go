package mocks

import (
	"context"

	"contentapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockContentRepository struct {
	mock.Mock
}

func (m *MockContentRepository) Load(ctx context.Context) *model.ContentData {
	args := m.Called(ctx)
	return args.Get(0).(*model.ContentData)
}

func (m *MockContentRepository) Store(ctx context.Context, data *model.ContentData) error {
	args := m.Called(ctx, data)
	return args.Error(0)
}

func (m *MockContentRepository) AddDoc(ctx context.Context, url, title string) (*model.Item, error) {
	args := m.Called(ctx, url, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Item), args.Error(1)
}

func (m *MockContentRepository) AddPhoto(ctx context.Context, blobURL, title string) (*model.Item, error) {
	args := m.Called(ctx, blobURL, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Item), args.Error(1)
}

func (m *MockContentRepository) UpdateItemTitle(ctx context.Context, id string, t model.ItemType, title string) (bool, error) {
	args := m.Called(ctx, id, t, title)
	return args.Bool(0), args.Error(1)
}

func (m *MockContentRepository) DeleteItem(ctx context.Context, id string, t model.ItemType) (bool, error) {
	args := m.Called(ctx, id, t)
	return args.Bool(0), args.Error(1)
}

func (m *MockContentRepository) FindItem(ctx context.Context, id string, t model.ItemType) (*model.Item, bool) {
	args := m.Called(ctx, id, t)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*model.Item), args.Bool(1)
}
