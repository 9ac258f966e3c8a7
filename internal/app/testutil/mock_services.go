package testutil

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/mock"

	"pop-search/internal/api/dto"
	"pop-search/internal/app/model"
)

// MockServices contains all mock services for testing
type MockServices struct {
	VideoService  *MockVideoService
	SearchService *MockSearchService
}

// NewMockServices creates a new instance of mock services
func NewMockServices(t *testing.T) *MockServices {
	return &MockServices{
		VideoService:  NewMockVideoService(t),
		SearchService: NewMockSearchService(t),
	}
}

// MockVideoService is a mock implementation of VideoService
type MockVideoService struct {
	mock.Mock
}

func NewMockVideoService(t *testing.T) *MockVideoService {
	m := &MockVideoService{}
	m.Test(t)
	return m
}

func (m *MockVideoService) Analyze(ctx context.Context, req *dto.AnalyzeRequest) (*model.VideoMetadata, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VideoMetadata), args.Error(1)
}

func (m *MockVideoService) Index(ctx context.Context, req *dto.IndexVideoRequest) (*dto.IndexVideoResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.IndexVideoResponse), args.Error(1)
}

func (m *MockVideoService) List(ctx context.Context, query dto.ListVideosQuery) ([]model.VideoSummary, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.VideoSummary), args.Error(1)
}

// Export writes the bytes given as the first return value, if any.
func (m *MockVideoService) Export(ctx context.Context, w io.Writer) error {
	args := m.Called(ctx, w)
	if data, ok := args.Get(0).([]byte); ok {
		if _, err := w.Write(data); err != nil {
			return err
		}
		return args.Error(1)
	}
	return args.Error(0)
}

// MockSearchService is a mock implementation of SearchService
type MockSearchService struct {
	mock.Mock
}

func NewMockSearchService(t *testing.T) *MockSearchService {
	m := &MockSearchService{}
	m.Test(t)
	return m
}

func (m *MockSearchService) Search(ctx context.Context, req *dto.SearchRequest) ([]model.SearchResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SearchResult), args.Error(1)
}
