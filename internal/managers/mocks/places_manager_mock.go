package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"voyago/internal/schemas"
)

type MockPlacesManager struct {
	mock.Mock
}

func (m *MockPlacesManager) SearchPlaces(ctx context.Context, query, language string) ([]schemas.PlaceSummaryDTO, error) {
	args := m.Called(ctx, query, language)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]schemas.PlaceSummaryDTO), args.Error(1)
}

func (m *MockPlacesManager) PlaceDetails(ctx context.Context, placeId, language string) (*schemas.PlaceDetailsDTO, error) {
	args := m.Called(ctx, placeId, language)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*schemas.PlaceDetailsDTO), args.Error(1)
}

func (m *MockPlacesManager) NearbyMarkers(ctx context.Context, lat, lng float64, radius int) ([]schemas.MapMarkerDTO, error) {
	args := m.Called(ctx, lat, lng, radius)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]schemas.MapMarkerDTO), args.Error(1)
}

func (m *MockPlacesManager) StaticMapURL(ctx context.Context, placeId string, width, height, zoom int) (string, error) {
	args := m.Called(ctx, placeId, width, height, zoom)
	return args.String(0), args.Error(1)
}
