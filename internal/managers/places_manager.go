package managers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"googlemaps.github.io/maps"

	"voyago/internal/config"
	"voyago/internal/schemas"
)

// PlacesMgr wraps the Google Places web services used to search, enrich and
// pin destinations. Calls are not retried; a provider failure surfaces as an
// error for the one request that triggered it.
type PlacesMgr interface {
	SearchPlaces(ctx context.Context, query, language string) ([]schemas.PlaceSummaryDTO, error)
	PlaceDetails(ctx context.Context, placeId, language string) (*schemas.PlaceDetailsDTO, error)
	NearbyMarkers(ctx context.Context, lat, lng float64, radius int) ([]schemas.MapMarkerDTO, error)
	StaticMapURL(ctx context.Context, placeId string, width, height, zoom int) (string, error)
}

// ErrPlacesNotConfigured is returned when no Places API key is set.
var ErrPlacesNotConfigured = errors.New("places API key not configured")

// ErrPlaceNotFound is returned when the provider reports no result for a
// place id.
var ErrPlaceNotFound = errors.New("place not found")

const maxPlacePhotos = 5

// PlacesManager is the Google-backed implementation of PlacesMgr.
type PlacesManager struct {
	client *maps.Client
	apiKey string
}

// NewPlacesManager creates a PlacesManager. With an empty API key the manager
// is still constructed, but every call fails with ErrPlacesNotConfigured.
func NewPlacesManager(cfg config.PlacesConfig) (PlacesMgr, error) {
	if cfg.APIKey == "" {
		log.Warn("No Places API key configured, external place lookups are disabled")
		return &PlacesManager{}, nil
	}

	client, err := maps.NewClient(maps.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, err
	}

	log.Info("Initialized places manager")
	return &PlacesManager{client: client, apiKey: cfg.APIKey}, nil
}

// SearchPlaces runs a city autocomplete for the query and resolves every
// prediction to a summary via place details.
func (pm *PlacesManager) SearchPlaces(ctx context.Context, query, language string) ([]schemas.PlaceSummaryDTO, error) {
	if pm.client == nil {
		return nil, ErrPlacesNotConfigured
	}

	resp, err := pm.client.PlaceAutocomplete(ctx, &maps.PlaceAutocompleteRequest{
		Input:    query,
		Language: language,
		Types:    maps.AutocompletePlaceTypeCities,
	})
	if err != nil {
		return nil, err
	}

	results := make([]schemas.PlaceSummaryDTO, 0, len(resp.Predictions))
	for _, prediction := range resp.Predictions {
		place, err := pm.client.PlaceDetails(ctx, &maps.PlaceDetailsRequest{
			PlaceID:  prediction.PlaceID,
			Language: language,
		})
		if err != nil {
			log.Warnf("Skipping place %s: %v", prediction.PlaceID, err)
			continue
		}

		summary := schemas.PlaceSummaryDTO{
			PlaceID:          prediction.PlaceID,
			Name:             place.Name,
			FormattedAddress: place.FormattedAddress,
			Coordinates: schemas.CoordinatesDTO{
				Lat: place.Geometry.Location.Lat,
				Lng: place.Geometry.Location.Lng,
			},
			Types:            place.Types,
			Rating:           nonZeroFloat(float64(place.Rating)),
			UserRatingsTotal: nonZeroInt(place.UserRatingsTotal),
		}
		if len(place.Photos) > 0 {
			ref := place.Photos[0].PhotoReference
			summary.PhotoReference = &ref
		}
		results = append(results, summary)
	}

	return results, nil
}

// PlaceDetails fetches the full place record and resolves up to five photo
// references to URLs.
func (pm *PlacesManager) PlaceDetails(ctx context.Context, placeId, language string) (*schemas.PlaceDetailsDTO, error) {
	if pm.client == nil {
		return nil, ErrPlacesNotConfigured
	}

	place, err := pm.client.PlaceDetails(ctx, &maps.PlaceDetailsRequest{
		PlaceID:  placeId,
		Language: language,
	})
	if err != nil {
		if strings.Contains(err.Error(), "ZERO_RESULTS") || strings.Contains(err.Error(), "NOT_FOUND") {
			return nil, ErrPlaceNotFound
		}
		return nil, err
	}

	photos := make([]string, 0, maxPlacePhotos)
	for _, photo := range place.Photos {
		if len(photos) == maxPlacePhotos {
			break
		}
		photos = append(photos, pm.photoURL(photo.PhotoReference))
	}

	details := &schemas.PlaceDetailsDTO{
		PlaceID:          placeId,
		Name:             place.Name,
		FormattedAddress: place.FormattedAddress,
		Coordinates: schemas.CoordinatesDTO{
			Lat: place.Geometry.Location.Lat,
			Lng: place.Geometry.Location.Lng,
		},
		Types:            place.Types,
		Photos:           photos,
		Rating:           nonZeroFloat(float64(place.Rating)),
		UserRatingsTotal: nonZeroInt(place.UserRatingsTotal),
		Website:          nonEmpty(place.Website),
		Phone:            nonEmpty(place.FormattedPhoneNumber),
		PriceLevel:       nonZeroInt(place.PriceLevel),
	}
	if place.OpeningHours != nil {
		details.OpeningHours = place.OpeningHours.WeekdayText
	}

	return details, nil
}

// NearbyMarkers returns tourist-attraction pins around the given center.
func (pm *PlacesManager) NearbyMarkers(ctx context.Context, lat, lng float64, radius int) ([]schemas.MapMarkerDTO, error) {
	if pm.client == nil {
		return nil, ErrPlacesNotConfigured
	}

	resp, err := pm.client.NearbySearch(ctx, &maps.NearbySearchRequest{
		Location: &maps.LatLng{Lat: lat, Lng: lng},
		Radius:   uint(radius),
		Type:     maps.PlaceTypeTouristAttraction,
	})
	if err != nil {
		return nil, err
	}

	markers := make([]schemas.MapMarkerDTO, 0, len(resp.Results))
	for _, result := range resp.Results {
		markers = append(markers, schemas.MapMarkerDTO{
			Lat:     result.Geometry.Location.Lat,
			Lng:     result.Geometry.Location.Lng,
			Title:   result.Name,
			PlaceID: result.PlaceID,
			Rating:  nonZeroFloat(float64(result.Rating)),
			Icon:    result.Icon,
		})
	}

	return markers, nil
}

// StaticMapURL builds a static map preview URL centered on the place.
func (pm *PlacesManager) StaticMapURL(ctx context.Context, placeId string, width, height, zoom int) (string, error) {
	if pm.client == nil {
		return "", ErrPlacesNotConfigured
	}

	place, err := pm.client.PlaceDetails(ctx, &maps.PlaceDetailsRequest{PlaceID: placeId})
	if err != nil {
		if strings.Contains(err.Error(), "ZERO_RESULTS") || strings.Contains(err.Error(), "NOT_FOUND") {
			return "", ErrPlaceNotFound
		}
		return "", err
	}

	lat := place.Geometry.Location.Lat
	lng := place.Geometry.Location.Lng
	url := fmt.Sprintf(
		"https://maps.googleapis.com/maps/api/staticmap?center=%f,%f&zoom=%d&size=%dx%d&markers=color:red%%7C%f,%f&key=%s",
		lat, lng, zoom, width, height, lat, lng, pm.apiKey,
	)

	return url, nil
}

func (pm *PlacesManager) photoURL(photoReference string) string {
	return fmt.Sprintf(
		"https://maps.googleapis.com/maps/api/place/photo?maxwidth=800&photo_reference=%s&key=%s",
		photoReference, pm.apiKey,
	)
}

func nonZeroFloat(f float64) *float64 {
	if f == 0 {
		return nil
	}
	return &f
}

func nonZeroInt(i int) *int {
	if i == 0 {
		return nil
	}
	return &i
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
