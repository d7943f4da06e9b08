package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"voyago/internal/managers"
	"voyago/internal/schemas"
	"voyago/internal/utils"
)

// PlaceHdl defines the interface for handling external place and map
// requests.
type PlaceHdl interface {
	SearchPlaces(c *gin.Context)
	GetPlaceDetails(c *gin.Context)
	GetMapMarkers(c *gin.Context)
	GetStaticMap(c *gin.Context)
}

// PlaceHandler proxies the places provider. Nothing here touches the
// database; results are transient and the frontend decides what to persist
// via the destination routes.
type PlaceHandler struct {
	PlacesManager managers.PlacesMgr
}

// NewPlaceHandler returns a new PlaceHandler with the provided manager.
func NewPlaceHandler(placesManager *managers.PlacesMgr) PlaceHdl {
	return &PlaceHandler{
		PlacesManager: *placesManager,
	}
}

var errMissingQuery = errors.New("query parameter is required")

const defaultMapWidth = 600
const defaultMapHeight = 400
const defaultMapZoom = 13

// SearchPlaces runs the provider's city autocomplete for the query.
func (handler *PlaceHandler) SearchPlaces(c *gin.Context) {
	query := c.Query(utils.QueryParamKey)
	if query == "" {
		utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, errMissingQuery)
		return
	}
	language := c.DefaultQuery(utils.LanguageParamKey, "en")

	results, err := handler.PlacesManager.SearchPlaces(c, query, language)
	if err != nil {
		utils.WriteAndLogError(c, schemas.UpstreamError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(c, results, http.StatusOK)
}

// GetPlaceDetails returns the full provider record for a place id.
func (handler *PlaceHandler) GetPlaceDetails(c *gin.Context) {
	placeId := c.Param(utils.PlaceIdKey)
	language := c.DefaultQuery(utils.LanguageParamKey, "en")

	details, err := handler.PlacesManager.PlaceDetails(c, placeId, language)
	if err != nil {
		if errors.Is(err, managers.ErrPlaceNotFound) {
			utils.WriteAndLogError(c, schemas.PlaceNotFound, http.StatusNotFound, err)
			return
		}
		utils.WriteAndLogError(c, schemas.UpstreamError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(c, details, http.StatusOK)
}

// GetMapMarkers returns tourist-attraction markers around the requested
// center.
func (handler *PlaceHandler) GetMapMarkers(c *gin.Context) {
	boundsRequest := c.Value(utils.SanitizedPayloadKey.String()).(*schemas.MapBoundsRequest)

	markers, err := handler.PlacesManager.NearbyMarkers(c, boundsRequest.Latitude, boundsRequest.Longitude,
		boundsRequest.Radius)
	if err != nil {
		utils.WriteAndLogError(c, schemas.UpstreamError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(c, markers, http.StatusOK)
}

// GetStaticMap returns a static map preview URL for a place.
func (handler *PlaceHandler) GetStaticMap(c *gin.Context) {
	placeId := c.Param(utils.PlaceIdKey)

	width := queryInt(c, "width", defaultMapWidth)
	height := queryInt(c, "height", defaultMapHeight)
	zoom := queryInt(c, "zoom", defaultMapZoom)

	url, err := handler.PlacesManager.StaticMapURL(c, placeId, width, height, zoom)
	if err != nil {
		if errors.Is(err, managers.ErrPlaceNotFound) {
			utils.WriteAndLogError(c, schemas.PlaceNotFound, http.StatusNotFound, err)
			return
		}
		utils.WriteAndLogError(c, schemas.UpstreamError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(c, gin.H{"url": url}, http.StatusOK)
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 1 {
		return fallback
	}
	return parsed
}
