package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"voyago/internal/managers"
	"voyago/internal/schemas"
	"voyago/internal/utils"
)

// DestinationHdl defines the interface for handling destination requests.
type DestinationHdl interface {
	SearchDestinations(c *gin.Context)
	GetDestination(c *gin.Context)
	CreateDestination(c *gin.Context)
	GetOrCreateByPlace(c *gin.Context)
}

// DestinationHandler provides methods to handle destination requests.
type DestinationHandler struct {
	DatabaseManager managers.DatabaseMgr
	PlacesManager   managers.PlacesMgr
}

// NewDestinationHandler returns a new DestinationHandler with the provided managers.
func NewDestinationHandler(databaseManager *managers.DatabaseMgr, placesManager *managers.PlacesMgr) DestinationHdl {
	return &DestinationHandler{
		DatabaseManager: *databaseManager,
		PlacesManager:   *placesManager,
	}
}

var errNotSuperuser = errors.New("caller is not a superuser")
var errDestinationNotFound = errors.New("destination not found")

const defaultSearchLimit = 10
const maxSearchLimit = 100

const destinationColumns = `destination_id, name, description, latitude, longitude, formatted_address,
	place_id, rating, user_ratings_total, price_level, website, phone, photos, activities, country, city, image_url`

// SearchDestinations matches the query case-insensitively against name,
// country and city. The query is required; the limit is clamped to at most
// 100 results.
func (handler *DestinationHandler) SearchDestinations(c *gin.Context) {
	query := c.Query(utils.QueryParamKey)
	if query == "" {
		utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, errMissingQuery)
		return
	}

	limit := defaultSearchLimit
	if rawLimit := c.Query(utils.LimitParamKey); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed < 1 {
			utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, errors.New("invalid limit"))
			return
		}
		limit = parsed
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	queryString := `SELECT ` + destinationColumns + ` FROM travel_schema.destinations
		WHERE name ILIKE $1 OR country ILIKE $1 OR city ILIKE $1 ORDER BY name LIMIT $2`
	rows, err := handler.DatabaseManager.GetPool().Query(c, queryString, "%"+query+"%", limit)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}
	defer rows.Close()

	results := make([]schemas.DestinationDTO, 0)
	for rows.Next() {
		destination, err := scanDestination(rows)
		if err != nil {
			utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
			return
		}
		results = append(results, *destination)
	}

	utils.WriteAndLogResponse(c, results, http.StatusOK)
}

// GetDestination returns a single destination by id. A malformed id reads as
// a missing destination.
func (handler *DestinationHandler) GetDestination(c *gin.Context) {
	destinationId, err := uuid.Parse(c.Param(utils.DestinationIdKey))
	if err != nil {
		utils.WriteAndLogError(c, schemas.DestinationNotFound, http.StatusNotFound, err)
		return
	}

	queryString := `SELECT ` + destinationColumns + ` FROM travel_schema.destinations WHERE destination_id = $1`
	row := handler.DatabaseManager.GetPool().QueryRow(c, queryString, destinationId)
	destination, err := scanDestination(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteAndLogError(c, schemas.DestinationNotFound, http.StatusNotFound, err)
			return
		}
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(c, destination, http.StatusOK)
}

// CreateDestination inserts a curated destination. Only superusers may call
// this.
func (handler *DestinationHandler) CreateDestination(c *gin.Context) {
	isSuperuser := c.Value(utils.IsSuperuserKey.String()).(bool)
	if !isSuperuser {
		utils.WriteAndLogError(c, schemas.Forbidden, http.StatusForbidden, errNotSuperuser)
		return
	}

	tx := utils.BeginTransaction(c, handler.DatabaseManager.GetPool())
	if tx == nil {
		return
	}
	var err error
	defer func() { utils.RollbackTransaction(c, tx, err) }()

	createRequest := c.Value(utils.SanitizedPayloadKey.String()).(*schemas.CreateDestinationRequest)

	destinationId := uuid.New()
	activities := createRequest.Activities
	if activities == nil {
		activities = []string{}
	}

	queryString := `INSERT INTO travel_schema.destinations
		(destination_id, name, description, latitude, longitude, formatted_address, place_id, rating,
		 user_ratings_total, price_level, website, phone, photos, activities, country, city, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, '', NULL, NULL, NULL, NULL, NULL, NULL, $6, $7, $8, $9, $10, $11)`
	if _, err = tx.Exec(c, queryString, destinationId, createRequest.Name, createRequest.Description,
		createRequest.Latitude, createRequest.Longitude, []string{}, activities,
		createRequest.Country, createRequest.City, createRequest.ImageURL, time.Now()); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if err = utils.CommitTransaction(c, tx); err != nil {
		return
	}

	destinationDto := &schemas.DestinationDTO{
		DestinationID: destinationId.String(),
		Name:          createRequest.Name,
		Description:   createRequest.Description,
		Latitude:      createRequest.Latitude,
		Longitude:     createRequest.Longitude,
		Photos:        []string{},
		Activities:    activities,
		Country:       createRequest.Country,
		City:          createRequest.City,
		ImageURL:      createRequest.ImageURL,
	}

	utils.WriteAndLogResponse(c, destinationDto, http.StatusCreated)
}

// GetOrCreateByPlace resolves an external place id to a stored destination,
// materializing it from the places provider on first lookup. A stored
// destination is never re-fetched.
func (handler *DestinationHandler) GetOrCreateByPlace(c *gin.Context) {
	placeId := c.Param(utils.PlaceIdKey)

	queryString := `SELECT ` + destinationColumns + ` FROM travel_schema.destinations WHERE place_id = $1`
	row := handler.DatabaseManager.GetPool().QueryRow(c, queryString, placeId)
	destination, err := scanDestination(row)
	if err == nil {
		utils.WriteAndLogResponse(c, destination, http.StatusOK)
		return
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	language := c.DefaultQuery(utils.LanguageParamKey, "en")
	place, err := handler.PlacesManager.PlaceDetails(c, placeId, language)
	if err != nil {
		if errors.Is(err, managers.ErrPlaceNotFound) {
			utils.WriteAndLogError(c, schemas.PlaceNotFound, http.StatusNotFound, err)
			return
		}
		utils.WriteAndLogError(c, schemas.UpstreamError, http.StatusInternalServerError, err)
		return
	}

	tx := utils.BeginTransaction(c, handler.DatabaseManager.GetPool())
	if tx == nil {
		return
	}
	defer func() { utils.RollbackTransaction(c, tx, err) }()

	destinationId := uuid.New()
	imageURL := ""
	if len(place.Photos) > 0 {
		imageURL = place.Photos[0]
	}

	queryString = `INSERT INTO travel_schema.destinations
		(destination_id, name, description, latitude, longitude, formatted_address, place_id, rating,
		 user_ratings_total, price_level, website, phone, photos, activities, country, city, image_url, created_at)
		VALUES ($1, $2, '', $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, '', '', $14, $15)`
	if _, err = tx.Exec(c, queryString, destinationId, place.Name, place.Coordinates.Lat, place.Coordinates.Lng,
		place.FormattedAddress, place.PlaceID, place.Rating, place.UserRatingsTotal, place.PriceLevel,
		place.Website, place.Phone, place.Photos, place.Types, imageURL, time.Now()); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if err = utils.CommitTransaction(c, tx); err != nil {
		return
	}

	destinationDto := &schemas.DestinationDTO{
		DestinationID:    destinationId.String(),
		Name:             place.Name,
		Latitude:         &place.Coordinates.Lat,
		Longitude:        &place.Coordinates.Lng,
		FormattedAddress: place.FormattedAddress,
		PlaceID:          &place.PlaceID,
		Rating:           place.Rating,
		UserRatingsTotal: place.UserRatingsTotal,
		PriceLevel:       place.PriceLevel,
		Website:          place.Website,
		Phone:            place.Phone,
		Photos:           place.Photos,
		Activities:       place.Types,
		ImageURL:         imageURL,
	}

	utils.WriteAndLogResponse(c, destinationDto, http.StatusCreated)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDestination(row rowScanner) (*schemas.DestinationDTO, error) {
	destination := &schemas.DestinationDTO{}
	var destinationId uuid.UUID
	err := row.Scan(&destinationId, &destination.Name, &destination.Description, &destination.Latitude,
		&destination.Longitude, &destination.FormattedAddress, &destination.PlaceID, &destination.Rating,
		&destination.UserRatingsTotal, &destination.PriceLevel, &destination.Website, &destination.Phone,
		&destination.Photos, &destination.Activities, &destination.Country, &destination.City, &destination.ImageURL)
	if err != nil {
		return nil, err
	}

	destination.DestinationID = destinationId.String()
	if destination.Photos == nil {
		destination.Photos = []string{}
	}
	if destination.Activities == nil {
		destination.Activities = []string{}
	}

	return destination, nil
}
