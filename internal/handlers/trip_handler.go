package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"voyago/internal/managers"
	"voyago/internal/schemas"
	"voyago/internal/utils"
)

// TripHdl defines the interface for handling trip requests.
type TripHdl interface {
	CreateTrip(c *gin.Context)
	ListTrips(c *gin.Context)
	GetTrip(c *gin.Context)
	UpdateTrip(c *gin.Context)
	DeleteTrip(c *gin.Context)
	ReorderTrip(c *gin.Context)
}

// TripHandler provides methods to handle trip requests. Every operation is
// scoped to the authenticated owner; a trip belonging to someone else is
// indistinguishable from a missing one.
type TripHandler struct {
	DatabaseManager managers.DatabaseMgr
}

// NewTripHandler returns a new TripHandler with the provided manager.
func NewTripHandler(databaseManager *managers.DatabaseMgr) TripHdl {
	return &TripHandler{
		DatabaseManager: *databaseManager,
	}
}

var errInvalidDateRange = errors.New("end_date before start_date")
var errTripNotFound = errors.New("trip not found")

const tripDateLayout = "2006-01-02"

// CreateTrip creates a trip together with its initial destination
// attachments. All referenced destinations must exist; day and order values
// are stored as supplied.
func (handler *TripHandler) CreateTrip(c *gin.Context) {
	createRequest := c.Value(utils.SanitizedPayloadKey.String()).(*schemas.CreateTripRequest)
	userId := c.Value(utils.UserIdKey.String()).(string)

	startDate, err := time.Parse(tripDateLayout, createRequest.StartDate)
	if err != nil {
		utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, err)
		return
	}
	endDate, err := time.Parse(tripDateLayout, createRequest.EndDate)
	if err != nil {
		utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, err)
		return
	}
	if endDate.Before(startDate) {
		utils.WriteAndLogError(c, schemas.InvalidDateRange, http.StatusBadRequest, errInvalidDateRange)
		return
	}

	tx := utils.BeginTransaction(c, handler.DatabaseManager.GetPool())
	if tx == nil {
		return
	}
	defer func() { utils.RollbackTransaction(c, tx, err) }()

	if err = checkDestinationsExist(c, tx, createRequest.Destinations); err != nil {
		return
	}

	tripId := uuid.New()
	createdAt := time.Now()

	queryString := `INSERT INTO travel_schema.trips
		(trip_id, user_id, title, description, start_date, end_date, is_public, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err = tx.Exec(c, queryString, tripId, userId, createRequest.Title, createRequest.Description,
		startDate, endDate, createRequest.IsPublic, createdAt); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if err = insertTripDestinations(c, tx, tripId, createRequest.Destinations); err != nil {
		return
	}

	if err = utils.CommitTransaction(c, tx); err != nil {
		return
	}

	tripDto := &schemas.TripDTO{
		TripID:       tripId.String(),
		Title:        createRequest.Title,
		Description:  createRequest.Description,
		StartDate:    createRequest.StartDate,
		EndDate:      createRequest.EndDate,
		IsPublic:     createRequest.IsPublic,
		CreatedAt:    createdAt.Format(time.RFC3339),
		Destinations: attachmentDTOs(createRequest.Destinations),
	}

	utils.WriteAndLogResponse(c, tripDto, http.StatusCreated)
}

// ListTrips returns the caller's trips, newest start date first. Optional
// start_date and end_date query parameters narrow the range.
func (handler *TripHandler) ListTrips(c *gin.Context) {
	userId := c.Value(utils.UserIdKey.String()).(string)

	queryString := `SELECT trip_id, title, description, start_date, end_date, is_public, created_at
		FROM travel_schema.trips WHERE user_id = $1`
	queryArgs := []interface{}{userId}

	if rawStart := c.Query(utils.StartDateParamKey); rawStart != "" {
		startDate, err := time.Parse(tripDateLayout, rawStart)
		if err != nil {
			utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, err)
			return
		}
		queryArgs = append(queryArgs, startDate)
		queryString += fmt.Sprintf(" AND start_date >= $%d", len(queryArgs))
	}
	if rawEnd := c.Query(utils.EndDateParamKey); rawEnd != "" {
		endDate, err := time.Parse(tripDateLayout, rawEnd)
		if err != nil {
			utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, err)
			return
		}
		queryArgs = append(queryArgs, endDate)
		queryString += fmt.Sprintf(" AND end_date <= $%d", len(queryArgs))
	}

	queryString += " ORDER BY start_date DESC"

	rows, err := handler.DatabaseManager.GetPool().Query(c, queryString, queryArgs...)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}
	defer rows.Close()

	trips := make([]schemas.TripDTO, 0)
	tripIds := make([]uuid.UUID, 0)
	for rows.Next() {
		trip, tripId, err := scanTrip(rows)
		if err != nil {
			utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
			return
		}
		trips = append(trips, *trip)
		tripIds = append(tripIds, tripId)
	}
	rows.Close()

	if len(trips) > 0 {
		attachments, err := fetchAttachments(c, handler.DatabaseManager.GetPool(), tripIds)
		if err != nil {
			utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
			return
		}
		for i := range trips {
			trips[i].Destinations = attachments[trips[i].TripID]
			if trips[i].Destinations == nil {
				trips[i].Destinations = []schemas.TripDestinationDTO{}
			}
		}
	}

	utils.WriteAndLogResponse(c, trips, http.StatusOK)
}

// GetTrip returns one of the caller's trips with its ordered attachments.
func (handler *TripHandler) GetTrip(c *gin.Context) {
	tripId, err := parseTripId(c)
	if err != nil {
		return
	}
	userId := c.Value(utils.UserIdKey.String()).(string)

	queryString := `SELECT trip_id, title, description, start_date, end_date, is_public, created_at
		FROM travel_schema.trips WHERE trip_id = $1 AND user_id = $2`
	row := handler.DatabaseManager.GetPool().QueryRow(c, queryString, tripId, userId)
	trip, id, err := scanTrip(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteAndLogError(c, schemas.TripNotFound, http.StatusNotFound, err)
			return
		}
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	attachments, err := fetchAttachments(c, handler.DatabaseManager.GetPool(), []uuid.UUID{id})
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}
	trip.Destinations = attachments[trip.TripID]
	if trip.Destinations == nil {
		trip.Destinations = []schemas.TripDestinationDTO{}
	}

	utils.WriteAndLogResponse(c, trip, http.StatusOK)
}

// UpdateTrip applies the supplied fields to one of the caller's trips. The
// merged date range must still be valid.
func (handler *TripHandler) UpdateTrip(c *gin.Context) {
	updateRequest := c.Value(utils.SanitizedPayloadKey.String()).(*schemas.UpdateTripRequest)
	tripId, err := parseTripId(c)
	if err != nil {
		return
	}
	userId := c.Value(utils.UserIdKey.String()).(string)

	tx := utils.BeginTransaction(c, handler.DatabaseManager.GetPool())
	if tx == nil {
		return
	}
	defer func() { utils.RollbackTransaction(c, tx, err) }()

	var title, description string
	var startDate, endDate time.Time
	var isPublic bool
	var createdAt time.Time
	queryString := `SELECT title, description, start_date, end_date, is_public, created_at
		FROM travel_schema.trips WHERE trip_id = $1 AND user_id = $2`
	row := tx.QueryRow(c, queryString, tripId, userId)
	if err = row.Scan(&title, &description, &startDate, &endDate, &isPublic, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteAndLogError(c, schemas.TripNotFound, http.StatusNotFound, err)
			return
		}
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if updateRequest.Title != nil {
		title = *updateRequest.Title
	}
	if updateRequest.Description != nil {
		description = *updateRequest.Description
	}
	if updateRequest.StartDate != nil {
		if startDate, err = time.Parse(tripDateLayout, *updateRequest.StartDate); err != nil {
			utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, err)
			return
		}
	}
	if updateRequest.EndDate != nil {
		if endDate, err = time.Parse(tripDateLayout, *updateRequest.EndDate); err != nil {
			utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, err)
			return
		}
	}
	if updateRequest.IsPublic != nil {
		isPublic = *updateRequest.IsPublic
	}

	if endDate.Before(startDate) {
		err = errInvalidDateRange
		utils.WriteAndLogError(c, schemas.InvalidDateRange, http.StatusBadRequest, err)
		return
	}

	queryString = `UPDATE travel_schema.trips
		SET title = $1, description = $2, start_date = $3, end_date = $4, is_public = $5
		WHERE trip_id = $6 AND user_id = $7`
	if _, err = tx.Exec(c, queryString, title, description, startDate, endDate, isPublic, tripId, userId); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	attachments, err := fetchAttachments(c, tx, []uuid.UUID{tripId})
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}
	destinations := attachments[tripId.String()]
	if destinations == nil {
		destinations = []schemas.TripDestinationDTO{}
	}

	if err = utils.CommitTransaction(c, tx); err != nil {
		return
	}

	tripDto := &schemas.TripDTO{
		TripID:       tripId.String(),
		Title:        title,
		Description:  description,
		StartDate:    startDate.Format(tripDateLayout),
		EndDate:      endDate.Format(tripDateLayout),
		IsPublic:     isPublic,
		CreatedAt:    createdAt.Format(time.RFC3339),
		Destinations: destinations,
	}

	utils.WriteAndLogResponse(c, tripDto, http.StatusOK)
}

// DeleteTrip removes one of the caller's trips. Attachments go with it via
// the cascade on trip_destinations.
func (handler *TripHandler) DeleteTrip(c *gin.Context) {
	tripId, err := parseTripId(c)
	if err != nil {
		return
	}
	userId := c.Value(utils.UserIdKey.String()).(string)

	tx := utils.BeginTransaction(c, handler.DatabaseManager.GetPool())
	if tx == nil {
		return
	}
	defer func() { utils.RollbackTransaction(c, tx, err) }()

	queryString := "DELETE FROM travel_schema.trips WHERE trip_id = $1 AND user_id = $2"
	commandTag, err := tx.Exec(c, queryString, tripId, userId)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}
	if commandTag.RowsAffected() == 0 {
		err = errTripNotFound
		utils.WriteAndLogError(c, schemas.TripNotFound, http.StatusNotFound, err)
		return
	}

	if err = utils.CommitTransaction(c, tx); err != nil {
		return
	}

	c.Status(http.StatusNoContent)
}

// ReorderTrip replaces the trip's attachments with the supplied list. The
// whole swap runs in one transaction, so readers never observe a half-empty
// itinerary. An empty list clears the itinerary.
func (handler *TripHandler) ReorderTrip(c *gin.Context) {
	reorderRequest := c.Value(utils.SanitizedPayloadKey.String()).(*schemas.ReorderTripRequest)
	tripId, err := parseTripId(c)
	if err != nil {
		return
	}
	userId := c.Value(utils.UserIdKey.String()).(string)

	tx := utils.BeginTransaction(c, handler.DatabaseManager.GetPool())
	if tx == nil {
		return
	}
	defer func() { utils.RollbackTransaction(c, tx, err) }()

	var title, description string
	var startDate, endDate, createdAt time.Time
	var isPublic bool
	queryString := `SELECT title, description, start_date, end_date, is_public, created_at
		FROM travel_schema.trips WHERE trip_id = $1 AND user_id = $2`
	row := tx.QueryRow(c, queryString, tripId, userId)
	if err = row.Scan(&title, &description, &startDate, &endDate, &isPublic, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteAndLogError(c, schemas.TripNotFound, http.StatusNotFound, err)
			return
		}
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	queryString = "DELETE FROM travel_schema.trip_destinations WHERE trip_id = $1"
	if _, err = tx.Exec(c, queryString, tripId); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if err = insertTripDestinations(c, tx, tripId, reorderRequest.Destinations); err != nil {
		return
	}

	if err = utils.CommitTransaction(c, tx); err != nil {
		return
	}

	tripDto := &schemas.TripDTO{
		TripID:       tripId.String(),
		Title:        title,
		Description:  description,
		StartDate:    startDate.Format(tripDateLayout),
		EndDate:      endDate.Format(tripDateLayout),
		IsPublic:     isPublic,
		CreatedAt:    createdAt.Format(time.RFC3339),
		Destinations: attachmentDTOs(reorderRequest.Destinations),
	}

	utils.WriteAndLogResponse(c, tripDto, http.StatusOK)
}

// parseTripId reads the trip id path parameter. A malformed id reads as a
// missing trip.
func parseTripId(c *gin.Context) (uuid.UUID, error) {
	tripId, err := uuid.Parse(c.Param(utils.TripIdKey))
	if err != nil {
		utils.WriteAndLogError(c, schemas.TripNotFound, http.StatusNotFound, err)
		return uuid.Nil, err
	}
	return tripId, nil
}

// checkDestinationsExist verifies every referenced destination id. On a miss
// it writes a not-found error naming the first missing id and returns a
// non-nil error so the caller rolls back.
func checkDestinationsExist(c *gin.Context, tx pgx.Tx, attachments []schemas.TripDestinationRequest) error {
	if len(attachments) == 0 {
		return nil
	}

	wanted := make([]uuid.UUID, 0, len(attachments))
	seen := make(map[string]bool, len(attachments))
	for _, attachment := range attachments {
		if !seen[attachment.DestinationID] {
			seen[attachment.DestinationID] = true
			wanted = append(wanted, uuid.MustParse(attachment.DestinationID))
		}
	}

	queryString := "SELECT destination_id FROM travel_schema.destinations WHERE destination_id = ANY($1)"
	rows, err := tx.Query(c, queryString, wanted)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return err
	}
	defer rows.Close()

	found := make(map[string]bool, len(wanted))
	for rows.Next() {
		var destinationId uuid.UUID
		if err := rows.Scan(&destinationId); err != nil {
			utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
			return err
		}
		found[destinationId.String()] = true
	}

	for _, destinationId := range wanted {
		if !found[destinationId.String()] {
			notFound := &schemas.CustomError{
				Code:    schemas.DestinationNotFound.Code,
				Message: fmt.Sprintf("Destination %s not found.", destinationId),
			}
			utils.WriteAndLogError(c, notFound, http.StatusNotFound, errDestinationNotFound)
			return errDestinationNotFound
		}
	}

	return nil
}

// insertTripDestinations stores the attachments verbatim. Gaps and duplicate
// day/order pairs are preserved.
func insertTripDestinations(c *gin.Context, tx pgx.Tx, tripId uuid.UUID, attachments []schemas.TripDestinationRequest) error {
	queryString := `INSERT INTO travel_schema.trip_destinations
		(trip_destination_id, trip_id, destination_id, day_number, order_index, notes, start_time, duration_minutes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	for _, attachment := range attachments {
		var startTime *string
		if attachment.StartTime != "" {
			startTime = &attachment.StartTime
		}
		if _, err := tx.Exec(c, queryString, uuid.New(), tripId, attachment.DestinationID,
			attachment.DayNumber, attachment.Order, attachment.Notes, startTime,
			attachment.DurationMinutes); err != nil {
			utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
			return err
		}
	}

	return nil
}

// attachmentSource is satisfied by both the pool and an open transaction.
type attachmentSource interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

// fetchAttachments loads the attachments for the given trips, keyed by trip
// id and sorted by day then order. Passing an open transaction lets callers
// read their own uncommitted writes.
func fetchAttachments(c *gin.Context, src attachmentSource, tripIds []uuid.UUID) (map[string][]schemas.TripDestinationDTO, error) {
	queryString := `SELECT trip_id, destination_id, day_number, order_index, notes, start_time, duration_minutes
		FROM travel_schema.trip_destinations WHERE trip_id = ANY($1)`
	rows, err := src.Query(c, queryString, tripIds)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attachments := make(map[string][]schemas.TripDestinationDTO)
	for rows.Next() {
		var tripId, destinationId uuid.UUID
		attachment := schemas.TripDestinationDTO{}
		if err := rows.Scan(&tripId, &destinationId, &attachment.DayNumber, &attachment.Order,
			&attachment.Notes, &attachment.StartTime, &attachment.DurationMinutes); err != nil {
			return nil, err
		}
		attachment.DestinationID = destinationId.String()
		key := tripId.String()
		attachments[key] = append(attachments[key], attachment)
	}

	for key := range attachments {
		sortTripDestinations(attachments[key])
	}

	return attachments, nil
}

// attachmentDTOs converts request attachments to response DTOs, sorted by day
// then order. The sort is stable, so attachments sharing a day/order pair
// keep their request order.
func attachmentDTOs(attachments []schemas.TripDestinationRequest) []schemas.TripDestinationDTO {
	dtos := make([]schemas.TripDestinationDTO, 0, len(attachments))
	for _, attachment := range attachments {
		dto := schemas.TripDestinationDTO{
			DestinationID:   attachment.DestinationID,
			DayNumber:       attachment.DayNumber,
			Order:           attachment.Order,
			Notes:           attachment.Notes,
			DurationMinutes: attachment.DurationMinutes,
		}
		if attachment.StartTime != "" {
			startTime := attachment.StartTime
			dto.StartTime = &startTime
		}
		dtos = append(dtos, dto)
	}

	sortTripDestinations(dtos)
	return dtos
}

func sortTripDestinations(destinations []schemas.TripDestinationDTO) {
	sort.SliceStable(destinations, func(i, j int) bool {
		if destinations[i].DayNumber != destinations[j].DayNumber {
			return destinations[i].DayNumber < destinations[j].DayNumber
		}
		return destinations[i].Order < destinations[j].Order
	})
}

func scanTrip(row rowScanner) (*schemas.TripDTO, uuid.UUID, error) {
	trip := &schemas.TripDTO{}
	var tripId uuid.UUID
	var startDate, endDate, createdAt time.Time
	if err := row.Scan(&tripId, &trip.Title, &trip.Description, &startDate, &endDate,
		&trip.IsPublic, &createdAt); err != nil {
		return nil, uuid.Nil, err
	}

	trip.TripID = tripId.String()
	trip.StartDate = startDate.Format(tripDateLayout)
	trip.EndDate = endDate.Format(tripDateLayout)
	trip.CreatedAt = createdAt.Format(time.RFC3339)
	trip.Destinations = []schemas.TripDestinationDTO{}

	return trip, tripId, nil
}
