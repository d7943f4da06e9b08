package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"voyago/internal/managers"
	"voyago/internal/schemas"
	"voyago/internal/utils"
)

// ReviewHdl defines the interface for handling review requests.
type ReviewHdl interface {
	CreateReview(c *gin.Context)
	ListByDestination(c *gin.Context)
}

// ReviewHandler provides methods to handle review requests.
type ReviewHandler struct {
	DatabaseManager managers.DatabaseMgr
}

// NewReviewHandler returns a new ReviewHandler with the provided manager.
func NewReviewHandler(databaseManager *managers.DatabaseMgr) ReviewHdl {
	return &ReviewHandler{
		DatabaseManager: *databaseManager,
	}
}

// CreateReview stores a review for a destination. The destination is not
// pre-checked; a dangling reference hits the foreign key and surfaces as a
// storage error.
func (handler *ReviewHandler) CreateReview(c *gin.Context) {
	tx := utils.BeginTransaction(c, handler.DatabaseManager.GetPool())
	if tx == nil {
		return
	}
	var err error
	defer func() { utils.RollbackTransaction(c, tx, err) }()

	createRequest := c.Value(utils.SanitizedPayloadKey.String()).(*schemas.CreateReviewRequest)
	userId := c.Value(utils.UserIdKey.String()).(string)

	reviewId := uuid.New()
	createdAt := time.Now()

	queryString := `INSERT INTO travel_schema.reviews
		(review_id, user_id, destination_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err = tx.Exec(c, queryString, reviewId, userId, createRequest.DestinationID,
		createRequest.Rating, createRequest.Comment, createdAt); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if err = utils.CommitTransaction(c, tx); err != nil {
		return
	}

	reviewDto := &schemas.ReviewDTO{
		ReviewID:      reviewId.String(),
		UserID:        userId,
		DestinationID: createRequest.DestinationID,
		Rating:        createRequest.Rating,
		Comment:       createRequest.Comment,
		CreatedAt:     createdAt.Format(time.RFC3339),
	}

	utils.WriteAndLogResponse(c, reviewDto, http.StatusCreated)
}

// ListByDestination returns every review for the destination, newest first.
// The list is not paginated.
func (handler *ReviewHandler) ListByDestination(c *gin.Context) {
	destinationId, err := uuid.Parse(c.Param(utils.DestinationIdKey))
	if err != nil {
		utils.WriteAndLogError(c, schemas.DestinationNotFound, http.StatusNotFound, err)
		return
	}

	queryString := `SELECT review_id, user_id, destination_id, rating, comment, created_at
		FROM travel_schema.reviews WHERE destination_id = $1 ORDER BY created_at DESC`
	rows, err := handler.DatabaseManager.GetPool().Query(c, queryString, destinationId)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}
	defer rows.Close()

	reviews := make([]schemas.ReviewDTO, 0)
	for rows.Next() {
		var reviewId, userId, reviewDestinationId uuid.UUID
		var createdAt time.Time
		review := schemas.ReviewDTO{}
		if err := rows.Scan(&reviewId, &userId, &reviewDestinationId, &review.Rating,
			&review.Comment, &createdAt); err != nil {
			utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
			return
		}
		review.ReviewID = reviewId.String()
		review.UserID = userId.String()
		review.DestinationID = reviewDestinationId.String()
		review.CreatedAt = createdAt.Format(time.RFC3339)
		reviews = append(reviews, review)
	}

	utils.WriteAndLogResponse(c, reviews, http.StatusOK)
}
