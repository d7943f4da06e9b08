// Package schemas defines the data structures exchanged between the database,
// the handlers and the API surface.
package schemas

import (
	"time"

	"github.com/google/uuid"
)

// User represents a row in travel_schema.users.
type User struct {
	ID                *uuid.UUID `json:"id"`
	Email             string     `json:"email"`
	Username          string     `json:"username"`
	Password          string     `json:"password"` // bcrypt hash
	FullName          string     `json:"full_name"`
	IsActive          bool       `json:"is_active"`
	IsSuperuser       bool       `json:"is_superuser"`
	VerificationToken *string    `json:"verification_token"`
	EmailVerifiedAt   *time.Time `json:"email_verified_at"`
	ResetToken        *string    `json:"reset_token"`
	ResetTokenExpires *time.Time `json:"reset_token_expires"`
	LastLogin         *time.Time `json:"last_login"`
	PasswordChangedAt *time.Time `json:"password_changed_at"`
	CreatedAt         *time.Time `json:"created_at"`
}

// Destination represents a row in travel_schema.destinations. A destination is
// either created directly by an administrator or materialized from a Google
// place on first lookup; place_id carries the external identifier in the
// latter case and is never re-fetched afterwards.
type Destination struct {
	ID               *uuid.UUID `json:"id"`
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	Latitude         *float64   `json:"latitude"`
	Longitude        *float64   `json:"longitude"`
	FormattedAddress string     `json:"formatted_address"`
	PlaceID          *string    `json:"place_id"`
	Rating           *float64   `json:"rating"`
	UserRatingsTotal *int       `json:"user_ratings_total"`
	PriceLevel       *int       `json:"price_level"`
	Website          *string    `json:"website"`
	Phone            *string    `json:"phone"`
	Photos           []string   `json:"photos"`
	Activities       []string   `json:"activities"`
	Country          string     `json:"country"`
	City             string     `json:"city"`
	ImageURL         string     `json:"image_url"`
	CreatedAt        *time.Time `json:"created_at"`
}

// Trip represents a row in travel_schema.trips. A trip exclusively owns its
// trip_destinations rows (cascade delete).
type Trip struct {
	ID          *uuid.UUID `json:"id"`
	UserID      *uuid.UUID `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     time.Time  `json:"end_date"`
	IsPublic    bool       `json:"is_public"`
	CreatedAt   *time.Time `json:"created_at"`
}

// TripDestination attaches one destination to one trip. day_number and
// order_index form the two-level sort key; values are stored verbatim, gaps
// and duplicates included.
type TripDestination struct {
	ID              *uuid.UUID `json:"id"`
	TripID          *uuid.UUID `json:"trip_id"`
	DestinationID   *uuid.UUID `json:"destination_id"`
	DayNumber       int        `json:"day_number"`
	OrderIndex      int        `json:"order_index"`
	Notes           string     `json:"notes"`
	StartTime       *string    `json:"start_time"`
	DurationMinutes *int       `json:"duration_minutes"`
}

// Review represents a row in travel_schema.reviews.
type Review struct {
	ID            *uuid.UUID `json:"id"`
	UserID        *uuid.UUID `json:"user_id"`
	DestinationID *uuid.UUID `json:"destination_id"`
	Rating        int        `json:"rating"`
	Comment       string     `json:"comment"`
	CreatedAt     *time.Time `json:"created_at"`
}
