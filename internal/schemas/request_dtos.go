// Package schemas defines the request structures for the API operations.
package schemas

// RegistrationRequest is the body of POST /auth/register.
// Username is required and must be less than 20 characters
// Email is required and must be a valid email
// Password is required and must be at least 8 characters
type RegistrationRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,max=20,username_validation"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"max=100"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// VerifyEmailRequest is the body of POST /auth/verify-email. The token must
// exactly match the one issued at registration.
type VerifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	Token string `json:"token" validate:"required"`
}

// ForgotPasswordRequest is the body of POST /auth/forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest is the body of POST /auth/reset-password.
type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// ChangePasswordRequest is the body of POST /auth/change-password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// CreateDestinationRequest is the body of POST /destinations (admin only).
type CreateDestinationRequest struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Description string   `json:"description" validate:"max=2000"`
	ImageURL    string   `json:"image_url" validate:"omitempty,url"`
	Latitude    *float64 `json:"latitude" validate:"omitempty,min=-90,max=90"`
	Longitude   *float64 `json:"longitude" validate:"omitempty,min=-180,max=180"`
	Country     string   `json:"country" validate:"required,max=100"`
	City        string   `json:"city" validate:"required,max=100"`
	Activities  []string `json:"activities" validate:"dive,max=100"`
}

// TripDestinationRequest is one attachment inside a trip create or reorder
// request. Order may be zero and day/order values are stored as supplied.
type TripDestinationRequest struct {
	DestinationID   string `json:"destination_id" validate:"required,uuid"`
	DayNumber       int    `json:"day_number" validate:"required,min=1"`
	Order           int    `json:"order" validate:"min=0"`
	Notes           string `json:"notes" validate:"max=500"`
	StartTime       string `json:"start_time" validate:"omitempty,datetime=15:04"`
	DurationMinutes *int   `json:"duration_minutes" validate:"omitempty,min=0"`
}

// CreateTripRequest is the body of POST /trips. Dates use YYYY-MM-DD and
// end_date must be on or after start_date.
type CreateTripRequest struct {
	Title        string                   `json:"title" validate:"required,max=100"`
	Description  string                   `json:"description" validate:"max=1000"`
	StartDate    string                   `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate      string                   `json:"end_date" validate:"required,datetime=2006-01-02"`
	IsPublic     bool                     `json:"is_public"`
	Destinations []TripDestinationRequest `json:"destinations" validate:"dive"`
}

// UpdateTripRequest is the body of PUT /trips/:tripId. Only supplied fields
// are applied.
type UpdateTripRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	StartDate   *string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate     *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	IsPublic    *bool   `json:"is_public"`
}

// ReorderTripRequest is the body of PUT /trips/:tripId/reorder. The supplied
// list fully replaces the trip's attachments; an empty list is allowed and
// leaves the trip without destinations.
type ReorderTripRequest struct {
	Destinations []TripDestinationRequest `json:"destinations" validate:"dive"`
}

// CreateReviewRequest is the body of POST /reviews. Rating is bounded 1..5.
type CreateReviewRequest struct {
	DestinationID string `json:"destination_id" validate:"required,uuid"`
	Rating        int    `json:"rating" validate:"required,min=1,max=5"`
	Comment       string `json:"comment" validate:"max=1000"`
}

// ContactRequest is the body of POST /contact.
type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=2000"`
}

// MapBoundsRequest is the body of POST /maps/markers.
type MapBoundsRequest struct {
	Latitude  float64 `json:"lat" validate:"min=-90,max=90"`
	Longitude float64 `json:"lng" validate:"min=-180,max=180"`
	Radius    int     `json:"radius" validate:"required,min=1,max=50000"`
}
