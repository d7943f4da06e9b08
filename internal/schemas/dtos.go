package schemas

// ErrorDTO wraps a CustomError for the response body.
type ErrorDTO struct {
	Error CustomError `json:"error"`
}

// MessageDTO is the generic acknowledgment payload used by the auth flows.
type MessageDTO struct {
	Message string `json:"message"`
}

// MetadataDTO describes the API on the root route.
type MetadataDTO struct {
	ApiVersion string `json:"apiVersion"`
	ApiName    string `json:"apiName"`
}

// UserDTO is the public representation of a user.
type UserDTO struct {
	UserID          string  `json:"user_id"`
	Email           string  `json:"email"`
	Username        string  `json:"username"`
	FullName        string  `json:"full_name"`
	IsActive        bool    `json:"is_active"`
	IsSuperuser     bool    `json:"is_superuser"`
	EmailVerifiedAt *string `json:"email_verified_at"`
	LastLogin       *string `json:"last_login"`
}

// TokenDTO is the login response. There is no refresh token; a bearer token
// stays valid until its natural expiry.
type TokenDTO struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// DestinationDTO is the public representation of a destination.
type DestinationDTO struct {
	DestinationID    string   `json:"destination_id"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
	FormattedAddress string   `json:"formatted_address"`
	PlaceID          *string  `json:"place_id"`
	Rating           *float64 `json:"rating"`
	UserRatingsTotal *int     `json:"user_ratings_total"`
	PriceLevel       *int     `json:"price_level"`
	Website          *string  `json:"website"`
	Phone            *string  `json:"phone"`
	Photos           []string `json:"photos"`
	Activities       []string `json:"activities"`
	Country          string   `json:"country"`
	City             string   `json:"city"`
	ImageURL         string   `json:"image_url"`
}

// TripDestinationDTO is one ordered attachment within a trip response.
type TripDestinationDTO struct {
	DestinationID   string  `json:"destination_id"`
	DayNumber       int     `json:"day_number"`
	Order           int     `json:"order"`
	Notes           string  `json:"notes"`
	StartTime       *string `json:"start_time"`
	DurationMinutes *int    `json:"duration_minutes"`
}

// TripDTO is the public representation of a trip together with its ordered
// destination attachments (day_number ascending, order ascending).
type TripDTO struct {
	TripID       string               `json:"trip_id"`
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	StartDate    string               `json:"start_date"`
	EndDate      string               `json:"end_date"`
	IsPublic     bool                 `json:"is_public"`
	CreatedAt    string               `json:"created_at"`
	Destinations []TripDestinationDTO `json:"destinations"`
}

// ReviewDTO is the public representation of a review.
type ReviewDTO struct {
	ReviewID      string `json:"review_id"`
	UserID        string `json:"user_id"`
	DestinationID string `json:"destination_id"`
	Rating        int    `json:"rating"`
	Comment       string `json:"comment"`
	CreatedAt     string `json:"created_at"`
}

// CoordinatesDTO is a latitude/longitude pair.
type CoordinatesDTO struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PlaceSummaryDTO is one result of the external place search.
type PlaceSummaryDTO struct {
	PlaceID          string         `json:"place_id"`
	Name             string         `json:"name"`
	FormattedAddress string         `json:"formatted_address"`
	Coordinates      CoordinatesDTO `json:"coordinates"`
	Types            []string       `json:"types"`
	PhotoReference   *string        `json:"photo_reference"`
	Rating           *float64       `json:"rating"`
	UserRatingsTotal *int           `json:"user_ratings_total"`
}

// PlaceDetailsDTO is the full external place record, photos resolved to URLs
// (at most five).
type PlaceDetailsDTO struct {
	PlaceID          string         `json:"place_id"`
	Name             string         `json:"name"`
	FormattedAddress string         `json:"formatted_address"`
	Coordinates      CoordinatesDTO `json:"coordinates"`
	Types            []string       `json:"types"`
	Photos           []string       `json:"photos"`
	Rating           *float64       `json:"rating"`
	UserRatingsTotal *int           `json:"user_ratings_total"`
	Website          *string        `json:"website"`
	Phone            *string        `json:"phone"`
	OpeningHours     []string       `json:"opening_hours"`
	PriceLevel       *int           `json:"price_level"`
}

// MapMarkerDTO is one pin for the map interface.
type MapMarkerDTO struct {
	Lat     float64  `json:"lat"`
	Lng     float64  `json:"lng"`
	Title   string   `json:"title"`
	PlaceID string   `json:"place_id"`
	Rating  *float64 `json:"rating"`
	Icon    string   `json:"icon"`
}

// ContactResponseDTO is the fixed success payload of the contact form.
type ContactResponseDTO struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// LocaleDTO describes one supported localization.
type LocaleDTO struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	NativeName string `json:"native_name"`
}
