package schemas

// CustomError is the wire format for every error the API returns.
type CustomError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var (
	BadRequest          = &CustomError{"ERR-001", "The request body is invalid. Please check the request body and try again."}
	UsernameTaken       = &CustomError{"ERR-002", "The username is already taken. Please try another username."}
	EmailTaken          = &CustomError{"ERR-003", "The user with this email already exists in the system."}
	UserNotFound        = &CustomError{"ERR-004", "The user was not found."}
	InvalidToken        = &CustomError{"ERR-005", "Invalid verification token."}
	InvalidCredentials  = &CustomError{"ERR-006", "Incorrect email or password."}
	UserNotActivated    = &CustomError{"ERR-007", "Please verify your email before logging in."}
	UserInactive        = &CustomError{"ERR-008", "Inactive user."}
	InvalidResetToken   = &CustomError{"ERR-009", "Invalid or expired reset token."}
	IncorrectPassword   = &CustomError{"ERR-010", "Incorrect password."}
	DatabaseError       = &CustomError{"ERR-011", "A database error occurred. Please try again later."}
	InternalServerError = &CustomError{"ERR-012", "An internal server error occurred. Please try again later."}
	Unauthorized        = &CustomError{"ERR-014", "The request is unauthorized. Please login to your account."}
	Forbidden           = &CustomError{"ERR-015", "Not enough permissions."}
	DestinationNotFound = &CustomError{"ERR-016", "Destination not found."}
	TripNotFound        = &CustomError{"ERR-017", "Trip not found."}
	InvalidDateRange    = &CustomError{"ERR-018", "end_date must be on or after start_date."}
	UpstreamError       = &CustomError{"ERR-019", "Error connecting to location service."}
	PlaceNotFound       = &CustomError{"ERR-020", "Location not found."}
	LocaleNotFound      = &CustomError{"ERR-021", "The requested locale is not supported."}
)
