package utils

const (
	// DestinationIdKey is the key for destination ID used in routing parameters.
	DestinationIdKey = "destinationId"

	// TripIdKey is the key for trip ID used in routing parameters.
	TripIdKey = "tripId"

	// PlaceIdKey is the key for the external place ID used in routing parameters.
	PlaceIdKey = "placeId"

	// LocaleKey is the key for the locale code used in routing parameters.
	LocaleKey = "locale"

	// QueryParamKey is the key for the search query used in query parameters.
	QueryParamKey = "query"

	// LimitParamKey is the key for limit used in query parameters.
	LimitParamKey = "limit"

	// LanguageParamKey is the key for the result language used in query parameters.
	LanguageParamKey = "language"

	// StartDateParamKey is the key for the start-date filter used in query parameters.
	StartDateParamKey = "start_date"

	// EndDateParamKey is the key for the end-date filter used in query parameters.
	EndDateParamKey = "end_date"
)
