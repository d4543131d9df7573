package errors

import "net/http"

var (
	ErrProviderUnavailable = New(
		"PROVIDER_UNAVAILABLE",
		"Map provider runtime is not available",
		http.StatusServiceUnavailable,
	)

	ErrProviderNotReady = New(
		"PROVIDER_NOT_READY",
		"Map provider is still loading",
		http.StatusServiceUnavailable,
	)

	ErrEmptyGeodata = New(
		"EMPTY_GEODATA",
		"Itinerary has no items with coordinates",
		http.StatusOK,
	)

	ErrSearchFailed = New(
		"SEARCH_FAILED",
		"Place keyword search failed",
		http.StatusBadGateway,
	)

	ErrGeocodeFailed = New(
		"GEOCODE_FAILED",
		"Reverse geocoding failed",
		http.StatusBadGateway,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidDayNumber = New(
		"INVALID_DAY_NUMBER",
		"Day number must be a positive integer",
		http.StatusBadRequest,
	)

	ErrTripNotFound = New(
		"TRIP_NOT_FOUND",
		"Trip not found",
		http.StatusNotFound,
	)

	ErrScheduleNotFound = New(
		"SCHEDULE_NOT_FOUND",
		"Trip schedule not found",
		http.StatusNotFound,
	)

	ErrSurfaceNotFound = New(
		"SURFACE_NOT_FOUND",
		"No map surface exists for the container",
		http.StatusNotFound,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
