package errors

import "net/http"

var (
	ErrParkingNotFound = New(
		"PARKING_NOT_FOUND",
		"Parking not found",
		http.StatusNotFound,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRadius = New(
		"INVALID_RADIUS",
		"Invalid search radius value",
		http.StatusBadRequest,
	)

	ErrInvalidLimit = New(
		"INVALID_LIMIT",
		"Invalid limit value",
		http.StatusBadRequest,
	)

	ErrEmptyQuery = New(
		"EMPTY_QUERY",
		"Search query must not be empty",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrSyncInProgress = New(
		"SYNC_IN_PROGRESS",
		"Synchronization is already running",
		http.StatusConflict,
	)

	ErrSyncTimeout = New(
		"SYNC_TIMEOUT",
		"Synchronization timed out while fetching the external dataset",
		http.StatusGatewayTimeout,
	)

	ErrSyncSourceUnavailable = New(
		"SYNC_SOURCE_UNAVAILABLE",
		"External parking data source is unavailable",
		http.StatusBadGateway,
	)

	ErrSyncEmptyDataset = New(
		"SYNC_EMPTY_DATASET",
		"External source returned an empty dataset, reconciliation aborted",
		http.StatusBadGateway,
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

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
