package errmsg

import "net/http"

var (
	EventStoreNotConfigured = NewStatusError(
		http.StatusServiceUnavailable,
		"event store is not configured",
	)
)
