package errmsg

import "net/http"

// Push webhook StatusError helpers surfaced by the hook handler.
var (
	HookInvalidPayload = NewStatusError(
		http.StatusBadRequest,
		"invalid push event payload",
	)
	TrackerUnavailable = NewStatusError(
		http.StatusBadGateway,
		"issue tracker unreachable",
	)
)
