package market

import "context"

// Source fetches the most recent bars for a request.
//
// Implementations make exactly one upstream call per Fetch and return
// ErrConnection or ErrDataUnavailable (wrapped) on failure. Callers are
// expected to validate the request before calling Fetch.
type Source interface {
	Fetch(ctx context.Context, req Request) (Series, error)
}
