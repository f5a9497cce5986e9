package market

import "errors"

var (
	// ErrConnection means the exchange could not be reached or refused the credentials.
	ErrConnection = errors.New("connection error")

	// ErrDataUnavailable means the exchange answered with malformed or empty
	// data, or rejected the symbol/timeframe.
	ErrDataUnavailable = errors.New("data unavailable")

	// ErrInsufficientHistory means an empty series reached the indicator stage.
	ErrInsufficientHistory = errors.New("insufficient history")

	// ErrInvalidRequest means a symbol, timeframe or limit failed boundary validation.
	ErrInvalidRequest = errors.New("invalid request")
)
