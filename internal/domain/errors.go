package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCity is returned before any request is made
	ErrEmptyCity = errors.New("weather: city name is empty")
	// ErrNotFound means the upstream service has no match for the city
	ErrNotFound = errors.New("weather: city not found")
	// ErrUnauthorized means the API key is missing or invalid
	ErrUnauthorized = errors.New("weather: invalid api key")
	// ErrNetwork means no response was received at all
	ErrNetwork = errors.New("weather: network failure")
)

// UpstreamError is any other non-2xx answer from the weather API.
// Message is the upstream-provided text and may be empty.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("weather: upstream returned status %d", e.Status)
	}
	return fmt.Sprintf("weather: upstream returned status %d: %s", e.Status, e.Message)
}

// ErrorKind names a failure class for logs and the lookup journal
type ErrorKind string

const (
	KindNone          ErrorKind = ""
	KindEmptyCity     ErrorKind = "empty_city"
	KindNotFound      ErrorKind = "not_found"
	KindUnauthorized  ErrorKind = "unauthorized"
	KindUpstreamError ErrorKind = "upstream_error"
	KindNetworkError  ErrorKind = "network_error"
)

// KindOf classifies err. Unknown errors are treated as network failures,
// since they mean no usable response was obtained.
func KindOf(err error) ErrorKind {
	var upstream *UpstreamError
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrEmptyCity):
		return KindEmptyCity
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.As(err, &upstream):
		return KindUpstreamError
	default:
		return KindNetworkError
	}
}

func upstreamMessage(err error) string {
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return upstream.Message
	}
	return ""
}
