package holidayapi

import "fmt"

// TransportError means the request never produced a readable response
type TransportError struct {
	Country string
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error for %s: %v", e.Country, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError means the API answered with a non-2xx status
type StatusError struct {
	Country    string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API returned status %d for %s: %s", e.StatusCode, e.Country, e.Message)
	}
	return fmt.Sprintf("API returned status %d for %s", e.StatusCode, e.Country)
}

// DecodeError means the body did not match the expected JSON shape
type DecodeError struct {
	Country string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode response for %s: %v", e.Country, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
