package osm

import (
	"errors"
	"fmt"
	"net"
	"net/http"
)

// TransientError marks an OSM failure that may clear up when the request is
// made again later: a rate-limit or server status, a client-side timeout, or
// an Overpass runtime remark on an otherwise successful response.
type TransientError struct {
	Service string
	// StatusCode is the HTTP status, 0 when the failure carried none.
	StatusCode int
	// Remark is the Overpass runtime remark, if any.
	Remark string
	Err    error
}

func (e *TransientError) Error() string {
	return e.Err.Error()
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// Reason is a short description for messages shown to the user.
func (e *TransientError) Reason() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("%s HTTP %d", e.Service, e.StatusCode)
	case e.Remark != "":
		return e.Service + " query ran out of time or memory"
	default:
		return e.Service + " request timed out"
	}
}

// AsTransient returns the TransientError in err's chain, or nil.
func AsTransient(err error) *TransientError {
	var te *TransientError
	if errors.As(err, &te) {
		return te
	}
	return nil
}

// IsTransient reports whether err carries a TransientError.
func IsTransient(err error) bool {
	return AsTransient(err) != nil
}

// isTransientStatus reports whether an HTTP status from Nominatim or
// Overpass indicates a temporary server-side condition. Overpass answers 429
// when its slot quota is exhausted and 504 when the dispatcher is overloaded.
func isTransientStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusRequestTimeout,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

// isTimeout reports whether a transport error is a client-side timeout.
func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
