package shared

import (
	"encoding/json"
	"io"
	"net/http"
)

// MaxRequestBodyBytes bounds how much of a request body is read.
const MaxRequestBodyBytes = 1 << 20

// DecodeJSON decodes the request body into the given struct.
func DecodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(io.LimitReader(r.Body, MaxRequestBodyBytes)).Decode(v)
}

// DecodeJSONOrEmpty decodes the request body into v. A missing or malformed
// body leaves v as its zero value, so the caller's own field validation
// decides the response. It reports whether decoding succeeded.
func DecodeJSONOrEmpty[T any](r *http.Request, v *T) bool {
	if r.Body == nil {
		return false
	}
	if err := DecodeJSON(r, v); err != nil {
		var zero T
		*v = zero
		return false
	}
	return true
}
