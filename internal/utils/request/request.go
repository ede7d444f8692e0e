// Package request decodes JSON request bodies.
package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// ErrTrailingData is returned when a body holds more than one JSON value.
var ErrTrailingData = errors.New("unexpected data after JSON value")

// DecodeJSON decodes the body of r into v. An empty body is treated like
// "{}": v is left at its zero value and no error is returned, so every
// optional field stays null. Unknown fields are ignored. Anything but
// whitespace after the first value is an error.
func DecodeJSON(r *http.Request, v any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}

	dec := json.NewDecoder(r.Body)
	err := dec.Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}

	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return fmt.Errorf("invalid JSON body: %w", ErrTrailingData)
	}
	return nil
}

// ErrInvalidID is returned by PathID for non-integer ids.
var ErrInvalidID = errors.New("invalid id: must be an integer")

// PathID parses the {id} route parameter as an int64.
func PathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, ErrInvalidID
	}
	return id, nil
}
