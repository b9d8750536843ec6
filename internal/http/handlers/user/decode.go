package user

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"usermanagement/internal/domain/common"
)

const invalidPayloadMessage = "Invalid JSON payload."

var jsonNull = []byte("null")

// decodeJSON reads exactly one non-null JSON value from the body into dst.
// Unknown fields are ignored.
func decodeJSON[T any](r *http.Request, dst *T) error {
	dec := json.NewDecoder(r.Body)

	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil || bytes.Equal(raw, jsonNull) {
		return common.NewInvalidArgument(invalidPayloadMessage)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return common.NewInvalidArgument(invalidPayloadMessage)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return common.NewInvalidArgument(invalidPayloadMessage)
	}
	return nil
}

// userID reads the {id} path segment. The route pattern guarantees digits,
// so a failure here means the value does not fit in int64.
func userID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
