package shared

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// MaxBodyBytes bounds the size of request bodies.
const MaxBodyBytes = 1 << 20

// Validate is the shared validator instance for request payloads.
var Validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeJSON decodes the request body into v. Unknown fields and trailing
// data are rejected.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

// ValidateRequest validates v, preferring its own Validate method when it has one.
func ValidateRequest(v any) error {
	if custom, ok := v.(interface{ Validate() error }); ok {
		if err := Validate.Struct(v); err != nil {
			return err
		}
		return custom.Validate()
	}
	return Validate.Struct(v)
}
