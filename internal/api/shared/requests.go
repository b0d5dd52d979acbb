package shared

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// DecodeJSON reads the request body into v.
func DecodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// ValidateRequest checks v against its validator struct tags. A type with
// its own Validate method is validated by that instead.
func ValidateRequest(v interface{}) error {
	if custom, ok := v.(interface{ Validate() error }); ok {
		return custom.Validate()
	}
	return validate.Struct(v)
}
