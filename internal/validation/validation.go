// Package validation checks request bodies in two phases: the action name
// against a resource's allow-list, then the full body against the typed
// request struct selected by that action.
//
// Rules live in `validate` struct tags and field names come from the json
// tags, so failures read like `"category_name" is required`. Only the first
// failure is reported.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/iliyamo/docdesk/internal/errs"
)

// InvalidBody is reported for payloads that are not a JSON object.
const InvalidBody = "Invalid request body"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Action runs phase one: body must carry a string "action" contained in
// allowed. Unknown fields are ignored.
func Action(body []byte, allowed []string) (string, error) {
	var probe struct {
		Action any `json:"action"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return "", decodeError(err)
	}
	switch a := probe.Action.(type) {
	case nil:
		return "", errs.InvalidRequest(`"action" is required`)
	case string:
		if a == "" {
			return "", errs.InvalidRequest(`"action" is not allowed to be empty`)
		}
		for _, name := range allowed {
			if a == name {
				return a, nil
			}
		}
		return "", errs.InvalidRequest(fmt.Sprintf(`"action" must be one of [%s]`, strings.Join(allowed, ", "))).WithCode(errs.CodeUnknownAction)
	default:
		return "", errs.InvalidRequest(`"action" must be a string`)
	}
}

// Bind runs phase two: it decodes body into dst, a pointer to a request
// struct, and applies its validate tags.
func Bind(body []byte, dst any) error {
	if err := json.Unmarshal(body, dst); err != nil {
		return decodeError(err)
	}
	return Struct(dst)
}

// Struct validates an already decoded request.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return errs.InvalidRequest(message(ve[0]))
	}
	return errs.InvalidRequest(err.Error())
}

func decodeError(err error) error {
	var te *json.UnmarshalTypeError
	if errors.As(err, &te) {
		field := te.Field
		if field == "" {
			field = "value"
		}
		return errs.InvalidRequest(fmt.Sprintf(`"%s" must be %s`, field, kindName(te.Type)))
	}
	var ie *json.InvalidUnmarshalError
	if errors.As(err, &ie) {
		return errs.ServerError()
	}
	var ve *errs.Error
	if errors.As(err, &ve) {
		return ve
	}
	return errs.InvalidRequest(InvalidBody)
}

func kindName(t reflect.Type) string {
	if t == nil {
		return "valid"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Slice, reflect.Array:
		return "an array"
	default:
		return "of type object"
	}
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf(`"%s" is required`, field)
	case "email":
		return fmt.Sprintf(`"%s" must be a valid email`, field)
	case "oneof":
		return fmt.Sprintf(`"%s" must be one of [%s]`, field, strings.Join(strings.Fields(fe.Param()), ", "))
	case "min":
		switch fe.Kind() {
		case reflect.String:
			if fe.Param() == "1" {
				return fmt.Sprintf(`"%s" is not allowed to be empty`, field)
			}
			return fmt.Sprintf(`"%s" length must be at least %s characters long`, field, fe.Param())
		case reflect.Slice, reflect.Array, reflect.Map:
			return fmt.Sprintf(`"%s" must contain at least %s items`, field, fe.Param())
		}
		return fmt.Sprintf(`"%s" must be greater than or equal to %s`, field, fe.Param())
	case "max":
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf(`"%s" length must be less than or equal to %s characters long`, field, fe.Param())
		case reflect.Slice, reflect.Array, reflect.Map:
			return fmt.Sprintf(`"%s" must contain less than or equal to %s items`, field, fe.Param())
		}
		return fmt.Sprintf(`"%s" must be less than or equal to %s`, field, fe.Param())
	}
	return fmt.Sprintf(`"%s" is invalid`, field)
}
