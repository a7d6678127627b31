package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError describes one rejected request field by its JSON name.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}

	return strings.Join(msgs, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

// Decode reads a JSON body into dst and validates it. Failures are FieldErrors
// for rule violations and plain errors for malformed JSON.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}

	return Validate(dst)
}

func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return translate(validationErrs)
	}

	return err
}

func translate(errs validator.ValidationErrors) FieldErrors {
	fieldErrs := make(FieldErrors, 0, len(errs))

	for _, err := range errs {
		var message string

		switch err.Tag() {
		case "required":
			message = "is required"
		case "max":
			message = fmt.Sprintf("must be at most %s characters long", err.Param())
		case "len":
			message = fmt.Sprintf("must have length %s", err.Param())
		case "oneof":
			message = fmt.Sprintf("must be one of: %s", err.Param())
		default:
			message = fmt.Sprintf("failed on %s", err.Tag())
		}

		fieldErrs = append(fieldErrs, FieldError{Field: err.Field(), Message: message})
	}

	return fieldErrs
}

type errorResponse struct {
	Error  string       `json:"error"`
	Fields []FieldError `json:"fields,omitempty"`
}

// BadRequest writes err as a 400 JSON body, listing field errors when present.
func BadRequest(w http.ResponseWriter, err error) {
	resp := errorResponse{Error: err.Error()}

	var fieldErrs FieldErrors
	if errors.As(err, &fieldErrs) {
		resp.Error = "invalid request"
		resp.Fields = fieldErrs
	}

	JSON(w, http.StatusBadRequest, resp)
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
