// Package validation checks and sanitizes inbound identifiers and request
// payloads before they reach the store layer. Path ids are fail-closed: an
// invalid id is rejected outright. Payload schemas collect every violation
// rather than stopping at the first, and unknown body fields are dropped, not
// rejected.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/finchworks/tasks-backend/internal/domain"
)

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

// Pointer fields distinguish "absent" from "present with zero value", which
// matters for required checks and for the optional patch flag.
type createTaskPayload struct {
	Title *string `json:"title" validate:"required,min=1,max=255"`
}

type replaceTaskPayload struct {
	Title     *string `json:"title" validate:"required,min=1,max=255"`
	Completed *bool   `json:"completed" validate:"required"`
}

// ValidateID accepts only the canonical 36-character UUID v4 or v5 text.
// uuid.Parse alone would also take urn-prefixed, braced, and hyphenless
// forms; the length check keeps those out.
func ValidateID(raw string) (uuid.UUID, error) {
	if len(raw) != 36 {
		return uuid.Nil, domain.NewValidationError("id", "id must be a valid UUID")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.NewValidationError("id", "id must be a valid UUID")
	}
	if id.Variant() != uuid.RFC4122 || (id.Version() != 4 && id.Version() != 5) {
		return uuid.Nil, domain.NewValidationError("id", "id must be a version 4 or 5 UUID")
	}
	return id, nil
}

// ValidateCreate returns the trimmed title from a create body.
func ValidateCreate(body io.Reader) (string, error) {
	var p createTaskPayload
	if err := decodeBody(body, &p); err != nil {
		return "", err
	}
	trimTitle(&p.Title)
	if err := checkStruct(&p); err != nil {
		return "", err
	}
	return *p.Title, nil
}

// ValidateReplace requires both mutable fields of a replace body.
func ValidateReplace(body io.Reader) (string, bool, error) {
	var p replaceTaskPayload
	if err := decodeBody(body, &p); err != nil {
		return "", false, err
	}
	trimTitle(&p.Title)
	if err := checkStruct(&p); err != nil {
		return "", false, err
	}
	return *p.Title, *p.Completed, nil
}

// ValidatePatch reads the optional completed flag from a patch body. A nil
// result with no error means the flag was absent, which is the toggle signal.
// Absence means the key is missing, not present with null: the body is
// decoded as a raw map first so that "completed": null is rejected like any
// other non-boolean value instead of silently toggling.
func ValidatePatch(body io.Reader) (*bool, error) {
	var fields map[string]json.RawMessage
	if err := decodeBody(body, &fields); err != nil {
		return nil, err
	}
	raw, present := fields["completed"]
	if !present {
		return nil, nil
	}
	var completed *bool
	if err := json.Unmarshal(raw, &completed); err != nil || completed == nil {
		return nil, domain.NewValidationError("completed", "completed must be of type bool")
	}
	return completed, nil
}

func trimTitle(title **string) {
	if *title != nil {
		t := strings.TrimSpace(**title)
		*title = &t
	}
}

// decodeBody decodes JSON into dst. An empty body decodes to the zero payload
// so that required-field checks report it field by field; unknown fields are
// silently ignored. The body must hold exactly one JSON value: trailing
// content after it is as malformed as a syntax error.
func decodeBody(body io.Reader, dst any) error {
	dec := json.NewDecoder(body)
	err := dec.Decode(dst)
	if err == nil {
		if _, err := dec.Token(); !errors.Is(err, io.EOF) {
			return domain.NewValidationError("body", "request body must contain a single JSON value")
		}
		return nil
	}
	if errors.Is(err, io.EOF) {
		return nil
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return domain.NewValidationError("body", "request body contains badly-formed JSON")
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		expected := strings.TrimPrefix(typeErr.Type.String(), "*")
		return domain.NewValidationError(field, fmt.Sprintf("%s must be of type %s", field, expected))
	default:
		return domain.NewValidationError("body", "request body is invalid")
	}
}

func checkStruct(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	verr := &domain.ValidationError{Violations: make([]domain.FieldViolation, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		verr.Violations = append(verr.Violations, violationFor(fe))
	}
	return verr
}

func violationFor(fe validator.FieldError) domain.FieldViolation {
	path := fe.Field()
	var msg string
	switch fe.Tag() {
	case "required":
		msg = fmt.Sprintf("%s is required", path)
	case "min":
		msg = fmt.Sprintf("%s must not be empty", path)
	case "max":
		msg = fmt.Sprintf("%s must be at most %s characters long", path, fe.Param())
	default:
		msg = fmt.Sprintf("%s is invalid", path)
	}
	return domain.FieldViolation{Message: msg, Path: path}
}
