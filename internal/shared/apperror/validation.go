package apperror

import (
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Validation error codes shared by the request DTOs. The code decides which
// Kind a failed rule is reported as.
const (
	CodeRequired     = "missing_field"
	CodeInvalidRange = "invalid_rating"
	CodeTooLong      = "too_long"
)

var (
	ErrRuleRequired = validation.NewError(CodeRequired, "is required")
	ErrRuleRating   = validation.NewError(CodeInvalidRange, "must be between 1 and 5")
)

// TooLong builds a length rule error carrying CodeTooLong.
func TooLong(message string) validation.Error {
	return validation.NewError(CodeTooLong, message)
}

// FromValidation converts ozzo validation errors into a single *Error.
// Missing fields win over range errors, which win over length errors.
func FromValidation(err error) error {
	if err == nil {
		return nil
	}

	errs, ok := err.(validation.Errors)
	if !ok {
		return MissingField(err.Error())
	}

	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var missing, rating, tooLong []string
	for _, field := range fields {
		fieldErr := errs[field]
		msg := field + ": " + fieldErr.Error()

		code := CodeRequired
		if ve, ok := fieldErr.(validation.Error); ok {
			code = ve.Code()
		}

		switch code {
		case CodeInvalidRange:
			rating = append(rating, msg)
		case CodeTooLong:
			tooLong = append(tooLong, msg)
		default:
			missing = append(missing, msg)
		}
	}

	switch {
	case len(missing) > 0:
		return MissingField(strings.Join(missing, "; "))
	case len(rating) > 0:
		return InvalidRating(strings.Join(rating, "; "))
	default:
		return CommentTooLong(strings.Join(tooLong, "; "))
	}
}
