package apperror

import (
	"encoding/json"
	"errors"
	"strconv"
)

// RatingField is the JSON name whose decode failures are rating errors.
const RatingField = "rating"

// FromDecode classifies a request decoding failure. A rating that is not a
// JSON integer in range of int (4.5, "5", 1e20) is InvalidRating; any other
// unreadable input is reported as a missing field.
func FromDecode(err error) *Error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		if typeErr.Field == RatingField {
			return InvalidRating("rating: must be an integer between 1 and 5")
		}
		field := typeErr.Field
		if field == "" {
			field = "request body"
		}
		return New(KindMissingField, "VAL004", field+": has the wrong type")
	}

	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return New(KindMissingField, "VAL004", "query: "+numErr.Num+" is not a number")
	}

	return New(KindMissingField, "VAL004", "Invalid request body")
}
