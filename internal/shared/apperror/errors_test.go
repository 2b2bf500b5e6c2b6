package apperror

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", New(KindNotFound, "X001", "gone"))
	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.True(t, Is(wrapped, KindNotFound))

	// Anything unclassified is a storage failure.
	assert.Equal(t, KindStorageUnavailable, KindOf(errors.New("boom")))
	assert.False(t, Is(nil, KindStorageUnavailable))
}

func TestStorage_KeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Storage(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Service temporarily unavailable", err.Message)
}

func TestHTTPStatus(t *testing.T) {
	tests := map[Kind]int{
		KindMissingField:       http.StatusBadRequest,
		KindInvalidRating:      http.StatusBadRequest,
		KindCommentTooLong:     http.StatusBadRequest,
		KindNotFound:           http.StatusNotFound,
		KindRateLimited:        http.StatusTooManyRequests,
		KindForbidden:          http.StatusForbidden,
		KindStorageUnavailable: http.StatusServiceUnavailable,
	}
	for kind, status := range tests {
		assert.Equal(t, status, HTTPStatus(kind), kind)
	}
}

func TestFromValidation_Priority(t *testing.T) {
	tests := []struct {
		name string
		errs validation.Errors
		want Kind
	}{
		{
			name: "missing beats rating and length",
			errs: validation.Errors{
				"reviewer_name": ErrRuleRequired,
				"rating":        ErrRuleRating,
				"comment":       TooLong("too long"),
			},
			want: KindMissingField,
		},
		{
			name: "rating beats length",
			errs: validation.Errors{
				"rating":  ErrRuleRating,
				"comment": TooLong("too long"),
			},
			want: KindInvalidRating,
		},
		{
			name: "length only",
			errs: validation.Errors{"comment": TooLong("too long")},
			want: KindCommentTooLong,
		},
		{
			name: "plain error counts as missing",
			errs: validation.Errors{"post_id": errors.New("bad")},
			want: KindMissingField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromValidation(tt.errs)
			require.Error(t, err)
			assert.Equal(t, tt.want, KindOf(err))
		})
	}

	assert.NoError(t, FromValidation(nil))
}

func TestFromDecode(t *testing.T) {
	var target struct {
		Rating *int   `json:"rating"`
		Name   string `json:"reviewer_name"`
	}

	err := json.Unmarshal([]byte(`{"rating":4.5}`), &target)
	require.Error(t, err)
	assert.Equal(t, KindInvalidRating, FromDecode(err).Kind)

	err = json.Unmarshal([]byte(`{"reviewer_name":7}`), &target)
	require.Error(t, err)
	got := FromDecode(err)
	assert.Equal(t, KindMissingField, got.Kind)
	assert.Contains(t, got.Message, "reviewer_name")

	err = json.Unmarshal([]byte(`{"rating":`), &target)
	require.Error(t, err)
	assert.Equal(t, KindMissingField, FromDecode(err).Kind)
}
