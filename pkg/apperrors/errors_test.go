package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("bad input")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("missing")))
	assert.Equal(t, KindAuthorization, KindOf(Authorization("nope")))
	assert.Equal(t, KindConflict, KindOf(Conflict("taken")))
	assert.Equal(t, KindDownstream, KindOf(Downstream("side effect", errors.New("boom"))))

	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
	assert.Equal(t, Kind(""), KindOf(nil))
}

func TestKindSurvivesWrapping(t *testing.T) {
	inner := Conflict("reservation %s was modified", "RSV-1")
	wrapped := fmt.Errorf("update reservation: %w", inner)

	assert.True(t, IsConflict(wrapped))
	assert.False(t, IsNotFound(wrapped))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(KindDownstream, "invoice generation failed", cause)

	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "invoice generation failed")
	assert.Contains(t, err.Error(), "connection refused")
}
