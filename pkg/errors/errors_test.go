package errors_test

import (
	"errors"
	"testing"

	pkgerrors "github.com/agentstation/refselect/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{
			Resource: "list",
			ID:       "3ab4d2c6-1111-4222-8333-444455556666",
		}
		assert.Equal(t, "list with ID 3ab4d2c6-1111-4222-8333-444455556666 not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("list item", "x1")
		wrapped := errors.Join(errors.New("failed"), base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := pkgerrors.NewValidationError("labels", nil, "A reference can have only one prefLabel per language")
		assert.Equal(t, "validation failed for field labels: A reference can have only one prefLabel per language", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "bad value"}
		assert.Equal(t, "validation failed: bad value", err.Error())
	})
}

func TestUnresolvedSelectionError(t *testing.T) {
	err := pkgerrors.NewUnresolvedSelectionError("a", "b")
	assert.Equal(t, "unresolved selection ids: a, b", err.Error())
	assert.True(t, pkgerrors.IsUnresolved(err))
	assert.False(t, pkgerrors.IsNotFound(err))
}

func TestAPIError(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		unavailable bool
		notFound    bool
	}{
		{name: "server error", status: 503, unavailable: true},
		{name: "not found", status: 404, notFound: true},
		{name: "bad request", status: 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pkgerrors.NewAPIError("controlled-lists", tt.status, "boom")
			assert.Contains(t, err.Error(), "controlled-lists")
			assert.Equal(t, tt.unavailable, pkgerrors.IsUnavailable(err))
			assert.Equal(t, tt.notFound, pkgerrors.IsNotFound(err))
		})
	}

	t.Run("without status", func(t *testing.T) {
		err := &pkgerrors.APIError{Service: "svc", Message: "down"}
		assert.Equal(t, "API error from svc: down", err.Error())
	})
}

func TestConfigError(t *testing.T) {
	cause := errors.New("not a uuid")
	err := pkgerrors.NewConfigError("widget", "controlledList is invalid", cause)
	assert.Equal(t, "configuration error in widget: controlledList is invalid", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.True(t, pkgerrors.IsValidationError(err))
}

func TestParseError(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := pkgerrors.WrapParse("json", "value.json", cause)
	require.Error(t, err)
	assert.Equal(t, "parse error in json file value.json: unexpected EOF", err.Error())
	assert.ErrorIs(t, err, cause)

	noFile := pkgerrors.NewParseError("yaml", "", "bad indent", nil)
	assert.Equal(t, "yaml parse error: bad indent", noFile.Error())
}

func TestWrapHelpers(t *testing.T) {
	t.Run("nil passthrough", func(t *testing.T) {
		assert.NoError(t, pkgerrors.WrapValidation("f", nil))
		assert.NoError(t, pkgerrors.WrapIO("read", "p", nil))
		assert.NoError(t, pkgerrors.WrapResource("fetch", "list", "id", nil))
		assert.NoError(t, pkgerrors.WrapParse("json", "", nil))
		assert.NoError(t, pkgerrors.WrapAPI("svc", 500, nil))
	})

	t.Run("wrapping", func(t *testing.T) {
		cause := errors.New("cause")

		ioErr := pkgerrors.WrapIO("read", "/tmp/x", cause)
		assert.Equal(t, "IO error during read of /tmp/x: cause", ioErr.Error())

		resErr := pkgerrors.WrapResource("fetch", "list", "L1", cause)
		assert.Equal(t, "failed to fetch list L1: cause", resErr.Error())
		assert.ErrorIs(t, resErr, cause)

		apiErr := pkgerrors.WrapAPI("svc", 502, cause)
		assert.True(t, pkgerrors.IsUnavailable(apiErr))
		assert.ErrorIs(t, apiErr, cause)

		valErr := pkgerrors.WrapValidation("uri", cause)
		assert.True(t, pkgerrors.IsValidationError(valErr))
	})
}
