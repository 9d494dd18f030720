package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-microblog-api/internal/apperr"
)

func TestDecodeUser(t *testing.T) {
	in, err := DecodeUser(map[string]any{
		"fullName":    "  John Doe  ",
		"email":       "john.doe@email.com",
		"dateOfBirth": "1970-01-01",
	})
	require.NoError(t, err)

	require.NotNil(t, in.FullName)
	assert.Equal(t, "John Doe", *in.FullName)
	assert.Nil(t, in.Username)
	require.NotNil(t, in.DateOfBirth)
	assert.Equal(t, time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC), *in.DateOfBirth)

	cols := in.Columns()
	assert.Equal(t, "John Doe", cols["full_name"])
	assert.Equal(t, "john.doe@email.com", cols["email"])
	assert.NotContains(t, cols, "username")
}

func TestDecodeUser_BadValue(t *testing.T) {
	_, err := DecodeUser(map[string]any{"fullName": 7.0})
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	require.Len(t, ae.Entries, 1)
	assert.Equal(t, "Invalid value for input: fullName", ae.Entries[0].Msg)
}

func TestDecodePost_UserIDBeyondIntRange(t *testing.T) {
	_, err := DecodePost(map[string]any{"userId": 1e30})
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	require.Len(t, ae.Entries, 1)
	assert.Equal(t, "Invalid value for input: userId", ae.Entries[0].Msg)
}

func TestDecodePost(t *testing.T) {
	in, err := DecodePost(map[string]any{
		"userId": 3.0,
		"title":  "Happy",
	})
	require.NoError(t, err)

	require.NotNil(t, in.UserID)
	assert.Equal(t, 3, *in.UserID)
	assert.Nil(t, in.Description)

	// userId is a match condition, never an updatable column.
	cols := in.Columns()
	assert.Equal(t, map[string]any{"title": "Happy"}, cols)
}
