package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-microblog-api/internal/domain"
)

func asAppError(t *testing.T, err error) *Error {
	t.Helper()
	var ae *Error
	require.ErrorAs(t, err, &ae)
	return ae
}

func TestFromStorage_UniqueViolation(t *testing.T) {
	err := FromStorage(zap.NewNop(), "User", &domain.StorageError{
		Code:   domain.StorageUniqueViolation,
		Fields: []string{"email"},
	})

	ae := asAppError(t, err)
	assert.Equal(t, KindMutation, ae.Kind)
	assert.Equal(t, 400, ae.Status())
	assert.False(t, ae.ForeignKey())
	assert.Equal(t, "User cannot be created with given input data.", ae.Message)
	require.Len(t, ae.Entries, 1)
	assert.Equal(t, "User input contains duplicate identifiers.", ae.Entries[0].Msg)
	assert.Equal(t, "email", ae.Entries[0].Value)
}

func TestFromStorage_UniqueViolationUnknownField(t *testing.T) {
	err := FromStorage(zap.NewNop(), "User", &domain.StorageError{
		Code: domain.StorageUniqueViolation,
	})

	ae := asAppError(t, err)
	require.Len(t, ae.Entries, 1)
	assert.Equal(t, "Unknown field(s)", ae.Entries[0].Value)
}

func TestFromStorage_ForeignKeyViolation(t *testing.T) {
	err := FromStorage(zap.NewNop(), "Post", &domain.StorageError{
		Code:   domain.StorageForeignKeyViolation,
		Fields: []string{"user_id"},
	})

	ae := asAppError(t, err)
	assert.Equal(t, KindMutation, ae.Kind)
	assert.True(t, ae.ForeignKey())
	assert.Equal(t, 403, ae.Status())
	require.Len(t, ae.Entries, 1)
	assert.Equal(t, "User is not authorized to perform this action.", ae.Entries[0].Msg)
	assert.Equal(t, "userId", ae.Entries[0].Value)
}

func TestFromStorage_NotFound(t *testing.T) {
	for _, entity := range []string{"User", "Post"} {
		t.Run(entity, func(t *testing.T) {
			err := FromStorage(zap.NewNop(), entity, &domain.StorageError{
				Code: domain.StorageNotFound,
			})

			ae := asAppError(t, err)
			assert.Equal(t, KindNotFound, ae.Kind)
			assert.Equal(t, 404, ae.Status())
			require.Len(t, ae.Entries, 1)
			assert.Equal(t, fmt.Sprintf("%s does not exist.", entity), ae.Entries[0].Msg)
		})
	}
}

func TestFromStorage_UnclassifiedPassesThrough(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := FromStorage(zap.NewNop(), "User", cause)
	assert.ErrorIs(t, err, cause)

	var ae *Error
	assert.False(t, errors.As(err, &ae))
}

func TestErrorStatus(t *testing.T) {
	assert.Equal(t, 400, Validation("bad input", nil).Status())
	assert.Equal(t, 400, Mutation("conflict", nil).Status())
	assert.Equal(t, 404, NotFound("gone", nil).Status())
}
