package access

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-api/domain/models"
)

func TestAuthorize(t *testing.T) {
	owner := uuid.New()

	assert.NoError(t, Authorize(owner, owner))
	assert.ErrorIs(t, Authorize(uuid.New(), owner), models.ErrForbidden)
	assert.ErrorIs(t, Authorize(uuid.Nil, uuid.Nil), models.ErrForbidden)
}

func TestAuthorizeRaw(t *testing.T) {
	owner := uuid.New()

	got, err := AuthorizeRaw(owner, owner.String())
	require.NoError(t, err)
	assert.Equal(t, owner, got)

	_, err = AuthorizeRaw(owner, uuid.NewString())
	assert.ErrorIs(t, err, models.ErrForbidden)

	_, err = AuthorizeRaw(owner, "42")
	assert.ErrorIs(t, err, models.ErrForbidden)
}
