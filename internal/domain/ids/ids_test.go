package ids

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewULID(t *testing.T) {
	id, err := NewULID()

	require.NoError(t, err)
	require.Len(t, id, 26)
	require.NoError(t, ValidateULID(id))
}

func TestValidateULID(t *testing.T) {
	require.NoError(t, ValidateULID("01ARZ3NDEKTSV4RRFFQ69G5FAV"))
	require.NoError(t, ValidateULID("01arz3ndektsv4rrffq69g5fav"))

	require.ErrorIs(t, ValidateULID(""), ErrInvalidULID)
	require.ErrorIs(t, ValidateULID("not-a-ulid"), ErrInvalidULID)
	require.ErrorIs(t, ValidateULID("01ARZ3NDEKTSV4RRFFQ69G5FA"), ErrInvalidULID)  // too short
	require.ErrorIs(t, ValidateULID("01ARZ3NDEKTSV4RRFFQ69G5FAVX"), ErrInvalidULID) // too long
	require.ErrorIs(t, ValidateULID("01ARZ3NDEKTSV4RRFFQ69G5FAI"), ErrInvalidULID)  // I not in alphabet
}
