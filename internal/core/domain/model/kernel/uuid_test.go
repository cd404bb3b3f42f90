package kernel_test

import (
	"testing"

	"parcels/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUID(t *testing.T) {
	t.Run("should create unique valid UUIDs", func(t *testing.T) {
		id1 := kernel.NewUUID()
		id2 := kernel.NewUUID()

		require.NoError(t, id1.Validate())
		assert.False(t, id1.IsEqual(id2))
	})
}

func TestUUIDFromString(t *testing.T) {
	validUUIDStr := "550e8400-e29b-41d4-a716-446655440000"

	t.Run("should create UUID from valid string", func(t *testing.T) {
		id, err := kernel.UUIDFromString(validUUIDStr)

		require.NoError(t, err)
		assert.Equal(t, validUUIDStr, id.String())
	})

	t.Run("should accept UUID without hyphens", func(t *testing.T) {
		id, err := kernel.UUIDFromString("550e8400e29b41d4a716446655440000")

		require.NoError(t, err)
		assert.Equal(t, validUUIDStr, id.String())
	})

	t.Run("should return error for invalid UUID format", func(t *testing.T) {
		for _, s := range []string{"", "999", "not-a-uuid", "550e8400-e29b-41d4-a716"} {
			_, err := kernel.UUIDFromString(s)
			require.Error(t, err, s)
			assert.Contains(t, err.Error(), "invalid UUID format")
		}
	})

	t.Run("should reject nil UUID", func(t *testing.T) {
		_, err := kernel.UUIDFromString(uuid.Nil.String())

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestUUIDFromBytes(t *testing.T) {
	t.Run("should round trip through bytes", func(t *testing.T) {
		original := kernel.NewUUID()
		raw := original.Bytes()

		restored, err := kernel.UUIDFromBytes(raw[:])

		require.NoError(t, err)
		assert.True(t, original.IsEqual(restored))
	})

	t.Run("should return error for invalid byte length", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{1, 2, 3})

		require.Error(t, err)
	})

	t.Run("should reject nil UUID bytes", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes(make([]byte, 16))

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestUUID_Validate(t *testing.T) {
	var zero kernel.UUID

	require.ErrorIs(t, zero.Validate(), kernel.ErrUUIDIsNotConstructed)
	require.NoError(t, kernel.NewUUID().Validate())
}
