package kernel_test

import (
	"testing"

	"orderdesk/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUID(t *testing.T) {
	canonical := "550e8400-e29b-41d4-a716-446655440000"

	t.Run("should generate distinct valid ids", func(t *testing.T) {
		id1 := kernel.NewUUID()
		id2 := kernel.NewUUID()

		require.NoError(t, id1.Validate())
		assert.False(t, id1.IsZero())
		assert.False(t, id1.IsEqual(id2))
	})

	t.Run("should parse accepted string forms", func(t *testing.T) {
		for _, in := range []string{
			canonical,
			"{" + canonical + "}",
			"urn:uuid:" + canonical,
			"550e8400e29b41d4a716446655440000",
		} {
			id, err := kernel.UUIDFromString(in)

			require.NoError(t, err, in)
			assert.Equal(t, canonical, id.String())
		}
	})

	t.Run("should reject malformed strings", func(t *testing.T) {
		_, err := kernel.UUIDFromString("not-a-uuid")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid UUID format")
	})

	t.Run("should round trip through bytes", func(t *testing.T) {
		id := kernel.NewUUID()
		raw := id.Bytes()

		restored, err := kernel.UUIDFromBytes(raw[:])

		require.NoError(t, err)
		assert.True(t, id.IsEqual(restored))
	})

	t.Run("should reject nil bytes and short input", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes(uuid.Nil[:])
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)

		_, err = kernel.UUIDFromBytes([]byte{1, 2, 3})
		require.Error(t, err)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var id kernel.UUID

		assert.True(t, id.IsZero())
		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, id.Validate())
	})
}
