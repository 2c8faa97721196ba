package kernel_test

import (
	"encoding/json"
	"testing"

	"printfarm/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUID(t *testing.T) {
	t.Run("should create a valid random UUID", func(t *testing.T) {
		id := kernel.NewUUID()

		require.NoError(t, id.Validate())
		assert.Regexp(t, `^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[0-9a-f]{4}-[0-9a-f]{12}$`, id.String())
	})

	t.Run("should create unique UUIDs", func(t *testing.T) {
		assert.False(t, kernel.NewUUID().IsEqual(kernel.NewUUID()))
	})
}

func TestUUIDFromString(t *testing.T) {
	const canonical = "550e8400-e29b-41d4-a716-446655440000"

	t.Run("should accept the textual forms uuid.Parse accepts", func(t *testing.T) {
		for _, in := range []string{
			canonical,
			"{550e8400-e29b-41d4-a716-446655440000}",
			"urn:uuid:550e8400-e29b-41d4-a716-446655440000",
			"550e8400e29b41d4a716446655440000",
		} {
			id, err := kernel.UUIDFromString(in)
			require.NoError(t, err, in)
			assert.Equal(t, canonical, id.String())
		}
	})

	t.Run("should reject malformed input", func(t *testing.T) {
		for _, in := range []string{"", "ORD-20250101-ABCDEF", "550e8400-e29b-41d4-a716"} {
			_, err := kernel.UUIDFromString(in)
			require.Error(t, err, in)
			assert.Contains(t, err.Error(), "invalid UUID format")
		}
	})

	t.Run("nil UUID parses but does not validate", func(t *testing.T) {
		id, err := kernel.UUIDFromString("00000000-0000-0000-0000-000000000000")

		require.NoError(t, err)
		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, id.Validate())
	})
}

func TestUUIDFromBytes(t *testing.T) {
	t.Run("should build from 16 bytes", func(t *testing.T) {
		b := []byte{0x55, 0x0e, 0x84, 0x00, 0xe2, 0x9b, 0x41, 0xd4, 0xa7, 0x16, 0x44, 0x66, 0x55, 0x44, 0x00, 0x00}

		id, err := kernel.UUIDFromBytes(b)

		require.NoError(t, err)
		assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", id.String())
	})

	t.Run("should reject short input", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{0x55})
		assert.Error(t, err)
	})

	t.Run("should reject the nil UUID", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes(make([]byte, 16))
		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, err)
	})
}

func TestUUID_Compare(t *testing.T) {
	low := kernel.MustUUID("10000000-0000-4000-8000-000000000000")
	high := kernel.MustUUID("f0000000-0000-4000-8000-000000000000")

	assert.Equal(t, -1, low.Compare(high))
	assert.Equal(t, 1, high.Compare(low))
	assert.Equal(t, 0, low.Compare(kernel.MustUUID(low.String())))
}

func TestUUID_TextMarshalling(t *testing.T) {
	type payload struct {
		BobbinID kernel.UUID `json:"bobbinId"`
	}

	t.Run("should round trip through JSON as a string", func(t *testing.T) {
		in := payload{BobbinID: kernel.MustUUID("550e8400-e29b-41d4-a716-446655440000")}

		raw, err := json.Marshal(in)
		require.NoError(t, err)
		assert.JSONEq(t, `{"bobbinId":"550e8400-e29b-41d4-a716-446655440000"}`, string(raw))

		var out payload
		require.NoError(t, json.Unmarshal(raw, &out))
		assert.True(t, in.BobbinID.IsEqual(out.BobbinID))
	})

	t.Run("should fail on a malformed identifier", func(t *testing.T) {
		var out payload
		err := json.Unmarshal([]byte(`{"bobbinId":"spool-7"}`), &out)
		assert.Error(t, err)
	})
}

func TestUUID_ZeroValue(t *testing.T) {
	var id kernel.UUID

	assert.Equal(t, kernel.ErrUUIDIsNotConstructed, id.Validate())
	assert.True(t, id.IsEqual(kernel.UUID{}))
}
