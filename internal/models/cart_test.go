package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCartPayloadShapes(t *testing.T) {
	p := DecodeCartPayload(json.RawMessage(`[{"id":"a"},{"id":"b"}]`))
	assert.Equal(t, CartPayloadList, p.Kind)
	assert.Len(t, p.Items, 2)

	p = DecodeCartPayload(json.RawMessage(`{"id":"a","medicines":{"id":"m"}}`))
	require.Equal(t, CartPayloadNested, p.Kind)
	assert.Equal(t, "m", p.Item.Medicines.ID)

	p = DecodeCartPayload(json.RawMessage(`{"id":"a","medicineId":"m"}`))
	require.Equal(t, CartPayloadFlat, p.Kind)
	assert.Equal(t, "m", p.Item.MedicineID)
}

func TestDecodeCartPayloadTotal(t *testing.T) {
	for _, raw := range []string{"", "null", "  null  ", "garbage", `{"id":`, `{}`, `{"data":null,"error":null}`} {
		p := DecodeCartPayload(json.RawMessage(raw))
		assert.Equal(t, CartPayloadEmpty, p.Kind, "raw %q", raw)
	}
	assert.Equal(t, CartPayloadEmpty, DecodeCartPayload(nil).Kind)
}

func TestLooseNumber(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{`4.5`, 4.5},
		{`"7.25"`, 7.25},
		{`"3"`, 3},
		{`null`, 0},
		{`""`, 0},
		{`"abc"`, 0},
		{`true`, 0},
	}
	for _, tt := range tests {
		var n LooseNumber
		require.NoError(t, json.Unmarshal([]byte(tt.raw), &n), "raw %s", tt.raw)
		assert.Equal(t, tt.want, float64(n), "raw %s", tt.raw)
	}
}

func TestParseRole(t *testing.T) {
	for _, s := range []string{"admin", "seller", "customer"} {
		role, err := ParseRole(s)
		require.NoError(t, err)
		assert.True(t, role.Valid())
	}

	_, err := ParseRole("superuser")
	assert.Error(t, err)
	assert.False(t, Role("superuser").Valid())
}

func TestSessionFromPayload(t *testing.T) {
	var p SessionPayload
	require.NoError(t, json.Unmarshal([]byte(`{"user":{"id":"u1","name":"Ada","email":"a@x.io","role":"seller"}}`), &p))

	s := SessionFromPayload(p)
	assert.True(t, s.Authenticated)
	assert.Equal(t, RoleSeller, s.Role)
	assert.Equal(t, "u1", s.UserID)

	// An unknown role still authenticates but carries an invalid role.
	require.NoError(t, json.Unmarshal([]byte(`{"user":{"id":"u2","role":"support"}}`), &p))
	s = SessionFromPayload(p)
	assert.True(t, s.Authenticated)
	assert.False(t, s.Role.Valid())
}
