package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignIsDeterministic(t *testing.T) {
	s := NewMD5Signer("secret")
	params := map[string]string{
		"appid":          "2001",
		"trade_order_id": "ORDER_1_AAAAAA",
		"total_fee":      "9.90",
	}
	require.Equal(t, s.Sign(params), s.Sign(params))
}

func TestSignIgnoresEmptyValuesAndHash(t *testing.T) {
	s := NewMD5Signer("secret")
	base := map[string]string{
		"appid":     "2001",
		"total_fee": "9.90",
	}
	padded := map[string]string{
		"appid":      "2001",
		"total_fee":  "9.90",
		"notify_url": "",
		"hash":       "deadbeef",
	}
	assert.Equal(t, s.Sign(base), s.Sign(padded))
}

func TestSignDependsOnSecretAndValues(t *testing.T) {
	params := map[string]string{"appid": "2001", "total_fee": "9.90"}

	a := NewMD5Signer("secret-a").Sign(params)
	b := NewMD5Signer("secret-b").Sign(params)
	assert.NotEqual(t, a, b)

	changed := map[string]string{"appid": "2001", "total_fee": "0.01"}
	assert.NotEqual(t, a, NewMD5Signer("secret-a").Sign(changed))
}

func TestVerify(t *testing.T) {
	s := NewMD5Signer("secret")
	params := map[string]string{
		"trade_order_id": "ORDER_1_AAAAAA",
		"status":         "OD",
	}
	params["hash"] = s.Sign(params)
	assert.True(t, verify(s, params))

	params["status"] = "CD"
	assert.False(t, verify(s, params))

	delete(params, "hash")
	assert.False(t, verify(s, params))
}
