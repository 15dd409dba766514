package aescrypt

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecrypt(t *testing.T) {
	testCases := []struct {
		description string
		plain       string
		key         string
		options     []Option
	}{
		{description: "aes-128 random iv", plain: "hello world", key: "0123456789abcdef"},
		{description: "aes-192 random iv", plain: "", key: "0123456789abcdef01234567"},
		{description: "aes-256 random iv", plain: "exactly sixteen!", key: "0123456789abcdef0123456789abcdef"},
		{description: "zero iv", plain: "legacy payload", key: "0123456789abcdef", options: []Option{WithZeroIV()}},
		{description: "zero iv unicode", plain: "zażółć gęślą jaźń", key: "0123456789abcdef0123456789abcdef", options: []Option{WithZeroIV()}},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			cipherText, err := Encrypt(tc.plain, tc.key, tc.options...)
			require.NoError(t, err)
			assert.NotEqual(t, tc.plain, cipherText)
			actual, err := Decrypt(cipherText, tc.key, tc.options...)
			require.NoError(t, err)
			assert.Equal(t, tc.plain, actual)
		})
	}
}

func TestEncrypt_IV(t *testing.T) {
	key := "0123456789abcdef"
	first, err := Encrypt("same", key)
	require.NoError(t, err)
	second, err := Encrypt("same", key)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	data, err := base64.StdEncoding.DecodeString(first)
	require.NoError(t, err)
	assert.Len(t, data, 32)

	first, err = Encrypt("same", key, WithZeroIV())
	require.NoError(t, err)
	second, err = Encrypt("same", key, WithZeroIV())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	data, err = base64.StdEncoding.DecodeString(first)
	require.NoError(t, err)
	assert.Len(t, data, 16)
}

func TestErrors(t *testing.T) {
	_, err := Encrypt("text", "short")
	assert.ErrorIs(t, err, ErrInvalidKey)
	_, err = Decrypt("text", "short")
	assert.ErrorIs(t, err, ErrInvalidKey)

	key := "0123456789abcdef"
	testCases := []struct {
		description string
		cipherText  string
		options     []Option
	}{
		{description: "not base64", cipherText: "***"},
		{description: "missing iv", cipherText: base64.StdEncoding.EncodeToString([]byte("short"))},
		{description: "iv only", cipherText: base64.StdEncoding.EncodeToString(make([]byte, 16))},
		{description: "partial block", cipherText: base64.StdEncoding.EncodeToString(make([]byte, 20)), options: []Option{WithZeroIV()}},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			_, err := Decrypt(tc.cipherText, key, tc.options...)
			assert.ErrorIs(t, err, ErrInvalidCipherText)
		})
	}

	cipherText, err := Encrypt("secret", key)
	require.NoError(t, err)
	if actual, err := Decrypt(cipherText, "fedcba9876543210"); err == nil {
		assert.NotEqual(t, "secret", actual)
	}
}
