// Package aescrypt encrypts text with AES in CBC mode and PKCS#7 padding.
//
// By default a random IV is generated per call and prepended to the cipher text.
// WithZeroIV reads and writes the legacy format that uses an all-zero IV and
// therefore leaks equal plaintext prefixes; use it only for existing data.
package aescrypt

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
)

var (
	// ErrInvalidKey is returned when a key is not 16, 24 or 32 bytes long
	ErrInvalidKey = errors.New("invalid key")
	// ErrInvalidCipherText is returned when cipher text can not be decoded or unpadded
	ErrInvalidCipherText = errors.New("invalid cipher text")
)

type options struct {
	zeroIV bool
}

// Option represents cipher option
type Option func(o *options)

// WithZeroIV uses an all-zero IV that is not stored with the cipher text
func WithZeroIV() Option {
	return func(o *options) {
		o.zeroIV = true
	}
}

func newOptions(opts []Option) *options {
	result := &options{}
	for _, opt := range opts {
		opt(result)
	}
	return result
}

// Encrypt encrypts plain with key and returns base64 encoded cipher text
func Encrypt(plain, key string, opts ...Option) (string, error) {
	block, err := newBlock(key)
	if err != nil {
		return "", err
	}
	o := newOptions(opts)
	padded := pad([]byte(plain), block.BlockSize())
	iv := make([]byte, block.BlockSize())
	var result []byte
	if o.zeroIV {
		result = make([]byte, len(padded))
		cipher.NewCBCEncrypter(block, iv).CryptBlocks(result, padded)
	} else {
		if _, err = rand.Read(iv); err != nil {
			return "", fmt.Errorf("failed to generate iv: %w", err)
		}
		result = make([]byte, len(iv)+len(padded))
		copy(result, iv)
		cipher.NewCBCEncrypter(block, iv).CryptBlocks(result[len(iv):], padded)
	}
	return base64.StdEncoding.EncodeToString(result), nil
}

// Decrypt decrypts base64 encoded cipher text produced by Encrypt with the same key and options
func Decrypt(cipherText, key string, opts ...Option) (string, error) {
	block, err := newBlock(key)
	if err != nil {
		return "", err
	}
	data, err := base64.StdEncoding.DecodeString(cipherText)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidCipherText, err)
	}
	o := newOptions(opts)
	blockSize := block.BlockSize()
	iv := make([]byte, blockSize)
	if !o.zeroIV {
		if len(data) < blockSize {
			return "", fmt.Errorf("%w: missing iv", ErrInvalidCipherText)
		}
		copy(iv, data[:blockSize])
		data = data[blockSize:]
	}
	if len(data) == 0 || len(data)%blockSize != 0 {
		return "", fmt.Errorf("%w: length %d is not a multiple of block size", ErrInvalidCipherText, len(data))
	}
	plain := make([]byte, len(data))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, data)
	if plain, err = unpad(plain, blockSize); err != nil {
		return "", err
	}
	return string(plain), nil
}

func newBlock(key string) (cipher.Block, error) {
	switch len(key) {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: expected 16, 24 or 32 bytes, got %d", ErrInvalidKey, len(key))
	}
	return aes.NewCipher([]byte(key))
}

func pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}

func unpad(data []byte, blockSize int) ([]byte, error) {
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, fmt.Errorf("%w: bad padding", ErrInvalidCipherText)
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("%w: bad padding", ErrInvalidCipherText)
		}
	}
	return data[:len(data)-n], nil
}
