package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"io"
	"strings"
	"testing"

	"github.com/scott-cotton/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/structmap/digest"
)

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// runSub runs a subcommand of a fresh root command and returns its output lines
func runSub(t *testing.T, args ...string) ([]string, error) {
	t.Helper()
	out := new(bytes.Buffer)
	cc := &cli.Context{
		Out: nopWriteCloser{out},
		Err: nopWriteCloser{io.Discard},
		In:  io.NopCloser(strings.NewReader("")),
		Go:  context.Background(),
	}
	root := MainCommand()
	sub := root.FindSub(cc, args[0])
	require.NotNil(t, sub, args[0])
	err := sub.Run(cc, args[1:])
	text := strings.TrimRight(out.String(), "\n")
	if text == "" {
		return nil, err
	}
	return strings.Split(text, "\n"), err
}

func TestSubcommands(t *testing.T) {
	key := "0123456789abcdef"
	testCases := []struct {
		description string
		args        []string
		expect      []string
		expectUsage bool
	}{
		{
			description: "hash with salt",
			args:        []string{"hash", "-s", "anySalt", ""},
			expect:      []string{"49643FFC238C09DC0D324A0C56CCEA86DCACA897EF024278B8D3E81AFD635E14"},
		},
		{
			description: "hash alias, many texts",
			args:        []string{"h", "--salt", "customSalt", "This is a test string!", "x"},
			expect: []string{
				"662981264435F2F7EC8A28C9299C302B2472BB094646C0837A22B9AC45FC2AFA",
				digest.SHA256Hex("x", "customSalt"),
			},
		},
		{description: "hash without text", args: []string{"hash"}, expectUsage: true},
		{description: "salt zero length", args: []string{"salt", "-n", "0"}, expectUsage: true},
		{description: "encrypt bad key", args: []string{"encrypt", "-k", "short", "text"}, expectUsage: true},
		{description: "decrypt without text", args: []string{"dec", "-k", key}, expectUsage: true},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			actual, err := runSub(t, tc.args...)
			if tc.expectUsage {
				assert.ErrorIs(t, err, cli.ErrUsage)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expect, actual)
		})
	}
}

func TestSaltCommand(t *testing.T) {
	actual, err := runSub(t, "salt")
	require.NoError(t, err)
	require.Len(t, actual, 1)
	decoded, err := base64.StdEncoding.DecodeString(actual[0])
	require.NoError(t, err)
	assert.Len(t, decoded, digest.DefaultSaltLength)

	actual, err = runSub(t, "salt", "-n", "4")
	require.NoError(t, err)
	decoded, err = base64.StdEncoding.DecodeString(actual[0])
	require.NoError(t, err)
	assert.Len(t, decoded, 4)
}

func TestCipherCommands(t *testing.T) {
	key := "0123456789abcdef0123456789abcdef"
	testCases := []struct {
		description string
		flags       []string
	}{
		{description: "random iv"},
		{description: "zero iv", flags: []string{"-z"}},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			args := append([]string{"encrypt", "-k", key}, tc.flags...)
			cipherTexts, err := runSub(t, append(args, "first", "second")...)
			require.NoError(t, err)
			require.Len(t, cipherTexts, 2)

			args = append([]string{"decrypt", "-k", key}, tc.flags...)
			actual, err := runSub(t, append(args, cipherTexts...)...)
			require.NoError(t, err)
			assert.Equal(t, []string{"first", "second"}, actual)
		})
	}

	t.Run("key from environment", func(t *testing.T) {
		t.Setenv(keyEnv, key)
		cipherTexts, err := runSub(t, "enc", "env")
		require.NoError(t, err)
		actual, err := runSub(t, "dec", cipherTexts[0])
		require.NoError(t, err)
		assert.Equal(t, []string{"env"}, actual)
	})
}
