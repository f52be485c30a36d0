package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubReadPassword(t *testing.T, answers ...[]byte) {
	t.Helper()
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })

	i := 0
	readPassword = func(int) ([]byte, error) {
		if i >= len(answers) {
			return nil, errors.New("no more input")
		}
		pw := answers[i]
		i++
		return pw, nil
	}
}

func TestPromptLine(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "trims line", input: "  alice \nbob\n", want: "alice"},
		{name: "last line without newline", input: "alice", want: "alice"},
		{name: "empty input", input: "", wantErr: io.EOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := PromptLine(bufio.NewReader(strings.NewReader(tt.input)), &out, "Username")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "Username: ", out.String())
		})
	}
}

func TestPromptPassword(t *testing.T) {
	stubReadPassword(t, []byte("pw"))

	var out bytes.Buffer
	pw, err := PromptPassword(&out, "Password")
	require.NoError(t, err)
	assert.Equal(t, []byte("pw"), pw)
	assert.Equal(t, "Password: \n", out.String())
}

func TestPromptPassword_Error(t *testing.T) {
	stubReadPassword(t)

	_, err := PromptPassword(io.Discard, "Password")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read password")
}

func TestPromptNewPassword(t *testing.T) {
	t.Run("match", func(t *testing.T) {
		second := []byte("s3cret")
		stubReadPassword(t, []byte("s3cret"), second)

		var out bytes.Buffer
		pw, err := PromptNewPassword(&out)
		require.NoError(t, err)
		assert.Equal(t, "s3cret", string(pw))
		assert.Equal(t, "Password: \nRepeat password: \n", out.String())
		assert.Equal(t, make([]byte, 6), second, "confirmation must be wiped")
	})

	t.Run("mismatch", func(t *testing.T) {
		first := []byte("one")
		stubReadPassword(t, first, []byte("two"))

		_, err := PromptNewPassword(io.Discard)
		require.ErrorIs(t, err, errPasswordMismatch)
		assert.Equal(t, make([]byte, 3), first)
	})

	t.Run("second read fails", func(t *testing.T) {
		stubReadPassword(t, []byte("one"))

		_, err := PromptNewPassword(io.Discard)
		require.Error(t, err)
	})
}
