package cli

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"golang.org/x/term"
)

// readPassword reads from the terminal without echo; tests replace it.
var readPassword = term.ReadPassword

var errPasswordMismatch = errors.New("passwords do not match")

// PromptLine writes "<label>: " to w and returns the next line from r with
// surrounding whitespace removed. A final line without a newline still
// counts; io.EOF is returned only when nothing was read.
func PromptLine(r *bufio.Reader, w io.Writer, label string) (string, error) {
	if _, err := fmt.Fprintf(w, "%s: ", label); err != nil {
		return "", err
	}
	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// PromptPassword writes "<label>: " to w and reads a password from stdin
// with echo disabled. Callers wipe the result with common.WipeByteArray.
func PromptPassword(w io.Writer, label string) ([]byte, error) {
	if _, err := fmt.Fprintf(w, "%s: ", label); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, fmt.Errorf("read password: %w", err)
	}
	return pw, nil
}

// PromptNewPassword asks for a password twice and fails when the entries
// differ.
func PromptNewPassword(w io.Writer) ([]byte, error) {
	first, err := PromptPassword(w, "Password")
	if err != nil {
		return nil, err
	}
	second, err := PromptPassword(w, "Repeat password")
	if err != nil {
		common.WipeByteArray(first)
		return nil, err
	}
	defer common.WipeByteArray(second)

	if !bytes.Equal(first, second) {
		common.WipeByteArray(first)
		return nil, errPasswordMismatch
	}
	return first, nil
}
