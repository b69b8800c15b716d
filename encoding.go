package excerpt

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/unicode/norm"
)

// EncodingError reports a failed transcoding from a declared charset.
type EncodingError struct {
	Charset string
	Err     error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("excerpt: cannot transcode from %q: %v", e.Charset, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// Transcode converts input from the named charset to UTF-8. Empty label (or
// any UTF-8 alias) means the input is already UTF-8 and is only validated.
// Invalid sequences are replaced with U+FFFD and a diagnostic is logged;
// only an unresolvable charset label or a converter failure is an error.
//
// Callers matching documents declared in a legacy charset run them through
// here first, so token byte offsets refer to the transcoded buffer.
func Transcode(input []byte, label string) (string, error) {
	if label == "" || isUTF8Label(label) {
		return toValidUTF8(string(input)), nil
	}
	r, err := charset.NewReaderLabel(label, bytes.NewReader(input))
	if err != nil {
		return "", &EncodingError{Charset: label, Err: err}
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return "", &EncodingError{Charset: label, Err: err}
	}
	return toValidUTF8(string(out)), nil
}

// normalizeQueryText prepares a raw query string for parsing: transcode from
// the declared charset, then NFC so that composed and decomposed spellings
// of the same character produce identical terms.
func normalizeQueryText(q string, cfg *Config) (string, error) {
	s, err := Transcode([]byte(q), cfg.Charset)
	if err != nil {
		return "", err
	}
	return norm.NFC.String(s), nil
}

func isUTF8Label(label string) bool {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "utf-8", "utf8", "unicode-1-1-utf-8":
		return true
	}
	return false
}

// toValidUTF8 replaces invalid byte sequences with the Unicode replacement
// character, recording a diagnostic when it does.
func toValidUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	slog.Warn("excerpt: replacing invalid UTF-8 sequences", "len", len(s))
	return strings.ToValidUTF8(s, string(utf8.RuneError))
}
