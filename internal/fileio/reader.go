// Package fileio classifies files as text or binary and reads size-bounded
// textual excerpts for prompt construction.
package fileio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"describedir/internal/config"
)

// MIME prefixes that mark a file binary without reading it.
var binaryMIMEPrefixes = []string{"image/", "audio/", "video/", "application/octet-stream"}

// ErrEncoding reports file content that is not valid UTF-8. It is permanent
// for the file; callers record a skip marker and never retry.
var ErrEncoding = errors.New("content is not valid utf-8")

// Excerpt is the portion of a file's text selected for a prompt.
type Excerpt struct {
	Content   string
	Truncated bool
}

// MIMEType returns the declared type for the file's extension, or "" when
// unknown. Any parameters (charset etc.) are stripped.
func MIMEType(path string) string {
	mt := mime.TypeByExtension(filepath.Ext(path))
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	return mt
}

// IsBinary reports whether the file should not be sent to the model as text.
// Two independent signals are checked and either alone suffices: a declared
// binary MIME type for the extension, or a null byte in the leading sample.
// Files that cannot be opened are treated as binary.
func IsBinary(path string) bool {
	if mt := MIMEType(path); mt != "" {
		for _, prefix := range binaryMIMEPrefixes {
			if strings.HasPrefix(mt, prefix) {
				return true
			}
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return true
	}
	defer f.Close()

	sample := make([]byte, config.BinarySampleBytes)
	n, err := f.Read(sample)
	if err != nil && err != io.EOF {
		return true
	}
	return bytes.IndexByte(sample[:n], 0) >= 0
}

// ReadContent reads the file as strict UTF-8 text.
//
// Files whose size exceeds maxBytes are read only up to truncateTo bytes and
// flagged truncated, so prompts can carry a truncation marker. Invalid UTF-8
// yields ErrEncoding; OS-level failures are returned as-is. Both are
// permanent for the file.
func ReadContent(path string, maxBytes, truncateTo int) (Excerpt, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Excerpt{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	truncated := info.Size() > int64(maxBytes)

	var data []byte
	if truncated {
		f, err := os.Open(path)
		if err != nil {
			return Excerpt{}, fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()
		data = make([]byte, truncateTo)
		n, err := io.ReadFull(f, data)
		if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
			return Excerpt{}, fmt.Errorf("failed to read %s: %w", path, err)
		}
		// A byte-length cut can split a multi-byte rune; drop the partial tail
		// so the strict validation below only sees complete sequences.
		data = trimPartialRune(data[:n])
	} else {
		data, err = os.ReadFile(path)
		if err != nil {
			return Excerpt{}, fmt.Errorf("failed to read %s: %w", path, err)
		}
	}

	if !utf8.Valid(data) {
		return Excerpt{}, fmt.Errorf("%s: %w", path, ErrEncoding)
	}

	return Excerpt{Content: string(data), Truncated: truncated}, nil
}

// trimPartialRune removes a trailing incomplete UTF-8 sequence, if any. At
// most utf8.UTFMax-1 bytes are dropped; genuinely invalid content is left for
// the caller's validation to reject.
func trimPartialRune(data []byte) []byte {
	for i := 0; i < utf8.UTFMax-1 && len(data) > 0; i++ {
		r, size := utf8.DecodeLastRune(data)
		if r != utf8.RuneError || size != 1 {
			return data
		}
		data = data[:len(data)-1]
	}
	return data
}
