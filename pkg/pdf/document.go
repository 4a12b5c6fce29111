// Package pdf reads the text of PDF documents page by page and arranges it
// into lines.
package pdf

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrUnreadable is returned when no backend can parse the document
	ErrUnreadable = errors.New("pdf: document is unreadable")

	// ErrPasswordRequired is returned for encrypted documents opened
	// without the right password
	ErrPasswordRequired = errors.New("pdf: document is encrypted and the password is missing or wrong")
)

// Open reads a PDF file and returns a Document
func Open(filepath string, opts ...OpenOption) (Document, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return OpenBytes(data, opts...)
}

// OpenBytes parses an in-memory PDF. The ledongthuc backend is tried first
// as it has the most accurate text positions, then dslipak. Encrypted
// documents are decrypted with pdfcpu when a password is given; an encrypted
// document that still cannot be read yields ErrPasswordRequired.
func OpenBytes(data []byte, opts ...OpenOption) (Document, error) {
	config := &openConfig{}
	for _, opt := range opts {
		opt(config)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrUnreadable)
	}

	plain := data
	var decryptErr error
	if config.Password != "" {
		decrypted, err := Decrypt(data, config.Password)
		if err == nil {
			plain = decrypted
		} else {
			// Not every document given a password is encrypted
			decryptErr = err
		}
	}

	doc, err := openText(plain)
	if err == nil {
		return doc, nil
	}

	if errors.Is(err, ErrPasswordRequired) || Encrypted(data) {
		if decryptErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrPasswordRequired, decryptErr)
		}
		if errors.Is(err, ErrPasswordRequired) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPasswordRequired, err)
	}

	if decryptErr != nil {
		return nil, fmt.Errorf("%w; %v", err, decryptErr)
	}
	return nil, err
}

// openText runs the text backends in order of preference
func openText(data []byte) (Document, error) {
	doc, err := OpenWithLedongthuc(data)
	if err == nil {
		return doc, nil
	}
	if errors.Is(err, ErrPasswordRequired) {
		return nil, err
	}

	doc, fallbackErr := OpenWithDslipak(data)
	if fallbackErr == nil {
		return doc, nil
	}

	return nil, fmt.Errorf("%w: %v; %v", ErrUnreadable, err, fallbackErr)
}

// recoverParse turns a panic raised inside a parsing library into an error
func recoverParse(backend string, err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: %s: %v", ErrUnreadable, backend, r)
	}
}
