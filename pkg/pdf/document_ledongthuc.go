package pdf

import (
	"bytes"
	"errors"
	"fmt"

	lpdf "github.com/ledongthuc/pdf"
)

// BackendLedongthuc names the ledongthuc/pdf backend
const BackendLedongthuc = "ledongthuc"

// OpenWithLedongthuc parses an in-memory PDF using the ledongthuc/pdf library
func OpenWithLedongthuc(data []byte) (doc Document, err error) {
	defer recoverParse(BackendLedongthuc, &err)

	r, err := lpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		if errors.Is(err, lpdf.ErrInvalidPassword) {
			return nil, fmt.Errorf("%w: %v", ErrPasswordRequired, err)
		}
		return nil, fmt.Errorf("failed to open PDF with ledongthuc: %w", err)
	}

	d := &textDocument{
		backend:  BackendLedongthuc,
		metadata: ledongthucMetadata(r),
	}

	pageCount := r.NumPage()
	d.pages = make([]Page, 0, pageCount)
	for i := 1; i <= pageCount; i++ {
		d.pages = append(d.pages, newLedongthucPage(r, i))
	}

	return d, nil
}

// ledongthucMetadata reads the document information dictionary
func ledongthucMetadata(r *lpdf.Reader) Metadata {
	info := r.Trailer().Key("Info")
	return Metadata{
		Title:    info.Key("Title").Text(),
		Author:   info.Key("Author").Text(),
		Subject:  info.Key("Subject").Text(),
		Creator:  info.Key("Creator").Text(),
		Producer: info.Key("Producer").Text(),
	}
}

// newLedongthucPage reads the text fragments of one page
func newLedongthucPage(r *lpdf.Reader, pageNumber int) Page {
	p := &textPage{pageNumber: pageNumber}

	page := r.Page(pageNumber)
	if page.V.IsNull() {
		return p
	}

	for _, text := range page.Content().Text {
		p.fragments = append(p.fragments, Fragment{
			Text:     text.S,
			Font:     text.Font,
			FontSize: text.FontSize,
			X:        text.X,
			Y:        text.Y,
			Width:    text.W,
		})
	}

	return p
}
