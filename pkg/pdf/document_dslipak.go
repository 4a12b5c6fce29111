package pdf

import (
	"bytes"
	"fmt"

	gopdf "github.com/dslipak/pdf"
)

// BackendDslipak names the dslipak/pdf backend
const BackendDslipak = "dslipak"

// OpenWithDslipak parses an in-memory PDF using the dslipak/pdf library
func OpenWithDslipak(data []byte) (doc Document, err error) {
	defer recoverParse(BackendDslipak, &err)

	r, err := gopdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF with dslipak: %w", err)
	}

	d := &textDocument{
		backend:  BackendDslipak,
		metadata: dslipakMetadata(r),
	}

	pageCount := r.NumPage()
	d.pages = make([]Page, 0, pageCount)
	for i := 1; i <= pageCount; i++ {
		d.pages = append(d.pages, newDslipakPage(r, i))
	}

	return d, nil
}

// dslipakMetadata reads the document information dictionary
func dslipakMetadata(r *gopdf.Reader) Metadata {
	info := r.Trailer().Key("Info")
	return Metadata{
		Title:    info.Key("Title").Text(),
		Author:   info.Key("Author").Text(),
		Subject:  info.Key("Subject").Text(),
		Creator:  info.Key("Creator").Text(),
		Producer: info.Key("Producer").Text(),
	}
}

// newDslipakPage reads the text fragments of one page
func newDslipakPage(r *gopdf.Reader, pageNumber int) Page {
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
