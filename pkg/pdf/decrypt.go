package pdf

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

const backendPdfcpu = "pdfcpu"

// Decrypt removes encryption from an in-memory PDF using pdfcpu, which
// handles the AES-256 security handler the text backends lack.
func Decrypt(data []byte, password string) (plain []byte, err error) {
	defer recoverParse(backendPdfcpu, &err)

	conf := model.NewDefaultConfiguration()
	conf.UserPW = password
	conf.OwnerPW = password
	conf.ValidationMode = model.ValidationRelaxed

	var out bytes.Buffer
	if err := api.Decrypt(bytes.NewReader(data), &out, conf); err != nil {
		return nil, fmt.Errorf("failed to decrypt PDF: %w", err)
	}

	return out.Bytes(), nil
}

// Encrypted reports whether the document carries an /Encrypt dictionary.
// Documents pdfcpu cannot parse at all are reported as not encrypted.
func Encrypted(data []byte) (encrypted bool) {
	defer func() {
		if recover() != nil {
			encrypted = false
		}
	}()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return errors.Is(err, pdfcpu.ErrWrongPassword)
	}
	return ctx.Encrypt != nil
}
