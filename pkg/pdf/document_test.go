package pdf

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/pyhub-apps/diamondprice-golang/internal/pdftest"
)

var samplePages = [][]string{
	{
		"RAPAPORT : ROUND : 2024-01-01",
		"D-F G-H I-J",
		"1.00 100 200 300 400 500 600 700",
	},
	{
		"RAPAPORT : PEAR : 2024-01-01",
		"0.50 10 20 30 40 50 60 70",
	},
}

func samplePDF() []byte {
	return pdftest.Build(pdftest.Metadata{Title: "Price List", Producer: "pdftest"}, samplePages...)
}

func TestOpenBackends(t *testing.T) {
	data := samplePDF()

	testCases := []struct {
		name    string
		open    func([]byte) (Document, error)
		backend string
	}{
		{name: "ledongthuc", open: OpenWithLedongthuc, backend: BackendLedongthuc},
		{name: "dslipak", open: OpenWithDslipak, backend: BackendDslipak},
		{name: "default", open: func(b []byte) (Document, error) { return OpenBytes(b) }, backend: BackendLedongthuc},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := tc.open(data)
			if err != nil {
				t.Fatalf("Failed to open PDF: %v", err)
			}
			defer doc.Close()

			if doc.Backend() != tc.backend {
				t.Errorf("Expected backend %s, got %s", tc.backend, doc.Backend())
			}

			if doc.PageCount() != 2 {
				t.Fatalf("Expected 2 pages, got %d", doc.PageCount())
			}

			for i, lines := range samplePages {
				page, err := doc.GetPage(i)
				if err != nil {
					t.Fatalf("Failed to get page: %v", err)
				}
				if page.GetPageNumber() != i+1 {
					t.Errorf("Expected page number %d, got %d", i+1, page.GetPageNumber())
				}

				text := page.ExtractText()
				for _, line := range lines {
					if !strings.Contains(text, line) {
						t.Errorf("Page %d: expected text to contain %q, got:\n%s", i+1, line, text)
					}
				}
			}
		})
	}
}

func TestOpenLineOrder(t *testing.T) {
	doc, err := OpenBytes(samplePDF())
	if err != nil {
		t.Fatalf("Failed to open PDF: %v", err)
	}
	defer doc.Close()

	page, _ := doc.GetPage(0)
	got := strings.Split(page.ExtractText(), "\n")
	if len(got) != len(samplePages[0]) {
		t.Fatalf("Expected %d lines, got %q", len(samplePages[0]), got)
	}
	for i, line := range samplePages[0] {
		if strings.TrimSpace(got[i]) != line {
			t.Errorf("Line %d: expected %q, got %q", i, line, got[i])
		}
	}
}

func TestMetadata(t *testing.T) {
	backends := map[string]func([]byte) (Document, error){
		BackendLedongthuc: OpenWithLedongthuc,
		BackendDslipak:    OpenWithDslipak,
	}

	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			doc, err := open(samplePDF())
			if err != nil {
				t.Fatalf("Failed to open PDF: %v", err)
			}
			defer doc.Close()

			meta := doc.GetMetadata()
			if meta.Title != "Price List" {
				t.Errorf("Expected title 'Price List', got %q", meta.Title)
			}
			if meta.Producer != "pdftest" {
				t.Errorf("Expected producer 'pdftest', got %q", meta.Producer)
			}
		})
	}
}

func TestGetPageOutOfRange(t *testing.T) {
	doc, err := OpenBytes(samplePDF())
	if err != nil {
		t.Fatalf("Failed to open PDF: %v", err)
	}
	defer doc.Close()

	for _, index := range []int{-1, 2} {
		if _, err := doc.GetPage(index); err == nil {
			t.Errorf("Expected error for page index %d", index)
		}
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.pdf")
	if err := os.WriteFile(path, samplePDF(), 0o644); err != nil {
		t.Fatalf("Failed to write PDF: %v", err)
	}

	doc, err := Open(path)
	if err != nil {
		t.Fatalf("Failed to open PDF: %v", err)
	}
	defer doc.Close()

	if doc.PageCount() != 2 {
		t.Errorf("Expected 2 pages, got %d", doc.PageCount())
	}

	if _, err := Open(filepath.Join(t.TempDir(), "missing.pdf")); err == nil {
		t.Error("Expected error for a missing file")
	}
}

func TestOpenUnreadable(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "not a pdf", data: []byte("this is not a PDF document")},
		{name: "truncated", data: samplePDF()[:64]},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := OpenBytes(tc.data)
			if !errors.Is(err, ErrUnreadable) {
				t.Errorf("Expected ErrUnreadable, got %v", err)
			}
		})
	}
}

func TestDecryptRejectsGarbage(t *testing.T) {
	if _, err := Decrypt([]byte("not a pdf"), "secret"); err == nil {
		t.Error("Expected decrypt error")
	}
}

func TestOpenWithPasswordOnPlainDocument(t *testing.T) {
	// A password given for a document that is not encrypted is ignored
	doc, err := OpenBytes(samplePDF(), WithPassword("secret"))
	if err != nil {
		t.Fatalf("Failed to open PDF: %v", err)
	}
	defer doc.Close()

	if doc.PageCount() != 2 {
		t.Errorf("Expected 2 pages, got %d", doc.PageCount())
	}
}

// encryptSample encrypts the sample document with pdfcpu
func encryptSample(t *testing.T, conf *model.Configuration) []byte {
	t.Helper()

	conf.ValidationMode = model.ValidationRelaxed
	var out bytes.Buffer
	if err := api.Encrypt(bytes.NewReader(samplePDF()), &out, conf); err != nil {
		t.Fatalf("Failed to encrypt PDF: %v", err)
	}
	return out.Bytes()
}

func TestOpenEncrypted(t *testing.T) {
	const userPW, ownerPW = "secret", "owner"

	testCases := []struct {
		name string
		conf func() *model.Configuration
	}{
		{name: "rc4-128", conf: func() *model.Configuration { return model.NewRC4Configuration(userPW, ownerPW, 128) }},
		{name: "aes-128", conf: func() *model.Configuration { return model.NewAESConfiguration(userPW, ownerPW, 128) }},
		{name: "aes-256", conf: func() *model.Configuration { return model.NewAESConfiguration(userPW, ownerPW, 256) }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			data := encryptSample(t, tc.conf())

			if !Encrypted(data) {
				t.Fatal("Expected document to be reported as encrypted")
			}

			doc, err := OpenBytes(data, WithPassword(userPW))
			if err != nil {
				t.Fatalf("Failed to open with the right password: %v", err)
			}
			defer doc.Close()

			if doc.PageCount() != 2 {
				t.Fatalf("Expected 2 pages, got %d", doc.PageCount())
			}
			page, _ := doc.GetPage(0)
			if text := page.ExtractText(); !strings.Contains(text, samplePages[0][0]) {
				t.Errorf("Expected decrypted text to contain %q, got:\n%s", samplePages[0][0], text)
			}

			if _, err := OpenBytes(data); !errors.Is(err, ErrPasswordRequired) {
				t.Errorf("Expected ErrPasswordRequired without a password, got %v", err)
			}

			_, err = OpenBytes(data, WithPassword("wrong"))
			if !errors.Is(err, ErrPasswordRequired) {
				t.Errorf("Expected ErrPasswordRequired with a wrong password, got %v", err)
			}
			if !errors.Is(err, pdfcpu.ErrWrongPassword) {
				t.Errorf("Expected the pdfcpu password error to be kept, got %v", err)
			}
		})
	}
}

func TestEncryptedPlainDocument(t *testing.T) {
	if Encrypted(samplePDF()) {
		t.Error("Expected plain document to be reported as not encrypted")
	}
	if Encrypted([]byte("not a pdf")) {
		t.Error("Expected garbage to be reported as not encrypted")
	}
}
