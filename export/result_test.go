package export

import (
	"bytes"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
)

var samplePDF = []byte("%PDF-1.4 fake content for testing")

func TestResult_Accessors(t *testing.T) {
	r := NewResult(samplePDF, "invoice.pdf")

	if !bytes.Equal(r.Bytes(), samplePDF) {
		t.Error("Bytes() did not return original data")
	}
	if r.Filename() != "invoice.pdf" {
		t.Errorf("Filename() = %q", r.Filename())
	}
	if r.Len() != len(samplePDF) {
		t.Errorf("Len() = %d, want %d", r.Len(), len(samplePDF))
	}
	if got, want := r.Base64(), base64.StdEncoding.EncodeToString(samplePDF); got != want {
		t.Errorf("Base64() = %q, want %q", got, want)
	}
}

func TestResult_WriteTo(t *testing.T) {
	r := NewResult(samplePDF, "")

	var buf bytes.Buffer
	n, err := r.WriteTo(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if n != int64(len(samplePDF)) || !bytes.Equal(buf.Bytes(), samplePDF) {
		t.Error("WriteTo produced different content")
	}

	if r.Reader().Len() != len(samplePDF) {
		t.Error("Reader() length differs")
	}
}

func TestResult_WriteToFile(t *testing.T) {
	r := NewResult(samplePDF, "")
	path := filepath.Join(t.TempDir(), "out.pdf")

	if err := r.WriteToFile(path, 0o644); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, samplePDF) {
		t.Error("WriteToFile produced different content")
	}
}
