package export

import (
	"bytes"
	"encoding/base64"
	"io"
	"os"
)

// Result holds a generated PDF together with its suggested filename.
//
// The underlying data is never modified, so its methods may be called any
// number of times.
type Result struct {
	data     []byte
	filename string
}

// NewResult wraps rendered PDF bytes.
func NewResult(data []byte, filename string) *Result {
	return &Result{data: data, filename: filename}
}

// Bytes returns the raw PDF content.
func (r *Result) Bytes() []byte {
	return r.data
}

// Filename returns the name the document should be saved or served as.
func (r *Result) Filename() string {
	return r.filename
}

// Base64 returns the PDF encoded as a standard base64 string (RFC 4648).
func (r *Result) Base64() string {
	return base64.StdEncoding.EncodeToString(r.data)
}

// Reader returns an [*bytes.Reader] over the PDF content.
func (r *Result) Reader() *bytes.Reader {
	return bytes.NewReader(r.data)
}

// WriteTo writes the full PDF content to w. It implements [io.WriterTo].
func (r *Result) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.data)
	return int64(n), err
}

// WriteToFile writes the PDF to the file at path, creating it if needed.
func (r *Result) WriteToFile(path string, perm os.FileMode) error {
	return os.WriteFile(path, r.data, perm)
}

// Len returns the size of the PDF in bytes.
func (r *Result) Len() int {
	return len(r.data)
}
