package report

import (
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/sha3"
	"golang.org/x/text/encoding/charmap"
)

// Encoding is the character encoding a Writer emits.
type Encoding string

const (
	// EncodingUTF8 writes documents unchanged.
	EncodingUTF8 Encoding = "utf-8"

	// EncodingLatin1 writes documents as ISO-8859-1, which many spreadsheet
	// tools still assume for CSV files.
	EncodingLatin1 Encoding = "latin1"
)

// ParseEncoding converts s to an Encoding.
func ParseEncoding(s string) (Encoding, error) {
	switch Encoding(s) {
	case EncodingUTF8, "utf8", "":
		return EncodingUTF8, nil
	case EncodingLatin1, "iso-8859-1":
		return EncodingLatin1, nil
	default:
		return "", fmt.Errorf("unsupported encoding %q: must be utf-8 or latin1", s)
	}
}

// Writer writes generated documents to an output destination.
//
// Generation never touches I/O; destination concerns (encoding, trailing
// newline) live here.
type Writer struct {
	output   io.Writer
	encoding Encoding
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithEncoding sets the output encoding. The default is EncodingUTF8.
func WithEncoding(enc Encoding) WriterOption {
	return func(w *Writer) {
		w.encoding = enc
	}
}

// NewWriter creates a Writer that outputs to the given writer.
func NewWriter(output io.Writer, opts ...WriterOption) *Writer {
	w := &Writer{
		output:   output,
		encoding: EncodingUTF8,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs document followed by a newline. An empty document writes
// nothing. The document is encoded in full before anything is written, so an
// encoding error leaves the output untouched. Returns the number of bytes
// written.
func (w *Writer) Write(document string) (int, error) {
	data, err := Encode(document, w.encoding)
	if err != nil || len(data) == 0 {
		return 0, err
	}

	return w.output.Write(data)
}

// Encode returns the bytes Write emits for document in enc: the document
// followed by a newline, or nothing for an empty document.
func Encode(document string, enc Encoding) ([]byte, error) {
	if document == "" {
		return nil, nil
	}

	s := document + "\n"
	switch enc {
	case EncodingLatin1:
		encoded, err := charmap.ISO8859_1.NewEncoder().String(s)
		if err != nil {
			return nil, fmt.Errorf("failed to encode report as latin1: %w", err)
		}
		return []byte(encoded), nil
	default:
		return []byte(s), nil
	}
}

// Digest returns the hex SHA3-256 digest of document. Equal inputs to
// GenerateReport always produce equal digests.
func Digest(document string) string {
	sum := sha3.Sum256([]byte(document))
	return hex.EncodeToString(sum[:])
}
