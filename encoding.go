package mylogger

import (
	"io"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// ErrInvalidEncoding is returned for encoding names with no known encoder.
var ErrInvalidEncoding = errors.New("mylogger: invalid encoding")

// lookupEncoding resolves an encoding label such as "utf8", "utf-16le" or
// "windows-1252". It returns a nil Encoding for UTF-8, which needs no
// transcoding.
func lookupEncoding(name string) (encoding.Encoding, error) {
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidEncoding, "%q", name)
	}
	if canonical, _ := htmlindex.Name(enc); canonical == "utf-8" {
		return nil, nil
	}
	return enc, nil
}

// encodeWriter wraps w so that UTF-8 input is written in enc. Characters enc
// cannot represent are replaced. Closing the result flushes it but leaves w
// open.
func encodeWriter(w io.Writer, enc encoding.Encoding) io.WriteCloser {
	if enc == nil {
		return nopCloser{w}
	}
	return transform.NewWriter(w, encoding.ReplaceUnsupported(enc.NewEncoder()))
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
