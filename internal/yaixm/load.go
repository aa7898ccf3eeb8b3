package yaixm

import (
	"context"
	"io"
	"os"

	"github.com/rotisserie/eris"

	"github.com/sells-group/asselect/internal/fetcher"
)

// Decode reads a YAIXM JSON document and validates it.
func Decode(r io.Reader) (*Dataset, error) {
	ds, err := fetcher.DecodeJSONObject[Dataset](r)
	if err != nil {
		return nil, eris.Wrap(err, "yaixm: decode")
	}
	if err := ds.Validate(); err != nil {
		return nil, eris.Wrap(err, "yaixm: validate")
	}
	return ds, nil
}

// LoadFile reads and validates a YAIXM document from disk.
func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "yaixm: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	return Decode(f)
}

// Load reads and validates a YAIXM document from a file path or an
// http(s):// or ftp:// URL.
func Load(ctx context.Context, o *fetcher.Opener, source string) (*Dataset, error) {
	rc, err := o.Open(ctx, source)
	if err != nil {
		return nil, eris.Wrap(err, "yaixm: load")
	}
	defer rc.Close() //nolint:errcheck

	return Decode(rc)
}
