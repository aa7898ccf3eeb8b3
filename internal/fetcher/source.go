package fetcher

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
)

// SourceKind is how a dataset location is retrieved.
type SourceKind string

const (
	SourceFile SourceKind = "file"
	SourceHTTP SourceKind = "http"
	SourceFTP  SourceKind = "ftp"
)

// KindOf classifies a dataset location: http(s) and ftp URLs, otherwise a
// local path. A file:// prefix is accepted.
func KindOf(source string) SourceKind {
	lower := strings.ToLower(source)
	switch {
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return SourceHTTP
	case strings.HasPrefix(lower, "ftp://"):
		return SourceFTP
	}
	return SourceFile
}

// Options configures an Opener.
type Options struct {
	HTTP HTTPOptions
	FTP  FTPOptions

	// HTTPClient and FTPClient replace the fetchers built from HTTP and FTP
	// when set.
	HTTPClient ConditionalFetcher
	FTPClient  Fetcher
}

// Opener reads a dataset from any supported location.
type Opener struct {
	http ConditionalFetcher
	ftp  Fetcher
}

// NewOpener creates an Opener with the given options.
func NewOpener(opts Options) *Opener {
	o := &Opener{http: opts.HTTPClient, ftp: opts.FTPClient}
	if o.http == nil {
		o.http = NewHTTPFetcher(opts.HTTP)
	}
	if o.ftp == nil {
		o.ftp = NewFTPFetcher(opts.FTP)
	}
	return o
}

// Open returns a reader for source. The caller closes it.
func (o *Opener) Open(ctx context.Context, source string) (io.ReadCloser, error) {
	switch KindOf(source) {
	case SourceHTTP:
		return o.http.Download(ctx, source)
	case SourceFTP:
		return o.ftp.Download(ctx, source)
	}

	f, err := os.Open(filePath(source))
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: open %s", source)
	}
	return f, nil
}

// OpenIfChanged returns a reader for source unless it still matches etag.
// HTTP sources use conditional requests; local files use their size and
// modification time. FTP sources are always reported as changed.
func (o *Opener) OpenIfChanged(ctx context.Context, source, etag string) (io.ReadCloser, string, bool, error) {
	switch KindOf(source) {
	case SourceHTTP:
		return o.http.DownloadIfChanged(ctx, source, etag)
	case SourceFTP:
		rc, err := o.ftp.Download(ctx, source)
		if err != nil {
			return nil, "", false, err
		}
		return rc, "", true, nil
	}

	path := filePath(source)
	info, err := os.Stat(path)
	if err != nil {
		return nil, "", false, eris.Wrapf(err, "fetcher: stat %s", source)
	}
	current := fmt.Sprintf(`"%x-%x"`, info.ModTime().UnixNano(), info.Size())
	if etag != "" && etag == current {
		return nil, etag, false, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, "", false, eris.Wrapf(err, "fetcher: open %s", source)
	}
	return f, current, true, nil
}

// Fetch copies source to a local file. Returns bytes written.
func (o *Opener) Fetch(ctx context.Context, source, path string) (int64, error) {
	switch KindOf(source) {
	case SourceHTTP:
		return o.http.DownloadToFile(ctx, source, path)
	case SourceFTP:
		return o.ftp.DownloadToFile(ctx, source, path)
	}

	rc, err := o.Open(ctx, source)
	if err != nil {
		return 0, err
	}
	defer rc.Close() //nolint:errcheck

	return writeFile(path, rc)
}

func filePath(source string) string {
	if p, ok := strings.CutPrefix(source, "file://"); ok {
		return p
	}
	return source
}
