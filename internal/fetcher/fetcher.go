// Package fetcher retrieves YAIXM datasets from local files, HTTP(S)
// servers and FTP servers.
package fetcher

import (
	"context"
	"io"
)

// Fetcher downloads a remote dataset.
type Fetcher interface {
	// Download fetches the URL and returns the body. The caller closes it.
	Download(ctx context.Context, url string) (io.ReadCloser, error)

	// DownloadToFile fetches the URL into path. Returns bytes written.
	DownloadToFile(ctx context.Context, url string, path string) (int64, error)
}

// ConditionalFetcher can skip a download when the remote copy still
// matches a previously seen ETag.
type ConditionalFetcher interface {
	Fetcher

	// DownloadIfChanged returns (body, newETag, changed, error). When the
	// copy is unchanged body is nil and changed is false.
	DownloadIfChanged(ctx context.Context, url string, etag string) (io.ReadCloser, string, bool, error)
}
