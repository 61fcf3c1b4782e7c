package card

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"time"
)

// LoaderOptions configures Loader. HTTP sources are only fetched when
// HTTPClient is set or AllowHTTP is true.
type LoaderOptions struct {
	FileSystem     fs.FS
	HTTPClient     *http.Client
	AllowHTTP      bool
	RequestTimeout time.Duration
}

// Loader reads raw card documents from a Source.
type Loader struct {
	fs      fs.FS
	http    *http.Client
	timeout time.Duration
}

// NewLoader constructs a Loader from options.
func NewLoader(options LoaderOptions) *Loader {
	var client *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if options.RequestTimeout > 0 && clone.Timeout == 0 {
			clone.Timeout = options.RequestTimeout
		}
		client = &clone
	case options.AllowHTTP:
		client = &http.Client{Timeout: options.RequestTimeout}
	}
	return &Loader{fs: options.FileSystem, http: client, timeout: options.RequestTimeout}
}

// Load returns the raw bytes behind src.
func (l *Loader) Load(ctx context.Context, src Source) ([]byte, error) {
	if src == nil {
		return nil, errors.New("card loader: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch src.Kind() {
	case SourceKindFile:
		return os.ReadFile(src.Location())
	case SourceKindFS:
		if l.fs == nil {
			return nil, errors.New("card loader: fs.FS is not configured")
		}
		return fs.ReadFile(l.fs, src.Location())
	case SourceKindURL:
		if l.http == nil {
			return nil, errors.New("card loader: http support disabled")
		}
		return l.loadHTTP(ctx, src.Location())
	default:
		return nil, fmt.Errorf("card loader: unsupported source kind %q", src.Kind())
	}
}

func (l *Loader) loadHTTP(ctx context.Context, url string) ([]byte, error) {
	reqCtx := ctx
	if l.timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.New("card loader: unexpected status " + resp.Status)
	}
	return io.ReadAll(resp.Body)
}
