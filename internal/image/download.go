package imagepkg

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/youruser/teeapp/internal/util"
)

// DefaultMaxFetchBytes caps the size of a downloaded skin.
const DefaultMaxFetchBytes = 8 << 20

// Fetcher downloads source skins. The zero value uses a client with util.DefaultTimeout.
type Fetcher struct {
	Client   *http.Client
	MaxBytes int64
}

// Fetch downloads url and determines its format from the Content-Type header, falling
// back to sniffing the bytes when the header is missing or generic.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, Format, error) {
	limit := f.MaxBytes
	if limit == 0 {
		limit = DefaultMaxFetchBytes
	}
	resp, err := util.GetBytes(ctx, f.Client, url, limit)
	if err != nil {
		return nil, FormatUnknown, &FetchError{URL: url, Err: err}
	}
	if resp.Status != http.StatusOK {
		return nil, FormatUnknown, &FetchError{URL: url, Status: resp.Status, Err: errors.New("non-200 response")}
	}

	format, err := FormatFromMIME(resp.ContentType)
	if err != nil {
		// some hosts serve skins as application/octet-stream
		if format, err = Detect(resp.Body); err != nil {
			return nil, FormatUnknown, &FetchError{URL: url, Err: fmt.Errorf("no image content type (%q)", resp.ContentType)}
		}
	}
	return resp.Body, format, nil
}
