package snapshot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"briefing/internal/fetcher"
)

// HTTPStore implements a read-only Store over a static file host.
type HTTPStore struct {
	fetcher *fetcher.Fetcher
	base    string
}

// NewHTTPStore creates an HTTPStore reading keys below base.
func NewHTTPStore(client fetcher.HTTPClient, base string) *HTTPStore {
	return &HTTPStore{
		fetcher: fetcher.New(client),
		base:    strings.TrimRight(base, "/"),
	}
}

// Get downloads the object for key.
func (h *HTTPStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := h.fetcher.Get(ctx, h.base+"/"+key)
	if errors.Is(err, fetcher.ErrNotFound) {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return data, nil
}

// Put always fails: static hosts are published out of band.
func (h *HTTPStore) Put(context.Context, string, []byte) error {
	return ErrReadOnly
}
