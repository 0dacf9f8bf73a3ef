package interfaces

import "context"

// MediaFetcher downloads a media reference (http(s):// or s3://) and returns
// its bytes together with a filename usable for an upload.
type MediaFetcher interface {
	Fetch(ctx context.Context, ref string) ([]byte, string, error)
}
