package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"adlaunch/internal/config"
	"adlaunch/internal/interfaces"
)

// MediaFetcher downloads media bytes from http(s) URLs or, when an S3 client
// is configured, from s3://bucket/key references.
type MediaFetcher struct {
	s3cfg      *config.S3Config
	httpClient *http.Client
	maxBytes   int64
}

// NewMediaFetcher builds a fetcher. s3cfg may be nil, in which case s3://
// references are rejected.
func NewMediaFetcher(s3cfg *config.S3Config, maxBytes int64) *MediaFetcher {
	return &MediaFetcher{
		s3cfg:      s3cfg,
		httpClient: &http.Client{Timeout: 120 * time.Second},
		maxBytes:   maxBytes,
	}
}

func (f *MediaFetcher) SetHTTPClient(hc *http.Client) {
	f.httpClient = hc
}

var _ interfaces.MediaFetcher = (*MediaFetcher)(nil)

func (f *MediaFetcher) Fetch(ctx context.Context, ref string) ([]byte, string, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return nil, "", fmt.Errorf("invalid media reference %q: %w", ref, err)
	}
	switch u.Scheme {
	case "s3":
		return f.fetchS3(ctx, u)
	case "http", "https":
		return f.fetchHTTP(ctx, ref, u)
	default:
		return nil, "", fmt.Errorf("unsupported media scheme %q", u.Scheme)
	}
}

func (f *MediaFetcher) fetchHTTP(ctx context.Context, ref string, u *url.URL) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, "", fmt.Errorf("building media request: %w", err)
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetching media: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("fetching media: status=%d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("reading media body: %w", err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, "", fmt.Errorf("media exceeds the %d byte limit", f.maxBytes)
	}
	return data, filenameFrom(u.Path), nil
}

func (f *MediaFetcher) fetchS3(ctx context.Context, u *url.URL) ([]byte, string, error) {
	if f.s3cfg == nil {
		return nil, "", fmt.Errorf("s3 media references are not enabled")
	}
	bucket := u.Host
	key := strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return nil, "", fmt.Errorf("invalid s3 reference %q", u.String())
	}

	buf := manager.NewWriteAtBuffer(nil)
	_, err := f.s3cfg.Downloader.Download(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, "", fmt.Errorf("downloading s3://%s/%s: %w", bucket, key, err)
	}

	data := buf.Bytes()
	if int64(len(data)) > f.maxBytes {
		return nil, "", fmt.Errorf("media exceeds the %d byte limit", f.maxBytes)
	}
	return data, filenameFrom(key), nil
}

func filenameFrom(p string) string {
	name := path.Base(p)
	if name == "" || name == "." || name == "/" {
		return "video.mp4"
	}
	return name
}
