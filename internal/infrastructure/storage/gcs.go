package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCS stores uploaded documents and photos in a single bucket.
type GCS struct {
	client *storage.Client
	bucket string
	now    func() time.Time
}

type Options struct {
	Bucket          string
	CredentialsFile string
	// EmulatorHost points the client at a fake-gcs server; credentials are skipped.
	EmulatorHost string
}

func NewGCS(ctx context.Context, o Options) (*GCS, error) {
	if strings.TrimSpace(o.Bucket) == "" {
		return nil, errors.New("storage: bucket name required")
	}
	var opts []option.ClientOption
	switch {
	case o.EmulatorHost != "":
		opts = append(opts, option.WithoutAuthentication(), option.WithEndpoint(strings.TrimRight(o.EmulatorHost, "/")+"/storage/v1/"))
	case o.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(o.CredentialsFile))
	}
	opts = append(opts, option.WithScopes(storage.ScopeReadWrite))
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage client: %w", err)
	}
	return &GCS{client: client, bucket: o.Bucket, now: time.Now}, nil
}

func (g *GCS) Put(ctx context.Context, key, contentType string, r io.Reader) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := g.client.Bucket(g.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "private, max-age=0"
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return fmt.Errorf("write object %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close object %s: %w", key, err)
	}
	return nil
}

// SignedURL issues a V2 signed GET URL. V4 caps expiry at 7 days, which is
// shorter than the lifetime stored document links need.
func (g *GCS) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return g.client.Bucket(g.bucket).SignedURL(key, signOptions(g.now(), ttl))
}

func (g *GCS) Delete(ctx context.Context, key string) error {
	err := g.client.Bucket(g.bucket).Object(key).Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil
	}
	return err
}

func (g *GCS) Close() error { return g.client.Close() }

func signOptions(now time.Time, ttl time.Duration) *storage.SignedURLOptions {
	return &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV2,
		Method:  "GET",
		Expires: now.Add(ttl),
	}
}
