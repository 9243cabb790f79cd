// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gbench

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"
)

// An Opener opens benchmark result files by path.
//
// A path may be "-" for standard input, "gs://bucket/object" for an
// object in Google Cloud Storage, or a local file name.
type Opener struct {
	// Stdin is read for the path "-". If nil, os.Stdin is used.
	Stdin io.Reader

	// ClientOptions are passed to storage.NewClient for gs://
	// paths.
	ClientOptions []option.ClientOption
}

// Open opens the file at path. The caller must close the result.
func (o *Opener) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	if path == "-" {
		if o.Stdin != nil {
			return io.NopCloser(o.Stdin), nil
		}
		return io.NopCloser(os.Stdin), nil
	}
	if bucket, object, ok := splitGCSPath(path); ok {
		return o.openGCS(ctx, bucket, object)
	}
	return os.Open(path)
}

// Load opens and parses the file at path.
func (o *Opener) Load(ctx context.Context, path string) (*File, error) {
	rc, err := o.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return Parse(rc, path)
}

// splitGCSPath splits "gs://bucket/object" into its bucket and
// object parts.
func splitGCSPath(path string) (bucket, object string, ok bool) {
	rest, ok := strings.CutPrefix(path, "gs://")
	if !ok {
		return "", "", false
	}
	bucket, object, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || object == "" {
		return "", "", false
	}
	return bucket, object, true
}

type gcsReader struct {
	*storage.Reader
	client *storage.Client
}

func (r *gcsReader) Close() error {
	err := r.Reader.Close()
	if cerr := r.client.Close(); err == nil {
		err = cerr
	}
	return err
}

func (o *Opener) openGCS(ctx context.Context, bucket, object string) (io.ReadCloser, error) {
	client, err := storage.NewClient(ctx, o.ClientOptions...)
	if err != nil {
		return nil, fmt.Errorf("gs://%s/%s: %w", bucket, object, err)
	}
	r, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("gs://%s/%s: %w", bucket, object, err)
	}
	return &gcsReader{r, client}, nil
}

// GCSOptions returns storage client options for the given
// credentials. If anonymous is set, requests are unauthenticated. If
// tokenFile is non-empty, it names a file holding an OAuth2 access
// token. Otherwise the client uses application default credentials.
func GCSOptions(anonymous bool, tokenFile string) ([]option.ClientOption, error) {
	switch {
	case anonymous && tokenFile != "":
		return nil, fmt.Errorf("anonymous access and a token file are mutually exclusive")
	case anonymous:
		return []option.ClientOption{option.WithoutAuthentication()}, nil
	case tokenFile != "":
		data, err := os.ReadFile(tokenFile)
		if err != nil {
			return nil, err
		}
		tok := strings.TrimSpace(string(data))
		if tok == "" {
			return nil, fmt.Errorf("%s: empty access token", tokenFile)
		}
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: tok, TokenType: "Bearer"})
		return []option.ClientOption{option.WithTokenSource(ts)}, nil
	}
	return nil, nil
}
