package adapter

import (
	"context"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
)

// Storage reads pipeline input text from Cloud Storage.
type Storage interface {
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}

type storageClient struct {
	bucketName string
	client     *storage.Client
}

// NewStorage creates a Cloud Storage client bound to a bucket.
func NewStorage(ctx context.Context, bucketName string) (Storage, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client")
	}

	return &storageClient{
		bucketName: bucketName,
		client:     client,
	}, nil
}

func (s *storageClient) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	obj := s.client.Bucket(s.bucketName).Object(key)
	reader, err := obj.NewReader(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read from storage", goerr.Value("key", key))
	}

	return reader, nil
}

// LoadText reads the raw input text for the pipeline. Accepted forms:
//
//	"-"                stdin
//	"gs://bucket/key"  Cloud Storage object
//	anything else      local file path
func LoadText(ctx context.Context, path string) (string, error) {
	switch {
	case path == "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", goerr.Wrap(err, "failed to read stdin")
		}
		return string(data), nil

	case strings.HasPrefix(path, "gs://"):
		bucket, key, ok := strings.Cut(strings.TrimPrefix(path, "gs://"), "/")
		if !ok || bucket == "" || key == "" {
			return "", goerr.New("invalid gs:// path", goerr.V("path", path))
		}

		st, err := NewStorage(ctx, bucket)
		if err != nil {
			return "", err
		}
		r, err := st.Get(ctx, key)
		if err != nil {
			return "", err
		}
		defer r.Close()

		data, err := io.ReadAll(r)
		if err != nil {
			return "", goerr.Wrap(err, "failed to read storage object", goerr.V("path", path))
		}
		return string(data), nil

	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return "", goerr.Wrap(err, "failed to read input file", goerr.V("path", path))
		}
		return string(data), nil
	}
}
