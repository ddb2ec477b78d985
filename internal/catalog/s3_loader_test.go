package catalog

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLoader is a mock implementation of the Loader interface for testing.
type mockLoader struct {
	loadFunc func(ctx context.Context, filePath string) ([]Entry, error)
}

func (m *mockLoader) Load(ctx context.Context, filePath string) ([]Entry, error) {
	if m.loadFunc != nil {
		return m.loadFunc(ctx, filePath)
	}
	return nil, errors.New("not implemented")
}

// fakeS3 serves objects from memory.
type fakeS3 struct {
	objects map[string][]byte
	err     error
	gotKey  string
}

func (f *fakeS3) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.gotKey = aws.ToString(params.Key)
	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.objects[f.gotKey]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(body))}, nil
}

func TestS3Loader_Load_Success(t *testing.T) {
	client := &fakeS3{objects: map[string][]byte{
		"catalog/vegetables.gz": gzipLines(t, []string{"Carrot,120", "# skip", "Onion,80"}),
	}}
	loader := newS3Loader(client, "veggie-bucket", zerolog.Nop())

	entries, err := loader.Load(context.Background(), "catalog/vegetables.gz")

	require.NoError(t, err)
	assert.Equal(t, "catalog/vegetables.gz", client.gotKey)
	assert.Equal(t, []Entry{{Name: "Carrot", UnitPrice: 120}, {Name: "Onion", UnitPrice: 80}}, entries)
}

func TestS3Loader_Load_GetObjectFails(t *testing.T) {
	client := &fakeS3{err: errors.New("access denied")}
	loader := newS3Loader(client, "veggie-bucket", zerolog.Nop())

	entries, err := loader.Load(context.Background(), "catalog/vegetables.gz")

	require.Error(t, err)
	assert.Nil(t, entries)
	assert.Contains(t, err.Error(), "bucket=veggie-bucket")
	assert.Contains(t, err.Error(), "access denied")
}

func TestS3Loader_Load_MalformedObject(t *testing.T) {
	client := &fakeS3{objects: map[string][]byte{
		"bad.gz": gzipLines(t, []string{"Carrot"}),
	}}
	loader := newS3Loader(client, "veggie-bucket", zerolog.Nop())

	_, err := loader.Load(context.Background(), "bad.gz")

	assert.ErrorIs(t, err, ErrMalformedLine)
	assert.Contains(t, err.Error(), "s3://veggie-bucket/bad.gz: line 1")
}

func TestFallbackLoader_S3Success(t *testing.T) {
	s3Entries := []Entry{{Name: "S3 carrot", UnitPrice: 1}}
	s3Loader := &mockLoader{
		loadFunc: func(ctx context.Context, filePath string) ([]Entry, error) {
			assert.Equal(t, "catalog/vegetables.gz", filePath, "S3 key should have prefix")
			return s3Entries, nil
		},
	}
	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, filePath string) ([]Entry, error) {
			t.Error("file loader should not be called when S3 succeeds")
			return nil, errors.New("should not be called")
		},
	}

	fallback := NewFallbackLoader(s3Loader, fileLoader, "catalog/", true, zerolog.Nop())

	entries, err := fallback.Load(context.Background(), "vegetables.gz")
	require.NoError(t, err)
	assert.Equal(t, s3Entries, entries)
}

func TestFallbackLoader_S3FailsFallsBackToLocal(t *testing.T) {
	localEntries := []Entry{{Name: "Local leek", UnitPrice: 2}}
	s3Loader := &mockLoader{
		loadFunc: func(ctx context.Context, filePath string) ([]Entry, error) {
			return nil, errors.New("S3 connection failed")
		},
	}
	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, filePath string) ([]Entry, error) {
			assert.Equal(t, "vegetables.gz", filePath, "local file path should not have prefix")
			return localEntries, nil
		},
	}

	fallback := NewFallbackLoader(s3Loader, fileLoader, "catalog/", true, zerolog.Nop())

	entries, err := fallback.Load(context.Background(), "vegetables.gz")
	require.NoError(t, err)
	assert.Equal(t, localEntries, entries)
}

func TestFallbackLoader_S3Disabled(t *testing.T) {
	s3Loader := &mockLoader{
		loadFunc: func(ctx context.Context, filePath string) ([]Entry, error) {
			t.Error("S3 loader should not be called when S3 is disabled")
			return nil, errors.New("should not be called")
		},
	}
	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, filePath string) ([]Entry, error) {
			return []Entry{{Name: "Onion", UnitPrice: 3}}, nil
		},
	}

	fallback := NewFallbackLoader(s3Loader, fileLoader, "catalog/", false, zerolog.Nop())

	entries, err := fallback.Load(context.Background(), "vegetables.gz")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFallbackLoader_S3LoaderNil(t *testing.T) {
	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, filePath string) ([]Entry, error) {
			return []Entry{{Name: "Onion", UnitPrice: 3}}, nil
		},
	}

	fallback := NewFallbackLoader(nil, fileLoader, "catalog/", true, zerolog.Nop())

	entries, err := fallback.Load(context.Background(), "vegetables.gz")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFallbackLoader_BothFail(t *testing.T) {
	s3Loader := &mockLoader{
		loadFunc: func(ctx context.Context, filePath string) ([]Entry, error) {
			return nil, errors.New("S3 failed")
		},
	}
	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, filePath string) ([]Entry, error) {
			return nil, errors.New("file not found")
		},
	}

	fallback := NewFallbackLoader(s3Loader, fileLoader, "catalog/", true, zerolog.Nop())

	entries, err := fallback.Load(context.Background(), "vegetables.gz")
	require.Error(t, err)
	assert.Nil(t, entries)
	assert.Contains(t, err.Error(), "file not found")
}
