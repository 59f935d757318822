package cachegw

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"

	gos3 "turbocache/pkg/s3"
)

var errObjectMissing = errors.New("object not found")

type fakeObject struct {
	data     []byte
	size     int64
	metadata map[string]string
}

// fakeStore is a map-backed ObjectStore for handler tests.
type fakeStore struct {
	mu      sync.Mutex
	objects map[string]fakeObject
	putErr  error
	getErr  error
	headErr error
	puts    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: make(map[string]fakeObject)}
}

func (f *fakeStore) PutObject(_ context.Context, _, key string, body io.Reader, size int64, metadata map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.puts++
	if f.putErr != nil {
		return f.putErr
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}

	meta := make(map[string]string, len(metadata))
	for k, v := range metadata {
		meta[k] = v
	}
	f.objects[key] = fakeObject{data: data, size: size, metadata: meta}
	return nil
}

func (f *fakeStore) GetObject(_ context.Context, _, key string) (io.ReadCloser, gos3.ObjectInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return nil, gos3.ObjectInfo{}, f.getErr
	}
	obj, ok := f.objects[key]
	if !ok {
		return nil, gos3.ObjectInfo{}, errObjectMissing
	}
	return io.NopCloser(bytes.NewReader(obj.data)), gos3.ObjectInfo{Size: obj.size, Metadata: obj.metadata}, nil
}

func (f *fakeStore) HeadObject(_ context.Context, _, key string) (gos3.ObjectInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.headErr != nil {
		return gos3.ObjectInfo{}, f.headErr
	}
	obj, ok := f.objects[key]
	if !ok {
		return gos3.ObjectInfo{}, errObjectMissing
	}
	return gos3.ObjectInfo{Size: obj.size, Metadata: obj.metadata}, nil
}
