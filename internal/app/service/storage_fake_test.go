package service

import (
	"context"
	"errors"
	"fmt"
)

// fakeStorage is an in-memory ImageStorage that records every call, so tests
// can assert on upload/delete ordering and on compensation behavior.
type fakeStorage struct {
	uploads   []string
	deletes   []string
	uploadErr error
	deleteErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{}
}

func (f *fakeStorage) Upload(_ context.Context, key string, _ []byte, _ string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.uploads = append(f.uploads, key)
	return fmt.Sprintf("https://cdn.example.com/%s", key), nil
}

func (f *fakeStorage) Delete(_ context.Context, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletes = append(f.deletes, key)
	return nil
}

func (f *fakeStorage) DeleteMany(_ context.Context, keys []string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletes = append(f.deletes, keys...)
	return nil
}

var errStorageDown = errors.New("storage unavailable")
