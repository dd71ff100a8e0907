package upload

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	failOn  int // fail the nth Put, 1-based; 0 never fails
	puts    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}}
}

func (s *fakeStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.puts++
	if s.failOn > 0 && s.puts == s.failOn {
		return errors.New("storage unavailable")
	}
	s.objects[key] = data
	return nil
}

func (s *fakeStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *fakeStore) DeleteByPrefix(ctx context.Context, prefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.objects {
		if strings.HasPrefix(key, prefix) {
			delete(s.objects, key)
		}
	}
	return nil
}

func (s *fakeStore) URL(key string) string {
	return "http://store.local/" + key
}

func (s *fakeStore) keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.objects))
	for k := range s.objects {
		keys = append(keys, k)
	}
	return keys
}

func makeFileHeader(t *testing.T, field, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	reader := multipart.NewReader(&buf, w.Boundary())
	form, err := reader.ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	require.Len(t, form.File[field], 1)
	return form.File[field][0]
}

func TestRandomNamePreservesExtension(t *testing.T) {
	name := RandomName("banner.png")
	assert.True(t, strings.HasSuffix(name, ".png"))
	assert.Len(t, name, 32+len(".png"))

	assert.NotEqual(t, RandomName("a.mp4"), RandomName("a.mp4"))
}

func TestStoreWritesUnderDir(t *testing.T) {
	store := newFakeStore()
	m := NewManager(store)

	fh := makeFileHeader(t, "thumb_file", "thumb.jpg", "image-bytes")

	name, err := m.Store(context.Background(), "videos/abc", fh)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".jpg"))

	keys := store.keys()
	require.Len(t, keys, 1)
	assert.Equal(t, "videos/abc/"+name, keys[0])
}

func TestStoreAllSkipsMissingFields(t *testing.T) {
	store := newFakeStore()
	m := NewManager(store)

	fields := []FileField{
		{Field: "thumb_file", Header: makeFileHeader(t, "thumb_file", "t.jpg", "x")},
		{Field: "banner_file", Header: nil},
	}

	stored, err := m.StoreAll(context.Background(), "videos/abc", fields)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "thumb_file", stored[0].Field)
}

func TestStoreAllRollsBackOnFailure(t *testing.T) {
	store := newFakeStore()
	store.failOn = 2
	m := NewManager(store)

	fields := []FileField{
		{Field: "thumb_file", Header: makeFileHeader(t, "thumb_file", "t.jpg", "x")},
		{Field: "banner_file", Header: makeFileHeader(t, "banner_file", "b.png", "y")},
	}

	stored, err := m.StoreAll(context.Background(), "videos/abc", fields)
	require.Error(t, err)
	assert.Nil(t, stored)

	// The first file was written and must have been removed again.
	assert.Empty(t, store.keys())
}

func TestDeleteEmptyNameIsNoop(t *testing.T) {
	store := newFakeStore()
	m := NewManager(store)

	require.NoError(t, m.Delete(context.Background(), "videos/abc", ""))
}

func TestURL(t *testing.T) {
	m := NewManager(newFakeStore())

	assert.Equal(t, "http://store.local/videos/abc/x.mp4", m.URL("videos/abc", "x.mp4"))
	assert.Equal(t, "", m.URL("videos/abc", ""))
}
