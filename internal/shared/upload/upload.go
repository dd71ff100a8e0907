package upload

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"

	"videocatalog-backend/internal/infrastructure/storage"

	"github.com/rs/zerolog/log"
)

// Uploadable is implemented by entity types that own uploaded files.
// UploadDir is the blob-store prefix for the entity's assets,
// e.g. videos/{id}.
type Uploadable interface {
	UploadDir() string
}

// FileField pairs a form field name with its uploaded file.
// A nil Header means the field was not supplied.
type FileField struct {
	Field  string
	Header *multipart.FileHeader
}

// StoredFile records a generated name so callers can both persist the
// reference and know what to roll back.
type StoredFile struct {
	Field string
	Name  string
}

// Manager persists and deletes uploaded files against the blob store,
// decoupling the entity's stored reference (a name) from physical
// storage.
type Manager struct {
	store storage.Store
}

func NewManager(store storage.Store) *Manager {
	return &Manager{store: store}
}

// RandomName generates a unique file name preserving the original
// extension. Only uniqueness matters, not the exact scheme.
func RandomName(original string) string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("upload: rand failed: %v", err))
	}
	return hex.EncodeToString(buf) + filepath.Ext(original)
}

// Store writes one uploaded file under dir and returns the generated
// name for persistence on the owning row.
func (m *Manager) Store(ctx context.Context, dir string, fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open uploaded file %s: %w", fh.Filename, err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("read uploaded file %s: %w", fh.Filename, err)
	}

	name := RandomName(fh.Filename)
	key := dir + "/" + name

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := m.store.Put(ctx, key, data, contentType); err != nil {
		return "", fmt.Errorf("store %s: %w", key, err)
	}

	return name, nil
}

// StoreAll stores every supplied file field. On failure the files
// already written in this call are removed before returning.
func (m *Manager) StoreAll(ctx context.Context, dir string, fields []FileField) ([]StoredFile, error) {
	var stored []StoredFile
	for _, f := range fields {
		if f.Header == nil {
			continue
		}
		name, err := m.Store(ctx, dir, f.Header)
		if err != nil {
			m.Rollback(ctx, dir, stored)
			return nil, err
		}
		stored = append(stored, StoredFile{Field: f.Field, Name: name})
	}
	return stored, nil
}

// Delete removes one stored file. Missing files are a no-op.
func (m *Manager) Delete(ctx context.Context, dir, name string) error {
	if name == "" {
		return nil
	}
	return m.store.Delete(ctx, dir+"/"+name)
}

// Rollback best-effort deletes files stored earlier in a failed
// operation. Errors are logged, not returned: the caller is already
// unwinding.
func (m *Manager) Rollback(ctx context.Context, dir string, stored []StoredFile) {
	for _, f := range stored {
		if err := m.Delete(ctx, dir, f.Name); err != nil {
			log.Error().
				Err(err).
				Str("dir", dir).
				Str("name", f.Name).
				Msg("Failed to remove file during rollback")
		}
	}
}

// URL returns the public URL for an entity's stored file.
func (m *Manager) URL(dir, name string) string {
	if name == "" {
		return ""
	}
	return m.store.URL(dir + "/" + name)
}
