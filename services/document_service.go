package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Document kinds accepted on booking submission. government_id is mandatory;
// the rest are optional (guest_id only applies when booking for a relative).
const (
	DocGovernmentID = "government_id"
	DocBankID       = "bank_id"
	DocEmployeeID   = "employee_id"
	DocGuestID      = "guest_id"
)

// DocumentFile is an attachment as received from the client.
type DocumentFile struct {
	Filename string
	Data     []byte
}

// DocumentStore persists private documents and returns opaque storage paths.
// Paths are never browsable directly; admin views exchange them for signed
// URLs.
type DocumentStore interface {
	Save(ctx context.Context, kind string, file DocumentFile) (string, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

// LocalDocumentStore writes documents under a private directory outside the
// statically served tree, with uuid filenames so paths carry no guest data.
type LocalDocumentStore struct {
	BaseDir string
}

func NewLocalDocumentStore(baseDir string) *LocalDocumentStore {
	if baseDir == "" {
		baseDir = "private/documents"
	}
	return &LocalDocumentStore{BaseDir: baseDir}
}

func (s *LocalDocumentStore) Save(_ context.Context, kind string, file DocumentFile) (string, error) {
	if len(file.Data) == 0 {
		return "", errors.New("empty document")
	}

	dir := filepath.Join(s.BaseDir, kind)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir documents dir: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == "" {
		ext = ".bin"
	}
	filename := uuid.NewString() + ext
	fullpath := filepath.Join(dir, filename)

	if err := os.WriteFile(fullpath, file.Data, 0o600); err != nil {
		return "", fmt.Errorf("write document: %w", err)
	}

	return filepath.ToSlash(filepath.Join(kind, filename)), nil
}

func (s *LocalDocumentStore) Open(_ context.Context, path string) (io.ReadCloser, error) {
	// Reject traversal; stored paths are always "<kind>/<uuid>.<ext>".
	clean := filepath.Clean(filepath.FromSlash(path))
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return nil, errors.New("invalid document path")
	}
	return os.Open(filepath.Join(s.BaseDir, clean))
}
