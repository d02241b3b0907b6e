package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"shariahaudit-backend/config"
)

// DocumentStore abstracts where the reference standards documents live.
// Ingestion only ever lists and reads; the store is never written to.
type DocumentStore interface {
	// List returns the names of the available standards documents.
	List(ctx context.Context) ([]string, error)

	// Open returns a reader for one document by name.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// StoreType identifies the document source backend.
type StoreType string

const (
	StoreTypeLocal StoreType = "local"
	StoreTypeS3    StoreType = "s3"
)

// NewDocumentStore builds a store from startup configuration.
func NewDocumentStore(cfg *config.Config) (DocumentStore, error) {
	switch StoreType(cfg.StorageType) {
	case StoreTypeLocal:
		return NewLocalStore(cfg.StandardsDir), nil
	case StoreTypeS3:
		return NewS3Store(cfg.S3Bucket, cfg.S3Region)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.StorageType)
	}
}

// isTextDocument filters listings down to the plain-text formats the
// ingestor can read.
func isTextDocument(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".md":
		return true
	}
	return false
}
