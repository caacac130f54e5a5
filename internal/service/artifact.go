package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"carbex/internal/domain"
	"carbex/internal/port"
)

// ArtifactKind names the document family in a storage key.
type ArtifactKind string

const (
	ArtifactAdeme              ArtifactKind = "declaration-ademe"
	ArtifactGHG                ArtifactKind = "ghg-protocol-report"
	ArtifactWord               ArtifactKind = "bilan-carbone"
	ArtifactPDFSummary         ArtifactKind = "rapport-summary"
	ArtifactPDFDetailed        ArtifactKind = "rapport-detailed"
	ArtifactPDFMethodologyNote ArtifactKind = "rapport-methodology"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	contentTypePDF  = "application/pdf"
)

// ArtifactKey builds reports/{org}/{kind}_{year}_{timestamp}.{ext}. The
// timestamp carries microseconds so concurrent exports get distinct keys.
func ArtifactKey(organizationID uuid.UUID, kind ArtifactKind, year int, at time.Time, ext string) string {
	at = at.UTC()
	return fmt.Sprintf("reports/%s/%s_%d_%s_%06d.%s",
		organizationID, kind, year, at.Format("20060102_150405"), at.Nanosecond()/1000, ext)
}

// ArtifactStore renders documents into a private temp file and then puts
// the finished file to object storage in one upload.
type ArtifactStore struct {
	storage port.ObjectStorage
	tempDir string
	now     func() time.Time
	logger  *zap.Logger
}

// NewArtifactStore creates an ArtifactStore writing temp files under tempDir
// (the OS default when empty).
func NewArtifactStore(storage port.ObjectStorage, tempDir string, logger *zap.Logger) *ArtifactStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ArtifactStore{storage: storage, tempDir: tempDir, now: time.Now, logger: logger}
}

// Key builds the storage key for a new artifact.
func (a *ArtifactStore) Key(organizationID uuid.UUID, kind ArtifactKind, year int, ext string) string {
	return ArtifactKey(organizationID, kind, year, a.now(), ext)
}

// Save runs render against a temp file and uploads the result under key.
// Render errors wrap domain.ErrRenderFailed and upload errors wrap
// domain.ErrStorageFailed. The temp file is removed in every case.
func (a *ArtifactStore) Save(ctx context.Context, key, contentType string, render func(w io.Writer) error) (string, error) {
	f, err := os.CreateTemp(a.tempDir, "carbex-export-*")
	if err != nil {
		return "", fmt.Errorf("%w: creating temp file: %w", domain.ErrRenderFailed, err)
	}
	defer func() {
		_ = f.Close()
		if rmErr := os.Remove(f.Name()); rmErr != nil && !os.IsNotExist(rmErr) {
			a.logger.Warn("artifactStore.Save: temp file cleanup failed",
				zap.String("path", f.Name()), zap.Error(rmErr))
		}
	}()

	if err := render(f); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrRenderFailed, err)
	}
	size, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrRenderFailed, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrRenderFailed, err)
	}

	if _, err := a.storage.Upload(ctx, port.UploadInput{
		Key:         key,
		Body:        f,
		ContentType: contentType,
		Size:        size,
	}); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrStorageFailed, err)
	}

	a.logger.Info("artifactStore.Save: artifact stored", zap.String("key", key), zap.Int64("size", size))
	return key, nil
}

// Size returns the stored size of an artifact.
func (a *ArtifactStore) Size(ctx context.Context, key string) (int64, error) {
	size, err := a.storage.Size(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrStorageFailed, err)
	}
	return size, nil
}
