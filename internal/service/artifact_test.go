package service_test

import (
	"context"
	"errors"
	"io"
	"os"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"carbex/internal/domain"
	"carbex/internal/service"
	"carbex/mocks"
)

func TestArtifactKey_Layout(t *testing.T) {
	orgID := uuid.MustParse("11111111-2222-3333-4444-555555555555")
	at := time.Date(2025, time.February, 3, 14, 5, 6, 789012345, time.UTC)

	key := service.ArtifactKey(orgID, service.ArtifactAdeme, 2024, at, "xlsx")
	assert.Equal(t, "reports/11111111-2222-3333-4444-555555555555/declaration-ademe_2024_20250203_140506_789012.xlsx", key)
}

func TestArtifactKey_DistinctWithinOneSecond(t *testing.T) {
	orgID := uuid.New()
	base := time.Date(2025, time.February, 3, 14, 5, 6, 0, time.UTC)

	a := service.ArtifactKey(orgID, service.ArtifactGHG, 2024, base.Add(10*time.Microsecond), "xlsx")
	b := service.ArtifactKey(orgID, service.ArtifactGHG, 2024, base.Add(20*time.Microsecond), "xlsx")
	assert.NotEqual(t, a, b)
}

func TestArtifactStore_Key(t *testing.T) {
	store := service.NewArtifactStore(new(mocks.MockObjectStorage), t.TempDir(), nil)
	key := store.Key(uuid.New(), service.ArtifactWord, 2023, "docx")
	assert.Regexp(t, regexp.MustCompile(`^reports/[0-9a-f-]{36}/bilan-carbone_2023_\d{8}_\d{6}_\d{6}\.docx$`), key)
}

func TestArtifactStore_Save_UploadsOnceAndCleansUp(t *testing.T) {
	dir := t.TempDir()
	storage := new(mocks.MockObjectStorage)
	uploads := captureUploads(storage)
	store := service.NewArtifactStore(storage, dir, nil)

	key, err := store.Save(context.Background(), "reports/x/a.pdf", "application/pdf", func(w io.Writer) error {
		_, err := io.WriteString(w, "%PDF-1.7 body")
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, "reports/x/a.pdf", key)
	assert.Equal(t, "%PDF-1.7 body", string(uploads.get(key)))
	storage.AssertNumberOfCalls(t, "Upload", 1)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestArtifactStore_Save_RenderFailure(t *testing.T) {
	dir := t.TempDir()
	storage := new(mocks.MockObjectStorage)
	store := service.NewArtifactStore(storage, dir, nil)

	_, err := store.Save(context.Background(), "reports/x/a.pdf", "application/pdf", func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return errors.New("template exploded")
	})
	assert.ErrorIs(t, err, domain.ErrRenderFailed)
	storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)

	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}

func TestArtifactStore_Save_StorageFailure(t *testing.T) {
	dir := t.TempDir()
	storage := new(mocks.MockObjectStorage)
	storage.On("Upload", mock.Anything, mock.Anything).Return(nil, errors.New("bucket gone"))
	store := service.NewArtifactStore(storage, dir, nil)

	_, err := store.Save(context.Background(), "reports/x/a.pdf", "application/pdf", func(w io.Writer) error {
		_, err := io.WriteString(w, "ok")
		return err
	})
	assert.ErrorIs(t, err, domain.ErrStorageFailed)
	assert.ErrorContains(t, err, "bucket gone")

	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}

func TestArtifactStore_Size(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	storage.On("Size", mock.Anything, "reports/x/a.pdf").Return(int64(2048), nil)
	storage.On("Size", mock.Anything, "reports/x/b.pdf").Return(int64(0), errors.New("404"))
	store := service.NewArtifactStore(storage, t.TempDir(), nil)

	size, err := store.Size(context.Background(), "reports/x/a.pdf")
	require.NoError(t, err)
	assert.Equal(t, int64(2048), size)

	_, err = store.Size(context.Background(), "reports/x/b.pdf")
	assert.ErrorIs(t, err, domain.ErrStorageFailed)
}
