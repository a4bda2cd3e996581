package upload

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brandmarket/internal/database"
	"brandmarket/internal/domain"
	"brandmarket/internal/pkg/imaging"
	"brandmarket/internal/repository"
	"brandmarket/internal/storage"
)

func newUploadService(t *testing.T) *Service {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))

	store, err := storage.NewLocal(storage.Config{BasePath: t.TempDir()})
	require.NoError(t, err)
	return NewService(repository.NewUploadRepository(db), store, imaging.NewProcessor(85))
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUpload_StoresProcessedImage(t *testing.T) {
	svc := newUploadService(t)
	ctx := context.Background()

	u, err := svc.Upload(ctx, 7, "photo.png", bytes.NewReader(pngBytes(t, 64, 48)))
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, int64(7), u.UserID)
	assert.Equal(t, "image/png", u.MimeType)
	assert.True(t, strings.HasSuffix(u.FilePath, ".png"))
	assert.Greater(t, u.Size, int64(0))

	exists, err := svc.store.Exists(ctx, u.FilePath)
	require.NoError(t, err)
	assert.True(t, exists)

	mine, err := svc.ListMine(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestUpload_RejectsNonImages(t *testing.T) {
	svc := newUploadService(t)

	_, err := svc.Upload(context.Background(), 1, "notes.txt", strings.NewReader("plain text, not pixels"))
	assert.ErrorIs(t, err, ErrNotAnImage)
}

func TestDelete_OwnerAndAdminOnly(t *testing.T) {
	svc := newUploadService(t)
	ctx := context.Background()

	u, err := svc.Upload(ctx, 7, "photo.png", bytes.NewReader(pngBytes(t, 32, 32)))
	require.NoError(t, err)

	stranger := &domain.User{ID: 8, Role: domain.RoleClient}
	assert.ErrorIs(t, svc.Delete(ctx, stranger, u.ID), ErrNotYourFile)

	admin := &domain.User{ID: 1, Role: domain.RoleAdmin}
	require.NoError(t, svc.Delete(ctx, admin, u.ID))

	exists, err := svc.store.Exists(ctx, u.FilePath)
	require.NoError(t, err)
	assert.False(t, exists)

	assert.ErrorIs(t, svc.Delete(ctx, admin, u.ID), ErrNotFound)
}
