package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"brandmarket/internal/domain"
	"brandmarket/internal/pkg/imaging"
	"brandmarket/internal/repository"
	"brandmarket/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxUploadSize bounds the raw file before decoding.
const MaxUploadSize = 10 << 20

type Service struct {
	repo      *repository.UploadRepository
	store     storage.Storage
	processor *imaging.Processor
}

func NewService(repo *repository.UploadRepository, store storage.Storage, processor *imaging.Processor) *Service {
	return &Service{repo: repo, store: store, processor: processor}
}

// Upload validates, downscales and stores an image. Only jpeg and png pass;
// everything is re-encoded, so the original bytes are never served.
func (s *Service) Upload(ctx context.Context, userID int64, originalName string, reader io.Reader) (*domain.Upload, error) {
	raw, err := io.ReadAll(io.LimitReader(reader, MaxUploadSize+1))
	if err != nil {
		return nil, err
	}
	if len(raw) > MaxUploadSize {
		return nil, ErrFileTooBig
	}
	if !imaging.IsImage(bytes.NewReader(raw)) {
		return nil, ErrNotAnImage
	}

	processed, format, err := s.processor.Process(bytes.NewReader(raw), imaging.SizeDetail)
	if err != nil {
		return nil, ErrNotAnImage
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, processed); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	ext := "jpg"
	contentType := "image/jpeg"
	if format == "png" {
		ext = "png"
		contentType = "image/png"
	}
	path := fmt.Sprintf("%d/%s.%s", userID, id, ext)

	if err := s.store.Save(ctx, path, bytes.NewReader(buf.Bytes()), contentType); err != nil {
		return nil, err
	}

	u := &domain.Upload{
		ID:           id,
		UserID:       userID,
		OriginalName: originalName,
		FilePath:     path,
		FileURL:      s.store.URL(path),
		MimeType:     contentType,
		Size:         int64(buf.Len()),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		// the row is the source of truth; without it the object is garbage
		_ = s.store.Delete(ctx, path)
		return nil, err
	}
	return u, nil
}

// Delete removes the file and its row. Admins may delete anyone's upload.
func (s *Service) Delete(ctx context.Context, user *domain.User, id string) error {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if u.UserID != user.ID && user.Role != domain.RoleAdmin {
		return ErrNotYourFile
	}

	if err := s.store.Delete(ctx, u.FilePath); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListMine(ctx context.Context, userID int64) ([]*domain.Upload, error) {
	return s.repo.ListByUserID(ctx, userID)
}
