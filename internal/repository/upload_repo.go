package repository

import (
	"context"
	"time"

	"brandmarket/internal/domain"

	"gorm.io/gorm"
)

type UploadRepository struct {
	db *gorm.DB
}

func NewUploadRepository(db *gorm.DB) *UploadRepository {
	return &UploadRepository{db: db}
}

type uploadModel struct {
	ID           string    `gorm:"column:id;primaryKey"`
	UserID       int64     `gorm:"column:user_id;index"`
	OriginalName string    `gorm:"column:original_name"`
	FilePath     string    `gorm:"column:file_path"`
	FileURL      string    `gorm:"column:file_url"`
	MimeType     string    `gorm:"column:mime_type"`
	Size         int64     `gorm:"column:size"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (uploadModel) TableName() string { return "uploads" }

func toDomainUpload(m uploadModel) *domain.Upload {
	return &domain.Upload{
		ID:           m.ID,
		UserID:       m.UserID,
		OriginalName: m.OriginalName,
		FilePath:     m.FilePath,
		FileURL:      m.FileURL,
		MimeType:     m.MimeType,
		Size:         m.Size,
		CreatedAt:    m.CreatedAt,
	}
}

func (r *UploadRepository) Create(ctx context.Context, u *domain.Upload) error {
	m := uploadModel{
		ID:           u.ID,
		UserID:       u.UserID,
		OriginalName: u.OriginalName,
		FilePath:     u.FilePath,
		FileURL:      u.FileURL,
		MimeType:     u.MimeType,
		Size:         u.Size,
		CreatedAt:    u.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *UploadRepository) GetByID(ctx context.Context, id string) (*domain.Upload, error) {
	var m uploadModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return toDomainUpload(m), nil
}

func (r *UploadRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&uploadModel{}).Error
}

func (r *UploadRepository) ListByUserID(ctx context.Context, userID int64) ([]*domain.Upload, error) {
	var models []uploadModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	uploads := make([]*domain.Upload, 0, len(models))
	for _, m := range models {
		uploads = append(uploads, toDomainUpload(m))
	}
	return uploads, nil
}
