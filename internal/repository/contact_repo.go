package repository

import (
	"context"
	"time"

	"brandmarket/internal/domain"

	"gorm.io/gorm"
)

type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

type contactMessageModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name"`
	Email     string    `gorm:"column:email"`
	Subject   string    `gorm:"column:subject"`
	Body      string    `gorm:"column:body"`
	IsRead    bool      `gorm:"column:is_read;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (contactMessageModel) TableName() string { return "contact_messages" }

func toDomainContact(m contactMessageModel) *domain.ContactMessage {
	return &domain.ContactMessage{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Subject:   m.Subject,
		Body:      m.Body,
		IsRead:    m.IsRead,
		CreatedAt: m.CreatedAt,
	}
}

func (r *ContactRepository) Create(ctx context.Context, msg *domain.ContactMessage) error {
	m := contactMessageModel{
		Name:    msg.Name,
		Email:   msg.Email,
		Subject: msg.Subject,
		Body:    msg.Body,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*msg = *toDomainContact(m)
	return nil
}

func (r *ContactRepository) List(ctx context.Context, onlyUnread bool, limit, offset int) ([]*domain.ContactMessage, int64, error) {
	q := r.db.WithContext(ctx).Model(&contactMessageModel{})
	if onlyUnread {
		q = q.Where("is_read = ?", false)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var models []contactMessageModel
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, err
	}

	messages := make([]*domain.ContactMessage, 0, len(models))
	for _, m := range models {
		messages = append(messages, toDomainContact(m))
	}
	return messages, total, nil
}

func (r *ContactRepository) MarkRead(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Model(&contactMessageModel{}).Where("id = ?", id).Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
