package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/minseo-dev/customerdesk/internal/model"
)

type MessageRepository interface {
	// Дописать сообщение в журнал.
	Create(ctx context.Context, msg *model.Message) error
	// Последние limit сообщений в хронологическом порядке.
	ListRecent(ctx context.Context, limit int) ([]model.Message, error)
}

type GormMessageRepository struct {
	db *gorm.DB
}

func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

func (r *GormMessageRepository) Create(ctx context.Context, msg *model.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *GormMessageRepository) ListRecent(ctx context.Context, limit int) ([]model.Message, error) {
	messages := []model.Message{}
	q := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&messages).Error; err != nil {
		return nil, err
	}

	// Выдаём от старых к новым.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}
