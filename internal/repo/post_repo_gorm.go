package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"go-microblog-api/internal/domain"
)

type PostRepo struct{ db *gorm.DB }

func NewPostRepo(db *gorm.DB) *PostRepo { return &PostRepo{db: db} }

func (r *PostRepo) Create(ctx context.Context, p *domain.Post) error {
	return storageError(r.db.WithContext(ctx).Create(p).Error)
}

func (r *PostRepo) FindByID(ctx context.Context, id int) (*domain.Post, error) {
	var p domain.Post
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storageError(err)
	}
	return &p, nil
}

// Update matches id AND user_id: a caller naming the wrong owner gets the
// same not-found as a missing row.
func (r *PostRepo) Update(ctx context.Context, id, userID int, cols map[string]any) (*domain.Post, error) {
	var p domain.Post
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&p, "id = ? AND user_id = ?", id, userID).Error; err != nil {
			return err
		}
		if err := tx.Model(&p).Updates(cols).Error; err != nil {
			return err
		}
		return tx.First(&p, "id = ?", id).Error
	})
	if err != nil {
		return nil, storageError(err)
	}
	return &p, nil
}

func (r *PostRepo) Delete(ctx context.Context, id int) (*domain.Post, error) {
	var p domain.Post
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&p, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Post{}, "id = ?", id).Error
	})
	if err != nil {
		return nil, storageError(err)
	}
	return &p, nil
}

func (r *PostRepo) ListByUser(ctx context.Context, userID int) ([]domain.Post, error) {
	posts := make([]domain.Post, 0)
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&posts).Error
	if err != nil {
		return nil, storageError(err)
	}
	return posts, nil
}
