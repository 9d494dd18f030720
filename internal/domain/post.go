package domain

import (
	"context"
	"time"
)

type Post struct {
	ID          int       `gorm:"primaryKey" json:"id"`
	UserID      int       `gorm:"not null;index" json:"userId"`
	User        User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Title       string    `gorm:"size:20;not null" json:"title"`
	Description string    `gorm:"size:140;not null" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Post) TableName() string { return "posts" }

type PostStore interface {
	Create(ctx context.Context, p *Post) error
	// FindByID returns (nil, nil) when no row matches; the caller decides how
	// to render an absent post.
	FindByID(ctx context.Context, id int) (*Post, error)
	// Update matches id AND user_id, so a wrong owner reads as not-found.
	Update(ctx context.Context, id, userID int, cols map[string]any) (*Post, error)
	Delete(ctx context.Context, id int) (*Post, error)
	ListByUser(ctx context.Context, userID int) ([]Post, error)
}
