package service

import (
	"context"

	"go.uber.org/zap"

	"go-microblog-api/internal/apperr"
	"go-microblog-api/internal/domain"
	"go-microblog-api/internal/validation"
)

var requiredPostFields = []string{"userId", "title", "description"}

type PostService struct {
	store domain.PostStore
	log   *zap.Logger
}

func NewPostService(store domain.PostStore, log *zap.Logger) *PostService {
	return &PostService{store: store, log: log}
}

func (s *PostService) Create(ctx context.Context, body map[string]any) (*domain.Post, error) {
	if entries := validation.RequireAll(body, requiredPostFields); len(entries) > 0 {
		return nil, apperr.Validation("Invalid Post input.", entries)
	}
	in, err := validation.DecodePost(body)
	if err != nil {
		return nil, err
	}
	p := &domain.Post{
		UserID:      *in.UserID,
		Title:       *in.Title,
		Description: *in.Description,
	}
	if err := s.store.Create(ctx, p); err != nil {
		return nil, apperr.FromStorage(s.log, "Post", err)
	}
	return p, nil
}

// Retrieve returns (nil, nil) for an absent post. The transport layer renders
// that as 200 with an empty object, intentionally asymmetric with User
// retrieval.
func (s *PostService) Retrieve(ctx context.Context, id int) (*domain.Post, error) {
	p, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.FromStorage(s.log, "Post", err)
	}
	return p, nil
}

// Update requires userId (the owner match condition) plus at least one of
// title/description.
func (s *PostService) Update(ctx context.Context, id int, body map[string]any) (*domain.Post, error) {
	if entries := validation.RequireAll(body, []string{"userId"}); len(entries) > 0 {
		return nil, apperr.Validation("Invalid input", entries)
	}
	if entries := validation.RequireAtLeastOne(body, []string{"title", "description"}); len(entries) > 0 {
		return nil, apperr.Validation("Invalid input", entries)
	}
	in, err := validation.DecodePost(body)
	if err != nil {
		return nil, err
	}
	p, err := s.store.Update(ctx, id, *in.UserID, in.Columns())
	if err != nil {
		return nil, apperr.FromStorage(s.log, "Post", err)
	}
	return p, nil
}

func (s *PostService) Delete(ctx context.Context, id int) (*domain.Post, error) {
	p, err := s.store.Delete(ctx, id)
	if err != nil {
		return nil, apperr.FromStorage(s.log, "Post", err)
	}
	return p, nil
}

// ListByUser never fails on an unknown user; it just returns an empty slice.
func (s *PostService) ListByUser(ctx context.Context, userID int) ([]domain.Post, error) {
	posts, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.FromStorage(s.log, "Post", err)
	}
	return posts, nil
}
