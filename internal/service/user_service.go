// Package service implements the entity operations: each one gates the write
// with a presence policy, decodes the body, calls the storage collaborator,
// and translates storage failures into the error taxonomy. Nothing else is
// allowed to escape to the transport layer.
package service

import (
	"context"

	"go.uber.org/zap"

	"go-microblog-api/internal/apperr"
	"go-microblog-api/internal/domain"
	"go-microblog-api/internal/validation"
)

var requiredUserFields = []string{"fullName", "email", "username", "dateOfBirth"}

type UserService struct {
	store domain.UserStore
	log   *zap.Logger
}

func NewUserService(store domain.UserStore, log *zap.Logger) *UserService {
	return &UserService{store: store, log: log}
}

// Create requires all four business fields to be present; the field rules
// have already run at the transport boundary.
func (s *UserService) Create(ctx context.Context, body map[string]any) (*domain.User, error) {
	if entries := validation.RequireAll(body, requiredUserFields); len(entries) > 0 {
		return nil, apperr.Validation("Invalid input", entries)
	}
	in, err := validation.DecodeUser(body)
	if err != nil {
		return nil, err
	}
	u := &domain.User{
		FullName:    *in.FullName,
		Email:       *in.Email,
		Username:    *in.Username,
		DateOfBirth: *in.DateOfBirth,
	}
	if err := s.store.Create(ctx, u); err != nil {
		return nil, apperr.FromStorage(s.log, "User", err)
	}
	return u, nil
}

func (s *UserService) Retrieve(ctx context.Context, id int) (*domain.User, error) {
	u, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.FromStorage(s.log, "User", err)
	}
	if u == nil {
		return nil, apperr.NotFound("User not found", []apperr.Entry{{
			Msg:        "User does not exist.",
			ResourceID: id,
		}})
	}
	return u, nil
}

// Update requires at least one business field key in the body.
func (s *UserService) Update(ctx context.Context, id int, body map[string]any) (*domain.User, error) {
	if entries := validation.RequireAtLeastOne(body, requiredUserFields); len(entries) > 0 {
		return nil, apperr.Validation("Invalid input", entries)
	}
	in, err := validation.DecodeUser(body)
	if err != nil {
		return nil, err
	}
	u, err := s.store.Update(ctx, id, in.Columns())
	if err != nil {
		return nil, apperr.FromStorage(s.log, "User", err)
	}
	return u, nil
}

// Delete hard-deletes the user and cascades to its posts, honoring erasure
// semantics. Returns the deleted row.
func (s *UserService) Delete(ctx context.Context, id int) (*domain.User, error) {
	u, err := s.store.Delete(ctx, id)
	if err != nil {
		return nil, apperr.FromStorage(s.log, "User", err)
	}
	return u, nil
}
