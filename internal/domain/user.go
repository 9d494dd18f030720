package domain

import (
	"context"
	"time"
)

type User struct {
	ID          int       `gorm:"primaryKey" json:"id"`
	FullName    string    `gorm:"size:255;not null" json:"fullName"`
	Email       string    `gorm:"uniqueIndex;size:254;not null" json:"email"`
	Username    string    `gorm:"uniqueIndex;size:15;not null" json:"username"`
	DateOfBirth time.Time `gorm:"type:date;not null" json:"dateOfBirth"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// UserStore is the persistence collaborator for User rows. Implementations
// report constraint failures as *StorageError so callers can translate them
// without knowing the driver.
type UserStore interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id int) (*User, error)
	// Update applies the given columns and returns the reloaded row.
	Update(ctx context.Context, id int, cols map[string]any) (*User, error)
	// Delete removes the user and all owned posts in one transaction and
	// returns the deleted row.
	Delete(ctx context.Context, id int) (*User, error)
}
