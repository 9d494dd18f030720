package validation

import (
	"fmt"
	"math"
	"strings"
	"time"

	"go-microblog-api/internal/apperr"
)

// Typed decode of a validated body. Pointer fields distinguish "key absent"
// from zero values; strings arrive trimmed and the date parsed, matching the
// sanitizers the rule layer promises.

type UserInput struct {
	FullName    *string
	Email       *string
	Username    *string
	DateOfBirth *time.Time
}

// Columns returns the present fields as column assignments for an update.
func (in *UserInput) Columns() map[string]any {
	cols := map[string]any{}
	if in.FullName != nil {
		cols["full_name"] = *in.FullName
	}
	if in.Email != nil {
		cols["email"] = *in.Email
	}
	if in.Username != nil {
		cols["username"] = *in.Username
	}
	if in.DateOfBirth != nil {
		cols["date_of_birth"] = *in.DateOfBirth
	}
	return cols
}

func DecodeUser(body map[string]any) (*UserInput, error) {
	in := &UserInput{}
	var err error
	if in.FullName, err = stringField(body, "fullName"); err != nil {
		return nil, err
	}
	if in.Email, err = stringField(body, "email"); err != nil {
		return nil, err
	}
	if in.Username, err = stringField(body, "username"); err != nil {
		return nil, err
	}
	dob, err := stringField(body, "dateOfBirth")
	if err != nil {
		return nil, err
	}
	if dob != nil {
		t, err := ParseDate(*dob)
		if err != nil {
			return nil, decodeErr("dateOfBirth", *dob)
		}
		in.DateOfBirth = &t
	}
	return in, nil
}

type PostInput struct {
	UserID      *int
	Title       *string
	Description *string
}

// Columns returns the updatable fields; userId is a match condition, not an
// assignment.
func (in *PostInput) Columns() map[string]any {
	cols := map[string]any{}
	if in.Title != nil {
		cols["title"] = *in.Title
	}
	if in.Description != nil {
		cols["description"] = *in.Description
	}
	return cols
}

func DecodePost(body map[string]any) (*PostInput, error) {
	in := &PostInput{}
	var err error
	if in.UserID, err = intField(body, "userId"); err != nil {
		return nil, err
	}
	if in.Title, err = stringField(body, "title"); err != nil {
		return nil, err
	}
	if in.Description, err = stringField(body, "description"); err != nil {
		return nil, err
	}
	return in, nil
}

func stringField(body map[string]any, field string) (*string, error) {
	v, ok := body[field]
	if !ok {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, decodeErr(field, v)
	}
	s = strings.TrimSpace(s)
	return &s, nil
}

func intField(body map[string]any, field string) (*int, error) {
	v, ok := body[field]
	if !ok {
		return nil, nil
	}
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return nil, decodeErr(field, v)
	}
	n := int(f)
	return &n, nil
}

func decodeErr(field string, v any) error {
	return apperr.Validation("Invalid input", []apperr.Entry{{
		Location: "body",
		Msg:      fmt.Sprintf("Invalid value for input: %s", field),
		Path:     field,
		Type:     "field",
		Value:    v,
	}})
}
