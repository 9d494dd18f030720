// Package apperr defines the closed error taxonomy that crosses the entity
// operation boundary, and the translation of structured storage failures into
// it. Only these error kinds are ever rendered to clients; anything else is
// logged server-side and surfaces as a generic 500.
package apperr

import "fmt"

type Kind int

const (
	KindInputValidation Kind = iota
	KindMutation
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindInputValidation:
		return "input_validation"
	case KindMutation:
		return "mutation"
	case KindNotFound:
		return "not_found"
	}
	return "unknown"
}

// Entry is one structured sub-error. The field set covers all three entry
// shapes (validation, mutation, missing-resource); unused fields are omitted
// from the JSON body.
type Entry struct {
	Location   string `json:"location,omitempty"`
	Msg        string `json:"msg"`
	Path       string `json:"path,omitempty"`
	Type       string `json:"type,omitempty"`
	Value      any    `json:"value,omitempty"`
	ResourceID int    `json:"resourceId,omitempty"`
}

// Error carries a human-readable message plus the structured entries rendered
// in the `errors` response body. foreignKey marks the mutation sub-case that
// must not confirm the referenced resource exists.
type Error struct {
	Kind       Kind
	Message    string
	Entries    []Entry
	foreignKey bool
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// ForeignKey reports whether this is the owner-obscuring mutation sub-case.
func (e *Error) ForeignKey() bool { return e.foreignKey }

// Status maps the taxonomy to HTTP status codes. A foreign-key mutation
// failure is 403 rather than 400: answering 400/404 would confirm or deny
// the referenced owner's existence.
func (e *Error) Status() int {
	switch e.Kind {
	case KindNotFound:
		return 404
	case KindMutation:
		if e.foreignKey {
			return 403
		}
		return 400
	default:
		return 400
	}
}

func Validation(msg string, entries []Entry) *Error {
	return &Error{Kind: KindInputValidation, Message: msg, Entries: entries}
}

func Mutation(msg string, entries []Entry) *Error {
	return &Error{Kind: KindMutation, Message: msg, Entries: entries}
}

func NotFound(msg string, entries []Entry) *Error {
	return &Error{Kind: KindNotFound, Message: msg, Entries: entries}
}
