// Package validation evaluates declarative per-field rules against a raw JSON
// request body and implements the key-presence policies that gate writes. The
// error messages are a stable client contract and must not be reworded.
package validation

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"go-microblog-api/internal/apperr"
)

// MsgMissingBody is the single synthetic error for a missing, null, or empty
// request body. Per-field rules are skipped entirely in that case.
const MsgMissingBody = "Missing request body! Please send a JSON body with the request."

var vld = validator.New()

// check is one step of a field's rule chain. A failed type check stops the
// chain for that field; any other failure is recorded and evaluation moves on
// to the next check, so a single field can emit more than one diagnostic.
type check struct {
	ok        func(v any) bool
	msg       string
	typeCheck bool
}

// Rule is the declarative constraint chain for one body field.
type Rule struct {
	Field    string
	optional bool
	checks   []check
}

func Field(name string) *Rule { return &Rule{Field: name} }

// Optional skips the rule entirely when the key is absent from the body.
func (r *Rule) Optional() *Rule { r.optional = true; return r }

// String requires the value to be a JSON string. Failure skips the rest of
// the chain.
func (r *Rule) String(msg string) *Rule {
	r.checks = append(r.checks, check{
		ok:        func(v any) bool { _, ok := v.(string); return ok },
		msg:       msg,
		typeCheck: true,
	})
	return r
}

// NotEmpty fails on strings that are empty after trimming.
func (r *Rule) NotEmpty(msg string) *Rule {
	r.checks = append(r.checks, check{
		ok: func(v any) bool {
			s, _ := v.(string)
			return strings.TrimSpace(s) != ""
		},
		msg: msg,
	})
	return r
}

// MaxLen bounds the trimmed length in runes.
func (r *Rule) MaxLen(n int, msg string) *Rule {
	r.checks = append(r.checks, check{
		ok: func(v any) bool {
			s, _ := v.(string)
			return utf8.RuneCountInString(strings.TrimSpace(s)) <= n
		},
		msg: msg,
	})
	return r
}

// Email requires a standard email grammar and the RFC mail length bound.
func (r *Rule) Email(msg string) *Rule {
	r.checks = append(r.checks, check{
		ok: func(v any) bool {
			s, _ := v.(string)
			if utf8.RuneCountInString(s) > 254 {
				return false
			}
			return vld.Var(s, "email") == nil
		},
		msg: msg,
	})
	return r
}

// ISODate requires a parseable ISO-8601 calendar date.
func (r *Rule) ISODate(msg string) *Rule {
	r.checks = append(r.checks, check{
		ok: func(v any) bool {
			s, _ := v.(string)
			_, err := ParseDate(s)
			return err == nil
		},
		msg: msg,
	})
	return r
}

// Int requires an integral JSON number in [min, MaxInt32]. Numbers arrive
// from encoding/json as float64; strings, fractional values, and magnitudes
// that cannot convert to int safely are rejected.
func (r *Rule) Int(min int, msg string) *Rule {
	r.checks = append(r.checks, check{
		ok: func(v any) bool {
			f, ok := v.(float64)
			return ok && f == math.Trunc(f) && f >= float64(min) && f <= math.MaxInt32
		},
		msg:       msg,
		typeCheck: true,
	})
	return r
}

// Run evaluates every rule against the body and collects all violations, in
// rule declaration order. It never short-circuits at the request level.
func Run(body map[string]any, rules []*Rule) []apperr.Entry {
	var entries []apperr.Entry
	for _, r := range rules {
		v, present := body[r.Field]
		if !present && r.optional {
			continue
		}
		for _, c := range r.checks {
			if c.ok(v) {
				continue
			}
			entries = append(entries, apperr.Entry{
				Location: "body",
				Msg:      c.msg,
				Path:     r.Field,
				Type:     "field",
				Value:    v,
			})
			if c.typeCheck {
				break
			}
		}
	}
	return entries
}

// ParseDate parses an ISO-8601 calendar date, accepting a plain date or a
// full timestamp. The input is trimmed first, so an all-blank string fails.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// UserRules is the constraint set for User request bodies. All fields are
// optional here; required-ness per operation is the presence checker's job.
func UserRules() []*Rule {
	return []*Rule{
		Field("fullName").Optional().
			String("fullName must not be empty or contain blanks.").
			NotEmpty("fullName must not be empty or contain blanks.").
			MaxLen(255, "fullName must be between 1 and 255 characters."),
		Field("email").Optional().
			String("Invalid email provided.").
			Email("Invalid email provided."),
		Field("username").Optional().
			String("username must not be empty or contain blanks.").
			NotEmpty("username must not be empty or contain blanks.").
			MaxLen(15, "username must be less than or equal 15 characters."),
		Field("dateOfBirth").Optional().
			String("dateOfBirth must be defined as an ISO 8601 string.").
			NotEmpty("dateOfBirth must be defined as an ISO 8601 string.").
			ISODate("dateOfBirth must be a valid date in the format YYYY-MM-DD."),
	}
}

// PostRules is the constraint set for Post request bodies. userId is not
// optional: every Post write must name its owner.
func PostRules() []*Rule {
	return []*Rule{
		Field("userId").
			Int(1, "userId must be defined as part of the Post request as a non-negative integer."),
		Field("title").Optional().
			String("title must not be empty or contain blanks.").
			NotEmpty("title must not be empty or contain blanks.").
			MaxLen(20, "title must be between 1 and 20 characters."),
		Field("description").Optional().
			String("description must not be empty or contain blanks.").
			NotEmpty("description must not be empty or contain blanks.").
			MaxLen(140, "description must be between 1 and 140 characters, just like OG Twitter!"),
	}
}
