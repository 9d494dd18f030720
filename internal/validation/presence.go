package validation

import (
	"fmt"
	"strings"

	"go-microblog-api/internal/apperr"
)

// Presence policies gate whether a write proceeds at all. They check key
// existence only; value validity is the rule layer's job.

// RequireAll returns one entry per required field absent from the body.
func RequireAll(body map[string]any, fields []string) []apperr.Entry {
	var entries []apperr.Entry
	for _, f := range fields {
		if _, ok := body[f]; ok {
			continue
		}
		entries = append(entries, apperr.Entry{
			Location: "body",
			Msg:      fmt.Sprintf("Missing required input: %s", f),
			Path:     f,
			Type:     "field",
		})
	}
	return entries
}

// RequireAtLeastOne passes when any of the given keys is present, otherwise
// it returns a single entry naming the whole field set.
func RequireAtLeastOne(body map[string]any, fields []string) []apperr.Entry {
	for _, f := range fields {
		if _, ok := body[f]; ok {
			return nil
		}
	}
	return []apperr.Entry{{
		Location: "body",
		Msg:      "At least one of the input fields must be defined.",
		Type:     "field",
		Value:    strings.Join(fields, ", "),
	}}
}
