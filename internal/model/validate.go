package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ValidationError holds a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation failure on a named field.
type FieldError struct {
	Field   string
	Message string
}

// Error formats the validation error as a semicolon-separated list of field messages.
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasErrors reports whether the validation error contains any field errors.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

func (e *ValidationError) add(field, format string, args ...any) {
	e.Errors = append(e.Errors, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// ValidateReview checks a review before it is pushed.
func ValidateReview(r *Review) error {
	var ve ValidationError
	if strings.TrimSpace(r.Comment) == "" {
		ve.add("comment", "is required")
	}
	if r.Rating < 0 || r.Rating > MaxReviewRating {
		ve.add("rating", "must be between 0 and %g, got %g", MaxReviewRating, r.Rating)
	}
	if ve.HasErrors() {
		return &ve
	}
	return nil
}

// ValidateUmkm checks a business record stored under key.
func ValidateUmkm(key string, u *Umkm) error {
	var ve ValidationError
	if u.ID != key {
		ve.add("id", "must match key %q, got %q", key, u.ID)
	}
	if strings.TrimSpace(u.Name) == "" {
		ve.add("name", "is required")
	}
	if u.Lat < -90 || u.Lat > 90 {
		ve.add("lat", "out of range: %g", u.Lat)
	}
	if u.Lng < -180 || u.Lng > 180 {
		ve.add("lng", "out of range: %g", u.Lng)
	}
	if ve.HasErrors() {
		return &ve
	}
	return nil
}

// ValidateDataset decodes the typed nodes of ds and checks each record.
// Unknown nodes are accepted as-is.
func ValidateDataset(ds Dataset) error {
	var ve ValidationError
	for _, e := range ds.Entries() {
		field := e.Path()
		var err error
		switch e.Node {
		case NodeUmkm:
			var u Umkm
			if err = json.Unmarshal(e.Value, &u); err == nil {
				if verr := ValidateUmkm(e.ID, &u); verr != nil {
					for _, fe := range verr.(*ValidationError).Errors {
						ve.add(field+"."+fe.Field, "%s", fe.Message)
					}
				}
			}
		case NodeMenu:
			var items []MenuItem
			err = json.Unmarshal(e.Value, &items)
		case NodeServices:
			var items []ServiceItem
			err = json.Unmarshal(e.Value, &items)
		case NodeReviews:
			var reviews map[string]json.RawMessage
			if err = json.Unmarshal(e.Value, &reviews); err == nil {
				for k, raw := range reviews {
					if _, _, perr := ParseReview(raw); perr != nil {
						ve.add(field+"/"+k, "malformed review: %v", perr)
					}
				}
			}
		}
		if err != nil {
			ve.add(field, "malformed: %v", err)
		}
	}
	if ve.HasErrors() {
		return &ve
	}
	return nil
}
