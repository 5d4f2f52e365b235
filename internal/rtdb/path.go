package rtdb

import (
	"fmt"
	"net/url"
	"strings"
)

// Join builds a slash-separated database path from its segments.
func Join(segments ...string) string {
	return strings.Join(segments, "/")
}

// ValidateKey reports whether key can be used as a single database key.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidKey)
	}
	for _, r := range key {
		switch {
		case r == '.', r == '#', r == '$', r == '[', r == ']', r == '/':
			return fmt.Errorf("%w: %q contains %q", ErrInvalidKey, key, r)
		case r < 0x20 || r == 0x7f:
			return fmt.Errorf("%w: %q contains a control character", ErrInvalidKey, key)
		}
	}
	return nil
}

// escapePath validates each segment of p and returns the URL path form
// with the .json suffix. The root ("" or "/") maps to "/.json".
func escapePath(p string) (string, error) {
	p = strings.Trim(p, "/")
	if p == "" {
		return "/.json", nil
	}
	parts := strings.Split(p, "/")
	for i, seg := range parts {
		if err := ValidateKey(seg); err != nil {
			return "", err
		}
		parts[i] = url.PathEscape(seg)
	}
	return "/" + strings.Join(parts, "/") + ".json", nil
}
