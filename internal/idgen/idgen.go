// Package idgen generates the operation ids that tie together the log
// lines, events, journal rows and backups of one command run.
package idgen

import (
	"fmt"
	"strings"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// OpPrefix is prepended to every operation id.
const OpPrefix = "op-"

// alphabet is lowercase so ids are safe in S3 keys, file names and NATS
// payloads alike.
const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Length is the number of random characters generated (excluding the prefix).
const Length = 10

// NewOpID returns a fresh operation id.
func NewOpID() (string, error) {
	id, err := nanoid.Generate(alphabet, Length)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return OpPrefix + id, nil
}

// MustOpID is NewOpID for process start-up, where failure is fatal anyway.
func MustOpID() string {
	id, err := NewOpID()
	if err != nil {
		panic(err)
	}
	return id
}

// IsOpID reports whether s has the shape of an operation id.
func IsOpID(s string) bool {
	rest, ok := strings.CutPrefix(s, OpPrefix)
	if !ok || len(rest) != Length {
		return false
	}
	for _, r := range rest {
		if !strings.ContainsRune(alphabet, r) {
			return false
		}
	}
	return true
}
