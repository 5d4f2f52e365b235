package model

import (
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"strings"
)

// ErrNotContainer is returned by Children for values that are neither an
// object nor an array.
var ErrNotContainer = errors.New("expected an object or array")

// IsNull reports whether raw is empty or the JSON null literal.
func IsNull(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return s == "" || s == "null"
}

// Children decodes the children of a node. The database returns nodes whose
// keys are small integers as arrays; those come back keyed by index with
// null holes dropped. A null node has no children.
func Children(raw json.RawMessage) (map[string]json.RawMessage, error) {
	if IsNull(raw) {
		return map[string]json.RawMessage{}, nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj, nil
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err != nil {
		return nil, ErrNotContainer
	}
	obj = make(map[string]json.RawMessage, len(arr))
	for i, v := range arr {
		if IsNull(v) {
			continue
		}
		obj[strconv.Itoa(i)] = v
	}
	return obj, nil
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// KeyedReview is a review together with its key under /reviews/<id>.
type KeyedReview struct {
	Key    string `json:"key"`
	Legacy bool   `json:"legacy,omitempty"`
	Review
}

// ParseReviews decodes all reviews of one business, ordered by key.
func ParseReviews(raw json.RawMessage) ([]KeyedReview, error) {
	children, err := Children(raw)
	if err != nil {
		return nil, err
	}
	out := make([]KeyedReview, 0, len(children))
	for _, key := range SortedKeys(children) {
		r, legacy, err := ParseReview(children[key])
		if err != nil {
			return nil, err
		}
		out = append(out, KeyedReview{Key: key, Legacy: legacy, Review: r})
	}
	return out, nil
}
