package idgen

import "testing"

func TestNewOpID_Shape(t *testing.T) {
	for i := 0; i < 100; i++ {
		id, err := NewOpID()
		if err != nil {
			t.Fatalf("NewOpID() error on iteration %d: %v", i, err)
		}
		if !IsOpID(id) {
			t.Fatalf("NewOpID() = %q, not a valid op id", id)
		}
	}
}

func TestNewOpID_Uniqueness(t *testing.T) {
	const count = 10_000
	seen := make(map[string]struct{}, count)
	for i := 0; i < count; i++ {
		id := MustOpID()
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %q after %d generations", id, i)
		}
		seen[id] = struct{}{}
	}
}

func TestIsOpID(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want bool
	}{
		{"op-abcdef0123", true},
		{"op-ABCDEF0123", false},
		{"op-abc", false},
		{"bd-abcdef0123", false},
		{"", false},
	} {
		if got := IsOpID(tc.in); got != tc.want {
			t.Errorf("IsOpID(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
