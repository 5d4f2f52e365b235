package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseReview(t *testing.T) {
	for _, tc := range []struct {
		name       string
		raw        string
		want       Review
		wantLegacy bool
		wantErr    bool
	}{
		{
			name:       "LegacyString",
			raw:        `"Seblaknya nampol"`,
			want:       Review{Author: "Anonymous", Comment: "Seblaknya nampol", Rating: 3},
			wantLegacy: true,
		},
		{
			name: "Structured",
			raw:  `{"author":"Dina","comment":"Enak","rating":4.5}`,
			want: Review{Author: "Dina", Comment: "Enak", Rating: 4.5},
		},
		{
			name: "StructuredMissingAuthor",
			raw:  `{"comment":"Enak","rating":4}`,
			want: Review{Author: "Anonymous", Comment: "Enak", Rating: 4},
		},
		{name: "Number", raw: `42`, wantErr: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, legacy, err := ParseReview(json.RawMessage(tc.raw))
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseReview() error = %v, wantErr %v", err, tc.wantErr)
			}
			if tc.wantErr {
				return
			}
			if got != tc.want {
				t.Errorf("ParseReview() = %+v, want %+v", got, tc.want)
			}
			if legacy != tc.wantLegacy {
				t.Errorf("legacy = %v, want %v", legacy, tc.wantLegacy)
			}
		})
	}
}

func TestDataset_EntriesOrder(t *testing.T) {
	ds, err := ParseDataset([]byte(`{
		"reviews": {"umkm9": {"r1": "a"}, "umkm5": {"r1": "b"}},
		"extra": {"x": 1},
		"umkm": {"umkm9": {}, "umkm5": {}}
	}`))
	if err != nil {
		t.Fatalf("ParseDataset() error = %v", err)
	}

	var paths []string
	for _, e := range ds.Entries() {
		paths = append(paths, e.Path())
	}
	want := "umkm/umkm5,umkm/umkm9,reviews/umkm5,reviews/umkm9,extra/x"
	if got := strings.Join(paths, ","); got != want {
		t.Errorf("Entries() = %s, want %s", got, want)
	}
	if ds.Len() != 5 {
		t.Errorf("Len() = %d, want 5", ds.Len())
	}
	if got := strings.Join(ds.IDs(), ","); got != "umkm5,umkm9,x" {
		t.Errorf("IDs() = %s", got)
	}
}

func TestDataset_UpdatePaths(t *testing.T) {
	ds := Dataset{
		NodeUmkm:    {"umkm0": json.RawMessage(`{"id":"umkm0"}`), "umkm1": json.RawMessage(`{"id":"umkm1"}`)},
		NodeReviews: {"umkm0": json.RawMessage(`{"r1":"ok"}`)},
	}
	got := ds.UpdatePaths()
	want := map[string]json.RawMessage{
		"umkm/umkm0":    json.RawMessage(`{"id":"umkm0"}`),
		"umkm/umkm1":    json.RawMessage(`{"id":"umkm1"}`),
		"reviews/umkm0": json.RawMessage(`{"r1":"ok"}`),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("UpdatePaths() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDataset_Invalid(t *testing.T) {
	for _, in := range []string{`null`, `[1,2]`, `{`} {
		if _, err := ParseDataset([]byte(in)); err == nil {
			t.Errorf("ParseDataset(%s) expected error", in)
		}
	}
}

func TestValidateReview(t *testing.T) {
	if err := ValidateReview(&Review{Comment: "ok", Rating: 5}); err != nil {
		t.Errorf("valid review: %v", err)
	}
	err := ValidateReview(&Review{Comment: " ", Rating: 7})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
	if len(ve.Errors) != 2 {
		t.Errorf("got %d field errors, want 2: %v", len(ve.Errors), ve)
	}
}

func TestValidateDataset(t *testing.T) {
	good := Dataset{
		NodeUmkm:     {"umkm5": json.RawMessage(`{"id":"umkm5","name":"Cetak Cepat","lat":-7.96,"lng":112.6}`)},
		NodeServices: {"umkm5": json.RawMessage(`[{"service":"Print","price":500}]`)},
		NodeReviews:  {"umkm5": json.RawMessage(`{"r1":"bagus","r2":{"comment":"ok","rating":4}}`)},
	}
	if err := ValidateDataset(good); err != nil {
		t.Errorf("ValidateDataset(good) = %v", err)
	}

	bad := Dataset{
		NodeUmkm: {"umkm5": json.RawMessage(`{"id":"umkm9","name":"X","lat":-100,"lng":0}`)},
		NodeMenu: {"umkm5": json.RawMessage(`{"not":"a list"}`)},
	}
	err := ValidateDataset(bad)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
	msg := ve.Error()
	for _, want := range []string{"umkm/umkm5.id", "umkm/umkm5.lat", "umkm_menu/umkm5"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q missing %q", msg, want)
		}
	}
}

func TestChildren(t *testing.T) {
	for _, tc := range []struct {
		name    string
		raw     string
		want    []string
		wantErr bool
	}{
		{"Object", `{"b":1,"a":2}`, []string{"a", "b"}, false},
		{"ArrayWithHoles", `[null,"x",null,"y"]`, []string{"1", "3"}, false},
		{"Null", `null`, []string{}, false},
		{"Scalar", `"text"`, nil, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Children(json.RawMessage(tc.raw))
			if tc.wantErr {
				if !errors.Is(err, ErrNotContainer) {
					t.Fatalf("Children() error = %v, want ErrNotContainer", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tc.want, SortedKeys(got)); diff != "" {
				t.Errorf("keys (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseReviews(t *testing.T) {
	raw := json.RawMessage(`{"r2":{"author":"Sari","comment":"Bersih","rating":4.5},"r1":"Enak"}`)
	got, err := ParseReviews(raw)
	if err != nil {
		t.Fatal(err)
	}
	want := []KeyedReview{
		{Key: "r1", Legacy: true, Review: Review{Author: AnonymousAuthor, Comment: "Enak", Rating: LegacyReviewRating}},
		{Key: "r2", Review: Review{Author: "Sari", Comment: "Bersih", Rating: 4.5}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseReviews (-want +got):\n%s", diff)
	}
}
