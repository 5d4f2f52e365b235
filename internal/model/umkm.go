// Package model defines the records stored in the UMKM database tree.
package model

import "encoding/json"

// Top-level node names.
const (
	NodeUmkm     = "umkm"
	NodeMenu     = "umkm_menu"
	NodeServices = "umkm_services"
	NodeReviews  = "reviews"
	NodeUsers    = "users"
	NodeUser     = "user" // misspelled variant found in some exports
)

// Nodes are the per-business collections, each keyed by the business id.
var Nodes = []string{NodeUmkm, NodeMenu, NodeServices, NodeReviews}

// Umkm is a business record under /umkm/<id>.
type Umkm struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Address     string  `json:"address"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	ImageURL    string  `json:"imageUrl"`
	Contact     string  `json:"contact,omitempty"`
}

// MenuItem is one entry of /umkm_menu/<id>.
type MenuItem struct {
	Name  string `json:"name"`
	Price int    `json:"price"`
}

// ServiceItem is one entry of /umkm_services/<id>.
type ServiceItem struct {
	Service string `json:"service"`
	Price   int    `json:"price"`
}

// Review is the structured form of an entry under /reviews/<id>/<key>.
// Older entries are bare strings; see ParseReview.
type Review struct {
	Author  string  `json:"author"`
	Comment string  `json:"comment"`
	Rating  float64 `json:"rating"`
}

// Defaults applied when a legacy string review is upgraded.
const (
	AnonymousAuthor    = "Anonymous"
	LegacyReviewRating = 3.0
	MaxReviewRating    = 5.0
)

// ParseReview decodes a review value. The second return value reports
// whether raw was a legacy bare string.
func ParseReview(raw json.RawMessage) (Review, bool, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return Review{Author: AnonymousAuthor, Comment: s, Rating: LegacyReviewRating}, true, nil
	}
	r := Review{Author: AnonymousAuthor}
	if err := json.Unmarshal(raw, &r); err != nil {
		return Review{}, false, err
	}
	return r, false, nil
}
