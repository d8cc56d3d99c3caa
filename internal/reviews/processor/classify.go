package processor

import (
	"math"

	"review-server/internal/store"
)

// lowRatingThreshold is the rating under which a positive submission is
// treated as negative.
const lowRatingThreshold = 3

// Ratings are the ratings exactly as the submitter sent them.
type Ratings struct {
	Logistics        *int                   `json:"logisticsRating,omitempty"`
	Communication    *int                   `json:"communicationRating,omitempty"`
	WebsiteUsability *int                   `json:"websiteUsabilityRating,omitempty"`
	Categories       []store.CategoryRating `json:"categoryRatings,omitempty"`
}

func (r Ratings) fixed() []int {
	var out []int
	for _, v := range []*int{r.Logistics, r.Communication, r.WebsiteUsability} {
		if v != nil {
			out = append(out, *v)
		}
	}
	return out
}

func (r Ratings) categoryValues() []int {
	out := make([]int, 0, len(r.Categories))
	for _, c := range r.Categories {
		out = append(out, c.Rating)
	}
	return out
}

// Classify returns the effective recommendation. Any supplied rating below 3
// turns a yes into a no; a no always stays a no.
func Classify(recommend store.Recommend, ratings Ratings) store.Recommend {
	if recommend != store.RecommendYes {
		return store.RecommendNo
	}
	for _, v := range append(ratings.fixed(), ratings.categoryValues()...) {
		if v < lowRatingThreshold {
			return store.RecommendNo
		}
	}
	return store.RecommendYes
}

func meanRating(values []int) int {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return int(math.Round(float64(sum) / float64(len(values))))
}
