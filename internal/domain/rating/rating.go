package rating

import "strings"

// Rating is a star score from NotRated to FiveStar. The zero value is NotRated.
type Rating int

const (
	NotRated Rating = iota
	OneStar
	TwoStar
	ThreeStar
	FourStar
	FiveStar
)

const (
	Min = NotRated
	Max = FiveStar
)

const (
	fullStar  = "★"
	emptyStar = "☆"
)

var labels = [...]string{
	NotRated:  "NOT_RATED",
	OneStar:   "ONE_STAR",
	TwoStar:   "TWO_STAR",
	ThreeStar: "THREE_STAR",
	FourStar:  "FOUR_STAR",
	FiveStar:  "FIVE_STAR",
}

// Of converts an ordinal to a Rating. Ordinals outside the scale become NotRated.
func Of(ordinal int) Rating {
	r := Rating(ordinal)
	if !r.IsValid() {
		return NotRated
	}
	return r
}

func (r Rating) IsValid() bool {
	return r >= Min && r <= Max
}

func (r Rating) Ordinal() int { return int(r) }

// Stars renders the rating as five glyphs, filled ones first.
func (r Rating) Stars() string {
	if !r.IsValid() {
		r = NotRated
	}
	n := int(r)
	return strings.Repeat(fullStar, n) + strings.Repeat(emptyStar, int(Max)-n)
}

func (r Rating) String() string {
	if !r.IsValid() {
		return labels[NotRated]
	}
	return labels[r]
}

// Average is the arithmetic mean of the ratings' ordinals rounded to the nearest
// ordinal, halves rounding up. An empty input averages to NotRated.
func Average(ratings []Rating) Rating {
	if len(ratings) == 0 {
		return NotRated
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Ordinal()
	}
	n := len(ratings)
	// floor(sum/n + 1/2) without floats; sum is never negative for valid ratings
	return Of((2*sum + n) / (2 * n))
}
