package model

import (
	"strings"
	"time"
)

type Rating int

const (
	MinRating Rating = 1
	MaxRating Rating = 5
)

func (r Rating) Valid() bool {
	return r >= MinRating && r <= MaxRating
}

type Visibility string

const (
	Public  Visibility = "public"
	Private Visibility = "private"
)

// VisibilityFor is the visibility gate.
func VisibilityFor(r Rating) Visibility {
	if r >= 4 {
		return Public
	}
	return Private
}

type Review struct {
	Id              string      `firestore:"id" json:"id"`
	EstablishmentId string      `firestore:"establishmentId" json:"establishmentId"`
	Rating          Rating      `firestore:"rating" json:"rating"`
	Comment         *string     `firestore:"comment" json:"comment"`
	Visibility      Visibility  `firestore:"visibility" json:"visibility"`
	Processed       *bool       `firestore:"processed,omitempty" json:"-"`
	Draft           *DraftReply `firestore:"draft,omitempty" json:"draft,omitempty"`
	CreatedAt       time.Time   `firestore:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt       time.Time   `firestore:"updatedAt,omitempty" json:"updatedAt"`
}

// NewReview is the only place a review's visibility is decided.
// A blank comment is stored as null.
func NewReview(establishmentId string, rating Rating, comment *string) Review {
	if comment != nil && strings.TrimSpace(*comment) == "" {
		comment = nil
	}
	return Review{
		EstablishmentId: establishmentId,
		Rating:          rating,
		Comment:         comment,
		Visibility:      VisibilityFor(rating),
	}
}

// Text returns the comment or an empty string.
func (r Review) Text() string {
	if r.Comment == nil {
		return ""
	}
	return *r.Comment
}
