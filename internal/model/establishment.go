package model

import "time"

type Establishment struct {
	Id        string    `firestore:"id" json:"id"`
	Name      string    `firestore:"name" json:"name"`
	ShortCode string    `firestore:"shortCode" json:"shortCode"`
	ReviewUrl *string   `firestore:"reviewUrl,omitempty" json:"reviewUrl,omitempty"`
	CreatedAt time.Time `firestore:"createdAt,omitempty" json:"createdAt"`
}
