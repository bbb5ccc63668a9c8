package model

import "time"

type RewardOption struct {
	Id        string    `firestore:"id" json:"id"`
	Name      string    `firestore:"name" json:"name"`
	Weight    float64   `firestore:"weight" json:"weight"`
	Active    bool      `firestore:"active" json:"active"`
	CreatedAt time.Time `firestore:"createdAt,omitempty" json:"createdAt"`
}
