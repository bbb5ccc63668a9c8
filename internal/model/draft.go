package model

import "time"

type DraftReply struct {
	Text        string    `firestore:"text" json:"text"`
	Tone        string    `firestore:"tone" json:"tone"`
	AutoSend    bool      `firestore:"autoSend" json:"autoSend"`
	GeneratedAt time.Time `firestore:"generatedAt" json:"generatedAt"`
}
