package model

import "time"

type ToneStyle string

const (
	ToneFormal   ToneStyle = "formal"
	ToneFriendly ToneStyle = "friendly"
	ToneCasual   ToneStyle = "casual"
)

func (s ToneStyle) Valid() bool {
	switch s {
	case ToneFormal, ToneFriendly, ToneCasual:
		return true
	}
	return false
}

type ResponsePolicy struct {
	EstablishmentId string    `firestore:"establishmentId" json:"establishmentId"`
	Tone            ToneStyle `firestore:"tone" json:"tone"`
	CustomContext   string    `firestore:"customContext" json:"customContext"`
	AutoReply1      bool      `firestore:"autoReply1" json:"autoReply1"`
	AutoReply2      bool      `firestore:"autoReply2" json:"autoReply2"`
	AutoReply3      bool      `firestore:"autoReply3" json:"autoReply3"`
	AutoReply4      bool      `firestore:"autoReply4" json:"autoReply4"`
	AutoReply5      bool      `firestore:"autoReply5" json:"autoReply5"`
	Notify1         bool      `firestore:"notify1" json:"notify1"`
	Notify2         bool      `firestore:"notify2" json:"notify2"`
	NotifyEmail     string    `firestore:"notifyEmail" json:"notifyEmail"`
	UpdatedAt       time.Time `firestore:"updatedAt,omitempty" json:"updatedAt"`
}

func DefaultResponsePolicy(establishmentId string) ResponsePolicy {
	return ResponsePolicy{
		EstablishmentId: establishmentId,
		Tone:            ToneFriendly,
	}
}

func (p ResponsePolicy) AutoReply(r Rating) bool {
	switch r {
	case 1:
		return p.AutoReply1
	case 2:
		return p.AutoReply2
	case 3:
		return p.AutoReply3
	case 4:
		return p.AutoReply4
	case 5:
		return p.AutoReply5
	}
	return false
}

// Notify has no toggle for ratings 3..5.
func (p ResponsePolicy) Notify(r Rating) bool {
	switch r {
	case 1:
		return p.Notify1
	case 2:
		return p.Notify2
	}
	return false
}
