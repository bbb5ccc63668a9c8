package feedback

import "go-feedback-triage/internal/model"

// State is one step of the customer flow. The set of implementations is closed.
type State interface {
	Name() string
	state()
}

type RatingCapture struct{}

// PublicRedirect only exists while the public review is being persisted.
type PublicRedirect struct {
	Rating model.Rating
}

type PrivateFeedback struct {
	Rating model.Rating
}

// RewardOffer can only be reached with a persisted review.
type RewardOffer struct {
	Review model.Review
}

// Thanks is terminal. RewardName is nil when nothing was won.
type Thanks struct {
	Review     model.Review
	RewardName *string
}

func (RatingCapture) Name() string   { return "rating_capture" }
func (PublicRedirect) Name() string  { return "public_redirect" }
func (PrivateFeedback) Name() string { return "private_feedback" }
func (RewardOffer) Name() string     { return "reward_offer" }
func (Thanks) Name() string          { return "thanks" }

func (RatingCapture) state()   {}
func (PublicRedirect) state()  {}
func (PrivateFeedback) state() {}
func (RewardOffer) state()     {}
func (Thanks) state()          {}
