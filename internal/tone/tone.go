// Package tone maps a rating and a merchant's response policy to the register
// of a reply and to the auto-reply and alerting decisions.
package tone

import (
	"fmt"

	"go-feedback-triage/internal/model"
)

type Directive string

const (
	Warm         Directive = "warm and appreciative"
	Professional Directive = "professional and constructive"
	Empathetic   Directive = "empathetic, solution-oriented"
)

// Classify panics on a rating outside 1..5; validate before calling.
func Classify(r model.Rating) Directive {
	switch r {
	case 5, 4:
		return Warm
	case 3:
		return Professional
	case 2, 1:
		return Empathetic
	}
	panic(fmt.Sprintf("tone: rating %d out of range", r))
}

func AutoReplyEligible(r model.Rating, policy model.ResponsePolicy) bool {
	return policy.AutoReply(r)
}

// ShouldNotify is true only for ratings 1 and 2 whose notify toggle is set.
func ShouldNotify(r model.Rating, policy model.ResponsePolicy) bool {
	return policy.Notify(r)
}
