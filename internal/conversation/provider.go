package conversation

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/learnflix/learnflix/internal/learner"
)

// ErrInvalidFeedback indicates a provider returned a malformed Feedback.
var ErrInvalidFeedback = errors.New("invalid feedback")

// Feedback is the per-turn scoring record attached to an AI reply.
type Feedback struct {
	Pronunciation int
	Fluency       int
	Vocabulary    int
	Grammar       int
	Suggestions   []string
}

func (f *Feedback) clone() *Feedback {
	if f == nil {
		return nil
	}
	c := *f
	c.Suggestions = slices.Clone(f.Suggestions)
	return &c
}

// Validate checks that every score is within 0..100 and that at least one
// suggestion is present.
func (f Feedback) Validate() error {
	scores := []struct {
		name  string
		value int
	}{
		{"pronunciation", f.Pronunciation},
		{"fluency", f.Fluency},
		{"vocabulary", f.Vocabulary},
		{"grammar", f.Grammar},
	}
	for _, s := range scores {
		if s.value < 0 || s.value > 100 {
			return fmt.Errorf("%w: %s score %d outside 0..100", ErrInvalidFeedback, s.name, s.value)
		}
	}
	if len(f.Suggestions) == 0 {
		return fmt.Errorf("%w: no suggestions", ErrInvalidFeedback)
	}
	return nil
}

// Average returns the mean of the four scores.
func (f Feedback) Average() int {
	return (f.Pronunciation + f.Fluency + f.Vocabulary + f.Grammar) / 4
}

// ReplyRequest is what a provider sees when asked for the AI turn.
type ReplyRequest struct {
	Scenario   Scenario
	Level      learner.Level
	Transcript []Message
	UserText   string
}

// Reply is the AI turn produced by a provider. Feedback is optional.
type Reply struct {
	Text     string
	Feedback *Feedback
}

// FeedbackProvider produces the AI teacher's reply and scoring. The state
// machine does not depend on how the reply is produced, so a real scoring
// or generation backend can replace the canned one.
type FeedbackProvider interface {
	Reply(ctx context.Context, req ReplyRequest) (Reply, error)
}

// CannedReplyText is the acknowledgement returned by CannedProvider.
const CannedReplyText = "That's great! Your pronunciation is improving. Let me give you some feedback..."

// CannedProvider returns the same placeholder reply for every turn.
type CannedProvider struct{}

var _ FeedbackProvider = CannedProvider{}

func (CannedProvider) Reply(_ context.Context, _ ReplyRequest) (Reply, error) {
	return Reply{
		Text: CannedReplyText,
		Feedback: &Feedback{
			Pronunciation: 85,
			Fluency:       78,
			Vocabulary:    90,
			Grammar:       82,
			Suggestions: []string{
				"Try to speak a bit slower for better clarity",
				"Great use of vocabulary!",
				"Consider using 'going to' instead of 'gonna' in formal contexts",
			},
		},
	}, nil
}
