// Package concierge simulates a staffed guest-service chat: free text is
// matched against a fixed keyword list and answered with a canned reply
// after a short, human-feeling delay.
package concierge

import (
	"context"
	"time"

	"riviera/utils"
)

// ReplyDelay is the fixed pause before every auto-reply.
const ReplyDelay = 1500 * time.Millisecond

// keyword groups are matched in order; the first hit wins.
var responses = []struct {
	keywords []string
	reply    string
}{
	{[]string{"towel", "serviette"}, "Fresh towels are on their way to your sunbed."},
	{[]string{"ice", "glaçons"}, "A bucket of ice will be brought over shortly."},
	{[]string{"umbrella", "parasol"}, "We'll adjust or bring a parasol right away."},
	{[]string{"menu", "carte"}, "A waiter is coming with today's menu. You can also browse it from the app."},
	{[]string{"bill", "addition"}, "Your bill is being prepared, it will arrive in a few minutes."},
	{[]string{"hours", "horaires"}, "The club is open 09:00-23:00, the restaurant serves 12:00-15:00 and 19:00-22:30."},
	{[]string{"wifi"}, "Network: LaPlage-Guests, password: seaview2024."},
}

const fallbackReply = "Thank you! A member of our team will be with you shortly."

// MatchReply returns the canned reply for the input, case-insensitively, or
// the fallback.
func MatchReply(text string) string {
	for _, group := range responses {
		for _, kw := range group.keywords {
			if utils.ContainsIgnoreCase(text, kw) {
				return group.reply
			}
		}
	}
	return fallbackReply
}

// Respond waits the staffed-chat delay and returns the reply. The wait is
// cancellable so a disconnecting client doesn't leak the timer.
func Respond(ctx context.Context, text string) (string, error) {
	timer := time.NewTimer(ReplyDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return MatchReply(text), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
