package concierge

import (
	"context"
	"testing"
	"time"
)

func TestMatchReply(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Could I get a towel please", responses[0].reply},
		{"une SERVIETTE svp", responses[0].reply},
		{"more ice for the rosé", responses[1].reply},
		{"the parasol fell over", responses[2].reply},
		{"can we see the carte?", responses[3].reply},
		{"l'addition, merci", responses[4].reply},
		{"what are your hours", responses[5].reply},
		{"wifi password?", responses[6].reply},
		{"my shoe is full of sand", fallbackReply},
		{"", fallbackReply},
	}
	for _, c := range cases {
		if got := MatchReply(c.input); got != c.want {
			t.Errorf("MatchReply(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}

func TestMatchOrderFirstGroupWins(t *testing.T) {
	// mentions both towel and ice; towel group comes first
	if got := MatchReply("towel and ice please"); got != responses[0].reply {
		t.Errorf("got %q, want towel reply", got)
	}
}

func TestRespondWaitsFixedDelay(t *testing.T) {
	start := time.Now()
	reply, err := Respond(context.Background(), "serviette")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < ReplyDelay {
		t.Errorf("responded after %v, want >= %v", elapsed, ReplyDelay)
	}
	if reply != responses[0].reply {
		t.Errorf("got %q, want towel reply", reply)
	}
}

func TestRespondCancellable(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	if _, err := Respond(ctx, "towel"); err == nil {
		t.Fatal("expected cancellation error")
	}
	if time.Since(start) >= ReplyDelay {
		t.Error("cancelled respond still waited the full delay")
	}
}
