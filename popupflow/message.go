package popupflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wrale/oauth2-popup-client/window"
)

// MessageStrategy waits for a tagged cross-document message from the
// redirect URI's origin. The popup's closed flag is polled concurrently:
// no message ever arrives when the user closes the popup mid-flow.
//
// Only the redirect target's origin is accepted. The opener's own origin
// is not the security boundary here, since the callback page, not the
// hosting page, is what the provider navigated.
type MessageStrategy struct {
	// Source of cross-document messages.
	Source MessageSource

	// ClosePollInterval between closed-flag probes. DefaultPollInterval
	// when zero.
	ClosePollInterval time.Duration
}

// Wait blocks until a terminal outcome. The message subscription and the
// ticker are released on every exit path.
func (s *MessageStrategy) Wait(ctx context.Context, popup *window.Popup, origin string) Outcome {
	msgs, cancel, err := s.Source.Subscribe(ctx)
	if err != nil {
		popup.Close()
		return Outcome{State: StateAborted, Err: fmt.Errorf("subscribing to messages: %w", err)}
	}
	defer cancel()

	interval := s.ClosePollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			popup.Close()
			return Outcome{State: StateClosedByUser}
		case msg, ok := <-msgs:
			if !ok {
				popup.Close()
				return Outcome{State: StateAborted, Err: errors.New("message source closed")}
			}
			if msg.Origin != origin || msg.Type != MessageType {
				continue
			}
			return Outcome{State: StateNavigatedHome, Params: msg.Params}
		case <-ticker.C:
			if popup.Closed() {
				return Outcome{State: StateClosedByUser}
			}
		}
	}
}
