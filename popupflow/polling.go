package popupflow

import (
	"context"
	"errors"
	"time"

	"github.com/wrale/oauth2-popup-client/window"
)

// PollingStrategy watches the popup by probing its closed flag and
// location on a fixed interval. Cross-origin location errors mean the
// popup is still on the provider's domain and keep the wait going; any
// other probe failure aborts the wait after best-effort popup closure.
type PollingStrategy struct {
	// Interval between probes. DefaultPollInterval when zero.
	Interval time.Duration
}

// Wait blocks until a terminal outcome. The ticker is released on every
// exit path.
func (s *PollingStrategy) Wait(ctx context.Context, popup *window.Popup, origin string) Outcome {
	interval := s.Interval
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
		case <-ticker.C:
		}

		if popup.Closed() {
			return Outcome{State: StateClosedByUser}
		}

		loc, err := popup.Location()
		if errors.Is(err, window.ErrCrossOrigin) {
			continue
		}
		if err != nil {
			popup.Close()
			return Outcome{State: StateAborted, Err: err}
		}
		if loc == nil || window.Origin(loc) != origin {
			continue
		}
		return Outcome{State: StateNavigatedHome, Params: ParamsFromQuery(loc.Query())}
	}
}
