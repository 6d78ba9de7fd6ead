package checks

import (
	"context"
	"fmt"

	"github.com/gastropro/backoffice/internal/monitoring"
)

// RealtimeObserver exposes the live connection count of the notification feed.
type RealtimeObserver interface {
	ConnectionCount() int
}

// Realtime reports the notification feed as degraded when the hub is missing.
func Realtime(observer RealtimeObserver) monitoring.Check {
	return monitoring.NewCheck("realtime", func(context.Context) monitoring.ProbeResult {
		if observer == nil {
			return monitoring.ProbeResult{
				Status:  monitoring.StatusDegraded,
				Details: "realtime hub unavailable",
			}
		}
		return monitoring.ProbeResult{
			Status:  monitoring.StatusUp,
			Details: fmt.Sprintf("%d connections", observer.ConnectionCount()),
		}
	})
}
