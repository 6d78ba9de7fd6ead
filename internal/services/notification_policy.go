package services

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/gastropro/backoffice/pkg/errors"
)

// EventKind names a domain event that raises a notification.
type EventKind string

const (
	EventLowStock          EventKind = "low_stock"
	EventOutOfStock        EventKind = "out_of_stock"
	EventOrderCreated      EventKind = "order_created"
	EventOrderReady        EventKind = "order_ready"
	EventOrderDelayed      EventKind = "order_delayed"
	EventSystemMaintenance EventKind = "system_maintenance"
	EventShiftReminder     EventKind = "shift_reminder"
)

// EventKinds lists every kind the engine accepts, in a stable order.
func EventKinds() []EventKind {
	return []EventKind{
		EventLowStock,
		EventOutOfStock,
		EventOrderCreated,
		EventOrderReady,
		EventOrderDelayed,
		EventSystemMaintenance,
		EventShiftReminder,
	}
}

// ParseEventKind resolves a raw event name, failing with ErrUnknownEvent.
func ParseEventKind(raw string) (EventKind, error) {
	kind := EventKind(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range EventKinds() {
		if kind == known {
			return kind, nil
		}
	}
	return "", apperrors.ErrUnknownEvent.WithMessage(fmt.Sprintf("Unknown notification event %q", raw))
}

// EventRule holds the tunable lifetime settings for one event kind.
// A zero SuppressionWindow disables deduplication; a zero Expiry means the
// notification never expires.
type EventRule struct {
	SuppressionWindow time.Duration
	Expiry            time.Duration
}

// Policy configures how raised events turn into stored notifications.
type Policy struct {
	Rules map[EventKind]EventRule
	// Low-stock alerts escalate to high priority at or below this level.
	StockEscalationLevel float64
	// Manual notifications use DefaultExpiry when the caller gives none; zero keeps them forever.
	DefaultExpiry time.Duration
}

// DefaultPolicy returns the stock suppression windows and expiries.
func DefaultPolicy() Policy {
	return Policy{
		Rules: map[EventKind]EventRule{
			EventLowStock:          {SuppressionWindow: 6 * time.Hour, Expiry: 48 * time.Hour},
			EventOutOfStock:        {SuppressionWindow: 12 * time.Hour, Expiry: 24 * time.Hour},
			EventOrderCreated:      {Expiry: 24 * time.Hour},
			EventOrderReady:        {Expiry: 6 * time.Hour},
			EventOrderDelayed:      {Expiry: 12 * time.Hour},
			EventSystemMaintenance: {Expiry: 24 * time.Hour},
			EventShiftReminder:     {Expiry: 12 * time.Hour},
		},
		StockEscalationLevel: 0,
	}
}

// Rule returns the configured rule for kind, falling back to the defaults
// for kinds the policy does not mention.
func (p Policy) Rule(kind EventKind) (EventRule, bool) {
	if rule, ok := p.Rules[kind]; ok {
		return rule, true
	}
	rule, ok := DefaultPolicy().Rules[kind]
	return rule, ok
}
