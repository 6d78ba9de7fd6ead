package app

import "github.com/gastropro/backoffice/internal/services"

// Policy converts the notifications section into the engine policy.
func (n NotificationsConfig) Policy() services.Policy {
	rule := func(cfg EventRuleConfig) services.EventRule {
		return services.EventRule{SuppressionWindow: cfg.SuppressionWindow, Expiry: cfg.Expiry}
	}

	return services.Policy{
		Rules: map[services.EventKind]services.EventRule{
			services.EventLowStock:          rule(n.Events.LowStock),
			services.EventOutOfStock:        rule(n.Events.OutOfStock),
			services.EventOrderCreated:      rule(n.Events.OrderCreated),
			services.EventOrderReady:        rule(n.Events.OrderReady),
			services.EventOrderDelayed:      rule(n.Events.OrderDelayed),
			services.EventSystemMaintenance: rule(n.Events.SystemMaintenance),
			services.EventShiftReminder:     rule(n.Events.ShiftReminder),
		},
		StockEscalationLevel: n.StockEscalationLevel,
		DefaultExpiry:        n.ManualExpiry,
	}
}

// EngineOptions returns the engine options implied by this section.
func (n NotificationsConfig) EngineOptions() []services.NotificationOption {
	return []services.NotificationOption{
		services.WithPolicy(n.Policy()),
		services.WithListLimits(n.DefaultListLimit, n.MaxListLimit),
	}
}
