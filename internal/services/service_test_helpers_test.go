package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gastropro/backoffice/internal/database/testutil"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type publishedEvent struct {
	event  string
	userID *uint
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(event string, userID *uint, _ any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{event: event, userID: userID})
}

func (p *recordingPublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.event)
	}
	return out
}

type failingEvaluator struct {
	calls int
}

func (f *failingEvaluator) EvaluateStock(context.Context, StockLevel) (*RaiseResult, error) {
	f.calls++
	return nil, errors.New("notification store unavailable")
}

type failingRaiser struct {
	calls int
}

func (f *failingRaiser) Raise(context.Context, EventKind, EventContext) (*RaiseResult, error) {
	f.calls++
	return nil, errors.New("notification store unavailable")
}

func newTestEngine(t *testing.T, opts ...NotificationOption) (*NotificationService, *gorm.DB, *testClock) {
	t.Helper()

	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	clock := newTestClock()
	svc, err := NewNotificationService(db, append([]NotificationOption{WithClock(clock.Now)}, opts...)...)
	require.NoError(t, err)
	return svc, db, clock
}

func floatPtr(v float64) *float64 {
	return &v
}

func uintPtr(v uint) *uint {
	return &v
}

func boolPtr(v bool) *bool {
	return &v
}

func lowStockContext(itemID uint, name string, stock, threshold float64) EventContext {
	return EventContext{
		ItemID:       itemID,
		ItemName:     name,
		CurrentStock: floatPtr(stock),
		Threshold:    floatPtr(threshold),
		Unit:         "kg",
	}
}
