package sse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSubscribeUnsubscribe(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	defer b.Close()
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients")
	}
	ch := b.Subscribe()
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client")
	}
	b.Unsubscribe(ch)
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients after unsub")
	}
}

func TestPublishDelivery(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.Publish(Event{Type: "activity.created", Data: map[string]string{"id": "a1"}})

	select {
	case msg := <-ch:
		s := string(msg)
		if !strings.Contains(s, "event: activity.created") {
			t.Errorf("missing event type in %q", s)
		}
		if !strings.Contains(s, `"id":"a1"`) {
			t.Errorf("missing data in %q", s)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for message")
	}
}

func TestPublishActivityEvent_CalendarThrottle(t *testing.T) {
	b := NewBroker(500 * time.Millisecond)
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	// First event should trigger calendar.updated.
	b.PublishActivityEvent("created", "a1", "2025-06-15")
	// Second event immediately should NOT trigger another calendar.updated.
	b.PublishActivityEvent("merged", "a1", "2025-06-15")

	// Drain and count events.
	time.Sleep(50 * time.Millisecond)
	calendarCount := 0
	activityCount := 0
loop:
	for {
		select {
		case msg := <-ch:
			s := string(msg)
			if strings.Contains(s, "calendar.updated") {
				calendarCount++
			} else {
				activityCount++
			}
		default:
			break loop
		}
	}

	if activityCount != 2 {
		t.Errorf("activity events = %d, want 2", activityCount)
	}
	if calendarCount != 1 {
		t.Errorf("calendar events = %d, want 1 (throttled)", calendarCount)
	}
}

func TestPublishActivityEvent_EventTypes(t *testing.T) {
	b := NewBroker(time.Hour) // suppress calendar.updated after the first
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.PublishActivityEvent("deleted", "a9", "2025-06-10")

	deadline := time.After(time.Second)
	for {
		select {
		case msg := <-ch:
			s := string(msg)
			if strings.Contains(s, "event: activity.deleted") {
				if !strings.Contains(s, `"date":"2025-06-10"`) {
					t.Errorf("missing date in %q", s)
				}
				return
			}
		case <-deadline:
			t.Fatal("activity.deleted never delivered")
		}
	}
}

func TestSSEHandler(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	req = req.WithContext(ctx)
	w := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		b.ServeHTTP(w, req)
		close(done)
	}()

	// Give handler time to subscribe.
	time.Sleep(50 * time.Millisecond)
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client from handler")
	}

	b.Publish(Event{Type: "activity.updated", Data: map[string]string{"id": "x1"}})
	time.Sleep(50 * time.Millisecond)

	// Cancel context to disconnect.
	cancel()
	<-done

	body := w.Body.String()
	if !strings.Contains(body, "event: activity.updated") {
		t.Errorf("handler body missing event: %q", body)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestCloseIdempotent(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	ch := b.Subscribe()
	b.Close()
	b.Close()

	if _, ok := <-ch; ok {
		t.Error("client channel should be closed after broker Close")
	}
	// Post-close calls are no-ops.
	b.Publish(Event{Type: "activity.created"})
	b.PublishActivityEvent("created", "x", "2025-01-01")
	if b.ClientCount() != 0 {
		t.Error("ClientCount after close should be 0")
	}
}
