package events

import (
	"context"
	"log/slog"
	"os"
	"testing"
)

func TestNewEvent(t *testing.T) {
	event := NewEvent(EventUserApproved, UserApprovedEvent{UID: "u-1"})

	if event.ID == "" {
		t.Error("Expected a generated event ID")
	}
	if event.Type != EventUserApproved {
		t.Errorf("Expected type %s, got %s", EventUserApproved, event.Type)
	}
	if event.Source != "admission-service" {
		t.Errorf("Expected source admission-service, got %s", event.Source)
	}
	if event.Version != "1.0" {
		t.Errorf("Expected version 1.0, got %s", event.Version)
	}
	if event.Timestamp.IsZero() {
		t.Error("Expected a timestamp")
	}

	other := NewEvent(EventUserApproved, nil)
	if other.ID == event.ID {
		t.Error("Event IDs must be unique")
	}
}

func TestMockEventPublisher(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	publisher := NewMockEventPublisher(logger)
	ctx := context.Background()

	t.Run("CapturesEvents", func(t *testing.T) {
		if err := publisher.Publish(ctx, NewEvent(EventUserRegistered, nil)); err != nil {
			t.Fatalf("Publish failed: %v", err)
		}
		if err := publisher.Publish(ctx, NewEvent(EventUserRejected, nil)); err != nil {
			t.Fatalf("Publish failed: %v", err)
		}

		captured := publisher.GetPublishedEvents()
		if len(captured) != 2 {
			t.Fatalf("Expected 2 events, got %d", len(captured))
		}
		if captured[0].Type != EventUserRegistered || captured[1].Type != EventUserRejected {
			t.Errorf("Events captured out of order: %+v", captured)
		}
	})

	t.Run("FailNext", func(t *testing.T) {
		publisher.ClearEvents()
		publisher.FailNext = true

		if err := publisher.Publish(ctx, NewEvent(EventUserApproved, nil)); err == nil {
			t.Fatal("Expected a publish failure")
		}
		if len(publisher.GetPublishedEvents()) != 0 {
			t.Error("Failed publish must not capture the event")
		}

		// The failure is one-shot.
		if err := publisher.Publish(ctx, NewEvent(EventUserApproved, nil)); err != nil {
			t.Fatalf("Publish after failure must succeed: %v", err)
		}
	})

	t.Run("ClearEvents", func(t *testing.T) {
		publisher.ClearEvents()
		if len(publisher.GetPublishedEvents()) != 0 {
			t.Error("Expected no events after clear")
		}
	})
}
