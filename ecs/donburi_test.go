package ecs

import (
	"testing"

	"github.com/phanxgames/festive"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitGesture(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []festive.GestureEvent
	GestureEventType.Subscribe(world, func(w donburi.World, e festive.GestureEvent) {
		received = append(received, e)
	})

	sink.EmitGesture(festive.GestureEvent{
		Previous: festive.GestureNone,
		Current:  festive.GestureText,
		Time:     1.5,
	})
	sink.EmitGesture(festive.GestureEvent{
		Previous: festive.GestureText,
		Current:  festive.GestureTree,
		Time:     3,
	})

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("expected no events before processing, got %d", len(received))
	}
	GestureEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if e := received[0]; e.Previous != festive.GestureNone || e.Current != festive.GestureText || e.Time != 1.5 {
		t.Errorf("event 0: %+v", e)
	}
	if e := received[1]; e.Previous != festive.GestureText || e.Current != festive.GestureTree {
		t.Errorf("event 1: %+v", e)
	}
}

func TestDonburiSink_ImplementsGestureSink(t *testing.T) {
	world := donburi.NewWorld()
	var sink festive.GestureSink = NewDonburiSink(world)
	_ = sink // compile-time interface check
}

func TestDonburiSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	GestureEventType.Subscribe(world, func(w donburi.World, e festive.GestureEvent) {
		count1++
	})
	GestureEventType.Subscribe(world, func(w donburi.World, e festive.GestureEvent) {
		count2++
	})

	sink.EmitGesture(festive.GestureEvent{Current: festive.GestureTree})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}
