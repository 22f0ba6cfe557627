package eventbus

import "testing"

type runEvent struct {
	RunID string
}

func TestBusPublishSubscribe(t *testing.T) {
	bus := New()
	ch := bus.Subscribe()
	bus.Publish(runEvent{RunID: "run-1"})
	ev, ok := (<-ch).(runEvent)
	if !ok || ev.RunID != "run-1" {
		t.Fatalf("expected run-1 got %v", ev)
	}
	bus.Unsubscribe(ch)
}

func TestBusDropsWhenSubscriberFull(t *testing.T) {
	bus := New()
	ch := bus.Subscribe()
	for i := 0; i < subBuffer+3; i++ {
		bus.Publish(i)
	}
	// The buffer bounds delivery; overflow is dropped, never blocking.
	if got := len(ch); got != subBuffer {
		t.Fatalf("buffered events = %d, want %d", got, subBuffer)
	}
	bus.Close()
}

func TestBusClose(t *testing.T) {
	bus := New()
	ch1 := bus.Subscribe()
	ch2 := bus.Subscribe()
	bus.Close()
	if _, ok := <-ch1; ok {
		t.Fatalf("expected ch1 closed")
	}
	if _, ok := <-ch2; ok {
		t.Fatalf("expected ch2 closed")
	}
}

func TestBusUnsubscribeAfterClose(t *testing.T) {
	bus := New()
	ch := bus.Subscribe()
	bus.Close()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("panic on Unsubscribe after Close: %v", r)
		}
	}()
	bus.Unsubscribe(ch)
}

func TestBusPublishAfterClose(t *testing.T) {
	bus := New()
	bus.Close()
	bus.Publish("late")
}
