package eventbus

import "testing"

func TestTypedBusPublishSubscribe(t *testing.T) {
	bus := NewTyped[runEvent]()
	ch := bus.Subscribe()
	bus.Publish(runEvent{RunID: "run-2"})
	if ev := <-ch; ev.RunID != "run-2" {
		t.Fatalf("expected run-2 got %v", ev)
	}
	bus.Unsubscribe(ch)
}

func TestTypedBusSubscribeAfterClose(t *testing.T) {
	bus := NewTyped[int]()
	bus.Close()
	ch := bus.Subscribe()
	if _, ok := <-ch; ok {
		t.Fatalf("expected closed channel from closed bus")
	}
}
