package eventbus

import "testing"

type bestUpdate struct {
	Trial int
	Cost  float64
}

func TestTypedBusDelivery(t *testing.T) {
	bus := NewTyped[bestUpdate]()
	ch := bus.Subscribe()
	want := bestUpdate{Trial: 3, Cost: 1040.5}
	bus.Publish(want)
	if got := <-ch; got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
	bus.Unsubscribe(ch)
	if _, ok := <-ch; ok {
		t.Fatal("channel should be closed after Unsubscribe")
	}
}

func TestTypedBusUnsubscribeUnknownChannel(t *testing.T) {
	bus := NewTyped[int]()
	other := make(chan int)
	bus.Unsubscribe(other)
	ch := bus.Subscribe()
	bus.Publish(7)
	if got := <-ch; got != 7 {
		t.Fatalf("got %d want 7", got)
	}
}

func TestTypedBusCloseClosesEverySubscriber(t *testing.T) {
	bus := NewTyped[string]()
	chans := []<-chan string{bus.Subscribe(), bus.Subscribe(), bus.Subscribe()}
	bus.Close()
	for i, ch := range chans {
		if _, ok := <-ch; ok {
			t.Fatalf("subscriber %d still open after Close", i)
		}
	}
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("panic after Close: %v", r)
		}
	}()
	bus.Publish("ignored")
	bus.Unsubscribe(chans[0])
}
