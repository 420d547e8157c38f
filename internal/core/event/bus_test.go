package event

import "testing"

type pingEvent struct{ N int }

type pongEvent struct{ Tag string }

func TestDeliveryIsDeferredOneTick(t *testing.T) {
	b := NewBus()
	var got []int
	Subscribe(b, func(ev pingEvent) { got = append(got, ev.N) })

	Emit(b, pingEvent{N: 1})
	b.DispatchAll()
	if len(got) != 0 {
		t.Fatal("event delivered in the tick it was emitted")
	}

	b.SwapBuffers()
	b.DispatchAll()
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("delivered = %v, want [1]", got)
	}

	// The next swap clears the front buffer; nothing is delivered twice.
	b.SwapBuffers()
	b.DispatchAll()
	if len(got) != 1 {
		t.Fatalf("event redelivered: %v", got)
	}
}

func TestEmitDuringDispatchLandsNextTick(t *testing.T) {
	b := NewBus()
	var got []int
	Subscribe(b, func(ev pingEvent) {
		got = append(got, ev.N)
		if ev.N < 3 {
			Emit(b, pingEvent{N: ev.N + 1})
		}
	})

	Emit(b, pingEvent{N: 1})
	for i := 0; i < 3; i++ {
		b.SwapBuffers()
		b.DispatchAll()
	}
	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("delivered = %v, want [1 2 3]", got)
	}
}

func TestMultipleHandlersAndTypes(t *testing.T) {
	b := NewBus()
	pings, pongs := 0, 0
	Subscribe(b, func(pingEvent) { pings++ })
	Subscribe(b, func(pingEvent) { pings++ })
	Subscribe(b, func(pongEvent) { pongs++ })

	Emit(b, pingEvent{N: 1})
	Emit(b, pongEvent{Tag: "a"})
	b.SwapBuffers()
	b.DispatchAll()

	if pings != 2 {
		t.Fatalf("ping handlers ran %d times, want 2", pings)
	}
	if pongs != 1 {
		t.Fatalf("pong handler ran %d times, want 1", pongs)
	}
}

func TestEventWithNoHandlerIsDropped(t *testing.T) {
	b := NewBus()
	Emit(b, pingEvent{N: 9})
	b.SwapBuffers()
	b.DispatchAll()
	// Nothing to assert beyond not panicking; the buffer is cleared below.
	b.SwapBuffers()
	delivered := false
	Subscribe(b, func(pingEvent) { delivered = true })
	b.DispatchAll()
	if delivered {
		t.Fatal("stale event survived two swaps")
	}
}
