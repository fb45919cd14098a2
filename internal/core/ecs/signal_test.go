package ecs

import "testing"

func TestSignalSubscribeEmitOrder(t *testing.T) {
	s := newSignal[int]()
	var seen []int
	s.Subscribe(func(v int) { seen = append(seen, v*10) })
	s.Subscribe(func(v int) { seen = append(seen, v*100) })
	s.emit(3)
	if len(seen) != 2 || seen[0] != 30 || seen[1] != 300 {
		t.Fatalf("expected listeners to fire in subscription order, got %v", seen)
	}
}

func TestSignalUnsubscribe(t *testing.T) {
	s := newSignal[int]()
	var fired bool
	tok := s.Subscribe(func(int) { fired = true })
	s.Unsubscribe(tok)
	s.emit(1)
	if fired {
		t.Fatal("expected unsubscribed listener not to fire")
	}
}

func TestSignalUnsubscribeUnknownTokenIsNoop(t *testing.T) {
	s := newSignal[int]()
	s.Unsubscribe(Token(999))
}
