package hub

import (
	"testing"
	"time"
)

func recv(t *testing.T, c *Client) string {
	t.Helper()
	select {
	case msg, ok := <-c.Out():
		if !ok {
			t.Fatal("out channel closed")
		}
		return string(msg)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
	}
	return ""
}

func TestAttachReplaysLast(t *testing.T) {
	h := New()
	h.Broadcast([]byte("one"))
	h.Broadcast([]byte("two"))

	c := h.Attach()
	defer h.Detach(c)
	if got := recv(t, c); got != "two" {
		t.Fatalf("expected replay of latest snapshot, got %q", got)
	}
}

func TestBroadcastReachesOwner(t *testing.T) {
	h := New()
	c := h.Attach()
	defer h.Detach(c)

	h.Broadcast([]byte("hello"))
	if got := recv(t, c); got != "hello" {
		t.Fatalf("expected hello, got %q", got)
	}
}

func TestAttachKicksPrevious(t *testing.T) {
	h := New()
	first := h.Attach()
	second := h.Attach()

	select {
	case <-first.Kicked():
	default:
		t.Fatal("first client was not kicked")
	}
	select {
	case <-second.Kicked():
		t.Fatal("second client should not be kicked")
	default:
	}

	// The displaced client detaching must not clear the new owner.
	h.Detach(first)
	cur, ok := h.Current()
	if !ok || cur.ID != second.ID {
		t.Fatalf("expected second client to own the hub, got %+v", cur)
	}
	h.Detach(second)
	if _, ok := h.Current(); ok {
		t.Fatal("expected no owner after detach")
	}
}

func TestBroadcastDoesNotBlock(t *testing.T) {
	h := New()
	c := h.Attach()
	defer h.Detach(c)

	done := make(chan struct{})
	go func() {
		for i := 0; i < outBuffer*3; i++ {
			h.Broadcast([]byte("x"))
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Broadcast blocked on a slow client")
	}
	if string(h.Last()) != "x" {
		t.Fatalf("unexpected last snapshot %q", h.Last())
	}
}

func TestUniqueIDs(t *testing.T) {
	h := New()
	a, b := h.Attach(), h.Attach()
	if a.ID == b.ID {
		t.Fatal("expected distinct client ids")
	}
}
