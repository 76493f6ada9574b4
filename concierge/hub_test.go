package concierge

import (
	"testing"
	"time"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send: make(chan []byte, 10),
		Room: "guest42",
	}
	hub.register <- client

	data := []byte(`{"content":"hello"}`)
	hub.Broadcast("guest42", data)

	select {
	case got := <-client.Send:
		if string(got) != string(data) {
			t.Fatalf("expected %s, got %s", data, got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	hub.unregister <- client
}

func TestHubBroadcastIsRoomScoped(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	a := &Client{Send: make(chan []byte, 1), Room: "roomA"}
	b := &Client{Send: make(chan []byte, 1), Room: "roomB"}
	hub.register <- a
	hub.register <- b

	hub.Broadcast("roomA", []byte("only-a"))

	select {
	case <-a.Send:
	case <-time.After(1 * time.Second):
		t.Fatal("roomA client never got the message")
	}

	select {
	case msg := <-b.Send:
		t.Fatalf("roomB client received %s", msg)
	case <-time.After(100 * time.Millisecond):
	}
}
