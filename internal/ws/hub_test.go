package ws

import (
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func quietHub() *Hub {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewHub(log)
}

func TestPublishQueuesJSON(t *testing.T) {
	h := quietHub()

	h.Publish(map[string]string{"type": "stock_update"})

	select {
	case msg := <-h.Broadcast:
		var got map[string]string
		if err := json.Unmarshal(msg, &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if got["type"] != "stock_update" {
			t.Fatalf("got %v", got)
		}
	case <-time.After(time.Second):
		t.Fatal("nothing queued")
	}
}

func TestPublishDropsUnencodable(t *testing.T) {
	h := quietHub()

	h.Publish(make(chan int))

	select {
	case msg := <-h.Broadcast:
		t.Fatalf("unexpected message %s", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestStopEndsRun(t *testing.T) {
	h := quietHub()

	finished := make(chan struct{})
	go func() {
		h.Run()
		close(finished)
	}()

	h.Stop()
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Stop")
	}
	if h.Count() != 0 {
		t.Fatalf("Count = %d after Stop", h.Count())
	}

	// publishing after shutdown is a no-op
	h.Publish("late")
	if n := len(h.Broadcast); n != 0 {
		t.Fatalf("%d events queued after Stop", n)
	}
}

func TestPublishKeepsOrder(t *testing.T) {
	h := quietHub()

	for i := 0; i < 20; i++ {
		h.Publish(map[string]int{"seq": i})
	}

	for want := 0; want < 20; want++ {
		var got map[string]int
		if err := json.Unmarshal(<-h.Broadcast, &got); err != nil {
			t.Fatal(err)
		}
		if got["seq"] != want {
			t.Fatalf("event %d arrived as seq %d", want, got["seq"])
		}
	}
}

func TestPublishDropsWhenQueueFull(t *testing.T) {
	h := quietHub()

	for i := 0; i < cap(h.Broadcast)+5; i++ {
		h.Publish(map[string]int{"seq": i})
	}

	if n := len(h.Broadcast); n != cap(h.Broadcast) {
		t.Fatalf("queued %d, want %d", n, cap(h.Broadcast))
	}
	var first map[string]int
	if err := json.Unmarshal(<-h.Broadcast, &first); err != nil {
		t.Fatal(err)
	}
	if first["seq"] != 0 {
		t.Fatalf("head of queue = %d, want 0", first["seq"])
	}
}
