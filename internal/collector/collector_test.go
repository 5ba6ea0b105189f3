package collector

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/baikal/appdiag/internal/event"
)

// payloadOf extracts the UserAction payload used as a marker in these tests.
func payloadOf(t *testing.T, ev event.Event) string {
	t.Helper()
	ua, ok := ev.Body.(event.UserAction)
	if !ok {
		t.Fatalf("unexpected body type %T", ev.Body)
	}
	return ua.Payload
}

func TestDrain_EvictsOldestFirst(t *testing.T) {
	c := New(Config{Capacity: 5, ChannelDepth: 64})
	h := c.Handle()

	for i := 0; i < 12; i++ {
		h.LogAction("tick", fmt.Sprintf("%d", i))
	}
	if n := c.Drain(); n != 12 {
		t.Fatalf("Drain() moved %d events, want 12", n)
	}
	if c.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", c.Len())
	}

	// The 5 most recently sent events, in send order.
	snap := c.Snapshot()
	want := []string{"7", "8", "9", "10", "11"}
	for i, ev := range snap {
		if got := payloadOf(t, ev); got != want[i] {
			t.Errorf("snapshot[%d] = %q, want %q", i, got, want[i])
		}
	}
}

func TestDrain_UnderCapacityKeepsAll(t *testing.T) {
	c := New(Config{Capacity: 10, ChannelDepth: 64})
	h := c.Handle()

	for i := 0; i < 3; i++ {
		h.LogAction("tick", fmt.Sprintf("%d", i))
	}
	c.Drain()

	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", c.Len())
	}
	snap := c.Snapshot()
	for i, ev := range snap {
		if got := payloadOf(t, ev); got != fmt.Sprintf("%d", i) {
			t.Errorf("snapshot[%d] = %q, want %d", i, got, i)
		}
	}
}

func TestSetEnabled_DisabledLogIsNoOp(t *testing.T) {
	c := New(Config{Capacity: 10, ChannelDepth: 64})
	h := c.Handle()

	h.LogAction("before", "")
	c.SetEnabled(false)
	h.LogAction("after", "")
	h.LogAction("after", "")
	c.Drain()

	if c.Len() != 1 {
		t.Errorf("Len() = %d after disable, want 1", c.Len())
	}

	// Re-enabling is immediate and idempotent.
	c.SetEnabled(true)
	c.SetEnabled(true)
	h.LogAction("resumed", "")
	c.Drain()
	if c.Len() != 2 {
		t.Errorf("Len() = %d after re-enable, want 2", c.Len())
	}
}

func TestLog_NeverBlocksOnFullChannel(t *testing.T) {
	// Depth-1 channel with no draining: every Log past the first must drop,
	// not wait.
	c := New(Config{Capacity: 5, ChannelDepth: 1})
	h := c.Handle()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10000; i++ {
			h.LogAction("flood", "")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Log blocked on a full channel")
	}
}

func TestLog_AfterCloseDropsSilently(t *testing.T) {
	c := New(Config{Capacity: 5, ChannelDepth: 8})
	h := c.Handle()

	h.LogAction("kept", "")
	c.Close()
	h.LogAction("dropped", "")

	// Events accepted before Close remain drainable.
	c.Drain()
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestZeroHandle_LogIsInert(t *testing.T) {
	var h Handle
	h.LogAction("nowhere", "") // must not panic
	h.Log(event.Event{})
}

func TestSnapshot_DoesNotMutateBuffer(t *testing.T) {
	c := New(Config{Capacity: 5, ChannelDepth: 8})
	h := c.Handle()

	h.LogAction("a", "")
	h.LogAction("b", "")
	c.Drain()

	s1 := c.Snapshot()
	s2 := c.Snapshot()
	if len(s1) != 2 || len(s2) != 2 {
		t.Fatalf("snapshot lengths = %d, %d, want 2, 2", len(s1), len(s2))
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d after snapshots, want 2", c.Len())
	}
}

func TestClear_ResetsBuffer(t *testing.T) {
	c := New(Config{Capacity: 3, ChannelDepth: 16})
	h := c.Handle()

	for i := 0; i < 5; i++ {
		h.LogAction("tick", fmt.Sprintf("%d", i))
	}
	c.Drain()
	c.Clear()

	if c.Len() != 0 {
		t.Fatalf("Len() = %d after Clear, want 0", c.Len())
	}

	// Buffer fills normally again after a wrap-then-clear.
	h.LogAction("fresh", "x")
	c.Drain()
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	if got := payloadOf(t, c.Snapshot()[0]); got != "x" {
		t.Errorf("snapshot[0] = %q, want x", got)
	}
}

func TestConcurrentProducers_PerProducerOrderPreserved(t *testing.T) {
	const producers = 4
	const perProducer = 50

	c := New(Config{Capacity: producers * perProducer, ChannelDepth: producers * perProducer})
	h := c.Handle()

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				h.LogAction(fmt.Sprintf("p%d", p), fmt.Sprintf("%d", i))
			}
		}(p)
	}
	wg.Wait()
	c.Drain()

	if c.Len() != producers*perProducer {
		t.Fatalf("Len() = %d, want %d", c.Len(), producers*perProducer)
	}

	// Within the interleaved buffer, each producer's events appear in its
	// own send order.
	next := make(map[string]int)
	for _, ev := range c.Snapshot() {
		ua := ev.Body.(event.UserAction)
		want := fmt.Sprintf("%d", next[ua.Variant])
		if ua.Payload != want {
			t.Fatalf("producer %s out of order: got %s, want %s", ua.Variant, ua.Payload, want)
		}
		next[ua.Variant]++
	}
}

func TestTimeOperation_RecordsDurationAndPassesError(t *testing.T) {
	c := New(Config{Capacity: 4, ChannelDepth: 4})
	h := c.Handle()

	wantErr := fmt.Errorf("boom")
	err := TimeOperation(h, "decode-image", func() error {
		time.Sleep(5 * time.Millisecond)
		return wantErr
	})
	if err != wantErr {
		t.Fatalf("TimeOperation error = %v, want %v", err, wantErr)
	}

	c.Drain()
	snap := c.Snapshot()
	if len(snap) != 1 {
		t.Fatalf("retained %d events, want 1", len(snap))
	}
	op, ok := snap[0].Body.(event.Operation)
	if !ok {
		t.Fatalf("body type = %T, want Operation", snap[0].Body)
	}
	if op.Variant != "decode-image" {
		t.Errorf("variant = %q, want decode-image", op.Variant)
	}
	if op.Duration < 5*time.Millisecond {
		t.Errorf("duration = %v, want >= 5ms", op.Duration)
	}
}
