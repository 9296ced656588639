package impact

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCapacityBound(t *testing.T) {
	m := NewManager(nil, DefaultConfig())

	for i := 0; i < 8; i++ {
		m.Add(mgl32.Vec3{float32(i)}, 1)
		if len(m.Impacts()) > 5 {
			t.Fatalf("buffer exceeded capacity: %d", len(m.Impacts()))
		}
	}

	impacts := m.Impacts()
	if len(impacts) != 5 {
		t.Fatalf("expected 5 impacts, got %d", len(impacts))
	}
	// Oldest survivors must be the most recent five, in insertion order.
	for i, ev := range impacts {
		if want := int64(3 + i); ev.ID != want {
			t.Fatalf("expected impact id %d at index %d, got %d", want, i, ev.ID)
		}
	}
}

func TestStrengthClamped(t *testing.T) {
	m := NewManager(nil, DefaultConfig())
	m.Add(mgl32.Vec3{}, 3.7)
	m.Add(mgl32.Vec3{}, -0.5)

	impacts := m.Impacts()
	if impacts[0].Strength != 1 {
		t.Fatalf("expected strength clamped to 1, got %v", impacts[0].Strength)
	}
	if impacts[1].Strength != 0 {
		t.Fatalf("expected strength clamped to 0, got %v", impacts[1].Strength)
	}
}

func TestDecayAndRemoval(t *testing.T) {
	m := NewManager(nil, DefaultConfig())
	m.Add(mgl32.Vec3{}, 0.5)

	prev := m.Impacts()[0].Strength
	m.Tick(0.1)
	if got := m.Impacts()[0].Strength; got >= prev {
		t.Fatalf("expected strength to decrease, got %v -> %v", prev, got)
	}

	// 0.5 - 2.0*0.1 per tick: gone on the third tick.
	m.Tick(0.1)
	if len(m.Impacts()) != 1 {
		t.Fatalf("impact removed too early")
	}
	m.Tick(0.1)
	if len(m.Impacts()) != 0 {
		t.Fatalf("expected impact to be removed, got %d", len(m.Impacts()))
	}
}

func TestTickRemovesMultiple(t *testing.T) {
	m := NewManager(nil, DefaultConfig())
	m.Add(mgl32.Vec3{}, 0.1)
	m.Add(mgl32.Vec3{}, 0.9)
	m.Add(mgl32.Vec3{}, 0.1)

	m.Tick(0.1)
	impacts := m.Impacts()
	if len(impacts) != 1 {
		t.Fatalf("expected 1 surviving impact, got %d", len(impacts))
	}
	if impacts[0].ID != 1 {
		t.Fatalf("wrong impact survived: %d", impacts[0].ID)
	}
}

func TestSubscribeOrderAndUnsubscribe(t *testing.T) {
	m := NewManager(nil, DefaultConfig())

	var order []string
	unsubA := m.Subscribe(func(ev Event) { order = append(order, "a") })
	m.Subscribe(func(ev Event) { order = append(order, "b") })

	m.Add(mgl32.Vec3{}, 0.5)
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("unexpected delivery order: %v", order)
	}

	unsubA()
	m.Add(mgl32.Vec3{}, 0.5)
	if len(order) != 3 || order[2] != "b" {
		t.Fatalf("expected only b after unsubscribe, got %v", order)
	}
}

func TestListenerPanicIsolated(t *testing.T) {
	m := NewManager(nil, DefaultConfig())

	received := 0
	m.Subscribe(func(ev Event) { panic("listener gone wrong") })
	m.Subscribe(func(ev Event) { received++ })

	m.Add(mgl32.Vec3{}, 0.5)
	if received != 1 {
		t.Fatalf("expected delivery to continue past panicking listener, got %d", received)
	}
	if len(m.Impacts()) != 1 {
		t.Fatalf("manager state corrupted by panicking listener")
	}
}

func TestClearAndReset(t *testing.T) {
	m := NewManager(nil, DefaultConfig())
	notified := 0
	m.Subscribe(func(ev Event) { notified++ })

	m.Add(mgl32.Vec3{}, 0.5)
	m.Clear()
	if len(m.Impacts()) != 0 {
		t.Fatalf("expected empty buffer after clear")
	}

	// Clear keeps subscribers and the id counter.
	m.Add(mgl32.Vec3{}, 0.5)
	if notified != 2 {
		t.Fatalf("expected subscriber to survive clear, got %d notifications", notified)
	}
	if m.Impacts()[0].ID != 1 {
		t.Fatalf("expected id counter to survive clear, got %d", m.Impacts()[0].ID)
	}

	m.Reset()
	m.Add(mgl32.Vec3{}, 0.5)
	if notified != 2 {
		t.Fatalf("expected subscribers dropped on reset")
	}
	if m.Impacts()[0].ID != 0 {
		t.Fatalf("expected id counter reset, got %d", m.Impacts()[0].ID)
	}
}
