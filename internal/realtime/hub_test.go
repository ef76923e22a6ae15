package realtime

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"pedidos-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshot(id int64) *models.OrderSnapshot {
	return &models.OrderSnapshot{
		ID:      id,
		UserID:  7,
		Phone:   "555-1111",
		Type:    "delivery",
		Estatus: "Nuevo",
		Items:   []models.OrderItem{{Name: "Taco", Price: 2.5}},
	}
}

func TestPublishReachesAllSubscribers(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	a := hub.Subscribe()
	b := hub.Subscribe()
	require.Equal(t, 2, hub.Len())

	hub.Publish(models.RealtimeOrderCreated, snapshot(1))

	for _, sub := range []*Subscriber{a, b} {
		select {
		case ev := <-sub.Events():
			assert.Equal(t, models.RealtimeOrderCreated, ev.Event)
			assert.Equal(t, int64(1), ev.Payload.ID)
		case <-time.After(time.Second):
			t.Fatalf("subscriber %s did not receive event", sub.ID)
		}
	}
}

func TestLateSubscriberGetsNoBacklog(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	hub.Publish(models.RealtimeOrderCreated, snapshot(1))

	sub := hub.Subscribe()
	assert.Empty(t, sub.Events())
}

func TestEventsArriveInPublishOrder(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	sub := hub.Subscribe()

	for i := int64(1); i <= 10; i++ {
		hub.Publish(models.RealtimeOrderUpdated, snapshot(i))
	}

	for i := int64(1); i <= 10; i++ {
		ev := <-sub.Events()
		assert.Equal(t, i, ev.Payload.ID)
	}
}

func TestSlowSubscriberDoesNotBlockPublish(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	slow := hub.Subscribe()
	fast := hub.Subscribe()

	done := make(chan struct{})
	go func() {
		defer close(done)
		// Nobody drains slow; its buffer fills and publishes must still
		// return promptly.
		for i := 0; i < subscriberBuffer+10; i++ {
			hub.Publish(models.RealtimeOrderCreated, snapshot(int64(i)))
			<-fast.Events()
		}
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}

	assert.Len(t, slow.Events(), subscriberBuffer)
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	sub := hub.Subscribe()
	hub.Unsubscribe(sub)
	hub.Unsubscribe(sub)
	assert.Equal(t, 0, hub.Len())

	_, open := <-sub.Events()
	assert.False(t, open)

	// Publishing to an empty hub is a no-op.
	hub.Publish(models.RealtimeOrderUpdated, snapshot(2))
}

func TestConcurrentPublishAndChurn(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	var wg sync.WaitGroup

	for p := 0; p < 4; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				hub.Publish(models.RealtimeOrderCreated, snapshot(int64(p*100+i)))
			}
		}(p)
	}

	for c := 0; c < 8; c++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				sub := hub.Subscribe()
				hub.Unsubscribe(sub)
			}
		}()
	}

	wg.Wait()
	assert.Equal(t, 0, hub.Len())
}

func TestCloseTerminatesSubscribers(t *testing.T) {
	hub := NewHub()

	subs := make([]*Subscriber, 5)
	for i := range subs {
		subs[i] = hub.Subscribe()
	}

	hub.Close()
	require.Equal(t, 0, hub.Len())

	for i, sub := range subs {
		if _, open := <-sub.Events(); open {
			t.Fatalf("subscriber %d channel still open after close", i)
		}
	}
}

func ExampleHub_Publish() {
	hub := NewHub()
	defer hub.Close()

	sub := hub.Subscribe()
	hub.Publish(models.RealtimeOrderCreated, snapshot(42))

	ev := <-sub.Events()
	fmt.Println(ev.Event, ev.Payload.ID)
	// Output: nuevo_pedido 42
}
