package eventbus

import (
	"context"
	"testing"
)

type pingEvent struct{ N int }
type otherEvent struct{}

func TestPublishReachesSubscribersOfType(t *testing.T) {
	Use(New())
	defer Use(nil)

	var got []pingEvent
	unsubscribe := Subscribe(func(_ context.Context, e pingEvent) {
		got = append(got, e)
	})
	defer unsubscribe()

	Publish(context.Background(), pingEvent{N: 1})
	Publish(context.Background(), otherEvent{})
	Publish(context.Background(), pingEvent{N: 2})

	if len(got) != 2 || got[0].N != 1 || got[1].N != 2 {
		t.Fatalf("unexpected events: %+v", got)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	Use(New())
	defer Use(nil)

	count := 0
	unsubscribe := Subscribe(func(context.Context, pingEvent) { count++ })

	Publish(context.Background(), pingEvent{})
	unsubscribe()
	Publish(context.Background(), pingEvent{})

	if count != 1 {
		t.Fatalf("expected 1 delivery, got %d", count)
	}
}

func TestPublishWithoutBusIsNoop(t *testing.T) {
	Use(nil)
	Publish(context.Background(), pingEvent{})

	unsubscribe := Subscribe(func(context.Context, pingEvent) {
		t.Fatal("subscription on nil bus must never fire")
	})
	unsubscribe()
}
