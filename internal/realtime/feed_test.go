package realtime

import (
	"testing"
)

func TestFeedSubscribePublish(t *testing.T) {
	feed := NewFeed()

	var orderEvents, inventoryEvents []Event
	unsubOrders := feed.Subscribe(EntityOrder, func(e Event) {
		orderEvents = append(orderEvents, e)
	})
	feed.Subscribe(EntityInventory, func(e Event) {
		inventoryEvents = append(inventoryEvents, e)
	})

	feed.Publish(Event{Entity: EntityOrder, Type: EventInsert})
	feed.Publish(Event{Entity: EntityOrder, Type: EventUpdate})
	feed.Publish(Event{Entity: EntityInventory, Type: EventUpdate})

	if len(orderEvents) != 2 {
		t.Fatalf("order subscriber saw %d events, want 2", len(orderEvents))
	}
	if orderEvents[0].Type != EventInsert || orderEvents[1].Type != EventUpdate {
		t.Fatalf("events out of order: %+v", orderEvents)
	}
	if len(inventoryEvents) != 1 {
		t.Fatalf("inventory subscriber saw %d events, want 1", len(inventoryEvents))
	}

	unsubOrders()
	feed.Publish(Event{Entity: EntityOrder, Type: EventDelete})
	if len(orderEvents) != 2 {
		t.Fatalf("unsubscribed handler still received events")
	}
	if feed.SubscriberCount(EntityOrder) != 0 {
		t.Fatalf("subscriber count = %d after unsubscribe", feed.SubscriberCount(EntityOrder))
	}
}

func TestFeedUnsubscribeIdempotent(t *testing.T) {
	feed := NewFeed()
	unsub := feed.Subscribe(EntityOrder, func(Event) {})
	unsub()
	unsub()
	if feed.SubscriberCount(EntityOrder) != 0 {
		t.Fatalf("double unsubscribe left handlers behind")
	}
}
