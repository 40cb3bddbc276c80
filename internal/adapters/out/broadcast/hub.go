// Package broadcast fans order and location events out to in-process
// subscribers over topic queues. The WebSocket adapter attaches one
// subscription per connection; publishing never blocks the business
// operation that produced the event.
package broadcast

import (
	"sync"
	"time"

	"github.com/p-thanks/RouteX/internal/core/domain/model/kernel"
	"github.com/p-thanks/RouteX/internal/core/domain/model/order"
	"github.com/p-thanks/RouteX/internal/observability"
)

// Topic names. Per-entity topics carry the entity id after the colon.
const (
	TopicAdmin          = "admin"
	topicOrderPrefix    = "order:"
	topicCustomerPrefix = "customer:"
	topicDriverPrefix   = "driver:"
	topicTrackingPrefix = "tracking:"
)

// OrderTopic returns the topic carrying one order's lifecycle updates.
func OrderTopic(orderID kernel.UUID) string { return topicOrderPrefix + orderID.String() }

// CustomerTopic returns the topic carrying all of a customer's order updates.
func CustomerTopic(customerID kernel.UUID) string { return topicCustomerPrefix + customerID.String() }

// DriverTopic returns the topic carrying updates for a driver's assignments.
func DriverTopic(driverID kernel.UUID) string { return topicDriverPrefix + driverID.String() }

// TrackingTopic returns the topic carrying one order's live position fixes.
func TrackingTopic(orderID kernel.UUID) string { return topicTrackingPrefix + orderID.String() }

// Message is one event delivered to subscribers. Data is a JSON-friendly
// payload; connections marshal the whole message before writing it out.
type Message struct {
	Topic string `json:"topic"`
	Type  string `json:"type"`
	Data  any    `json:"data"`
}

// OrderUpdateData is the payload of an "order_update" message.
type OrderUpdateData struct {
	OrderID    string    `json:"order_id"`
	Number     string    `json:"number"`
	Status     string    `json:"status"`
	Note       string    `json:"note"`
	Lat        *float64  `json:"lat,omitempty"`
	Lon        *float64  `json:"lon,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// LocationUpdateData is the payload of a "location_update" message.
type LocationUpdateData struct {
	OrderID  string  `json:"order_id"`
	DriverID string  `json:"driver_id"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
}

// Hub routes messages from publishers to topic subscribers. Each
// subscriber owns a bounded queue; when a queue is full the oldest
// message is dropped so slow clients only lose history, never stall
// the publisher.
type Hub struct {
	mu        sync.RWMutex
	topics    map[string]map[*Subscription]struct{}
	queueSize int
}

// NewHub creates a hub. queueSize bounds each subscriber's queue.
func NewHub(queueSize int) *Hub {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Hub{
		topics:    make(map[string]map[*Subscription]struct{}),
		queueSize: queueSize,
	}
}

// Subscription is one subscriber's attachment to a set of topics.
// Receive from C; Done is closed when the subscription ends. The queue
// channel itself is never closed so late publishes cannot panic.
type Subscription struct {
	C <-chan Message

	hub    *Hub
	ch     chan Message
	done   chan struct{}
	names  []string
	closed sync.Once
}

// Done is closed when the subscription has been closed.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Subscribe attaches a new subscriber to the given topics.
func (h *Hub) Subscribe(topics ...string) *Subscription {
	ch := make(chan Message, h.queueSize)
	sub := &Subscription{C: ch, hub: h, ch: ch, done: make(chan struct{}), names: topics}

	h.mu.Lock()
	for _, name := range topics {
		subs, ok := h.topics[name]
		if !ok {
			subs = make(map[*Subscription]struct{})
			h.topics[name] = subs
		}
		subs[sub] = struct{}{}
	}
	h.mu.Unlock()

	observability.BroadcastSubscribers.Inc()
	return sub
}

// Close detaches the subscription from all topics.
func (s *Subscription) Close() {
	s.closed.Do(func() {
		s.hub.mu.Lock()
		for _, name := range s.names {
			if subs, ok := s.hub.topics[name]; ok {
				delete(subs, s)
				if len(subs) == 0 {
					delete(s.hub.topics, name)
				}
			}
		}
		s.hub.mu.Unlock()

		close(s.done)
		observability.BroadcastSubscribers.Dec()
	})
}

// PublishOrderUpdate announces an order transition on the order's topic,
// the customer's queue, the assigned driver's queue and the admin topic.
func (h *Hub) PublishOrderUpdate(aggregate *order.Order, event order.TrackingEvent) {
	data := OrderUpdateData{
		OrderID:    aggregate.ID().String(),
		Number:     aggregate.Number(),
		Status:     event.Status().String(),
		Note:       event.Note(),
		OccurredAt: event.OccurredAt(),
	}
	if pos := event.Position(); pos != nil {
		lat, lon := pos.Lat(), pos.Lon()
		data.Lat, data.Lon = &lat, &lon
	}

	topics := []string{
		OrderTopic(aggregate.ID()),
		CustomerTopic(aggregate.CustomerID()),
		TopicAdmin,
	}
	if driverID := aggregate.DriverID(); driverID != nil {
		topics = append(topics, DriverTopic(*driverID))
	}

	for _, name := range topics {
		h.publish(Message{Topic: name, Type: "order_update", Data: data})
	}
}

// PublishLocationUpdate announces a driver position fix on the order's
// tracking topic.
func (h *Hub) PublishLocationUpdate(orderID, driverID kernel.UUID, point kernel.GeoPoint) {
	h.publish(Message{
		Topic: TrackingTopic(orderID),
		Type:  "location_update",
		Data: LocationUpdateData{
			OrderID:  orderID.String(),
			DriverID: driverID.String(),
			Lat:      point.Lat(),
			Lon:      point.Lon(),
		},
	})
}

func (h *Hub) publish(msg Message) {
	h.mu.RLock()
	subs := make([]*Subscription, 0, len(h.topics[msg.Topic]))
	for sub := range h.topics[msg.Topic] {
		subs = append(subs, sub)
	}
	h.mu.RUnlock()

	for _, sub := range subs {
		sub.offer(msg)
	}
}

// offer enqueues the message, evicting the oldest entry when the queue
// is full. Eviction races with the reader; losing that race just means
// the queue drained and the send goes through.
func (s *Subscription) offer(msg Message) {
	for {
		select {
		case <-s.done:
			return
		default:
		}

		select {
		case s.ch <- msg:
			return
		default:
		}

		select {
		case <-s.ch:
			observability.BroadcastDroppedTotal.Inc()
		default:
		}
	}
}
