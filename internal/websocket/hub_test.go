package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artigianatoshop/artigianato-backend/internal/app/model"
)

func receiveEvent(t *testing.T, client *Client) *OrderEvent {
	t.Helper()
	select {
	case data := <-client.Send:
		var event OrderEvent
		require.NoError(t, json.Unmarshal(data, &event))
		return &event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func expectNoEvent(t *testing.T, client *Client) {
	t.Helper()
	select {
	case data := <-client.Send:
		t.Fatalf("unexpected event delivered: %s", data)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHub_NotifyOrderCreated_TargetsParticipants(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	clientSession := NewClient(hub, nil, 1, model.RoleClient)
	artisanSession := NewClient(hub, nil, 2, model.RoleArtisan)
	strangerSession := NewClient(hub, nil, 3, model.RoleClient)
	adminSession := NewClient(hub, nil, 4, model.RoleAdmin)

	hub.Register(clientSession)
	hub.Register(artisanSession)
	hub.Register(strangerSession)
	hub.Register(adminSession)

	require.Eventually(t, func() bool {
		return hub.IsUserOnline(1) && hub.IsUserOnline(2) && hub.IsUserOnline(3) && hub.IsUserOnline(4)
	}, time.Second, 10*time.Millisecond)

	order := &model.Order{
		ClientID:   1,
		TotalPrice: 210,
		Status:     model.OrderStatusPending,
		OrderItems: []model.OrderItem{
			{ProductID: 10, ArtisanID: 2, Quantity: 2, UnitPrice: 80},
		},
	}
	order.ID = 42

	hub.NotifyOrderCreated(order)

	event := receiveEvent(t, clientSession)
	assert.Equal(t, EventOrderCreated, event.Type)
	assert.Equal(t, uint(42), event.OrderID)
	assert.Equal(t, "pending", event.Status)

	event = receiveEvent(t, artisanSession)
	assert.Equal(t, uint(42), event.OrderID)

	// Admins see everything, unrelated users see nothing
	event = receiveEvent(t, adminSession)
	assert.Equal(t, uint(42), event.OrderID)
	expectNoEvent(t, strangerSession)
}

func TestHub_NotifyOrderStatusChanged(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	clientSession := NewClient(hub, nil, 1, model.RoleClient)
	hub.Register(clientSession)
	require.Eventually(t, func() bool { return hub.IsUserOnline(1) }, time.Second, 10*time.Millisecond)

	order := &model.Order{ClientID: 1, Status: model.OrderStatusAccepted}
	order.ID = 7

	hub.NotifyOrderStatusChanged(order, model.OrderStatusPending)

	event := receiveEvent(t, clientSession)
	assert.Equal(t, EventOrderStatusChanged, event.Type)
	assert.Equal(t, "accepted", event.Status)
	assert.Equal(t, "pending", event.FromStatus)
}

func TestHub_MultiDevice(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	first := NewClient(hub, nil, 1, model.RoleClient)
	second := NewClient(hub, nil, 1, model.RoleClient)
	hub.Register(first)
	hub.Register(second)
	require.Eventually(t, func() bool { return hub.IsUserOnline(1) }, time.Second, 10*time.Millisecond)

	order := &model.Order{ClientID: 1, Status: model.OrderStatusPending}
	order.ID = 9
	hub.NotifyOrderCreated(order)

	assert.Equal(t, uint(9), receiveEvent(t, first).OrderID)
	assert.Equal(t, uint(9), receiveEvent(t, second).OrderID)
}
