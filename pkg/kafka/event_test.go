package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopic(t *testing.T) {
	assert.Equal(t, "storefront.order.placed", Topic("order", "placed"))
	assert.Equal(t, "storefront.cart.updated", Topic("cart", "updated"))
}

func TestNewEvent_Fields(t *testing.T) {
	type orderPlaced struct {
		OrderID string `json:"order_id"`
		Total   string `json:"total"`
	}

	data := orderPlaced{OrderID: "ord-1", Total: "53.00"}
	event, err := NewEvent("order.placed", "ord-1", "order", "storefront", data)
	require.NoError(t, err)

	assert.Len(t, event.ID, 36)
	assert.Equal(t, "order.placed", event.Type)
	assert.Equal(t, "ord-1", event.AggregateID)
	assert.Equal(t, "order", event.AggregateType)
	assert.Equal(t, "storefront", event.Source)
	assert.Equal(t, 1, event.Version)
	assert.WithinDuration(t, time.Now().UTC(), event.OccurredAt, 2*time.Second)
	assert.Empty(t, event.CorrelationID)

	var got orderPlaced
	require.NoError(t, event.UnmarshalData(&got))
	assert.Equal(t, data, got)
}

func TestNewEvent_InvalidData(t *testing.T) {
	_, err := NewEvent("cart.updated", "default", "cart", "storefront", make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "marshal event data")
}

func TestEvent_WireFormat(t *testing.T) {
	original, err := NewEvent("product.changed", "acai", "product", "storefront", map[string]string{"change": "updated"})
	require.NoError(t, err)
	original.WithCorrelationID("corr-abc")

	raw, err := json.Marshal(original)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	for _, key := range []string{"event_id", "event_type", "aggregate_id", "aggregate_type", "version", "timestamp", "source", "correlation_id", "data"} {
		assert.Contains(t, fields, key)
	}

	restored, err := DecodeEvent(raw)
	require.NoError(t, err)
	assert.Equal(t, original.ID, restored.ID)
	assert.Equal(t, "corr-abc", restored.CorrelationID)
	assert.JSONEq(t, string(original.Data), string(restored.Data))
}

func TestDecodeEvent_Invalid(t *testing.T) {
	_, err := DecodeEvent([]byte("{not json"))
	assert.Error(t, err)

	_, err = DecodeEvent(nil)
	assert.Error(t, err)

	var target map[string]any
	bad := &Event{Data: json.RawMessage("{oops")}
	assert.Error(t, bad.UnmarshalData(&target))
}
