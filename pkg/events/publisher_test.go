package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

func TestNewEventAssignsIDAndTime(t *testing.T) {
	a := NewEvent("promo.redeemed", "SAVE10", map[string]string{"order_id": "o-1"})
	b := NewEvent("promo.redeemed", "SAVE10", nil)

	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("expected distinct non-empty ids, got %q and %q", a.ID, b.ID)
	}
	if a.OccurredAt.IsZero() {
		t.Fatal("OccurredAt not set")
	}
}

func TestEncodeCarriesKeyAndHeaders(t *testing.T) {
	event := NewEvent("promo.redeemed", "SAVE10", map[string]string{"order_id": "o-1"})

	msg, err := encode(event)
	if err != nil {
		t.Fatalf("encode() error = %v", err)
	}
	if string(msg.Key) != "SAVE10" {
		t.Errorf("Key = %q, want SAVE10", msg.Key)
	}
	if len(msg.Headers) != 2 || string(msg.Headers[0].Value) != "promo.redeemed" {
		t.Errorf("unexpected headers %+v", msg.Headers)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(msg.Value, &decoded); err != nil {
		t.Fatalf("value is not json: %v", err)
	}
	if decoded["type"] != "promo.redeemed" || decoded["id"] != event.ID {
		t.Errorf("decoded = %v", decoded)
	}
	if _, ok := decoded["Key"]; ok {
		t.Error("key must not be serialized into the body")
	}
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	if err := p.Publish(context.Background(), NewEvent("x", "", nil)); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
}

func TestKafkaPublisherFlushesPromptly(t *testing.T) {
	k := NewKafkaPublisher([]string{"localhost:9092"}, "promo-events", 2*time.Second)
	defer k.Close()

	if k.writer.BatchTimeout <= 0 || k.writer.BatchTimeout > 50*time.Millisecond {
		t.Fatalf("BatchTimeout = %v, want a few milliseconds", k.writer.BatchTimeout)
	}
	if k.writer.WriteTimeout != 2*time.Second {
		t.Fatalf("WriteTimeout = %v, want 2s", k.writer.WriteTimeout)
	}
}
