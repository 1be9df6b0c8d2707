package amqp

import (
	"testing"
	"time"

	"hisab/internal/core"
)

func TestNewTransactionSyncMessage(t *testing.T) {
	msg := NewTransactionSyncMessage(core.Income, 12345, 2)

	if msg.Kind != core.Income {
		t.Errorf("Kind = %v, want %v", msg.Kind, core.Income)
	}
	if msg.ID != 12345 {
		t.Errorf("ID = %v, want 12345", msg.ID)
	}
	if msg.Version != 2 {
		t.Errorf("Version = %v, want 2", msg.Version)
	}
	if msg.Timestamp.IsZero() {
		t.Error("Timestamp should not be zero")
	}
	if time.Since(msg.Timestamp) > time.Second {
		t.Error("Timestamp should be recent")
	}
}

func TestTransactionSyncMessage_JSON(t *testing.T) {
	timestamp := time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC)
	msg := &TransactionSyncMessage{
		Kind:      core.Expense,
		ID:        12345,
		Version:   2,
		Timestamp: timestamp,
	}

	jsonBytes, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	parsed, err := TransactionSyncMessageFromJSON(jsonBytes)
	if err != nil {
		t.Fatalf("TransactionSyncMessageFromJSON() error = %v", err)
	}

	if parsed.Kind != msg.Kind {
		t.Errorf("Parsed Kind = %v, want %v", parsed.Kind, msg.Kind)
	}
	if parsed.ID != msg.ID {
		t.Errorf("Parsed ID = %v, want %v", parsed.ID, msg.ID)
	}
	if parsed.Version != msg.Version {
		t.Errorf("Parsed Version = %v, want %v", parsed.Version, msg.Version)
	}
	if !parsed.Timestamp.Equal(msg.Timestamp) {
		t.Errorf("Parsed Timestamp = %v, want %v", parsed.Timestamp, msg.Timestamp)
	}
}

func TestTransactionSyncMessage_InvalidPayloads(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"id": "not_a_number", "version": 1}`},
		{"missing kind", `{"id": 1, "version": 1}`},
		{"unknown kind", `{"kind": "transfer", "id": 1, "version": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := TransactionSyncMessageFromJSON([]byte(tt.body)); err == nil {
				t.Error("TransactionSyncMessageFromJSON() should fail")
			}
		})
	}
}
