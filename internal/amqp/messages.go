package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"hisab/internal/core"
)

// TransactionSyncMessage tells the backup worker to mirror one ledger row.
// It carries only the kind, id, and version; the worker loads the full row
// from the database before appending it to the spreadsheet.
type TransactionSyncMessage struct {
	Kind      core.TransactionKind `json:"kind"`
	ID        int64                `json:"id"`
	Version   int64                `json:"version"`
	Timestamp time.Time            `json:"timestamp"`
}

func NewTransactionSyncMessage(kind core.TransactionKind, id, version int64) *TransactionSyncMessage {
	return &TransactionSyncMessage{
		Kind:      kind,
		ID:        id,
		Version:   version,
		Timestamp: time.Now(),
	}
}

func (m *TransactionSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func TransactionSyncMessageFromJSON(data []byte) (*TransactionSyncMessage, error) {
	var msg TransactionSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if !msg.Kind.IsValid() {
		return nil, fmt.Errorf("invalid transaction kind %q", msg.Kind)
	}
	return &msg, nil
}
