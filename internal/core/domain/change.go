package domain

import "encoding/json"

// ChangeType is the kind of row change carried by a change event.
type ChangeType string

const (
	ChangeInsert ChangeType = "INSERT"
	ChangeUpdate ChangeType = "UPDATE"
)

// Stream names a change stream a client can subscribe to.
type Stream string

const (
	StreamOrders    Stream = "orders"
	StreamTransfers Stream = "transfers"
)

// ChangeEvent is a row-level change pushed on a change stream.
// Record is the new row; OldRecord is set for updates only.
type ChangeEvent struct {
	Type      ChangeType      `json:"type"`
	Table     string          `json:"table"`
	Record    json.RawMessage `json:"record"`
	OldRecord json.RawMessage `json:"old_record,omitempty"`
}

// tableStreams maps backing tables to their stream.
var tableStreams = map[string]Stream{
	"orders":        StreamOrders,
	"bar_transfers": StreamTransfers,
}

// StreamForTable returns the stream a table's changes are published on.
func StreamForTable(table string) (Stream, bool) {
	s, ok := tableStreams[table]
	return s, ok
}

// ParseStream validates a stream name.
func ParseStream(name string) (Stream, bool) {
	switch Stream(name) {
	case StreamOrders, StreamTransfers:
		return Stream(name), true
	}
	return "", false
}
