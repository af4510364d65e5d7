package ws

type MessageType string

const (
	MsgSnapshot MessageType = "snapshot"
)

// WSMessage is the envelope for every server-to-client message.
type WSMessage struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

// StatRow is the per-message statistics row, one per monitored name in
// whitelist order. LastSeenMs is milliseconds since the last arrival, or
// -1 when the message has never been seen.
type StatRow struct {
	Name       string  `json:"name"`
	Count      uint64  `json:"count"`
	Rate       float64 `json:"rate"`
	LastSeenMs int64   `json:"lastSeenMs"`
}

// SnapshotPayload is a full point-in-time statistics snapshot.
type SnapshotPayload struct {
	ElapsedSeconds int64     `json:"elapsedSeconds"`
	Rows           []StatRow `json:"rows"`
}
