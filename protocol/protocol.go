// Package protocol defines the JSON messages exchanged with browser clients.
package protocol

import "encoding/json"

const Version = "1.0"

// Message types.
const (
	TypeWelcome = "WELCOME"
	TypeFrame   = "FRAME"
	TypeStats   = "STATS"
	TypeError   = "ERROR"

	TypePointerDown     = "POINTER_DOWN"
	TypePointerMove     = "POINTER_MOVE"
	TypePointerUp       = "POINTER_UP"
	TypeClick           = "CLICK"
	TypePurchase        = "PURCHASE"
	TypeCancelPlacement = "CANCEL_PLACEMENT"
	TypeStatSheet       = "STAT_SHEET"
)

// BaseMessage lets us route unknown JSON messages by type.
type BaseMessage struct {
	Type string `json:"type"`
}

func DecodeBase(b []byte) (BaseMessage, error) {
	var m BaseMessage
	err := json.Unmarshal(b, &m)
	return m, err
}
