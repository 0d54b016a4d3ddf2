package models

// ConversationEvent is published on a session's pub/sub channel after a
// completed exchange so that other connected views of the same session can
// mirror the new messages.
type ConversationEvent struct {
	Type     string    `json:"type"`
	Session  string    `json:"session"`
	Messages []Message `json:"messages"`
}

// EventTypeExchange marks a user message / assistant reply pair.
const EventTypeExchange = "exchange"
