// Package conversation holds the client-side state machine that sequences
// gateway calls against the ordered message log.
package conversation

import (
	"strings"

	"voxchat/internal/models"
)

// FailureKind tags which gateway call failed.
type FailureKind int

const (
	FailureCompletion FailureKind = iota + 1
	FailureSpeech
)

// Failure is a recoverable error surfaced to the view instead of being
// swallowed. It is replaced on the next failure and cleared on the next
// submit (or explicitly).
type Failure struct {
	Kind FailureKind
	Err  error
}

// Controller owns the append-only message log and per-action in-flight state
// for one chat session. Entries are never removed, reordered, or mutated.
//
// Each submit is issued under a monotonically increasing correlation token;
// a completion result is applied only when its token is still the latest, so
// responses resolving out of order cannot interleave the log. Speak requests
// are tracked per message index, independent of the submit flag.
//
// Controller is not safe for concurrent use; it is driven from a single
// event loop.
type Controller struct {
	messages []models.Message

	submitSeq     uint64 // last issued correlation token
	submitPending uint64 // token of the in-flight submit, 0 when idle

	speaking map[int]bool // message index -> speak request in flight

	lastFailure *Failure
}

func New() *Controller {
	return &Controller{speaking: make(map[int]bool)}
}

// Submit appends the user's message optimistically, before any network call
// resolves, and returns the correlation token for the resulting completion
// request. Empty or whitespace-only input returns 0 and changes nothing.
func (c *Controller) Submit(text string) uint64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}

	c.messages = append(c.messages, models.Message{Text: text, Sender: models.SenderUser})
	c.submitSeq++
	c.submitPending = c.submitSeq
	c.lastFailure = nil
	return c.submitSeq
}

// ResolveCompletion settles the submit identified by token. Stale tokens
// (superseded by a newer Submit) are discarded without touching the log.
// On success the assistant reply is appended; on failure the log is left
// unchanged and the failure is recorded for the view. Reports whether a
// message was appended.
func (c *Controller) ResolveCompletion(token uint64, reply string, err error) bool {
	if token == 0 || token != c.submitPending {
		return false
	}
	c.submitPending = 0

	if err != nil {
		c.lastFailure = &Failure{Kind: FailureCompletion, Err: err}
		return false
	}

	c.messages = append(c.messages, models.Message{Text: reply, Sender: models.SenderAssistant})
	return true
}

// BeginSpeak marks a speak request in flight for the message at index i.
// Returns false, meaning no call should be made, for out-of-range indexes,
// whitespace-only text, or a speak already pending on that message.
func (c *Controller) BeginSpeak(i int) bool {
	if i < 0 || i >= len(c.messages) {
		return false
	}
	if strings.TrimSpace(c.messages[i].Text) == "" {
		return false
	}
	if c.speaking[i] {
		return false
	}
	c.speaking[i] = true
	return true
}

// ResolveSpeak settles the speak request for message i.
func (c *Controller) ResolveSpeak(i int, err error) {
	delete(c.speaking, i)
	if err != nil {
		c.lastFailure = &Failure{Kind: FailureSpeech, Err: err}
	}
}

// SubmitBusy reports whether a completion request is in flight.
func (c *Controller) SubmitBusy() bool { return c.submitPending != 0 }

// Speaking reports whether a speak request is in flight for message i.
func (c *Controller) Speaking(i int) bool { return c.speaking[i] }

// Busy reports whether any gateway call is in flight.
func (c *Controller) Busy() bool { return c.submitPending != 0 || len(c.speaking) > 0 }

// Messages returns the log, oldest first. Callers must not mutate it.
func (c *Controller) Messages() []models.Message { return c.messages }

// Len returns the number of messages in the log.
func (c *Controller) Len() int { return len(c.messages) }

// LastFailure returns the most recent unacknowledged failure, or nil.
func (c *Controller) LastFailure() *Failure { return c.lastFailure }

// ClearFailure acknowledges the surfaced failure.
func (c *Controller) ClearFailure() { c.lastFailure = nil }
