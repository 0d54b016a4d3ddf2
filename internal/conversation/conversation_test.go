package conversation

import (
	"errors"
	"testing"

	"voxchat/internal/models"
)

func TestSubmit_OptimisticAppend(t *testing.T) {
	c := New()

	token := c.Submit("Hello")
	if token == 0 {
		t.Fatal("Expected a correlation token for non-empty input")
	}

	// User message is visible before any network response arrives
	if c.Len() != 1 {
		t.Fatalf("Expected 1 message after submit, got %d", c.Len())
	}
	msg := c.Messages()[0]
	if msg.Text != "Hello" || msg.Sender != models.SenderUser {
		t.Errorf("Expected optimistic user message, got %+v", msg)
	}
	if !c.SubmitBusy() {
		t.Error("Expected submit flag set while request is in flight")
	}
}

func TestSubmit_RejectsEmptyInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"spaces", "   "},
		{"tabs and newlines", "\t\n "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := New()
			if token := c.Submit(tc.input); token != 0 {
				t.Errorf("Expected no token for %q, got %d", tc.input, token)
			}
			if c.Len() != 0 {
				t.Errorf("Expected empty log, got %d messages", c.Len())
			}
			if c.Busy() {
				t.Error("Expected controller idle")
			}
		})
	}
}

func TestResolveCompletion_Success(t *testing.T) {
	c := New()
	token := c.Submit("Hello")

	if !c.ResolveCompletion(token, "Hi there!", nil) {
		t.Fatal("Expected resolution to apply")
	}

	expected := []models.Message{
		{Text: "Hello", Sender: models.SenderUser},
		{Text: "Hi there!", Sender: models.SenderAssistant},
	}
	got := c.Messages()
	if len(got) != len(expected) {
		t.Fatalf("Expected %d messages, got %d", len(expected), len(got))
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Message %d: expected %+v, got %+v", i, expected[i], got[i])
		}
	}
	if c.SubmitBusy() {
		t.Error("Expected submit flag cleared after settlement")
	}
	if c.LastFailure() != nil {
		t.Error("Expected no failure on success")
	}
}

func TestResolveCompletion_FallbackPassesThrough(t *testing.T) {
	c := New()
	token := c.Submit("Hello")

	c.ResolveCompletion(token, "Sorry, I couldn't generate a response", nil)

	if got := c.Messages()[1].Text; got != "Sorry, I couldn't generate a response" {
		t.Errorf("Expected fallback literal appended verbatim, got %q", got)
	}
}

func TestResolveCompletion_FailureLeavesLogUnchanged(t *testing.T) {
	c := New()
	token := c.Submit("Hello")
	lenBefore := c.Len()

	applied := c.ResolveCompletion(token, "", errors.New("network down"))

	if applied {
		t.Error("Expected failed resolution not to apply")
	}
	if c.Len() != lenBefore {
		t.Errorf("Expected log length unchanged (%d), got %d", lenBefore, c.Len())
	}
	if c.SubmitBusy() {
		t.Error("Expected submit flag cleared after failure")
	}

	failure := c.LastFailure()
	if failure == nil || failure.Kind != FailureCompletion {
		t.Fatalf("Expected a tagged completion failure, got %+v", failure)
	}
}

func TestResolveCompletion_DiscardsStaleToken(t *testing.T) {
	c := New()
	first := c.Submit("first question")
	second := c.Submit("second question")

	// The first request resolves late; it was superseded and must be dropped
	if c.ResolveCompletion(first, "stale reply", nil) {
		t.Error("Expected stale resolution to be discarded")
	}
	if c.Len() != 2 {
		t.Fatalf("Expected only the two user messages, got %d", c.Len())
	}
	if !c.SubmitBusy() {
		t.Error("Expected latest submit still in flight")
	}

	if !c.ResolveCompletion(second, "current reply", nil) {
		t.Fatal("Expected latest resolution to apply")
	}
	if got := c.Messages()[2].Text; got != "current reply" {
		t.Errorf("Expected latest reply appended, got %q", got)
	}
}

func TestResolveCompletion_IgnoresZeroAndSettledTokens(t *testing.T) {
	c := New()
	token := c.Submit("Hello")
	c.ResolveCompletion(token, "Hi there!", nil)

	if c.ResolveCompletion(token, "duplicate", nil) {
		t.Error("Expected already-settled token to be discarded")
	}
	if c.ResolveCompletion(0, "phantom", nil) {
		t.Error("Expected zero token to be discarded")
	}
	if c.Len() != 2 {
		t.Errorf("Expected 2 messages, got %d", c.Len())
	}
}

func TestBeginSpeak(t *testing.T) {
	tests := []struct {
		name     string
		index    int
		expected bool
	}{
		{"user message", 0, true},
		{"assistant message", 1, true},
		{"negative index", -1, false},
		{"out of range", 2, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := New()
			tok := c.Submit("Hello")
			c.ResolveCompletion(tok, "Hi there!", nil)

			if got := c.BeginSpeak(tc.index); got != tc.expected {
				t.Errorf("BeginSpeak(%d): expected %v, got %v", tc.index, tc.expected, got)
			}
		})
	}
}

func TestBeginSpeak_WhitespaceOnlyIsNoOp(t *testing.T) {
	c := New()
	token := c.Submit("Hello")
	// Simulate a reply that is non-empty at the wire but blank once rendered
	c.ResolveCompletion(token, "   \n", nil)

	if c.BeginSpeak(1) {
		t.Error("Expected whitespace-only text to trigger no speak request")
	}
	if c.Busy() {
		t.Error("Expected controller idle after rejected speak")
	}
}

func TestSpeak_PerMessageBusyLifecycle(t *testing.T) {
	c := New()
	t1 := c.Submit("Hello")
	c.ResolveCompletion(t1, "Hi there!", nil)
	t2 := c.Submit("How are you?")
	c.ResolveCompletion(t2, "Doing well.", nil)

	if !c.BeginSpeak(1) {
		t.Fatal("Expected speak to start")
	}
	if !c.Speaking(1) {
		t.Error("Expected message 1 marked speaking")
	}
	if c.Speaking(3) {
		t.Error("Expected message 3 not speaking")
	}
	if c.BeginSpeak(1) {
		t.Error("Expected duplicate speak on same message to be rejected")
	}

	// A different message can speak concurrently; flags are independent
	if !c.BeginSpeak(3) {
		t.Error("Expected independent speak on another message")
	}
	if !c.Busy() {
		t.Error("Expected controller busy with speaks in flight")
	}

	c.ResolveSpeak(1, nil)
	if c.Speaking(1) {
		t.Error("Expected message 1 settled")
	}
	c.ResolveSpeak(3, errors.New("synthesis failed"))
	if c.Busy() {
		t.Error("Expected controller idle after all settlements")
	}

	failure := c.LastFailure()
	if failure == nil || failure.Kind != FailureSpeech {
		t.Fatalf("Expected a tagged speech failure, got %+v", failure)
	}

	c.ClearFailure()
	if c.LastFailure() != nil {
		t.Error("Expected failure cleared")
	}
}

func TestSpeakDoesNotBlockSubmitState(t *testing.T) {
	c := New()
	t1 := c.Submit("Hello")
	c.ResolveCompletion(t1, "Hi there!", nil)

	c.BeginSpeak(1)
	if c.SubmitBusy() {
		t.Error("Expected speak in flight not to set the submit flag")
	}

	// A submit while speech is pending keeps both states independent
	c.Submit("Another question")
	if !c.SubmitBusy() || !c.Speaking(1) {
		t.Error("Expected independent in-flight indicators")
	}
}
