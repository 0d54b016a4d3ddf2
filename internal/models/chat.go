package models

// Sender identifies who authored a conversation message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Message represents a single turn in a conversation. Messages are immutable
// once created; the conversation log is append-only for the session.
type Message struct {
	Text   string `json:"text"`
	Sender Sender `json:"sender"`
}

// ChatRequest is the payload sent to the chat endpoint.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse carries the generated assistant reply.
type ChatResponse struct {
	Response string `json:"response"`
}

// SpeakRequest is the payload sent to the speak endpoint.
type SpeakRequest struct {
	Text string `json:"text"`
}

// SpeakResponse carries synthesized audio as a data:audio/mp3;base64 URI,
// directly usable as a playback source without a separate fetch.
type SpeakResponse struct {
	AudioData string `json:"audioData"`
}

// ErrorResponse is the generic failure body returned by both gateways.
type ErrorResponse struct {
	Error string `json:"error"`
}
