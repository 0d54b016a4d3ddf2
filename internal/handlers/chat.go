package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/redis/go-redis/v9"

	"voxchat/internal/models"
)

// chatErrMessage is the only failure text the caller ever sees; underlying
// causes are logged for diagnostics but never surfaced.
const chatErrMessage = "Failed to process request"

type completionService interface {
	Complete(ctx context.Context, message string) (string, error)
}

type ChatHandler struct {
	completions completionService
	redis       *redis.Client // nil disables session event publishing
}

func NewChatHandler(completions completionService, redisClient *redis.Client) *ChatHandler {
	return &ChatHandler{
		completions: completions,
		redis:       redisClient,
	}
}

// Ask forwards a single user utterance to the completion model and returns
// the generated reply. Each request is isolated: no history travels upstream.
func (h *ChatHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding chat request: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResp(chatErrMessage))
		return
	}

	reply, err := h.completions.Complete(r.Context(), req.Message)
	if err != nil {
		log.Printf("Error in chat completion: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResp(chatErrMessage))
		return
	}

	if session := r.Header.Get("X-Session-ID"); session != "" {
		h.publishExchange(r.Context(), session, []models.Message{
			{Text: req.Message, Sender: models.SenderUser},
			{Text: reply, Sender: models.SenderAssistant},
		})
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{Response: reply})
}

// publishExchange mirrors a completed exchange to other views of the session
// via Redis pub/sub. Best effort: failures are logged, never surfaced.
func (h *ChatHandler) publishExchange(ctx context.Context, session string, msgs []models.Message) {
	if h.redis == nil {
		return
	}

	event := models.ConversationEvent{
		Type:     models.EventTypeExchange,
		Session:  session,
		Messages: msgs,
	}
	data, _ := json.Marshal(event)

	channel := fmt.Sprintf("session_updates:%s", session)
	if err := h.redis.Publish(ctx, channel, string(data)).Err(); err != nil {
		log.Printf("Error publishing conversation event: %v", err)
	}
}
