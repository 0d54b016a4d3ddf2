package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"voxchat/internal/models"
)

const speakErrMessage = "Failed to generate speech"

type speechService interface {
	Synthesize(ctx context.Context, text string) (string, error)
}

type SpeakHandler struct {
	speech speechService
}

func NewSpeakHandler(speech speechService) *SpeakHandler {
	return &SpeakHandler{speech: speech}
}

// Speak converts arbitrary text to playable audio, returned as a
// data:audio/mp3;base64 URI.
func (h *SpeakHandler) Speak(w http.ResponseWriter, r *http.Request) {
	var req models.SpeakRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding speak request: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResp(speakErrMessage))
		return
	}

	audioData, err := h.speech.Synthesize(r.Context(), req.Text)
	if err != nil {
		log.Printf("Error generating speech: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResp(speakErrMessage))
		return
	}

	writeJSON(w, http.StatusOK, models.SpeakResponse{AudioData: audioData})
}
