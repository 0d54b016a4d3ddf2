package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// completionFallback is substituted when the model returns no content, so the
// response field is never empty on success.
const completionFallback = "Sorry, I couldn't generate a response"

// Fixed decoding parameters for the completion model.
const (
	completionTemperature = 0.7
	completionMaxTokens   = 2048
)

// CompletionService obtains single non-streaming completions from a hosted
// model. It is stateless across invocations: each call carries only the
// latest utterance, no history is retained server-side.
type CompletionService struct {
	client   *genai.Client
	model    *genai.GenerativeModel
	rateChan chan struct{} // Token bucket
}

func NewCompletionService(apiKey, modelName string, concurrentReqs int) (*CompletionService, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create completion client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(completionTemperature)
	model.SetMaxOutputTokens(completionMaxTokens)

	// Token bucket for upstream concurrency
	rateChan := make(chan struct{}, concurrentReqs)
	for i := 0; i < concurrentReqs; i++ {
		rateChan <- struct{}{}
	}

	return &CompletionService{
		client:   client,
		model:    model,
		rateChan: rateChan,
	}, nil
}

func (s *CompletionService) Close() {
	s.client.Close()
}

// acquireRate blocks until an upstream slot is available
func (s *CompletionService) acquireRate(ctx context.Context) error {
	select {
	case <-s.rateChan:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(time.Minute):
		return fmt.Errorf("timeout waiting for completion slot")
	}
}

func (s *CompletionService) releaseRate() {
	s.rateChan <- struct{}{}
}

// Complete obtains exactly one completion for the given message. The reply is
// never empty: an empty model response yields the fallback string.
func (s *CompletionService) Complete(ctx context.Context, message string) (string, error) {
	if err := s.acquireRate(ctx); err != nil {
		return "", err
	}
	defer s.releaseRate()

	resp, err := s.model.GenerateContent(ctx, genai.Text(message))
	if err != nil {
		return "", fmt.Errorf("completion API error: %w", err)
	}

	return replyFromResponse(resp), nil
}

// replyFromResponse extracts the generated text, substituting the fallback
// when the model returned no content.
func replyFromResponse(resp *genai.GenerateContentResponse) string {
	text := extractText(resp)
	if text == "" {
		log.Println("WARNING: completion model returned empty text. Using fallback.")
		return completionFallback
	}
	return text
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}
