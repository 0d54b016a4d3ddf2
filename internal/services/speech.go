package services

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
)

// AudioDataURIPrefix declares the media type of synthesized payloads.
const AudioDataURIPrefix = "data:audio/mp3;base64,"

const speechAPIURL = "https://api.deepgram.com/v1/speak"

// SpeechService submits text to a hosted speech-synthesis model and returns
// the binary MP3 payload re-encoded as a base64 data URI. Stateless apart
// from an optional Redis cache of synthesized audio.
type SpeechService struct {
	apiKey     string
	apiURL     string
	voice      string
	httpClient *http.Client
	cache      *redis.Client // nil disables caching
	cacheTTL   time.Duration
}

type speakPayload struct {
	Text string `json:"text"`
}

func NewSpeechService(apiKey, voice string, cache *redis.Client, cacheTTL time.Duration) *SpeechService {
	return &SpeechService{
		apiKey:     apiKey,
		apiURL:     speechAPIURL,
		voice:      voice,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		cache:      cache,
		cacheTTL:   cacheTTL,
	}
}

// Synthesize converts text to playable audio. The result is self-describing:
// a data:audio/mp3;base64 URI wrapping the upstream MP3 bytes.
func (s *SpeechService) Synthesize(ctx context.Context, text string) (string, error) {
	key := s.cacheKey(text)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key).Result(); err == nil {
			return cached, nil
		}
	}

	body, err := json.Marshal(speakPayload{Text: text})
	if err != nil {
		return "", fmt.Errorf("failed to marshal speech request: %w", err)
	}

	endpoint := s.apiURL + "?model=" + url.QueryEscape(s.voice)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create speech request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Token "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("speech API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("speech API returned status %d", resp.StatusCode)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read audio response: %w", err)
	}
	if len(audio) == 0 {
		return "", fmt.Errorf("speech API returned empty audio")
	}

	dataURI := EncodeAudioDataURI(audio)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, dataURI, s.cacheTTL).Err(); err != nil {
			log.Printf("WARNING: failed to cache synthesized audio: %v", err)
		}
	}

	return dataURI, nil
}

func (s *SpeechService) cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return "speak:" + s.voice + ":" + hex.EncodeToString(sum[:])
}

// EncodeAudioDataURI wraps MP3 bytes as a base64 data URI.
func EncodeAudioDataURI(audio []byte) string {
	return AudioDataURIPrefix + base64.StdEncoding.EncodeToString(audio)
}
