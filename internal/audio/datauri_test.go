package audio

import (
	"bytes"
	"testing"

	"voxchat/internal/services"
)

func TestDecodeDataURI_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		bytes []byte
	}{
		{"id3 header", []byte{0x49, 0x44, 0x33}},
		{"single byte", []byte{0x00}},
		{"binary with high bytes", []byte{0xFF, 0xFB, 0x90, 0x00, 0xDE, 0xAD}},
		{"empty payload", []byte{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			uri := services.EncodeAudioDataURI(tc.bytes)
			got, err := DecodeDataURI(uri)
			if err != nil {
				t.Fatalf("DecodeDataURI failed: %v", err)
			}
			if !bytes.Equal(got, tc.bytes) {
				t.Errorf("Round trip mismatch: sent %v, got %v", tc.bytes, got)
			}
		})
	}
}

func TestDecodeDataURI_Invalid(t *testing.T) {
	tests := []struct {
		name string
		uri  string
	}{
		{"not a data URI", "https://example.com/audio.mp3"},
		{"wrong media type", "data:text/plain;base64,aGVsbG8="},
		{"not base64 encoded", "data:audio/mp3,rawbytes"},
		{"corrupt payload", "data:audio/mp3;base64,%%%%"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeDataURI(tc.uri); err == nil {
				t.Errorf("Expected error for %q", tc.uri)
			}
		})
	}
}
