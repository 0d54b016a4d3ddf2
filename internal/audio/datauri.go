// Package audio decodes gateway audio payloads and plays them through an
// external player.
package audio

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// DecodeDataURI extracts the raw bytes from a base64 audio data URI of the
// form data:audio/mp3;base64,<payload>.
func DecodeDataURI(dataURI string) ([]byte, error) {
	if !strings.HasPrefix(dataURI, "data:audio/") {
		return nil, fmt.Errorf("not an audio data URI")
	}

	marker := "base64,"
	i := strings.Index(dataURI, marker)
	if i < 0 {
		return nil, fmt.Errorf("data URI is not base64 encoded")
	}

	data, err := base64.StdEncoding.DecodeString(dataURI[i+len(marker):])
	if err != nil {
		return nil, fmt.Errorf("failed to decode audio payload: %w", err)
	}
	return data, nil
}
