package audio

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// Player plays MP3 payloads by piping them to an external player binary.
// The played audio is transient: nothing is kept once the process exits.
type Player struct {
	binary string
	args   []string
}

// playerCandidates are tried in order; all of them accept MP3 on stdin.
var playerCandidates = []struct {
	binary string
	args   []string
}{
	{"ffplay", []string{"-autoexit", "-nodisp", "-loglevel", "error", "-i", "-"}},
	{"mpg123", []string{"-q", "-"}},
}

// NewPlayer locates an available player binary. VOXCHAT_PLAYER overrides
// detection with a command that must read MP3 from stdin.
func NewPlayer() *Player {
	if override := os.Getenv("VOXCHAT_PLAYER"); override != "" {
		if path, err := exec.LookPath(override); err == nil {
			return &Player{binary: path, args: []string{"-"}}
		}
	}

	for _, c := range playerCandidates {
		if path, err := exec.LookPath(c.binary); err == nil {
			return &Player{binary: path, args: c.args}
		}
	}
	return &Player{}
}

// Available reports whether a player binary was found.
func (p *Player) Available() bool { return p.binary != "" }

// Play blocks until playback finishes or ctx is cancelled.
func (p *Player) Play(ctx context.Context, mp3 []byte) error {
	if !p.Available() {
		return fmt.Errorf("no audio player available")
	}

	cmd := exec.CommandContext(ctx, p.binary, p.args...)
	cmd.Stdin = bytes.NewReader(mp3)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("playback failed: %w", err)
	}
	return nil
}

// SaveToTemp writes the payload to a temp .mp3 file and returns its path.
// Fallback for hosts without a player binary.
func SaveToTemp(mp3 []byte) (string, error) {
	name := fmt.Sprintf("voxchat-%d.mp3", time.Now().UnixNano())
	path := filepath.Join(os.TempDir(), name)
	if err := os.WriteFile(path, mp3, 0o644); err != nil {
		return "", fmt.Errorf("failed to save audio: %w", err)
	}
	return path, nil
}
