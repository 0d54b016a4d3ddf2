package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"voxchat/internal/api"
	"voxchat/internal/audio"
)

// completionResultMsg settles a submit. The token correlates the result with
// the request that issued it; the controller discards stale tokens.
type completionResultMsg struct {
	token uint64
	reply string
	err   error
}

// speechResultMsg settles a speak request for one message.
type speechResultMsg struct {
	index int
	mp3   []byte
	err   error
}

// playbackFinishedMsg reports that the transient audio resource was released.
type playbackFinishedMsg struct {
	index     int
	savedPath string // set when no player was available and the file was kept
	err       error
}

func submitCmd(client *api.Client, token uint64, message string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		reply, err := client.Chat(ctx, message)
		return completionResultMsg{token: token, reply: reply, err: err}
	}
}

func speakCmd(client *api.Client, index int, text string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		dataURI, err := client.Speak(ctx, text)
		if err != nil {
			return speechResultMsg{index: index, err: err}
		}

		mp3, err := audio.DecodeDataURI(dataURI)
		return speechResultMsg{index: index, mp3: mp3, err: err}
	}
}

func playCmd(player *audio.Player, index int, mp3 []byte) tea.Cmd {
	return func() tea.Msg {
		if !player.Available() {
			path, err := audio.SaveToTemp(mp3)
			return playbackFinishedMsg{index: index, savedPath: path, err: err}
		}

		err := player.Play(context.Background(), mp3)
		return playbackFinishedMsg{index: index, err: err}
	}
}
