package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"voxchat/internal/api"
	"voxchat/internal/audio"
	"voxchat/internal/tui"
)

func main() {
	godotenv.Load()

	serverURL := flag.String("server", defaultServerURL(), "voxchat gateway base URL")
	flag.Parse()

	m := tui.New(api.NewClient(*serverURL), audio.NewPlayer())

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func defaultServerURL() string {
	if url := os.Getenv("VOXCHAT_SERVER_URL"); url != "" {
		return url
	}
	return "http://localhost:8080"
}
