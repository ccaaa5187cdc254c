// Command docqa is the interactive terminal client for a running
// docqa-server instance.
package main

import (
	"flag"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"docqa/internal/client"
	"docqa/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var apiBase string
	flag.StringVar(&apiBase, "api", "http://localhost:8000", "Base URL of the docqa server")
	flag.Parse()

	api := client.New(apiBase)
	m := tui.New(api)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		log.Fatal(err)
	}
}
