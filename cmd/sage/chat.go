package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// chatCmd runs an interactive terminal session against the orchestrator
// in-process, without the HTTP layer.
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with Adam from the terminal",
	Run: func(_ *cobra.Command, _ []string) {
		instanceProfile, err := loadProfile()
		if err != nil {
			slog.Error("invalid configuration", "error", err)
			os.Exit(1)
		}
		deps := buildDependencies(instanceProfile)

		fmt.Println("=== Adam NPC Dialogue System ===")
		fmt.Println("Adam is a wise, centuries-old sage of the northern isles.")
		fmt.Println("Type 'quit' to exit, 'reset' to start over, or 'help' for commands.")

		scanner := bufio.NewScanner(os.Stdin)
		ctx := context.Background()
		for {
			fmt.Print("\nYou: ")
			if !scanner.Scan() {
				break
			}
			input := strings.TrimSpace(scanner.Text())

			switch strings.ToLower(input) {
			case "":
				continue
			case "quit", "exit":
				fmt.Println("\nAdam: May the wisdom of ages guide your path. Farewell.")
				return
			case "reset":
				deps.store.Reset()
				fmt.Println("\n[Conversation reset]")
				continue
			case "help":
				fmt.Println("\nCommands:")
				fmt.Println("- Type any message to chat with Adam")
				fmt.Println("- 'reset' - Start a new conversation")
				fmt.Println("- 'quit' or 'exit' - End the session")
				continue
			}

			result, err := deps.orchestrator.Process(ctx, input)
			if err != nil {
				fmt.Printf("\nError: %v\n", err)
				continue
			}
			fmt.Printf("\nAdam: %s\n", result.Reply)
			if result.Augmented {
				fmt.Println("[Adam consulted ancient knowledge]")
			}
		}
	},
}
