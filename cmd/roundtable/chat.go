package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/quorumhall/roundtable/internal/model/consult"
)

var quitTokens = map[string]bool{"quit": true, "exit": true, "q": true}

var (
	bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	ruleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	userStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	speakerStyles = map[string]lipgloss.Style{
		"Legal-AI":    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220")),
		"Tech-AI":     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45")),
		"Business-AI": lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("114")),
	}
)

func newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive consultation with the expert panel",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()

			sys, err := bootstrap(ctx, true)
			if err != nil {
				return err
			}
			defer func() { _ = sys.logger.Sync() }()

			return runChat(ctx, sys)
		},
	}
}

func runChat(ctx context.Context, sys *system) error {
	printBanner(sys)

	// Reading stdin happens on its own goroutine so an interrupt can
	// still flush the transcript while a read is pending.
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		fmt.Print("\nYou: ")

		var input string
		var open bool
		select {
		case <-ctx.Done():
			fmt.Println("\n\nSession interrupted")
			return saveAndReport(sys)
		case input, open = <-lines:
			if !open {
				fmt.Println("\nEnding consultation session...")
				return saveAndReport(sys)
			}
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if quitTokens[strings.ToLower(input)] {
			fmt.Println("\nEnding consultation session...")
			return saveAndReport(sys)
		}

		fmt.Println(userStyle.Render("Consulting with AI experts..."))

		entries := sys.consult.Ask(ctx, input)

		fmt.Println()
		fmt.Println(ruleStyle.Render(strings.Repeat("=", 60)))
		fmt.Println(bannerStyle.Render("AI EXPERT PANEL DISCUSSION"))
		fmt.Println(ruleStyle.Render(strings.Repeat("=", 60)))
		for _, entry := range entries {
			printEntry(entry)
		}
		fmt.Println(ruleStyle.Render(strings.Repeat("-", 60)))
	}
}

func printBanner(sys *system) {
	fmt.Println(bannerStyle.Render("MULTI-AI CONSULTATION SYSTEM"))
	fmt.Println(ruleStyle.Render(strings.Repeat("=", 60)))
	fmt.Println("Your AI expert panel:")
	fmt.Println("  Legal-AI    - conservative, risk-focused, knows actual law")
	fmt.Println("  Tech-AI     - solution-oriented, implementation-focused")
	fmt.Println("  Business-AI - results-driven, mediates between perspectives")
	fmt.Printf("\nGeneration backend: %s\n", sys.selection.Method())
	fmt.Println("The experts will discuss your questions and may debate each other.")
	fmt.Println("Type 'quit' to end the session")
	fmt.Println(ruleStyle.Render(strings.Repeat("=", 60)))
}

func printEntry(entry consult.Turn) {
	style, ok := speakerStyles[entry.Speaker]
	if !ok {
		style = bannerStyle
	}

	label := entry.Speaker
	if entry.FollowUp {
		label += " (follow-up)"
	}
	fmt.Printf("\n%s %s\n", style.Render(label+":"), entry.Message)
}

func saveAndReport(sys *system) error {
	path, err := sys.consult.SaveTranscript(sys.cfg.Consult.SessionsDir)
	if err != nil {
		return fmt.Errorf("save transcript: %w", err)
	}
	fmt.Printf("Conversation saved to %s\n", path)
	return nil
}
