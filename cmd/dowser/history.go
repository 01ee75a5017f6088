package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dowserhq/dowser/internal/state"
)

var (
	historyLimit int
	historyPurge string
)

var historyCmd = &cobra.Command{
	Use:   "history [session-id]",
	Short: "Browse recorded research sessions",
	Long: `List recorded research sessions, or show one session's full report.

Without arguments, lists the most recent sessions. With a session ID, prints
that session's synthesized report.

Examples:
  dowser history
  dowser history --limit 50
  dowser history 4fd1c0de-...
  dowser history --purge-older-than 720h`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum sessions to list")
	historyCmd.Flags().StringVar(&historyPurge, "purge-older-than", "", "Delete sessions older than this duration (e.g. 720h)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	db, err := state.Open(state.DefaultPath())
	if err != nil {
		return fmt.Errorf("opening history database: %w", err)
	}
	defer db.Close()
	if err := db.Migrate(); err != nil {
		return fmt.Errorf("migrating history database: %w", err)
	}

	if historyPurge != "" {
		d, err := time.ParseDuration(historyPurge)
		if err != nil {
			return fmt.Errorf("invalid duration for --purge-older-than: %w", err)
		}
		n, err := db.PurgeOlderThan(time.Now().Add(-d))
		if err != nil {
			return fmt.Errorf("purging history: %w", err)
		}
		fmt.Printf("Purged %d session(s)\n", n)
		return nil
	}

	if len(args) == 1 {
		return showSession(db, args[0])
	}
	return listSessions(db)
}

func listSessions(db *state.DB) error {
	entries, err := db.ListRecent(historyLimit)
	if err != nil {
		return fmt.Errorf("listing sessions: %w", err)
	}
	if len(entries) == 0 {
		fmt.Println("No recorded sessions.")
		return nil
	}

	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	for _, e := range entries {
		bold.Printf("%s", e.ID)
		faint.Printf("  %s\n", e.StartedAt.Local().Format("2006-01-02 15:04"))
		fmt.Printf("  %s\n", e.Query)
		faint.Printf("  %d iterations, %d/%d tokens\n\n", e.Iterations, e.InputTokens, e.OutputTokens)
	}
	return nil
}

func showSession(db *state.DB, id string) error {
	entry, ok, err := db.Get(id)
	if err != nil {
		return fmt.Errorf("loading session: %w", err)
	}
	if !ok {
		fmt.Fprintf(os.Stderr, "No session with ID %s\n", id)
		os.Exit(1)
	}

	bold := color.New(color.Bold)
	bold.Printf("Query: %s\n", entry.Query)
	fmt.Printf("Started: %s\n", entry.StartedAt.Local().Format(time.RFC1123))
	fmt.Printf("Iterations: %d\n\n", entry.Iterations)
	fmt.Println(entry.Synthesis)
	return nil
}
