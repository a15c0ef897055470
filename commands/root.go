package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	storeKind string
	envFile   string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "qa",
	Short: "Q&A forum server",
	Long: `qa runs the question and answer forum: an HTTP API for questions,
answers, comments, tags, votes, drafts and moderation, plus a WebSocket
feed that pushes every change to connected clients.

Configuration comes from the environment and an optional .env file.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storeKind, "store", "", "Storage backend, mongo or memory (overrides STORE)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Load this file into the environment before reading config")
}
