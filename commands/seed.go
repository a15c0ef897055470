package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/engrsakib/qa-with-go/errorz"
	"github.com/engrsakib/qa-with-go/models"
	"github.com/engrsakib/qa-with-go/services"
	"github.com/spf13/cobra"
)

var (
	// Seed flags
	seedOwner    string
	seedPassword string
)

// seedCmd fills an empty database with sample content
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create an owner account and sample questions",
	Long: `Create an owner account, two regular users and a few questions,
answers and comments. Accounts that already exist are left alone.

Examples:
  qa seed --owner admin --password changeme`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().StringVar(&seedOwner, "owner", "owner", "Username of the owner account")
	seedCmd.Flags().StringVar(&seedPassword, "password", "password123", "Password for every seeded account")
}

func runSeed(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	return Seed(ctx, newService(st, cfg), seedOwner, seedPassword)
}

// Seed creates sample accounts and content through svc.
func Seed(ctx context.Context, svc *services.Service, owner, password string) error {
	for _, name := range []string{owner, "alice", "bob"} {
		_, err := svc.CreateAccount(ctx, services.NewAccount{Username: name, Email: name + "@example.com", Password: password})
		if err != nil && !errors.Is(err, errorz.ErrConflict) {
			return fmt.Errorf("create %s: %w", name, err)
		}
	}
	if _, err := svc.SetUserType(ctx, owner, models.UserTypeOwner); err != nil {
		return fmt.Errorf("set owner: %w", err)
	}

	q, err := svc.AddQuestion(ctx, services.NewQuestion{
		Title:   "How do I read a file line by line in Go?",
		Text:    "I have a large log file and want to process one line at a time without loading it all.",
		Tags:    []services.NewTag{{Name: "go", Description: "The Go programming language"}, {Name: "io"}},
		AskedBy: "alice",
	})
	if err != nil {
		return fmt.Errorf("seed question: %w", err)
	}
	a, err := svc.AddAnswer(ctx, q.ID, services.NewAnswer{Text: "Wrap the file in a bufio.Scanner and call Scan in a loop.", AnsBy: "bob"})
	if err != nil {
		return fmt.Errorf("seed answer: %w", err)
	}
	if _, err := svc.AddComment(ctx, a.ID, models.PostAnswer, services.NewComment{Text: "Mind the default token size for very long lines.", CommentBy: owner}); err != nil {
		return fmt.Errorf("seed comment: %w", err)
	}
	if _, err := svc.Upvote(ctx, q.ID, "bob"); err != nil {
		return fmt.Errorf("seed vote: %w", err)
	}

	_, err = svc.AddQuestion(ctx, services.NewQuestion{
		Title:   "When should a React component use useMemo?",
		Text:    "Is it worth wrapping every derived value, or only expensive ones?",
		Tags:    []services.NewTag{{Name: "react"}, {Name: "hooks"}},
		AskedBy: "bob",
	})
	if err != nil {
		return fmt.Errorf("seed question: %w", err)
	}
	return nil
}
