package commands

import (
	"context"
	"fmt"

	"github.com/engrsakib/qa-with-go/models"
	"github.com/spf13/cobra"
)

var userType string

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage accounts",
}

// promoteCmd changes an account's role
var promoteCmd = &cobra.Command{
	Use:   "promote <username>",
	Short: "Change an account's user type",
	Long: `Change an account's user type to user, moderator or owner.

Examples:
  qa user promote alice                 # make alice a moderator
  qa user promote alice --type owner`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPromote(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(promoteCmd)

	promoteCmd.Flags().StringVar(&userType, "type", string(models.UserTypeModerator), "New user type")
}

func runPromote(ctx context.Context, username string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	account, err := newService(st, cfg).SetUserType(ctx, username, models.UserType(userType))
	if err != nil {
		return fmt.Errorf("promote %s: %w", username, err)
	}
	fmt.Printf("%s is now %s\n", account.Username, account.UserType)
	return nil
}
