package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	config "review-pool.com/review-pool/internal/configs"
	"review-pool.com/review-pool/internal/constants"
	middleware "review-pool.com/review-pool/internal/http/middlewares"
	"review-pool.com/review-pool/internal/payments"
)

var (
	tokenRole string
	tokenTTL  time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token <address>",
	Short: "Issue a bearer token for a wallet address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		address := args[0]
		if err := payments.ValidateAddress(address); err != nil {
			return err
		}

		role := constants.Role(tokenRole)
		if role != constants.RoleRequester && role != constants.RoleWorker {
			return fmt.Errorf("role must be %q or %q", constants.RoleRequester, constants.RoleWorker)
		}

		secret, err := config.LoadJWTSecret()
		if err != nil {
			return err
		}
		token, err := middleware.IssueToken(secret, address, role, tokenTTL)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenRole, "role", string(constants.RoleWorker), "requester or worker")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
	rootCmd.AddCommand(tokenCmd)
}
