package main

import (
	"fmt"
	"time"

	"github.com/SscSPs/ledger_engine/internal/utils"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	flagUser string
	flagTTL  time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for the API",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID := flagUser
		if userID == "" {
			userID = uuid.NewString()
		}
		ttl := flagTTL
		if ttl <= 0 {
			ttl = cfg.JWTExpiryDuration
		}
		token, err := utils.GenerateJWT(userID, cfg.JWTSecret, ttl, cfg.JWTIssuer)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&flagUser, "user", "", "User id to put in the token subject (random when empty)")
	tokenCmd.Flags().DurationVar(&flagTTL, "ttl", 0, "Token lifetime (defaults to JWT_EXPIRY_DURATION)")
}
