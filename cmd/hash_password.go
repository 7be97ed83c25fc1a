package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Dosada05/hackfest/utils"
)

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a bcrypt hash for ADMIN_PASSWORD_HASH",
		Long: `Print a bcrypt hash suitable for the ADMIN_PASSWORD_HASH variable.

The password is taken from the argument or, when omitted, from the first
line of standard input:

  hackfest hash-password 's3cret'
  echo 's3cret' | hackfest hash-password`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return errors.New("password is required")
				}
				password = strings.TrimRight(line, "\r\n")
			}
			if len(password) < 8 {
				return errors.New("password must be at least 8 characters long")
			}

			hash, err := utils.HashPassword(password)
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
