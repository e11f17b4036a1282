package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vfg2006/budget-guard-api/internal/domain"
	"github.com/vfg2006/budget-guard-api/internal/usecases/authenticating"
)

func (a *app) tokenCommand() *cobra.Command {
	var subject, role string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an API token signed with AUTH_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, err := authenticating.NewService(a.cfg).GenerateToken(subject, role)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Token subject (user or service name)")
	cmd.Flags().StringVar(&role, "role", domain.RoleAnalyst, "Role: admin or analyst")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}
