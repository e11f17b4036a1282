package cli

import (
	"errors"
	"io"

	"github.com/spf13/cobra"
	"github.com/vfg2006/budget-guard-api/internal/config"
	"github.com/vfg2006/budget-guard-api/pkg/log"
)

// ErrValidationFailed indica que o comando já imprimiu os erros e deve sair com código 1
var ErrValidationFailed = errors.New("validation failed")

type app struct {
	cfg *config.Config
}

// NewRootCommand monta a CLI. Logs vão para stderr e relatórios para stdout.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "budgetguard",
		Short:         "BudgetGuard ZAR - Financial Safety Tool",
		Long:          "Analyse campaign budget pacing for South African advertising agencies.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.NewConfig()
			if err != nil {
				return err
			}
			if err := log.Configure(stderr, cfg.App.LogLevel); err != nil {
				log.L.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
			}
			a.cfg = cfg
			return nil
		},
	}

	root.SetOut(stdout)
	root.SetErr(stderr)

	root.AddCommand(
		a.analyseCommand(),
		a.showCommand(),
		a.tokenCommand(),
		a.migrateCommand(),
	)

	return root
}
