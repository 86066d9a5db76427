package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/habitta/internal/config"
	"github.com/BruksfildServices01/habitta/internal/locale"
	"github.com/BruksfildServices01/habitta/internal/logging"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg)
	locale.SetTimezone(cfg.Timezone)

	root := &cobra.Command{
		Use:          "habitta-admin",
		Short:        "Habitta administrative tasks",
		SilenceUsage: true,
	}

	root.AddCommand(
		newMigrateCommand(cfg),
		newCreateUserCommand(cfg),
		newSetLevelCommand(cfg),
		newPurgeTokensCommand(cfg),
	)

	if err := root.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
