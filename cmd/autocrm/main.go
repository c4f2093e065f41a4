package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/autocrm/autocrm/internal/interfaces/cli/configcmd"
	"github.com/autocrm/autocrm/internal/interfaces/cli/migrate"
	"github.com/autocrm/autocrm/internal/interfaces/cli/server"
	"github.com/autocrm/autocrm/internal/interfaces/cli/signup"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "autocrm",
		Short:   "AutoCRM - customer support ticketing",
		Long:    `AutoCRM serves the ticketing API over the managed backend and ships the migration and account tools that go with it.`,
		Version: version,
	}

	rootCmd.AddCommand(
		server.NewCommand(version),
		migrate.NewCommand(),
		signup.NewCommand(version),
		configcmd.NewCommand(),
	)

	// interrupts cancel long waits such as email verification
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
