package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/vietddude/interact/internal/control"
)

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Inspect and manage the account pool",
}

var accountsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts and their eligibility state",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		app, err := control.New(cfg)
		if err != nil {
			slog.Error("Failed to initialize", "error", err)
			os.Exit(1)
		}
		defer app.Stop(context.Background())

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		accounts, err := app.Accounts().List(ctx)
		if err != nil {
			slog.Error("Failed to list accounts", "error", err)
			os.Exit(1)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "USERNAME\tROLE\tACTIVE\tPROXY\tLAST ERROR")
		for _, a := range accounts {
			fmt.Fprintf(w, "%s\t%s\t%t\t%s\t%s\n",
				a.Username, a.Role, a.Active, a.Proxy, a.LastError)
		}
		w.Flush()
	},
}

var proxyAddCmd = &cobra.Command{
	Use:   "add-proxy <url>",
	Short: "Add a proxy URL to the rotation pool",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		app, err := control.New(cfg)
		if err != nil {
			slog.Error("Failed to initialize", "error", err)
			os.Exit(1)
		}
		defer app.Stop(context.Background())

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := app.Accounts().AddProxy(ctx, args[0]); err != nil {
			slog.Error("Failed to add proxy", "error", err)
			os.Exit(1)
		}
		slog.Info("Proxy added", "url", args[0])
	},
}
