package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"shopping-route-service/internal/adapters/repositories"
	"shopping-route-service/internal/config"
	"shopping-route-service/internal/platform/db"
	"shopping-route-service/internal/platform/obs"
	"shopping-route-service/internal/ports"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	dbPath      string
	databaseURL string
	seedPath    string
)

func main() {
	config.LoadDotEnv()
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "dbtool",
		Short:         "Manage the shopping catalog and session archive",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", config.Get("DB_PATH", "data/app.db"), "SQLite catalog database path")
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", config.Get("DATABASE_URL", ""), "Postgres session archive URL (optional)")

	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newSeedCmd())
	rootCmd.AddCommand(newSessionsCmd())

	return rootCmd
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the catalog schema (and the Postgres archive schema when configured)",
		Args:  cobra.NoArgs,
		RunE:  runInitCmd,
	}
}

func runInitCmd(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)
	log := zerolog.Ctx(ctx)

	conn, err := db.OpenSQLite(dbPath)
	if err != nil {
		return err
	}
	defer conn.Close()

	log.Info().Str("db", dbPath).Msg("initializing catalog schema")
	if err := repositories.InitSchema(conn); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}

	if databaseURL != "" {
		pg, err := db.Open(databaseURL)
		if err != nil {
			return err
		}
		defer pg.Close()

		log.Info().Msg("initializing postgres session schema")
		if err := repositories.InitSessionSchema(ctx, pg); err != nil {
			return err
		}
	}

	log.Info().Msg("schema ready")
	return nil
}

func newSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load stores, lists and scores from a JSON catalog",
		Args:  cobra.NoArgs,
		RunE:  runSeedCmd,
	}
	cmd.Flags().StringVar(&seedPath, "file", config.Get("SEED_PATH", "data/seeds/catalog.json"), "catalog JSON file")
	return cmd
}

func runSeedCmd(cmd *cobra.Command, _ []string) error {
	log := zerolog.Ctx(commandContext(cmd))

	conn, err := db.OpenSQLite(dbPath)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := repositories.InitSchema(conn); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}

	log.Info().Str("file", seedPath).Msg("seeding catalog")
	if err := repositories.SeedFromJSON(conn, seedPath); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	log.Info().Msg("seeding complete")
	return nil
}

func newSessionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List archived shopping sessions, newest first",
		Args:  cobra.NoArgs,
		RunE:  runSessionsCmd,
	}
}

func runSessionsCmd(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)

	var (
		repo ports.SessionRepository
		conn *sql.DB
		err  error
	)
	if databaseURL != "" {
		if conn, err = db.Open(databaseURL); err != nil {
			return err
		}
		repo = repositories.NewSQLSessionRepository(conn)
	} else {
		if conn, err = db.OpenSQLite(dbPath); err != nil {
			return err
		}
		if err := repositories.InitSchema(conn); err != nil {
			_ = conn.Close()
			return err
		}
		repo = repositories.NewSqliteSessionRepository(conn)
	}
	defer conn.Close()

	return printSessions(ctx, cmd.OutOrStdout(), repo)
}

func printSessions(ctx context.Context, out io.Writer, repo ports.SessionRepository) error {
	sessions, err := repo.ListSessions(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SESSION\tSTORE\tSTATUS\tSTARTED\tITEMS\tCHECKED\tTOTAL")
	for _, s := range sessions {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			s.ID, s.StoreName, s.Status, s.StartedAt.Format("2006-01-02 15:04"),
			len(s.Items), s.CheckedCount(), s.ActualTotal.StringFixed(2))
	}
	return tw.Flush()
}

func commandContext(cmd *cobra.Command) context.Context {
	logger := obs.NewLogger(config.Get("LOG_LEVEL", "info"), config.Get("LOG_FORMAT", "console"))
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logger.WithContext(ctx)
}
