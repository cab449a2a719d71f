package main

import (
	"fmt"
	"os"

	"accept-broker/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply accept-broker database migrations with Atlas",
	}
	rootCmd.PersistentFlags().String("dir", "migrations", "Migration directory")
	rootCmd.PersistentFlags().String("atlas", "atlas", "Path to the atlas binary")

	rootCmd.AddCommand(applyCmd())
	rootCmd.AddCommand(statusCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func applyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, dsn, cleanup, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			dryRun, _ := cmd.Flags().GetBool("dry-run")
			res, err := client.MigrateApply(cmd.Context(), &atlasexec.MigrateApplyParams{
				URL:    dsn,
				DryRun: dryRun,
			})
			if err != nil {
				return fmt.Errorf("migrate apply: %w", err)
			}
			fmt.Printf("Applied %d migration(s): %s -> %s\n", len(res.Applied), valueOr(res.Current, "none"), res.Target)
			return nil
		},
	}
	cmd.Flags().Bool("dry-run", false, "Print statements without executing them")
	return cmd
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current migration version and pending files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, dsn, cleanup, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := client.MigrateStatus(cmd.Context(), &atlasexec.MigrateStatusParams{URL: dsn})
			if err != nil {
				return fmt.Errorf("migrate status: %w", err)
			}
			fmt.Printf("Current: %s\nNext:    %s\nPending: %d\n", valueOr(res.Current, "none"), valueOr(res.Next, "none"), len(res.Pending))
			return nil
		},
	}
}

// newClient copies the migration directory into a temporary Atlas working dir.
func newClient(cmd *cobra.Command) (*atlasexec.Client, string, func(), error) {
	cfg, err := config.LoadDBConfig()
	if err != nil {
		return nil, "", nil, err
	}
	dir, _ := cmd.Flags().GetString("dir")
	bin, _ := cmd.Flags().GetString("atlas")

	wd, err := atlasexec.NewWorkingDir(atlasexec.WithMigrations(os.DirFS(dir)))
	if err != nil {
		return nil, "", nil, fmt.Errorf("prepare atlas working dir: %w", err)
	}
	client, err := atlasexec.NewClient(wd.Path(), bin)
	if err != nil {
		_ = wd.Close()
		return nil, "", nil, fmt.Errorf("create atlas client: %w", err)
	}
	return client, cfg.BuildDSN(), func() { _ = wd.Close() }, nil
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
