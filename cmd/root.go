// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/naka-gawa/w3c-ie-stats/internal/config"
	"github.com/naka-gawa/w3c-ie-stats/internal/gateway"
	"github.com/naka-gawa/w3c-ie-stats/internal/logger"
	"github.com/naka-gawa/w3c-ie-stats/internal/snapshot"
	"github.com/naka-gawa/w3c-ie-stats/internal/telemetry"
	"github.com/naka-gawa/w3c-ie-stats/internal/usecase"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ie-stats",
		Short: "A CLI tool to aggregate W3C Invited Expert participation.",
		Long: `ie-stats joins the W3C group rosters, the GitHub PR/issue contributor logs
and the horizontal review logs, and reports per-expert, per-group and
per-affiliation statistics about Invited Experts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add persistent flags, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("source", "", "Directory, base URL or github:owner/repo[/dir][@ref] holding the source files (overrides IESTATS_SOURCE)")
	rootCmd.PersistentFlags().String("policy", "", "YAML policy file (overrides IESTATS_POLICY_FILE)")

	rootCmd.AddCommand(
		newExpertsCmd(),
		newGroupsCmd(),
		newAffiliationsCmd(),
		newSummaryCmd(),
		newServeCmd(),
	)
	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
// This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// session is what every command needs once flags and configuration are resolved.
type session struct {
	cfg    config.Config
	logger *zap.Logger
	flush  func(context.Context) error
}

func setup(cmd *cobra.Command) (*session, error) {
	policy, _ := cmd.InheritedFlags().GetString("policy")
	cfg, err := config.Load(policy)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if source, _ := cmd.InheritedFlags().GetString("source"); source != "" {
		cfg.Source = source
	}

	// Default: discard all logs.
	verbose, _ := cmd.InheritedFlags().GetBool("verbose")
	log, err := logger.ForCLI(verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	flush, err := telemetry.Setup(cmd.Context(), cfg.OTelEndpoint)
	if err != nil {
		log.Warn("tracing disabled", zap.Error(err))
	}
	return &session{cfg: cfg, logger: log, flush: flush}, nil
}

func (e *session) close() {
	if err := e.flush(context.Background()); err != nil {
		e.logger.Warn("failed to flush traces", zap.Error(err))
	}
	_ = e.logger.Sync()
}

// load fetches and joins the three sources. Any failure is reported as a
// single "failed to load" error.
func (e *session) load(ctx context.Context) (*snapshot.Snapshot, error) {
	fetcher, err := gateway.New(e.cfg.Source, e.cfg.GitHubToken, e.cfg.Files(), e.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, e.cfg.FetchTimeout)
	defer cancel()

	snap, err := usecase.NewLoader(fetcher, e.cfg.Policy, e.logger).Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load: %w", err)
	}
	return snap, nil
}

// withSnapshot runs fn against a freshly loaded snapshot.
func withSnapshot(cmd *cobra.Command, fn func(snap *snapshot.Snapshot) error) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	snap, err := e.load(cmd.Context())
	if err != nil {
		return err
	}
	return fn(snap)
}
