package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"postsync/core/config"
	"postsync/core/lockfile"
	"postsync/core/logger"
	"postsync/core/reconcile"
	"postsync/core/storage"
	"postsync/feature/hashnode"
	"postsync/feature/posts"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the sync command
	dryRunSync bool
	yesConfirm bool
)

// syncCmd runs a full publish cycle against the configured publication.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync local posts to the publication (plan + publish + lockfile)",
	Long: `Sync scans the posts directory, compares each document against the
stored lockfile, and publishes what changed.

New documents are created, changed documents are updated in place, and
unchanged or draft documents are skipped. Successful publishes are merged
into the lockfile; failed ones keep their previous entry and are retried
on the next run.

Examples:
  # Show the plan without publishing
  postsync sync --dry-run

  # Publish with interactive confirmation
  postsync sync

  # Publish without prompting (CI)
  postsync sync --yes`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&dryRunSync, "dry-run", false, "Compute and print the plan without publishing")
	syncCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm publishing (non-interactive)")

	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	if cfg.Lockfile.RepositoryID == "" {
		return fmt.Errorf("lockfile.repository_id must be set")
	}

	l.Info("Starting sync",
		zap.String("repository_id", cfg.Lockfile.RepositoryID),
		zap.String("directory", cfg.Posts.Directory))

	scanner, err := posts.NewScanner(cfg.Posts)
	if err != nil {
		return fmt.Errorf("failed to create scanner: %w", err)
	}

	// Cover sideloading is optional; without storage the documents keep
	// whatever cover URL their front matter declares.
	var covers *posts.CoverUploader
	if cfg.Storage.Enabled {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
		covers = posts.NewCoverUploader(client, cfg.Storage, cfg.Posts.Directory)
	}

	svc := posts.NewService(
		scanner,
		covers,
		lockfile.NewClient(cfg.Lockfile),
		hashnode.NewClient(cfg.Hashnode),
		cfg.Lockfile.RepositoryID,
		cfg.Lockfile.RepositoryName,
		l,
	)

	// Step 1: Plan (always runs, publishes nothing)
	prepared, err := svc.Prepare(ctx)
	if err != nil {
		return fmt.Errorf("failed to prepare sync: %w", err)
	}

	printPlanReport(l, prepared)

	if dryRunSync {
		l.Info("Dry-run mode: No documents were published.")
		return nil
	}

	// Step 2: Confirm before touching the platform
	if prepared.Plan.Pending() > 0 && !confirmPublish(prepared.Plan.Pending()) {
		l.Warn("Sync cancelled by user. No documents were published.")
		return nil
	}

	// Step 3: Apply
	report, err := svc.Apply(ctx, prepared)
	if err != nil {
		return err
	}

	printRunReport(l, report)

	if report.Failed > 0 {
		return fmt.Errorf("%d document(s) failed to publish", report.Failed)
	}
	return nil
}

// printPlanReport prints the per-document decisions using logger.
func printPlanReport(l *zap.Logger, prepared *posts.Prepared) {
	s := prepared.Plan.Summary

	l.Info("Sync plan",
		zap.Int("documents", len(prepared.Documents)),
		zap.Int("creates", s.Creates),
		zap.Int("updates", s.Updates),
		zap.Int("unchanged", s.Unchanged),
		zap.Int("drafts", s.Drafts),
	)

	for _, action := range prepared.Plan.Actions {
		if action.Type == reconcile.ActionSkip {
			l.Debug("Planned skip",
				zap.String("path", action.Doc.Path),
				zap.String("reason", string(action.Reason)))
			continue
		}
		l.Info("Planned publish",
			zap.String("type", string(action.Type)),
			zap.String("path", action.Doc.Path))
	}
}

// printRunReport prints the final counts and any per-document failures.
func printRunReport(l *zap.Logger, report posts.RunReport) {
	l.Info("Sync finished",
		zap.Int("found", report.Found),
		zap.Int("created", report.Created),
		zap.Int("updated", report.Updated),
		zap.Int("unchanged", report.Unchanged),
		zap.Int("drafts", report.Drafts),
		zap.Int("failed", report.Failed),
	)

	for _, failure := range report.Failures {
		l.Error("Document failed",
			zap.String("path", failure.Path),
			zap.Error(failure.Err))
	}
}

// confirmPublish prompts the user for confirmation or uses --yes flag.
func confirmPublish(pending int) bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Printf("\nAbout to publish %d document(s). Type 'yes' to confirm: ", pending)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
