package posts

import (
	"context"
	"fmt"
	"time"

	"postsync/core/content"
	"postsync/core/lockfile"
	"postsync/core/reconcile"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Service runs a full sync: scan, plan, publish, merge, persist.
type Service struct {
	scanner   *Scanner
	covers    *CoverUploader // nil when sideloading is disabled
	lockStore lockfile.Client
	publisher reconcile.Publisher
	repoID    string
	repoName  string
	logger    *zap.Logger
}

// NewService wires the sync pipeline. The repository identity is passed
// explicitly; nothing below this constructor reads the process
// environment. covers may be nil.
func NewService(
	scanner *Scanner,
	covers *CoverUploader,
	lockStore lockfile.Client,
	publisher reconcile.Publisher,
	repoID, repoName string,
	logger *zap.Logger,
) *Service {
	return &Service{
		scanner:   scanner,
		covers:    covers,
		lockStore: lockStore,
		publisher: publisher,
		repoID:    repoID,
		repoName:  repoName,
		logger:    logger,
	}
}

// Prepared holds everything a run needs before any publish call is made.
// Splitting preparation from application lets the CLI show the plan and
// ask for confirmation without touching the platform.
type Prepared struct {
	// Plan is the per-document decision set.
	Plan reconcile.Plan
	// Lock is the pre-run lockfile snapshot the plan was computed from.
	Lock lockfile.Lockfile
	// Documents is the normalized, cover-resolved document set.
	Documents []content.Document
	// Issues are per-document normalization or sideload failures.
	Issues []Issue
}

// RunReport summarizes a completed run.
type RunReport struct {
	Found     int
	Created   int
	Updated   int
	Unchanged int
	Drafts    int
	Failed    int
	Failures  []Failure
}

// Failure is one document that did not reach the platform this run.
type Failure struct {
	Path string
	Err  error
}

// Prepare scans the posts directory and retrieves the lockfile
// concurrently, then computes the plan. A lockfile store failure other
// than "not found" is fatal: the run cannot reconcile safely without a
// known prior state.
func (s *Service) Prepare(ctx context.Context) (*Prepared, error) {
	var (
		scanned ScanResult
		lock    *lockfile.Lockfile
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		scanned, err = s.scanner.Scan(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		lock, err = s.lockStore.Retrieve(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if lock == nil {
		s.logger.Info("No lockfile found, treating as first run",
			zap.String("repository_id", s.repoID))
		empty := lockfile.Empty(s.repoID, s.repoName)
		lock = &empty
	}

	docs := scanned.Documents
	issues := scanned.Issues
	if s.covers != nil {
		var coverIssues []Issue
		docs, coverIssues = s.covers.Sideload(ctx, docs)
		issues = append(issues, coverIssues...)
	}

	for _, issue := range issues {
		s.logger.Warn("Document excluded from batch",
			zap.String("path", issue.Path), zap.Error(issue.Err))
	}

	return &Prepared{
		Plan:      reconcile.BuildPlan(docs, *lock),
		Lock:      *lock,
		Documents: docs,
		Issues:    issues,
	}, nil
}

// Apply dispatches the prepared plan, merges the successful outcomes into
// the next lockfile, and persists it. Publish failures are reported in
// the returned RunReport; only a lockfile persist failure is returned as
// an error.
func (s *Service) Apply(ctx context.Context, prepared *Prepared) (RunReport, error) {
	report := RunReport{
		Found:     len(prepared.Documents),
		Unchanged: prepared.Plan.Summary.Unchanged,
		Drafts:    prepared.Plan.Summary.Drafts,
	}

	outcomes := reconcile.Execute(ctx, prepared.Plan, s.publisher)
	succeeded, failed := reconcile.Partition(outcomes)

	for _, outcome := range succeeded {
		switch outcome.Kind {
		case reconcile.OutcomeCreated:
			report.Created++
		case reconcile.OutcomeUpdated:
			report.Updated++
		}
	}
	for _, outcome := range failed {
		report.Failed++
		report.Failures = append(report.Failures, Failure{Path: outcome.Doc.Path, Err: outcome.Err})
		s.logger.Error("Publish failed, keeping last-known-good entry",
			zap.String("path", outcome.Doc.Path), zap.Error(outcome.Err))
	}

	// A run with nothing to process leaves the stored lockfile untouched.
	if len(prepared.Documents) == 0 {
		s.logger.Info("No documents found, lockfile left unchanged")
		return report, nil
	}

	merged := reconcile.Merge(prepared.Lock, succeeded, time.Now().UTC())
	if err := s.lockStore.Persist(ctx, merged); err != nil {
		// Successful publishes are not durably recorded at this point;
		// the next run will re-detect them. Surface loudly.
		return report, fmt.Errorf("persisting lockfile: %w", err)
	}

	s.logger.Info("Lockfile persisted",
		zap.String("repository_id", s.repoID),
		zap.Int("entries", len(merged.Content)))

	return report, nil
}
