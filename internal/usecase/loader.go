// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"time"

	"github.com/naka-gawa/w3c-ie-stats/internal/activity"
	"github.com/naka-gawa/w3c-ie-stats/internal/aggregate"
	"github.com/naka-gawa/w3c-ie-stats/internal/domain"
	"github.com/naka-gawa/w3c-ie-stats/internal/gateway"
	"github.com/naka-gawa/w3c-ie-stats/internal/review"
	"github.com/naka-gawa/w3c-ie-stats/internal/roster"
	"github.com/naka-gawa/w3c-ie-stats/internal/snapshot"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const tracerName = "github.com/naka-gawa/w3c-ie-stats/internal/usecase"

// Loader is the use case for loading a snapshot.
// It orchestrates the fetching and joining of the three sources.
type Loader struct {
	fetcher gateway.Fetcher
	policy  domain.Policy
	logger  *zap.Logger
	now     func() time.Time
}

// NewLoader creates a new Loader instance.
func NewLoader(fetcher gateway.Fetcher, policy domain.Policy, logger *zap.Logger) *Loader {
	return &Loader{
		fetcher: fetcher,
		policy:  policy,
		logger:  logger,
		now:     time.Now,
	}
}

// Load fetches the three sources concurrently and joins them.
// The first failing fetch cancels the others and aborts the load with a
// *domain.LoadError; nothing is joined from a partial fetch.
func (l *Loader) Load(ctx context.Context) (*snapshot.Snapshot, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "load")
	defer span.End()
	l.logger.Debug("starting source fetch")

	var (
		roles        []domain.RoleGroup
		contributors []domain.ContributorGroup
		reviews      []domain.ReviewGroup
	)

	// Use an errgroup to fetch all data concurrently.
	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		var err error
		roles, err = traced(egCtx, domain.SourceRoles, l.fetcher.FetchRoles)
		return err
	})

	eg.Go(func() error {
		var err error
		contributors, err = traced(egCtx, domain.SourceContributors, l.fetcher.FetchContributors)
		return err
	})

	eg.Go(func() error {
		var err error
		reviews, err = traced(egCtx, domain.SourceReviews, l.fetcher.FetchReviews)
		return err
	})

	if err := eg.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load failed")
		l.logger.Error("source fetch failed", zap.Error(err))
		return nil, err
	}
	l.logger.Debug("all sources fetched",
		zap.Int("groups", len(roles)),
		zap.Int("contributor_groups", len(contributors)),
		zap.Int("review_groups", len(reviews)))

	_, joinSpan := otel.Tracer(tracerName).Start(ctx, "join")
	snap := Join(roles, contributors, reviews, l.policy, l.now())
	joinSpan.SetAttributes(attribute.Int("experts", len(snap.Experts())))
	joinSpan.End()

	l.logger.Info("snapshot ready",
		zap.Int("experts", len(snap.Experts())),
		zap.Int("groups", len(snap.Groups())),
		zap.Int("affiliations", len(snap.Affiliations())))
	return snap, nil
}

func traced[T any](ctx context.Context, source string, fetch func(context.Context) ([]T, error)) ([]T, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "fetch "+source,
		trace.WithAttributes(attribute.String("source", source)))
	defer span.End()

	out, err := fetch(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		return nil, &domain.LoadError{Source: source, Err: err}
	}
	span.SetAttributes(attribute.Int("records", len(out)))
	return out, nil
}

// Join runs the roster, activity and review passes and derives the snapshot.
// It never fails on well-formed payloads.
func Join(
	roles []domain.RoleGroup,
	contributors []domain.ContributorGroup,
	reviews []domain.ReviewGroup,
	policy domain.Policy,
	now time.Time,
) *snapshot.Snapshot {
	r := roster.Build(roles)
	activity.Join(r, contributors)
	review.Join(r, reviews, policy.ExpertReviewGroups)

	return snapshot.New(r, aggregate.GroupInputs{
		Totals:       activity.Totals(r.Groups(), contributors),
		Reviews:      review.Index(reviews),
		ReviewGroups: policy.SummaryReviewGroups,
		TopReviewers: policy.TopReviewers,
	}, now)
}
