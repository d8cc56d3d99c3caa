package main

import (
	"context"
	"time"

	"review-server/internal/bootstrap"
	"review-server/internal/config"
	"review-server/internal/mailing/processor"
	"review-server/internal/observability"
	"review-server/internal/quota"
	"review-server/internal/reviewrequests"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type sweeper interface {
	Sweep(ctx context.Context, now time.Time) (int, error)
}

type reviewRequester interface {
	SendDue(ctx context.Context, now time.Time) (reviewrequests.Result, error)
}

type dispatcher interface {
	Dispatch(ctx context.Context, campaignID uuid.UUID) (processor.DispatchResult, error)
}

type usageReader interface {
	Usage(ctx context.Context, accountID uuid.UUID, now time.Time) (quota.Usage, error)
}

type tokenIssuer interface {
	GenerateJWTToken(ctx context.Context, accountID uuid.UUID) (string, error)
}

// app holds what the subcommands operate on. Tests build it from fakes.
type app struct {
	sweeper        sweeper
	reviewRequests reviewRequester
	dispatcher     dispatcher
	usage          usageReader
	tokens         tokenIssuer
	now            func() time.Time
	close          func()
}

// Execute runs the CLI against the configured database and queues.
func Execute() error {
	return newRootCmd(wireApp).Execute()
}

func wireApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	deps, err := bootstrap.Initialize(ctx, cfg, observability.NewLogger())
	if err != nil {
		return nil, err
	}
	return &app{
		sweeper:        deps.Sweeper,
		reviewRequests: deps.ReviewRequests,
		dispatcher:     deps.Campaigns,
		usage:          deps.Quota,
		tokens:         deps.Auth,
		now:            time.Now,
		close:          func() { deps.Cleanup(context.Background()) },
	}, nil
}

// newRootCmd defers wiring until a subcommand runs, so --help works without
// a database.
func newRootCmd(wire func(ctx context.Context) (*app, error)) *cobra.Command {
	var a *app

	rootCmd := &cobra.Command{
		Use:          "reviewctl",
		Short:        "Operate the review server: sweeps, campaign dispatch and usage",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			wired, err := wire(cmd.Context())
			if err != nil {
				return err
			}
			a = wired
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a != nil && a.close != nil {
				a.close()
			}
		},
	}

	appFn := func() *app { return a }
	rootCmd.AddCommand(
		newSweepCmd(appFn),
		newReviewRequestsCmd(appFn),
		newDispatchCmd(appFn),
		newUsageCmd(appFn),
		newTokenCmd(appFn),
	)

	return rootCmd
}
