package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newSweepCmd(appFn func() *app) *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Publish negative reviews whose auto-publish deadline has passed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := appFn()
			now := a.now()
			if at != "" {
				parsed, err := time.Parse(time.RFC3339, at)
				if err != nil {
					return fmt.Errorf("invalid --at: %w", err)
				}
				now = parsed
			}

			n, err := a.sweeper.Sweep(cmd.Context(), now)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "published %d reviews\n", n)
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "Sweep as of this RFC3339 time (default: now)")
	return cmd
}

func newReviewRequestsCmd(appFn func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "review-requests",
		Short: "Email the review link to customers of orders shipped long enough ago",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := appFn()
			result, err := a.reviewRequests.SendDue(cmd.Context(), a.now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "due %d, sent %d, failed %d\n", result.Due, result.Sent, result.Failed)
			return nil
		},
	}
}

func newDispatchCmd(appFn func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dispatch <campaign-id>",
		Short: "Run a campaign dispatch synchronously",
		Long:  "Sends to every pending recipient of a campaign still in sending status. Campaigns already sent or failed are skipped.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			campaignID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid campaign id: %w", err)
			}

			result, err := appFn().dispatcher.Dispatch(cmd.Context(), campaignID)
			if err != nil {
				return err
			}
			if result.Skipped {
				fmt.Fprintf(cmd.OutOrStdout(), "campaign %s is not sending, skipped\n", campaignID)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "campaign %s: attempted %d, sent %d, failed %d\n",
				campaignID, result.Attempted, result.Sent, result.Failed)
			return nil
		},
	}
}

func newUsageCmd(appFn func() *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "usage <account-id>",
		Short: "Show plan, limits and current-month usage for an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			accountID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid account id: %w", err)
			}

			a := appFn()
			usage, err := a.usage.Usage(cmd.Context(), accountID, a.now())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(usage)
			}

			fmt.Fprintf(out, "plan: %s (active: %t, trial: %t)\n", usage.Plan, usage.PlanActive, usage.TrialActive)
			fmt.Fprintf(out, "online reviews: %d/%d\n", usage.OnlineUsed, usage.Limits.OnlineReviewLimit)
			fmt.Fprintf(out, "offline reviews: %d/%d\n", usage.OfflineUsed, usage.Limits.OfflineReviewLimit)
			fmt.Fprintf(out, "replies: %d/%d\n", usage.RepliesUsed, usage.Limits.ReplyLimit)
			fmt.Fprintf(out, "branches: %d/%d\n", usage.BranchCount, usage.Limits.MaxBranches)
			fmt.Fprintf(out, "mailings %04d-%02d: %d campaigns, %d emails\n",
				usage.Mailing.Year, usage.Mailing.Month, usage.Mailing.MailingsSent, usage.Mailing.EmailsSent)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	return cmd
}

func newTokenCmd(appFn func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "token <account-id>",
		Short: "Issue an API session token for an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			accountID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid account id: %w", err)
			}

			token, err := appFn().tokens.GenerateJWTToken(cmd.Context(), accountID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
}
