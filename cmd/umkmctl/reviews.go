package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/umkmctl/internal/model"
)

var reviewsCmd = &cobra.Command{
	Use:     "reviews",
	Short:   "Maintain business reviews",
	GroupID: "data",
}

var reviewsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Convert legacy string reviews to {author, comment, rating}",
	Long: `Migrate rewrites every review stored as a bare string into a structured
review with author "Anonymous" and rating 3.0, the same defaults the app
applies when it reads an old review.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		r, done, err := newRunner(cmd)
		if err != nil {
			return err
		}
		defer done()

		out := cmd.OutOrStdout()
		if jsonOutput {
			r.Out = nil
		}
		report, runErr := r.MigrateReviews(cmd.Context(), dryRun)
		if report != nil {
			if jsonOutput {
				if err := printJSON(out, report); err != nil {
					return err
				}
			} else {
				verb := "converted"
				if dryRun {
					verb = "would convert"
				}
				fmt.Fprintf(out, "scanned %d reviews, %s %d\n", report.Scanned, verb, report.Converted())
			}
		}
		return runErr
	},
}

var reviewsAddCmd = &cobra.Command{
	Use:   "add <umkm-id>",
	Short: "Append a review to a business",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		author, _ := cmd.Flags().GetString("author")
		comment, _ := cmd.Flags().GetString("comment")
		rating, _ := cmd.Flags().GetFloat64("rating")

		r, done, err := newRunner(cmd)
		if err != nil {
			return err
		}
		defer done()

		if jsonOutput {
			r.Out = nil
		}
		rev := model.Review{Author: author, Comment: comment, Rating: rating}
		key, err := r.AddReview(cmd.Context(), args[0], rev)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), map[string]string{"umkm_id": args[0], "key": key})
		}
		return nil
	},
}

var reviewsListCmd = &cobra.Command{
	Use:   "list <umkm-id>",
	Short: "List the reviews of a business",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, done, err := newRunner(cmd)
		if err != nil {
			return err
		}
		defer done()

		raw, err := r.Get(cmd.Context(), model.NodeReviews+"/"+args[0])
		if err != nil {
			return err
		}
		reviews, err := model.ParseReviews(raw)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), reviews)
		}
		if len(reviews) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no reviews")
			return nil
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "KEY\tRATING\tAUTHOR\tCOMMENT")
		for _, kr := range reviews {
			fmt.Fprintf(w, "%s\t%.1f\t%s\t%s\n", kr.Key, kr.Rating, kr.Author, kr.Comment)
		}
		return w.Flush()
	},
}

func init() {
	reviewsMigrateCmd.Flags().Bool("dry-run", false, "show what would change without writing")
	reviewsAddCmd.Flags().String("author", "", "review author (default Anonymous)")
	reviewsAddCmd.Flags().String("comment", "", "review text (required)")
	reviewsAddCmd.Flags().Float64("rating", model.LegacyReviewRating, "rating from 0 to 5")
	_ = reviewsAddCmd.MarkFlagRequired("comment")

	reviewsCmd.AddCommand(reviewsMigrateCmd)
	reviewsCmd.AddCommand(reviewsAddCmd)
	reviewsCmd.AddCommand(reviewsListCmd)
}
