package main

import (
	"time"

	"github.com/alansmodic/edit-ledger/internal/common/errorwrapper"
	"github.com/alansmodic/edit-ledger/internal/models"
	"github.com/spf13/cobra"
)

func newRevisionsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "revisions",
		Short: "Manage the revision ledger",
	}
	cmd.AddCommand(newRevisionsAddCmd(a), newRevisionsListCmd(a), newRevisionsDiffCmd(a))
	return cmd
}

func newRevisionsAddCmd(a *app) *cobra.Command {
	var (
		postID      int64
		title       string
		contentFile string
		excerptFile string
		author      string
		revType     string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Store a new revision of a post",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch models.RevisionType(revType) {
			case models.RevisionManual, models.RevisionAutosave:
			default:
				return errorwrapper.NewValidationError("type", revType, "must be manual or autosave")
			}
			doc, err := readDocument(contentFile, title, excerptFile)
			if err != nil {
				return err
			}

			ledger, store, err := a.openLedger()
			if err != nil {
				return err
			}
			defer store.Close()

			saved, created, err := ledger.SaveRevision(cmd.Context(), models.Revision{
				PostID:    postID,
				Title:     doc.Title,
				Content:   doc.Content,
				Excerpt:   doc.Excerpt,
				Author:    author,
				Type:      models.RevisionType(revType),
				CreatedAt: time.Now(),
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), struct {
				Revision *models.Revision `json:"revision"`
				Created  bool             `json:"created"`
			}{saved, created})
		},
	}

	cmd.Flags().Int64Var(&postID, "post", 0, "Post id the revision belongs to")
	cmd.Flags().StringVar(&title, "title", "", "Revision title")
	cmd.Flags().StringVar(&contentFile, "content-file", "", "File holding the revision content")
	cmd.Flags().StringVar(&excerptFile, "excerpt-file", "", "File holding the revision excerpt")
	cmd.Flags().StringVar(&author, "author", "", "Revision author")
	cmd.Flags().StringVar(&revType, "type", string(models.RevisionManual), "Revision type: manual or autosave")
	_ = cmd.MarkFlagRequired("post")

	return cmd
}

func newRevisionsListCmd(a *app) *cobra.Command {
	var postID int64
	var perPage int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a post's revisions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ledger, store, err := a.openLedger()
			if err != nil {
				return err
			}
			defer store.Close()

			summaries, err := ledger.ListRevisions(cmd.Context(), postID, perPage)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), summaries)
		},
	}

	cmd.Flags().Int64Var(&postID, "post", 0, "Post id")
	cmd.Flags().IntVar(&perPage, "per-page", 0, "Maximum number of revisions (default from config)")
	_ = cmd.MarkFlagRequired("post")

	return cmd
}

func newRevisionsDiffCmd(a *app) *cobra.Command {
	var (
		revisionID int64
		compareTo  int64
		format     string
		out        string
	)

	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Diff a stored revision against another one or its predecessor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ledger, store, err := a.openLedger()
			if err != nil {
				return err
			}
			defer store.Close()

			diff, err := ledger.DiffRevision(cmd.Context(), revisionID, compareTo)
			if err != nil {
				return err
			}
			return a.writeComparison(cmd.OutOrStdout(), format, out, diff.Comparison)
		},
	}

	cmd.Flags().Int64Var(&revisionID, "revision", 0, "Revision id to inspect")
	cmd.Flags().Int64Var(&compareTo, "compare-to", 0, "Revision id to compare against (default: previous revision)")
	cmd.Flags().StringVar(&format, "format", "", "Output format: json, html or text (default from config)")
	cmd.Flags().StringVar(&out, "out", "", "Write the report to this file instead of stdout")
	_ = cmd.MarkFlagRequired("revision")

	return cmd
}
