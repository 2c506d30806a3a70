package main

import (
	"github.com/alansmodic/edit-ledger/internal/common/errorwrapper"
	"github.com/alansmodic/edit-ledger/internal/models"
	"github.com/spf13/cobra"
)

type compareOptions struct {
	fromFile, toFile               string
	fromTitle, toTitle             string
	fromExcerptFile, toExcerptFile string
	format                         string
	out                            string
}

func newCompareCmd(a *app) *cobra.Command {
	opts := &compareOptions{}

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare two content files without touching the ledger",
		Example: `  editledger compare --from old.html --to new.html
  editledger compare --from old.html --to new.html --format html --out reports/diff/post.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runCompare(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.fromFile, "from", "", "File holding the older content")
	cmd.Flags().StringVar(&opts.toFile, "to", "", "File holding the newer content")
	cmd.Flags().StringVar(&opts.fromTitle, "from-title", "", "Title of the older revision")
	cmd.Flags().StringVar(&opts.toTitle, "to-title", "", "Title of the newer revision")
	cmd.Flags().StringVar(&opts.fromExcerptFile, "from-excerpt", "", "File holding the older excerpt")
	cmd.Flags().StringVar(&opts.toExcerptFile, "to-excerpt", "", "File holding the newer excerpt")
	cmd.Flags().StringVar(&opts.format, "format", "", "Output format: json, html or text (default from config)")
	cmd.Flags().StringVar(&opts.out, "out", "", "Write the report to this file instead of stdout")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func (a *app) runCompare(cmd *cobra.Command, opts *compareOptions) error {
	from, err := readDocument(opts.fromFile, opts.fromTitle, opts.fromExcerptFile)
	if err != nil {
		return err
	}
	to, err := readDocument(opts.toFile, opts.toTitle, opts.toExcerptFile)
	if err != nil {
		return err
	}

	cmp, err := a.newComparator()
	if err != nil {
		return err
	}
	result, err := cmp.Compare(cmd.Context(), from, to)
	if err != nil {
		return err
	}

	return a.writeComparison(cmd.OutOrStdout(), opts.format, opts.out, result)
}

func readDocument(contentFile, title, excerptFile string) (models.Document, error) {
	content, err := readOptional(contentFile)
	if err != nil {
		return models.Document{}, errorwrapper.WrapErrorf(err, "failed to read content file '%s'", contentFile)
	}
	excerpt, err := readOptional(excerptFile)
	if err != nil {
		return models.Document{}, errorwrapper.WrapErrorf(err, "failed to read excerpt file '%s'", excerptFile)
	}
	return models.Document{ID: contentFile, Title: title, Content: content, Excerpt: excerpt}, nil
}
