package main

import (
	"github.com/alansmodic/edit-ledger/internal/datastore"
	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the revision ledger to a parquet file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := datastore.NewRevisionStore(a.cfg.StorageConfig, a.logger)
			if err != nil {
				return err
			}
			defer store.Close()

			exporter, err := datastore.NewLedgerExporter(store, a.logger)
			if err != nil {
				return err
			}
			result, err := exporter.Export(cmd.Context(), out)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Destination parquet file")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
