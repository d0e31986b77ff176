package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"recordshop/internal/export"
	"recordshop/internal/policy"
)

const listExportBaseName = "music_records"

// NewExportCommand creates the export command.
func NewExportCommand(opts *RootOptions) *cobra.Command {
	var format, outDir, name string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the record list to spreadsheet and/or PDF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			_, c, err := opts.requireSession(policy.ActionView)
			if err != nil {
				return err
			}

			records, err := c.ListRecords(cmd.Context())
			if err != nil {
				return err
			}

			paths, err := export.New(outDir).Export(cmd.Context(), f, records, name)
			for _, p := range paths {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", p)
			}
			if errors.Is(err, export.ErrNoRecords) {
				return errors.New(export.MsgNoRecords)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatBoth), "xlsx, pdf or both")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	cmd.Flags().StringVar(&name, "name", listExportBaseName, "file base name")
	return cmd
}
