package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewFormatsCommand creates the formats command.
func NewFormatsCommand(opts *RootOptions) *cobra.Command {
	return newListingCommand(opts, "formats", "List media formats", func(ctx context.Context, o *RootOptions) ([]string, error) {
		return o.client("").Formats(ctx)
	})
}

// NewGenresCommand creates the genres command.
func NewGenresCommand(opts *RootOptions) *cobra.Command {
	return newListingCommand(opts, "genres", "List genres", func(ctx context.Context, o *RootOptions) ([]string, error) {
		return o.client("").Genres(ctx)
	})
}

func newListingCommand(opts *RootOptions, use, short string, fetch func(context.Context, *RootOptions) ([]string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := fetch(cmd.Context(), opts)
			if err != nil {
				return err
			}
			for _, item := range items {
				fmt.Fprintln(cmd.OutOrStdout(), item)
			}
			return nil
		},
	}
}
