package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"recordshop/internal/model"
	"recordshop/internal/policy"
	"recordshop/internal/validation"
)

// fieldFlags maps form fields to their command-line flag names.
var fieldFlags = []struct {
	field string
	flag  string
	usage string
}{
	{validation.FieldTitle, "title", "record title"},
	{validation.FieldArtist, "artist", "artist"},
	{validation.FieldFormat, "format", "media format (Vinyl, CD)"},
	{validation.FieldGenre, "genre", "genre"},
	{validation.FieldReleaseYear, "release-year", "release year"},
	{validation.FieldPrice, "price", "price in euro"},
	{validation.FieldStockQty, "stock", "stock quantity"},
	{validation.FieldCustomerID, "customer-id", "customer id, digits followed by a letter"},
	{validation.FieldCustomerFirstName, "first-name", "customer first name"},
	{validation.FieldCustomerLastName, "last-name", "customer last name"},
	{validation.FieldCustomerContact, "contact", "customer phone, at least 8 digits"},
	{validation.FieldCustomerEmail, "customer-email", "customer email"},
}

type recordFlags map[string]*string

func bindRecordFlags(cmd *cobra.Command) recordFlags {
	values := recordFlags{}
	for _, f := range fieldFlags {
		values[f.field] = cmd.Flags().String(f.flag, "", f.usage)
	}
	return values
}

// apply sets every flag the user passed onto the form. When all is true,
// unset flags are applied too so the form reports them as missing.
func (r recordFlags) apply(cmd *cobra.Command, form *validation.Form, all bool) error {
	for _, f := range fieldFlags {
		if !all && !cmd.Flags().Changed(f.flag) {
			continue
		}
		if err := form.Set(f.field, *r[f.field]); err != nil {
			return err
		}
	}
	return nil
}

// NewListCommand creates the list command.
func NewListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, c, err := opts.requireSession(policy.ActionView)
			if err != nil {
				return err
			}
			records, err := c.ListRecords(cmd.Context())
			if err != nil {
				return err
			}
			return printRecords(cmd.OutOrStdout(), records)
		},
	}
}

// NewShowCommand creates the show command.
func NewShowCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			_, c, err := opts.requireSession(policy.ActionView)
			if err != nil {
				return err
			}
			record, err := c.GetRecord(cmd.Context(), id)
			if err != nil {
				return err
			}
			printRecord(cmd.OutOrStdout(), record)
			return nil
		},
	}
}

// NewAddCommand creates the add command.
func NewAddCommand(opts *RootOptions) *cobra.Command {
	var values recordFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, c, err := opts.requireSession(policy.ActionAdd)
			if err != nil {
				return err
			}

			form := validation.New().NewForm()
			if err := values.apply(cmd, form, true); err != nil {
				return err
			}
			in, err := form.Submit()
			if err != nil {
				return reportInvalid(cmd.ErrOrStderr(), err)
			}

			record, err := c.CreateRecord(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added record %d: %s\n", record.ID, record.Title)
			return nil
		},
	}
	values = bindRecordFlags(cmd)
	return cmd
}

// NewEditCommand creates the edit command.
func NewEditCommand(opts *RootOptions) *cobra.Command {
	var values recordFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			_, c, err := opts.requireSession(policy.ActionUpdate)
			if err != nil {
				return err
			}

			current, err := c.GetRecord(cmd.Context(), id)
			if err != nil {
				return err
			}
			form := validation.New().NewEditForm(*current)
			if err := values.apply(cmd, form, false); err != nil {
				return err
			}
			in, err := form.Submit()
			if err != nil {
				return reportInvalid(cmd.ErrOrStderr(), err)
			}

			record, err := c.UpdateRecord(cmd.Context(), id, model.PatchFromInput(in))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated record %d: %s\n", record.ID, record.Title)
			return nil
		},
	}
	values = bindRecordFlags(cmd)
	return cmd
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(opts *RootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			_, c, err := opts.requireSession(policy.ActionDelete)
			if err != nil {
				return err
			}

			if !yes {
				ok, err := confirm(cmd.OutOrStdout(), cmd.InOrStdin(), fmt.Sprintf("Are you sure you want to delete record %d?", id))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
					return nil
				}
			}

			result, err := c.DeleteRecord(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d: %s\n", result.Message, result.Record.ID, result.Record.Title)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid record id %q", s)
	}
	return uint(id), nil
}

func confirm(out io.Writer, in io.Reader, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N] ", question)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func reportInvalid(w io.Writer, err error) error {
	var failure *validation.ClientValidationFailure
	if !errors.As(err, &failure) {
		return err
	}
	fields := make([]string, 0, len(failure.Errors))
	for field := range failure.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		fmt.Fprintf(w, "  %s: %s\n", field, failure.Errors[field])
	}
	return errors.New("record not saved: fix the fields above")
}

func printRecords(w io.Writer, records []model.Record) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tARTIST\tFORMAT\tGENRE\tYEAR\tPRICE\tSTOCK\tCUSTOMER")
	for _, r := range records {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d\t€%s\t%d\t%s\n",
			r.ID, r.Title, r.Artist, r.Format, r.Genre, r.ReleaseYear, r.Price.StringFixed(2), r.StockQty, r.CustomerDisplay())
	}
	return tw.Flush()
}

func printRecord(w io.Writer, r *model.Record) {
	fmt.Fprintf(w, "ID:           %d\n", r.ID)
	fmt.Fprintf(w, "Title:        %s\n", r.Title)
	fmt.Fprintf(w, "Artist:       %s\n", r.Artist)
	fmt.Fprintf(w, "Format:       %s\n", r.Format)
	fmt.Fprintf(w, "Genre:        %s\n", r.Genre)
	fmt.Fprintf(w, "Release year: %d\n", r.ReleaseYear)
	fmt.Fprintf(w, "Price:        €%s\n", r.Price.StringFixed(2))
	fmt.Fprintf(w, "Stock:        %d\n", r.StockQty)
	fmt.Fprintf(w, "Customer:     %s (%s)\n", r.CustomerName(), r.CustomerID)
	fmt.Fprintf(w, "Contact:      %s\n", r.CustomerContact)
	fmt.Fprintf(w, "Email:        %s\n", r.CustomerEmail)
}
