package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taxdesk-dev/taxdesk/internal/checksum"
	"github.com/taxdesk-dev/taxdesk/internal/model"
)

func newChecksumCommand() *cobra.Command {
	var in model.EditInput
	var line string

	cmd := &cobra.Command{
		Use:   "checksum",
		Short: "Generate the checksum for a transaction",
		Long: "Generate the checksum for a transaction from its fields, validated the same way\n" +
			"as an edit, or compute the raw checksum of an already formatted --line.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if cmd.Flags().Changed("line") {
				fmt.Fprintln(out, checksum.Calculate(line))
				return nil
			}
			if !cmd.Flags().Changed("item-code") && !cmd.Flags().Changed("cost") &&
				!cmd.Flags().Changed("sale-price") && !cmd.Flags().Changed("discount") {
				return errors.New("either --line or the transaction fields are required")
			}

			e, err := model.ParseEdit(in)
			if err != nil {
				a := editAlert(err)
				return fmt.Errorf("%s: %s", a.Header, a.Detail)
			}
			fmt.Fprintln(out, checksum.Line(e.ItemCode, e.Cost, e.SalePrice, e.Discount))
			fmt.Fprintln(out, checksum.Generate(e.ItemCode, e.Cost, e.SalePrice, e.Discount))
			return nil
		},
	}

	cmd.Flags().StringVar(&in.ItemCode, "item-code", "", "item code")
	cmd.Flags().StringVar(&in.Cost, "cost", "", "cost price")
	cmd.Flags().StringVar(&in.SalePrice, "sale-price", "", "sale price")
	cmd.Flags().StringVar(&in.Discount, "discount", "0", "discount percentage (0-100)")
	cmd.Flags().StringVar(&line, "line", "", "formatted transaction line to checksum as-is")

	return cmd
}
