package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/taxdesk-dev/taxdesk/internal/importer"
	"github.com/taxdesk-dev/taxdesk/internal/model"
)

func newGenerateCommand(a *app) *cobra.Command {
	var output string
	var force bool

	cmd := &cobra.Command{
		Use:   "generate <items.csv>",
		Short: "Write a tax transaction file with checksums from an item list",
		Long: "Read an item list (" + importer.ItemsHeader + ", discount optional) and write a tax\n" +
			"transaction file with generated checksums to stdout or --output.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.OutOrStdout(), a.log, args[0], output, force)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing output file")

	return cmd
}

func runGenerate(w io.Writer, log *logrus.Logger, input, output string, force bool) error {
	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("opening %s: %w", input, err)
	}
	defer f.Close()

	items, err := importer.ParseItems(f)
	if err != nil {
		return fmt.Errorf("reading %s: %w", input, err)
	}

	txns := make([]*model.Transaction, 0, len(items))
	for _, e := range items {
		if e.CostExceedsSale() {
			log.WithField("item_code", e.ItemCode).Warn("generate.CostExceedsSale")
		}
		txn := model.NewTransaction(e.ItemCode, e.Cost, e.SalePrice, e.Discount, "")
		txn.SetChecksum(txn.GenerateChecksum())
		txns = append(txns, txn)
	}

	if output == "" {
		return importer.WriteTaxFile(w, txns)
	}

	if _, err := os.Stat(output); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", output)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", output, err)
	}

	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating %s: %w", output, err)
	}
	if err := importer.WriteTaxFile(out, txns); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", output, err)
	}

	log.WithFields(logrus.Fields{"file": output, "records": len(txns)}).Info("generate.Complete")
	fmt.Fprintf(w, "Wrote %d records to %s\n", len(txns), output)
	return nil
}
