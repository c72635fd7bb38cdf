package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"movimenti/internal/cli"
	"movimenti/internal/common"
	"movimenti/internal/engine"
	"movimenti/internal/model"
	"movimenti/internal/ofx"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import a tabular bank export",
		Long: `Parse a bank export (CSV or tab-separated), score rows against stored
history for duplicates, group them by merchant and build the import payload.

Examples:
  # Preview an export without saving anything
  movimenti import ~/Downloads/movimenti_agosto.csv --dry-run

  # Import, skipping groups below 10 euros
  movimenti import export.csv --threshold 10

  # Use an OFX statement as extra history for duplicate detection
  movimenti import export.csv --ofx ~/Downloads/statement.ofx`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	cmd.Flags().BoolP("dry-run", "d", false, "Preview import without saving")
	cmd.Flags().Float64P("threshold", "t", 0, "Exclude groups whose absolute total is below this amount, in euros")
	cmd.Flags().String("ofx", "", "OFX/QFX statement to merge into the duplicate-detection history")
	cmd.Flags().Bool("json", false, "Print the import payload as JSON instead of the review listing")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	thresholdEuros, _ := cmd.Flags().GetFloat64("threshold")
	ofxPath, _ := cmd.Flags().GetString("ofx")
	asJSON, _ := cmd.Flags().GetBool("json")

	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read export: %w", err)
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	history, err := store.ListTransactions(ctx)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	if ofxPath != "" {
		extra, err := loadOFXHistory(ofxPath)
		if err != nil {
			return err
		}
		history = append(history, extra...)
	}

	eng := engine.NewWithOptions(engine.Options{Progress: importProgress(asJSON)})
	session := eng.Import(string(content), history)
	fmt.Fprintln(os.Stderr)

	if session.Failed() {
		fmt.Println(cli.FormatError(session.Errors[0].Message))
		return common.NewUserError("import failed, fix the export and retry", errors.New(session.Errors[0].Message))
	}
	for _, parseErr := range session.Errors {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("line %d: %s", parseErr.Line, parseErr.Message)))
	}

	categories, err := store.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}

	thresholdCents := int64(math.Round(thresholdEuros * 100))
	payload, filter, err := eng.BuildPayload(session, nil, model.NewCategoryDirectory(categories), thresholdCents)
	if err != nil {
		return fmt.Errorf("failed to build payload: %w", err)
	}

	if asJSON {
		out, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode payload: %w", err)
		}
		fmt.Println(string(out))
	} else {
		fmt.Print(cli.RenderSummary(session.Summary))
		fmt.Print(cli.RenderGroups(session, filter.Included))
		if len(filter.ExcludedIDs) > 0 {
			fmt.Println(cli.FormatWarning(fmt.Sprintf("%d groups below threshold excluded", len(filter.ExcludedIDs))))
		}
	}

	if dryRun {
		fmt.Println(cli.FormatWarning("Dry run: nothing saved"))
		return nil
	}

	if err := store.SaveImport(ctx, payload); err != nil {
		common.LogError(err, "failed to save import", common.Fields{"import_id": payload.ImportID})
		return fmt.Errorf("failed to save import: %w", err)
	}
	common.LogInfo("import saved", common.Fields{
		"import_id":    payload.ImportID,
		"transactions": len(payload.Transactions),
	})
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d transactions", len(payload.Transactions))))
	return nil
}

// importProgress reports enrichment progress on stderr. Suppressed in
// JSON mode so stdout stays machine-readable and stderr stays quiet.
func importProgress(asJSON bool) func(done, total int) {
	if asJSON {
		return nil
	}
	var bar *progressbar.ProgressBar
	return func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetDescription("[cyan][bold]Enriching rows...[reset]"),
			)
		}
		_ = bar.Set(done)
	}
}

func loadOFXHistory(path string) ([]model.Transaction, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open OFX file: %w", err)
	}
	defer func() { _ = file.Close() }()

	transactions, err := ofx.NewParser().ParseFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file %s: %w", path, err)
	}
	return transactions, nil
}
