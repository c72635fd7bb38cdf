package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"movimenti/internal/cli"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect stored transaction history",
		Long:  `Show the transactions duplicate detection scores new imports against.`,
	}

	cmd.AddCommand(listHistoryCmd())
	cmd.AddCommand(loadHistoryCmd())
	cmd.AddCommand(listImportsCmd())

	return cmd
}

func listHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored transactions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			limit, _ := cmd.Flags().GetInt("limit")

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			transactions, err := store.ListTransactions(ctx)
			if err != nil {
				return fmt.Errorf("failed to load history: %w", err)
			}
			if limit > 0 && len(transactions) > limit {
				transactions = transactions[len(transactions)-limit:]
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("History (%d transactions)", len(transactions))))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "Date\tDescription\tCategory\tAmount\n")
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 10), strings.Repeat("-", 40),
				strings.Repeat("-", 16), strings.Repeat("-", 12))
			for _, tx := range transactions {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					tx.Date.Format("2006-01-02"), tx.Description, tx.CategoryID, cli.Amount(tx.AmountCents))
			}
			return nil
		},
	}

	cmd.Flags().Int("limit", 50, "show only the most recent N transactions (0 for all)")

	return cmd
}

func loadHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load [files...]",
		Short: "Load OFX/QFX statements into the history",
		Long: `Parse one or more OFX or QFX statements and store their transactions
as history. Already-stored transactions are skipped by ID.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			total := 0
			for _, path := range args {
				transactions, err := loadOFXHistory(path)
				if err != nil {
					return err
				}
				if err := store.SaveTransactions(ctx, transactions); err != nil {
					return fmt.Errorf("failed to save transactions from %s: %w", path, err)
				}
				total += len(transactions)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Loaded %d transactions from %d files", total, len(args))))
			return nil
		},
	}
}

func listImportsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "imports",
		Short: "List stored import batches",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			imports, err := store.ListImports(ctx)
			if err != nil {
				return fmt.Errorf("failed to load imports: %w", err)
			}

			fmt.Println(cli.FormatTitle("Imports"))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "ID\tCreated\tTransactions\n")
			for _, info := range imports {
				fmt.Fprintf(w, "%s\t%s\t%d\n", info.ID, info.CreatedAt.Format("2006-01-02 15:04"), info.TransactionCount)
			}
			return nil
		},
	}
}
