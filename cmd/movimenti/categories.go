package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"movimenti/internal/cli"
	"movimenti/internal/model"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage categories",
		Long:  `List and add the categories import payloads are validated against.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			categories, err := store.ListCategories(ctx)
			if err != nil {
				return fmt.Errorf("failed to load categories: %w", err)
			}

			fmt.Println(cli.FormatTitle("Categories"))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "ID\tLabel\tType\tNature\n")
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 16), strings.Repeat("-", 20),
				strings.Repeat("-", 7), strings.Repeat("-", 11))
			for _, c := range categories {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.ID, c.Label, c.Type, c.Nature)
			}
			return nil
		},
	}
}

func addCategoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [id] [label]",
		Short: "Add a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			categoryType, _ := cmd.Flags().GetString("type")
			nature, _ := cmd.Flags().GetString("nature")

			if categoryType != string(model.CategoryTypeIncome) && categoryType != string(model.CategoryTypeExpense) {
				return fmt.Errorf("invalid category type: %s", categoryType)
			}
			switch model.SpendingNature(nature) {
			case model.NatureEssential, model.NatureSuperfluous, model.NatureNeutral:
			default:
				return fmt.Errorf("invalid spending nature: %s", nature)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			category := model.Category{
				ID:     args[0],
				Label:  args[1],
				Type:   model.CategoryType(categoryType),
				Nature: model.SpendingNature(nature),
			}
			if err := store.AddCategory(ctx, category); err != nil {
				return fmt.Errorf("failed to add category: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added category %q", category.ID)))
			return nil
		},
	}

	cmd.Flags().String("type", string(model.CategoryTypeExpense), "category type (income, expense)")
	cmd.Flags().String("nature", string(model.NatureNeutral), "spending nature (essential, superfluous, neutral)")

	return cmd
}
