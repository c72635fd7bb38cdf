package storage

import (
	"context"
	"fmt"

	"movimenti/internal/common"
	"movimenti/internal/enrich"
	"movimenti/internal/model"
)

// defaultCategories seeds a fresh database so an import can resolve its
// direction fallbacks and the static pattern rules from day one.
var defaultCategories = []model.Category{
	{ID: enrich.CategoryGroceries, Label: "Spesa", Type: model.CategoryTypeExpense, Nature: model.NatureEssential},
	{ID: enrich.CategorySubscriptions, Label: "Abbonamenti", Type: model.CategoryTypeExpense, Nature: model.NatureSuperfluous},
	{ID: enrich.CategorySalary, Label: "Stipendio", Type: model.CategoryTypeIncome, Nature: model.NatureNeutral},
	{ID: enrich.CategoryTransport, Label: "Trasporti", Type: model.CategoryTypeExpense, Nature: model.NatureEssential},
	{ID: enrich.CategoryDining, Label: "Ristorazione", Type: model.CategoryTypeExpense, Nature: model.NatureSuperfluous},
	{ID: enrich.CategoryUtilities, Label: "Utenze", Type: model.CategoryTypeExpense, Nature: model.NatureEssential},
	{ID: enrich.CategoryHealth, Label: "Salute", Type: model.CategoryTypeExpense, Nature: model.NatureEssential},
	{ID: enrich.CategoryShopping, Label: "Shopping", Type: model.CategoryTypeExpense, Nature: model.NatureSuperfluous},
	{ID: enrich.CategoryTravel, Label: "Viaggi", Type: model.CategoryTypeExpense, Nature: model.NatureSuperfluous},
	{ID: enrich.CategoryFees, Label: "Commissioni", Type: model.CategoryTypeExpense, Nature: model.NatureNeutral},
	{ID: enrich.CategoryCash, Label: "Contanti", Type: model.CategoryTypeExpense, Nature: model.NatureNeutral},
	{ID: enrich.CategoryOtherExpense, Label: "Altre uscite", Type: model.CategoryTypeExpense, Nature: model.NatureNeutral},
	{ID: enrich.CategoryOtherIncome, Label: "Altre entrate", Type: model.CategoryTypeIncome, Nature: model.NatureNeutral},
}

// SeedDefaultCategories inserts the built-in categories, leaving any
// existing rows untouched.
func (s *SQLiteStorage) SeedDefaultCategories(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO categories (id, label, type, nature)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, c := range defaultCategories {
		if _, err := stmt.ExecContext(ctx, c.ID, c.Label, string(c.Type), string(c.Nature)); err != nil {
			return fmt.Errorf("failed to seed category %s: %w", c.ID, err)
		}
	}
	return tx.Commit()
}

// ListCategories returns the full category directory.
func (s *SQLiteStorage) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, label, type, nature FROM categories ORDER BY label
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		var catType, nature string
		if err := rows.Scan(&c.ID, &c.Label, &catType, &nature); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		c.Type = model.CategoryType(catType)
		c.Nature = model.SpendingNature(nature)
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// AddCategory inserts a new category.
func (s *SQLiteStorage) AddCategory(ctx context.Context, c model.Category) error {
	if c.ID == "" || c.Label == "" {
		return fmt.Errorf("category id and label must not be empty")
	}

	var exists int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories WHERE id = ?`, c.ID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check category %s: %w", c.ID, err)
	}
	if exists > 0 {
		return fmt.Errorf("category %s: %w", c.ID, common.ErrDuplicateEntry)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (id, label, type, nature)
		VALUES (?, ?, ?, ?)
	`, c.ID, c.Label, string(c.Type), string(c.Nature))
	if err != nil {
		return fmt.Errorf("failed to insert category %s: %w", c.ID, err)
	}
	return nil
}
