package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"movimenti/internal/model"
)

// ListTransactions returns the full transaction history, oldest first.
// This is the history snapshot the import pipeline dedupes and enriches
// against.
func (s *SQLiteStorage) ListTransactions(ctx context.Context) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, description, amount_cents, COALESCE(category_id, '')
		FROM transactions
		ORDER BY date, created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		var tx model.Transaction
		if err := rows.Scan(&tx.ID, &tx.Date, &tx.Description, &tx.AmountCents, &tx.CategoryID); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}

// SaveTransactions stores history records directly, outside any import
// batch (used when loading archives, e.g. OFX statements).
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, transactions []model.Transaction) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO transactions (id, date, description, amount_cents, category_id)
		VALUES (?, ?, ?, ?, NULLIF(?, ''))
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, t := range transactions {
		id := t.ID
		if id == "" {
			id = uuid.NewString()
		}
		if _, err := stmt.ExecContext(ctx, id, t.Date, t.Description, t.AmountCents, t.CategoryID); err != nil {
			return fmt.Errorf("failed to insert transaction %s: %w", id, err)
		}
	}
	return tx.Commit()
}

// SaveImport is the batch-create operation consuming an ImportPayload:
// one imports row plus one transactions row per record, atomically.
func (s *SQLiteStorage) SaveImport(ctx context.Context, p model.ImportPayload) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO imports (id, created_at, transaction_count)
		VALUES (?, ?, ?)
	`, p.ImportID, p.CreatedAt, len(p.Transactions)); err != nil {
		return fmt.Errorf("failed to insert import %s: %w", p.ImportID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transactions (id, date, description, amount_cents, category_id, import_id, source, superfluous)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, record := range p.Transactions {
		amount := record.AmountCents
		if record.Direction == model.DirectionExpense {
			amount = -amount
		}
		if _, err := stmt.ExecContext(ctx,
			uuid.NewString(),
			record.Date,
			record.Description,
			amount,
			record.CategoryID,
			p.ImportID,
			string(record.Source),
			boolToInt(record.Superfluous),
		); err != nil {
			return fmt.Errorf("failed to insert transaction for import %s: %w", p.ImportID, err)
		}
	}
	return tx.Commit()
}

// ImportInfo describes one stored import batch.
type ImportInfo struct {
	CreatedAt        time.Time
	ID               string
	TransactionCount int
}

// ListImports returns stored import batches, newest first.
func (s *SQLiteStorage) ListImports(ctx context.Context) ([]ImportInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, transaction_count FROM imports ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query imports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var imports []ImportInfo
	for rows.Next() {
		var info ImportInfo
		if err := rows.Scan(&info.ID, &info.CreatedAt, &info.TransactionCount); err != nil {
			return nil, fmt.Errorf("failed to scan import: %w", err)
		}
		imports = append(imports, info)
	}
	return imports, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
