package expenserepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"finledger/internal/domain"
	"finledger/internal/pg"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const expenseColumns = "id, total, description, date, user_id, created_at, updated_at"

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

func (r *Repository) Save(ctx context.Context, expense *domain.Expense) error {
	query := `
        INSERT INTO expenses (total, description, date, user_id)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		err := r.db.QueryRow(ctx, query, expense.Total, expense.Description, expense.Date, expense.UserID).
			Scan(&expense.ID, &expense.CreatedAt, &expense.UpdatedAt)
		if err != nil {
			zap.L().Error("can't save expense", zap.Int("user_id", expense.UserID), zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}

// FindByID is not owner-scoped: the service needs the stored owner to tell
// a missing record from someone else's record.
func (r *Repository) FindByID(ctx context.Context, id int) (*domain.Expense, error) {
	query := fmt.Sprintf("SELECT %s FROM expenses WHERE id = $1", expenseColumns)

	var expense domain.Expense
	err := r.db.QueryRow(ctx, query, id).Scan(
		&expense.ID, &expense.Total, &expense.Description,
		&expense.Date, &expense.UserID, &expense.CreatedAt, &expense.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find expense", zap.Int("expense_id", id), zap.Error(err))
		return nil, err
	}
	return &expense, nil
}

// FindAllByUser returns one page of the owner's expenses plus the total
// count matching the filter.
func (r *Repository) FindAllByUser(ctx context.Context, filter domain.RecordFilter) ([]domain.Expense, int, error) {
	where, args := buildWhere(filter)

	var total int
	countQuery := "SELECT COUNT(*) FROM expenses WHERE " + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		zap.L().Error("can't count expenses", zap.Int("user_id", filter.UserID), zap.Error(err))
		return nil, 0, err
	}

	listQuery := fmt.Sprintf(
		"SELECT %s FROM expenses WHERE %s ORDER BY date DESC, id DESC LIMIT $%d OFFSET $%d",
		expenseColumns, where, len(args)+1, len(args)+2,
	)
	rows, err := r.db.Query(ctx, listQuery, append(args, filter.Size, filter.Offset)...)
	if err != nil {
		zap.L().Error("can't get expenses", zap.Int("user_id", filter.UserID), zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	expenses, err := scanExpenses(rows)
	if err != nil {
		return nil, 0, err
	}
	return expenses, total, nil
}

func (r *Repository) FindLatestByUser(ctx context.Context, userID, limit int) ([]domain.Expense, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM expenses WHERE user_id = $1 ORDER BY date DESC, id DESC LIMIT $2",
		expenseColumns,
	)
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		zap.L().Error("can't get latest expenses", zap.Int("user_id", userID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return scanExpenses(rows)
}

func (r *Repository) Update(ctx context.Context, expense *domain.Expense) error {
	query := `
        UPDATE expenses
        SET total = $1, description = $2, date = $3, updated_at = now()
        WHERE id = $4
        RETURNING updated_at
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		err := r.db.QueryRow(ctx, query, expense.Total, expense.Description, expense.Date, expense.ID).
			Scan(&expense.UpdatedAt)
		if err != nil {
			zap.L().Error("can't update expense", zap.Int("expense_id", expense.ID), zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id int) error {
	query := `
        DELETE FROM expenses
        WHERE id = $1
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		_, err := r.db.Exec(ctx, query, id)
		if err != nil {
			zap.L().Error("can't delete expense", zap.Int("expense_id", id), zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}

func buildWhere(filter domain.RecordFilter) (string, []any) {
	conditions := []string{"user_id = $1"}
	args := []any{filter.UserID}

	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		conditions = append(conditions, fmt.Sprintf("date >= $%d", len(args)))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		conditions = append(conditions, fmt.Sprintf("date <= $%d", len(args)))
	}

	return strings.Join(conditions, " AND "), args
}

func scanExpenses(rows pgx.Rows) ([]domain.Expense, error) {
	var expenses []domain.Expense
	for rows.Next() {
		var expense domain.Expense
		err := rows.Scan(
			&expense.ID, &expense.Total, &expense.Description,
			&expense.Date, &expense.UserID, &expense.CreatedAt, &expense.UpdatedAt,
		)
		if err != nil {
			zap.L().Error("can't scan expense row", zap.Error(err))
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	// An iteration error would otherwise surface as a truncated page.
	if err := rows.Err(); err != nil {
		zap.L().Error("can't read expense rows", zap.Error(err))
		return nil, err
	}
	return expenses, nil
}
