package salerepo

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

const saleColumns = "id, amount, price, description, date, user_id, created_at, updated_at"

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

func (r *Repository) Save(ctx context.Context, sale *domain.Sale) error {
	query := `
        INSERT INTO sales (amount, price, description, date, user_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		err := r.db.QueryRow(ctx, query, sale.Amount, sale.Price, sale.Description, sale.Date, sale.UserID).
			Scan(&sale.ID, &sale.CreatedAt, &sale.UpdatedAt)
		if err != nil {
			zap.L().Error("can't save sale", zap.Int("user_id", sale.UserID), zap.Error(err))
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
func (r *Repository) FindByID(ctx context.Context, id int) (*domain.Sale, error) {
	query := fmt.Sprintf("SELECT %s FROM sales WHERE id = $1", saleColumns)

	var sale domain.Sale
	err := r.db.QueryRow(ctx, query, id).Scan(
		&sale.ID, &sale.Amount, &sale.Price, &sale.Description,
		&sale.Date, &sale.UserID, &sale.CreatedAt, &sale.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find sale", zap.Int("sale_id", id), zap.Error(err))
		return nil, err
	}
	return &sale, nil
}

// FindAllByUser returns one page of the owner's sales plus the total count
// matching the filter.
func (r *Repository) FindAllByUser(ctx context.Context, filter domain.RecordFilter) ([]domain.Sale, int, error) {
	where, args := buildWhere(filter)

	var total int
	countQuery := "SELECT COUNT(*) FROM sales WHERE " + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		zap.L().Error("can't count sales", zap.Int("user_id", filter.UserID), zap.Error(err))
		return nil, 0, err
	}

	listQuery := fmt.Sprintf(
		"SELECT %s FROM sales WHERE %s ORDER BY date DESC, id DESC LIMIT $%d OFFSET $%d",
		saleColumns, where, len(args)+1, len(args)+2,
	)
	rows, err := r.db.Query(ctx, listQuery, append(args, filter.Size, filter.Offset)...)
	if err != nil {
		zap.L().Error("can't get sales", zap.Int("user_id", filter.UserID), zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	sales, err := scanSales(rows)
	if err != nil {
		return nil, 0, err
	}
	return sales, total, nil
}

func (r *Repository) FindLatestByUser(ctx context.Context, userID, limit int) ([]domain.Sale, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM sales WHERE user_id = $1 ORDER BY date DESC, id DESC LIMIT $2",
		saleColumns,
	)
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		zap.L().Error("can't get latest sales", zap.Int("user_id", userID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return scanSales(rows)
}

func (r *Repository) Update(ctx context.Context, sale *domain.Sale) error {
	query := `
        UPDATE sales
        SET amount = $1, price = $2, description = $3, date = $4, updated_at = now()
        WHERE id = $5
        RETURNING updated_at
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		err := r.db.QueryRow(ctx, query, sale.Amount, sale.Price, sale.Description, sale.Date, sale.ID).
			Scan(&sale.UpdatedAt)
		if err != nil {
			zap.L().Error("can't update sale", zap.Int("sale_id", sale.ID), zap.Error(err))
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
        DELETE FROM sales
        WHERE id = $1
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		_, err := r.db.Exec(ctx, query, id)
		if err != nil {
			zap.L().Error("can't delete sale", zap.Int("sale_id", id), zap.Error(err))
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

func scanSales(rows pgx.Rows) ([]domain.Sale, error) {
	var sales []domain.Sale
	for rows.Next() {
		var sale domain.Sale
		err := rows.Scan(
			&sale.ID, &sale.Amount, &sale.Price, &sale.Description,
			&sale.Date, &sale.UserID, &sale.CreatedAt, &sale.UpdatedAt,
		)
		if err != nil {
			zap.L().Error("can't scan sale row", zap.Error(err))
			return nil, err
		}
		sales = append(sales, sale)
	}
	// An iteration error would otherwise surface as a truncated page.
	if err := rows.Err(); err != nil {
		zap.L().Error("can't read sale rows", zap.Error(err))
		return nil, err
	}
	return sales, nil
}
