package expenseservice

import (
	"context"
	"errors"

	"finledger/internal/domain"
	"finledger/internal/dto"
	"finledger/internal/pagination"

	"go.uber.org/zap"
)

var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrAccessDenied    = errors.New("you do not have access to this expense")
	ErrOwnerNotFound   = errors.New("user not found")
)

type Repo interface {
	Save(ctx context.Context, expense *domain.Expense) error
	FindByID(ctx context.Context, id int) (*domain.Expense, error)
	FindAllByUser(ctx context.Context, filter domain.RecordFilter) ([]domain.Expense, int, error)
	FindLatestByUser(ctx context.Context, userID, limit int) ([]domain.Expense, error)
	Update(ctx context.Context, expense *domain.Expense) error
	Delete(ctx context.Context, id int) error
}

type UserRepo interface {
	FindByID(ctx context.Context, id int) (*domain.User, error)
}

type Service struct {
	repo     Repo
	userRepo UserRepo
}

func New(repo Repo, userRepo UserRepo) *Service {
	return &Service{
		repo:     repo,
		userRepo: userRepo,
	}
}

// Create re-validates that the token subject still exists before attaching
// it as the owner; a token can outlive its user.
func (s *Service) Create(ctx context.Context, userID int, expense domain.Expense) (*domain.Expense, error) {
	owner, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		zap.L().Warn("create expense for missing owner", zap.Int("user_id", userID))
		return nil, ErrOwnerNotFound
	}

	expense.UserID = owner.ID
	if err := s.repo.Save(ctx, &expense); err != nil {
		zap.L().Error("can't create expense", zap.Int("user_id", userID), zap.Error(err))
		return nil, err
	}

	zap.L().Info("expense created", zap.Int("expense_id", expense.ID), zap.Int("user_id", userID))
	return &expense, nil
}

func (s *Service) List(ctx context.Context, filter domain.RecordFilter) ([]domain.Expense, pagination.Meta, error) {
	expenses, total, err := s.repo.FindAllByUser(ctx, filter)
	if err != nil {
		zap.L().Error("can't list expenses", zap.Int("user_id", filter.UserID), zap.Error(err))
		return nil, pagination.Meta{}, err
	}

	meta := pagination.NewMeta(filter.Page, filter.Size, total)
	return expenses, meta, nil
}

func (s *Service) Latest(ctx context.Context, userID, limit int) ([]domain.Expense, error) {
	expenses, err := s.repo.FindLatestByUser(ctx, userID, limit)
	if err != nil {
		zap.L().Error("can't get latest expenses", zap.Int("user_id", userID), zap.Error(err))
		return nil, err
	}
	return expenses, nil
}

func (s *Service) GetByID(ctx context.Context, id, userID int) (*domain.Expense, error) {
	return s.validateOwnership(ctx, id, userID)
}

func (s *Service) Update(ctx context.Context, id, userID int, patch dto.UpdateExpenseRequestDTO) (*domain.Expense, error) {
	expense, err := s.validateOwnership(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	patch.Apply(expense)
	if err := s.repo.Update(ctx, expense); err != nil {
		zap.L().Error("can't update expense", zap.Int("expense_id", id), zap.Error(err))
		return nil, err
	}

	zap.L().Info("expense updated", zap.Int("expense_id", id), zap.Int("user_id", userID))
	return expense, nil
}

func (s *Service) Remove(ctx context.Context, id, userID int) error {
	if _, err := s.validateOwnership(ctx, id, userID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		zap.L().Error("can't delete expense", zap.Int("expense_id", id), zap.Error(err))
		return err
	}
	zap.L().Info("expense deleted", zap.Int("expense_id", id), zap.Int("user_id", userID))
	return nil
}

// validateOwnership resolves existence before ownership: a missing record is
// not-found, someone else's record is access-denied, never the other way
// around.
func (s *Service) validateOwnership(ctx context.Context, id, userID int) (*domain.Expense, error) {
	expense, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, ErrExpenseNotFound
	}
	if expense.UserID != userID {
		zap.L().Warn("expense access denied", zap.Int("expense_id", id), zap.Int("user_id", userID))
		return nil, ErrAccessDenied
	}
	return expense, nil
}
