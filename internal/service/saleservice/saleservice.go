package saleservice

import (
	"context"
	"errors"

	"finledger/internal/domain"
	"finledger/internal/dto"
	"finledger/internal/pagination"

	"go.uber.org/zap"
)

var (
	ErrSaleNotFound  = errors.New("sale not found")
	ErrAccessDenied  = errors.New("you do not have access to this sale")
	ErrOwnerNotFound = errors.New("user not found")
)

type Repo interface {
	Save(ctx context.Context, sale *domain.Sale) error
	FindByID(ctx context.Context, id int) (*domain.Sale, error)
	FindAllByUser(ctx context.Context, filter domain.RecordFilter) ([]domain.Sale, int, error)
	FindLatestByUser(ctx context.Context, userID, limit int) ([]domain.Sale, error)
	Update(ctx context.Context, sale *domain.Sale) error
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
func (s *Service) Create(ctx context.Context, userID int, sale domain.Sale) (*domain.Sale, error) {
	owner, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		zap.L().Warn("create sale for missing owner", zap.Int("user_id", userID))
		return nil, ErrOwnerNotFound
	}

	sale.UserID = owner.ID
	if err := s.repo.Save(ctx, &sale); err != nil {
		zap.L().Error("can't create sale", zap.Int("user_id", userID), zap.Error(err))
		return nil, err
	}

	zap.L().Info("sale created", zap.Int("sale_id", sale.ID), zap.Int("user_id", userID))
	return &sale, nil
}

func (s *Service) List(ctx context.Context, filter domain.RecordFilter) ([]domain.Sale, pagination.Meta, error) {
	sales, total, err := s.repo.FindAllByUser(ctx, filter)
	if err != nil {
		zap.L().Error("can't list sales", zap.Int("user_id", filter.UserID), zap.Error(err))
		return nil, pagination.Meta{}, err
	}

	meta := pagination.NewMeta(filter.Page, filter.Size, total)
	return sales, meta, nil
}

func (s *Service) Latest(ctx context.Context, userID, limit int) ([]domain.Sale, error) {
	sales, err := s.repo.FindLatestByUser(ctx, userID, limit)
	if err != nil {
		zap.L().Error("can't get latest sales", zap.Int("user_id", userID), zap.Error(err))
		return nil, err
	}
	return sales, nil
}

func (s *Service) GetByID(ctx context.Context, id, userID int) (*domain.Sale, error) {
	return s.validateOwnership(ctx, id, userID)
}

func (s *Service) Update(ctx context.Context, id, userID int, patch dto.UpdateSaleRequestDTO) (*domain.Sale, error) {
	sale, err := s.validateOwnership(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	patch.Apply(sale)
	if err := s.repo.Update(ctx, sale); err != nil {
		zap.L().Error("can't update sale", zap.Int("sale_id", id), zap.Error(err))
		return nil, err
	}

	zap.L().Info("sale updated", zap.Int("sale_id", id), zap.Int("user_id", userID))
	return sale, nil
}

func (s *Service) Remove(ctx context.Context, id, userID int) error {
	if _, err := s.validateOwnership(ctx, id, userID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		zap.L().Error("can't delete sale", zap.Int("sale_id", id), zap.Error(err))
		return err
	}
	zap.L().Info("sale deleted", zap.Int("sale_id", id), zap.Int("user_id", userID))
	return nil
}

// validateOwnership resolves existence before ownership: a missing record is
// not-found, someone else's record is access-denied, never the other way
// around.
func (s *Service) validateOwnership(ctx context.Context, id, userID int) (*domain.Sale, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, ErrSaleNotFound
	}
	if sale.UserID != userID {
		zap.L().Warn("sale access denied", zap.Int("sale_id", id), zap.Int("user_id", userID))
		return nil, ErrAccessDenied
	}
	return sale, nil
}
