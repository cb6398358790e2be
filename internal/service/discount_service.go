package service

import (
	"errors"

	"github.com/twnk123/malca-time/internal/domain"
)

var (
	ErrNegativeDiscount    = errors.New("discount amount must not be negative")
	ErrUnknownDiscountKind = errors.New("unknown discount kind")
	ErrInvalidValidity     = errors.New("valid_from must precede valid_until")
)

type DiscountService struct {
	repo DiscountRepository
}

func NewDiscountService(repo DiscountRepository) *DiscountService {
	return &DiscountService{repo: repo}
}

func validateDiscount(d *domain.Discount) error {
	if d.Amount < 0 {
		return ErrNegativeDiscount
	}
	if d.Kind != domain.DiscountPercentage && d.Kind != domain.DiscountFixedAmount {
		return ErrUnknownDiscountKind
	}
	if d.ValidFrom != nil && d.ValidUntil != nil && d.ValidUntil.Before(*d.ValidFrom) {
		return ErrInvalidValidity
	}
	return nil
}

func (s *DiscountService) Create(d *domain.Discount) error {
	if err := validateDiscount(d); err != nil {
		return err
	}
	return s.repo.CreateDiscount(d)
}

func (s *DiscountService) List(restaurantID int) ([]domain.Discount, error) {
	return s.repo.ListDiscounts(restaurantID)
}

func (s *DiscountService) Update(d *domain.Discount) error {
	if err := validateDiscount(d); err != nil {
		return err
	}
	return s.repo.UpdateDiscount(d)
}

func (s *DiscountService) Delete(id int) (int64, error) {
	return s.repo.DeleteDiscount(id)
}

var _ DiscountServiceInterface = (*DiscountService)(nil)
