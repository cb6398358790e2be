package service

import (
	"time"

	"github.com/twnk123/malca-time/internal/domain"
	"github.com/twnk123/malca-time/internal/pricing"
)

type MenuService struct {
	repo      MenuRepository
	discounts DiscountRepository
	now       func() time.Time
}

func NewMenuService(repo MenuRepository, discounts DiscountRepository) *MenuService {
	return &MenuService{repo: repo, discounts: discounts, now: time.Now}
}

func (s *MenuService) WithClock(now func() time.Time) *MenuService {
	s.now = now
	return s
}

func (s *MenuService) Create(item *domain.MenuItem) error {
	return s.repo.CreateMenuItem(item)
}

func (s *MenuService) List(restaurantID int) ([]domain.MenuItem, error) {
	return s.repo.ListMenuItems(restaurantID)
}

// ListPriced decorates the menu with current effective prices and the
// reconstructed "was" price for items carrying an applicable discount.
func (s *MenuService) ListPriced(restaurantID int) ([]domain.PricedMenuItem, error) {
	items, err := s.repo.ListMenuItems(restaurantID)
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	active, err := s.discounts.GetActiveDiscounts(ids)
	if err != nil {
		return nil, err
	}

	now := s.now()
	priced := make([]domain.PricedMenuItem, 0, len(items))
	for _, item := range items {
		entry := domain.PricedMenuItem{MenuItem: item, EffectivePrice: item.Price}

		if discount := active[item.ID]; pricing.Applies(discount, now) {
			entry.Discount = discount
			entry.EffectivePrice = pricing.EffectivePrice(item.Price, discount, now)
			entry.OriginalPrice = item.Price
		}
		priced = append(priced, entry)
	}
	return priced, nil
}

func (s *MenuService) Get(restaurantID, itemID int) (*domain.MenuItem, error) {
	return s.repo.GetMenuItem(restaurantID, itemID)
}

func (s *MenuService) Update(item *domain.MenuItem) error {
	return s.repo.UpdateMenuItem(item)
}

func (s *MenuService) Delete(restaurantID, itemID int) (int64, error) {
	return s.repo.DeleteMenuItem(restaurantID, itemID)
}

func (s *MenuService) UpdateImage(restaurantID, itemID int, imageURL string) error {
	return s.repo.UpdateMenuItemImage(restaurantID, itemID, imageURL)
}

var _ MenuServiceInterface = (*MenuService)(nil)
