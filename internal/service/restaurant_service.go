package service

import (
	"fmt"
	"time"

	"github.com/twnk123/malca-time/internal/domain"
	"github.com/twnk123/malca-time/internal/workinghours"
)

type RestaurantService struct {
	repo RestaurantRepository
	now  func() time.Time
}

func NewRestaurantService(repo RestaurantRepository) *RestaurantService {
	return &RestaurantService{repo: repo, now: time.Now}
}

// WithClock replaces the ambient clock, used by tests to pin the reference
// instant for slot computation.
func (s *RestaurantService) WithClock(now func() time.Time) *RestaurantService {
	s.now = now
	return s
}

func (s *RestaurantService) Create(rest *domain.Restaurant) error {
	if _, err := workinghours.ParseSchedule(rest.OpensAt, rest.ClosesAt); err != nil {
		return fmt.Errorf("working hours: %w", err)
	}
	return s.repo.CreateRestaurant(rest)
}

func (s *RestaurantService) List() ([]domain.Restaurant, error) {
	return s.repo.ListRestaurants()
}

func (s *RestaurantService) Get(id int) (*domain.Restaurant, error) {
	return s.repo.GetRestaurant(id)
}

func (s *RestaurantService) Update(rest *domain.Restaurant) error {
	if _, err := workinghours.ParseSchedule(rest.OpensAt, rest.ClosesAt); err != nil {
		return fmt.Errorf("working hours: %w", err)
	}
	return s.repo.UpdateRestaurant(rest)
}

func (s *RestaurantService) Delete(id int) (int64, error) {
	return s.repo.DeleteRestaurant(id)
}

func (s *RestaurantService) UpdateImage(id int, imageURL string) error {
	return s.repo.UpdateRestaurantImage(id, imageURL)
}

// PickupInfo computes the selectable pickup slots and current ordering status
// for the restaurant's schedule.
func (s *RestaurantService) PickupInfo(id int) (*PickupInfo, error) {
	rest, err := s.repo.GetRestaurant(id)
	if err != nil {
		return nil, err
	}

	schedule, err := workinghours.ParseSchedule(rest.OpensAt, rest.ClosesAt)
	if err != nil {
		return nil, fmt.Errorf("working hours: %w", err)
	}

	now := s.now()
	return &PickupInfo{
		Status:   workinghours.Status(schedule, now),
		Decision: workinghours.CanOrder(schedule, now),
		Slots:    workinghours.AvailablePickupSlots(schedule, now),
	}, nil
}

var _ RestaurantServiceInterface = (*RestaurantService)(nil)
