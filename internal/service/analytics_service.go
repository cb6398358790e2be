package service

import (
	"context"
	"sort"
	"time"

	"github.com/twnk123/malca-time/internal/domain"
)

type popularItemsCache interface {
	TopItems(ctx context.Context, restaurantID, limit int) (map[int]float64, error)
}

type itemNameLookup interface {
	GetMenuItem(restaurantID, itemID int) (*domain.MenuItem, error)
}

type AnalyticsService struct {
	repo  AnalyticsRepository
	cache popularItemsCache
	menu  itemNameLookup
	now   func() time.Time
}

func NewAnalyticsService(repo AnalyticsRepository, cache popularItemsCache, menu itemNameLookup) *AnalyticsService {
	return &AnalyticsService{repo: repo, cache: cache, menu: menu, now: time.Now}
}

func (s *AnalyticsService) WithClock(now func() time.Time) *AnalyticsService {
	s.now = now
	return s
}

func (s *AnalyticsService) Report(ctx context.Context, restaurantID int) (*domain.AnalyticsReport, error) {
	report := &domain.AnalyticsReport{}
	now := s.now()

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	periods := []struct {
		since   time.Time
		count   *int
		revenue *float64
	}{
		{today, &report.OrdersDaily, &report.RevenueDaily},
		{today.AddDate(0, 0, -7), &report.OrdersWeekly, &report.RevenueWeekly},
		{today.AddDate(0, -1, 0), &report.OrdersMonthly, &report.RevenueMonthly},
	}
	for _, period := range periods {
		count, revenue, err := s.repo.OrderStats(restaurantID, period.since.Format(time.RFC3339))
		if err != nil {
			return nil, err
		}
		*period.count = count
		*period.revenue = revenue
	}

	report.PopularItems = s.popularItems(ctx, restaurantID)

	trends, err := s.repo.OrderTrends(restaurantID, 30)
	if err != nil {
		return nil, err
	}
	report.Trends = trends

	return report, nil
}

// popularItems prefers the Redis counters maintained by the notifier and
// falls back to an aggregate query when they are empty or unavailable.
func (s *AnalyticsService) popularItems(ctx context.Context, restaurantID int) []domain.ItemAnalytics {
	if s.cache != nil {
		if top, err := s.cache.TopItems(ctx, restaurantID, 10); err == nil && len(top) > 0 {
			var items []domain.ItemAnalytics
			for itemID, score := range top {
				menuItem, err := s.menu.GetMenuItem(restaurantID, itemID)
				if err != nil {
					continue
				}
				items = append(items, domain.ItemAnalytics{
					MenuItemID:   itemID,
					ItemName:     menuItem.Name,
					RestaurantID: restaurantID,
					OrderCount:   int(score),
				})
			}
			if len(items) > 0 {
				sort.Slice(items, func(i, j int) bool { return items[i].OrderCount > items[j].OrderCount })
				return items
			}
		}
	}

	items, err := s.repo.PopularItems(restaurantID, 10)
	if err != nil {
		return []domain.ItemAnalytics{}
	}
	return items
}

var _ AnalyticsServiceInterface = (*AnalyticsService)(nil)
