package analytics

import (
	"sort"
	"sync"
	"time"

	"github.com/lleukocyte/travel-guide/model"
)

const (
	maxEventsToKeep  = 10000 // Keep last 10k events for performance
	recentEventCount = 20
	topCityCount     = 5
)

// Service tracks ranking requests in memory and summarizes them.
type Service struct {
	mutex  sync.RWMutex
	events []model.RankingEvent
	now    func() time.Time
}

// NewService creates an empty analytics service
func NewService() *Service {
	return &Service{
		events: make([]model.RankingEvent, 0),
		now:    time.Now,
	}
}

// TrackRankingEvent records one listing request
func (s *Service) TrackRankingEvent(event model.RankingEvent) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	s.events = append(s.events, event)

	// Keep only the latest events to prevent unbounded growth
	if len(s.events) > maxEventsToKeep {
		s.events = s.events[len(s.events)-maxEventsToKeep:]
	}
}

// GetDashboardData summarizes the events of the last 24 hours
func (s *Service) GetDashboardData() model.AnalyticsDashboard {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	last24h := s.filterEventsByTime(s.events, s.now().Add(-24*time.Hour))

	return model.AnalyticsDashboard{
		TotalListings:            len(last24h),
		AvgResponseTimeMicros:    calculateAvgResponseTime(last24h),
		AvgScoredPerListing:      calculateAvgScored(last24h),
		Strategies:               getStrategyStats(last24h),
		TopCities:                getTopCities(last24h),
		ResponseTimeDistribution: getResponseTimeDistribution(last24h),
		RecentEvents:             s.recentEvents(),
	}
}

// filterEventsByTime returns events after the given time
func (s *Service) filterEventsByTime(events []model.RankingEvent, after time.Time) []model.RankingEvent {
	filtered := make([]model.RankingEvent, 0, len(events))
	for _, event := range events {
		if event.Timestamp.After(after) {
			filtered = append(filtered, event)
		}
	}
	return filtered
}

// recentEvents returns the newest events first
func (s *Service) recentEvents() []model.RankingEvent {
	n := recentEventCount
	if len(s.events) < n {
		n = len(s.events)
	}
	recent := make([]model.RankingEvent, 0, n)
	for i := len(s.events) - 1; i >= len(s.events)-n; i-- {
		recent = append(recent, s.events[i])
	}
	return recent
}

func calculateAvgResponseTime(events []model.RankingEvent) int64 {
	if len(events) == 0 {
		return 0
	}

	var total time.Duration
	for _, event := range events {
		total += event.ResponseTime
	}
	return (total / time.Duration(len(events))).Microseconds()
}

func calculateAvgScored(events []model.RankingEvent) float64 {
	if len(events) == 0 {
		return 0
	}

	total := 0
	for _, event := range events {
		total += event.ScoredCount
	}
	return float64(total) / float64(len(events))
}

func getStrategyStats(events []model.RankingEvent) model.StrategyStats {
	stats := model.StrategyStats{}
	for _, event := range events {
		switch event.Strategy {
		case "personalized":
			stats.Personalized++
		case "popularity":
			stats.Popularity++
		}
	}
	return stats
}

// getTopCities returns the most listed city filters; unfiltered listings are skipped
func getTopCities(events []model.RankingEvent) []model.CityStats {
	counts := make(map[string]int)
	for _, event := range events {
		if event.City != "" {
			counts[event.City]++
		}
	}

	cities := make([]model.CityStats, 0, len(counts))
	for city, count := range counts {
		cities = append(cities, model.CityStats{City: city, ListingCount: count})
	}

	sort.Slice(cities, func(i, j int) bool {
		if cities[i].ListingCount != cities[j].ListingCount {
			return cities[i].ListingCount > cities[j].ListingCount
		}
		return cities[i].City < cities[j].City
	})

	if len(cities) > topCityCount {
		cities = cities[:topCityCount]
	}
	return cities
}

func getResponseTimeDistribution(events []model.RankingEvent) model.ResponseTimeDistribution {
	dist := model.ResponseTimeDistribution{}
	for _, event := range events {
		ms := event.ResponseTime.Milliseconds()
		switch {
		case ms < 5:
			dist.Bucket0To5ms++
		case ms < 25:
			dist.Bucket5To25ms++
		case ms < 100:
			dist.Bucket25To100ms++
		default:
			dist.Bucket100msPlus++
		}
	}
	return dist
}
