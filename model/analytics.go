package model

import "time"

// RankingEvent records one place-listing request for analytics tracking
type RankingEvent struct {
	City          string        `json:"city,omitempty"`
	Strategy      string        `json:"strategy"` // "personalized" or "popularity"
	FavoriteCount int           `json:"favorite_count"`
	ScoredCount   int           `json:"scored_count"`
	ResultCount   int           `json:"result_count"`
	ResponseTime  time.Duration `json:"response_time"`
	Timestamp     time.Time     `json:"timestamp"`
}

// StrategyStats counts listings per ranking strategy
type StrategyStats struct {
	Personalized int `json:"personalized"`
	Popularity   int `json:"popularity"`
}

// CityStats represents listing counts for a city filter
type CityStats struct {
	City         string `json:"city"`
	ListingCount int    `json:"listing_count"`
}

// ResponseTimeDistribution represents response time distribution buckets
type ResponseTimeDistribution struct {
	Bucket0To5ms    int `json:"bucket_0_5ms"`
	Bucket5To25ms   int `json:"bucket_5_25ms"`
	Bucket25To100ms int `json:"bucket_25_100ms"`
	Bucket100msPlus int `json:"bucket_100ms_plus"`
}

// AnalyticsDashboard represents the ranking analytics summary
type AnalyticsDashboard struct {
	TotalListings            int                      `json:"total_listings"`
	AvgResponseTimeMicros    int64                    `json:"avg_response_time_us"`
	AvgScoredPerListing      float64                  `json:"avg_scored_per_listing"`
	Strategies               StrategyStats            `json:"strategies"`
	TopCities                []CityStats              `json:"top_cities"`
	ResponseTimeDistribution ResponseTimeDistribution `json:"response_time_distribution"`
	RecentEvents             []RankingEvent           `json:"recent_events"`
}
