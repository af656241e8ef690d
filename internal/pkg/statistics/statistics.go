package statistics

import (
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/mindspark-labs/localpages/app/models"
	"github.com/mindspark-labs/localpages/internal/pkg/cache"
	"github.com/mindspark-labs/localpages/internal/pkg/database"
)

const (
	CacheKeyOrgsActive     = "statistics:organizations:active"
	CacheKeyLeadsTotal     = "statistics:leads:total"
	CacheKeyPageViewsDaily = "statistics:pageviews:daily:%s" // Format with date YYYY-MM-DD
	CacheExpiration        = 30 * time.Minute
)

// StatisticsData holds the aggregate counts shown on the admin dashboard
type StatisticsData struct {
	ActiveOrganizations int `json:"active_organizations"`
	TotalLeads          int `json:"total_leads"`
	TodayPageViews      int `json:"today_page_views"`
}

var (
	lastCacheUpdate     time.Time
	cacheUpdateMutex    sync.Mutex
	cacheUpdateInterval = 5 * time.Minute
)

// ShouldUpdateCache reports whether the refresh interval has elapsed
func ShouldUpdateCache() bool {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	return time.Since(lastCacheUpdate) > cacheUpdateInterval
}

// UpdateCacheIfNeeded refreshes the cached counts when the interval elapsed
func UpdateCacheIfNeeded() {
	if ShouldUpdateCache() {
		cacheUpdateMutex.Lock()
		defer cacheUpdateMutex.Unlock()

		if err := UpdateStatisticsCache(); err != nil {
			log.Printf("Error refreshing statistics cache: %v", err)
		} else {
			lastCacheUpdate = time.Now()
		}
	}
}

// ResetCacheUpdateTimer forces the next UpdateCacheIfNeeded to refresh
func ResetCacheUpdateTimer() {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	lastCacheUpdate = time.Time{}
}

// UpdateStatisticsCache recomputes all directory statistics and stores them in the cache
func UpdateStatisticsCache() error {
	db := database.GetDB()

	var activeOrgs int64
	if err := db.Model(&models.Organization{}).Where("status = ?", models.OrgStatusActive).Count(&activeOrgs).Error; err != nil {
		log.Printf("Error counting active organizations: %v", err)
		return err
	}

	var totalLeads int64
	if err := db.Model(&models.Lead{}).Count(&totalLeads).Error; err != nil {
		log.Printf("Error counting leads: %v", err)
		return err
	}

	var todayViews int64
	today := time.Now().Format("2006-01-02")
	todayStart, _ := time.Parse("2006-01-02", today)
	todayEnd := todayStart.Add(24 * time.Hour)

	if err := db.Model(&models.PageView{}).Where("created_at BETWEEN ? AND ?", todayStart, todayEnd).Count(&todayViews).Error; err != nil {
		log.Printf("Error counting today's page views: %v", err)
		return err
	}

	if err := cache.Set(CacheKeyOrgsActive, strconv.FormatInt(activeOrgs, 10), CacheExpiration); err != nil {
		log.Printf("Error caching active organizations: %v", err)
		return err
	}
	if err := cache.Set(CacheKeyLeadsTotal, strconv.FormatInt(totalLeads, 10), CacheExpiration); err != nil {
		log.Printf("Error caching total leads: %v", err)
		return err
	}
	dailyKey := fmt.Sprintf(CacheKeyPageViewsDaily, today)
	if err := cache.Set(dailyKey, strconv.FormatInt(todayViews, 10), CacheExpiration); err != nil {
		log.Printf("Error caching today's page views: %v", err)
		return err
	}

	return nil
}

// GetActiveOrganizations returns the active listing count from cache or database
func GetActiveOrganizations() int {
	val, err := cache.Get(CacheKeyOrgsActive)
	if err != nil {
		var count int64
		db := database.GetDB()
		if err := db.Model(&models.Organization{}).Where("status = ?", models.OrgStatusActive).Count(&count).Error; err != nil {
			log.Printf("Error counting active organizations: %v", err)
			return 0
		}

		if err := cache.Set(CacheKeyOrgsActive, strconv.FormatInt(count, 10), CacheExpiration); err != nil {
			log.Printf("Error caching active organizations: %v", err)
		}

		return int(count)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}
	return int(count)
}

// GetTotalLeads returns the all-time lead count from cache or database
func GetTotalLeads() int {
	val, err := cache.Get(CacheKeyLeadsTotal)
	if err != nil {
		var count int64
		db := database.GetDB()
		if err := db.Model(&models.Lead{}).Count(&count).Error; err != nil {
			log.Printf("Error counting leads: %v", err)
			return 0
		}

		if err := cache.Set(CacheKeyLeadsTotal, strconv.FormatInt(count, 10), CacheExpiration); err != nil {
			log.Printf("Error caching total leads: %v", err)
		}

		return int(count)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}
	return int(count)
}

// GetTodayPageViews returns today's page view count from cache or database
func GetTodayPageViews() int {
	today := time.Now().Format("2006-01-02")
	dailyKey := fmt.Sprintf(CacheKeyPageViewsDaily, today)

	val, err := cache.Get(dailyKey)
	if err != nil {
		var count int64
		db := database.GetDB()
		todayStart, _ := time.Parse("2006-01-02", today)
		todayEnd := todayStart.Add(24 * time.Hour)

		if err := db.Model(&models.PageView{}).Where("created_at BETWEEN ? AND ?", todayStart, todayEnd).Count(&count).Error; err != nil {
			log.Printf("Error counting today's page views: %v", err)
			return 0
		}

		if err := cache.Set(dailyKey, strconv.FormatInt(count, 10), CacheExpiration); err != nil {
			log.Printf("Error caching today's page views: %v", err)
		}

		return int(count)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}
	return int(count)
}

// GetStatistics returns the dashboard aggregates, refreshing the cache if stale
func GetStatistics() StatisticsData {
	UpdateCacheIfNeeded()
	return StatisticsData{
		ActiveOrganizations: GetActiveOrganizations(),
		TotalLeads:          GetTotalLeads(),
		TodayPageViews:      GetTodayPageViews(),
	}
}
