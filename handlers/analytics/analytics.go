package analytics

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Mwangea/RentalApartmentsBackend/authz"
	"github.com/Mwangea/RentalApartmentsBackend/handlers/auth"
	"github.com/Mwangea/RentalApartmentsBackend/models"
	"github.com/Mwangea/RentalApartmentsBackend/utils"
)

func RegisterAnalyticsRoutes(r *gin.RouterGroup) {
	r.POST("/analytics/record", RecordDailyAnalytics)
	r.GET("/analytics", GetAnalytics)
	r.GET("/analytics/me", GetUserSummary)
}

// RecordDailyAnalytics computes and stores today's platform snapshot. Running
// it twice on the same day replaces the earlier snapshot.
func RecordDailyAnalytics(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return
	}

	if !authz.Can(authz.ActorFromUser(user), authz.ResourceAnalytics, authz.ActionCreate) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only admins can record analytics"})
		return
	}

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	snapshot := models.Analytics{Date: dayStart}

	db := utils.DB
	if err := db.Model(&models.Lease{}).
		Where("created_at >= ? AND created_at < ?", dayStart, dayEnd).
		Count(&snapshot.NewLeasesCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute lease metrics"})
		return
	}
	if err := db.Model(&models.Lease{}).
		Where("is_active = ?", true).
		Count(&snapshot.ActiveLeasesCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute lease metrics"})
		return
	}

	if err := db.Model(&models.Payment{}).
		Where("status = ? AND created_at >= ? AND created_at < ?",
			models.PaymentStatusCompleted, dayStart, dayEnd).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&snapshot.TotalPaymentsReceived).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute payment metrics"})
		return
	}
	if err := db.Model(&models.Payment{}).
		Where("status = ? AND created_at >= ? AND created_at < ?",
			models.PaymentStatusCompleted, dayStart, dayEnd).
		Count(&snapshot.SuccessfulPaymentsCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute payment metrics"})
		return
	}
	if err := db.Model(&models.Payment{}).
		Where("status = ? AND created_at >= ? AND created_at < ?",
			models.PaymentStatusFailed, dayStart, dayEnd).
		Count(&snapshot.FailedPaymentsCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute payment metrics"})
		return
	}

	if err := db.Model(&models.MaintenanceRequest{}).
		Where("created_at >= ? AND created_at < ?", dayStart, dayEnd).
		Count(&snapshot.NewMaintenanceRequestsCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute maintenance metrics"})
		return
	}
	if err := db.Model(&models.MaintenanceRequest{}).
		Where("status = ? AND completed_at >= ? AND completed_at < ?",
			models.MaintenanceStatusCompleted, dayStart, dayEnd).
		Count(&snapshot.CompletedMaintenanceRequestsCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute maintenance metrics"})
		return
	}

	if err := db.Model(&models.Property{}).
		Where("is_available = ?", true).
		Count(&snapshot.AvailablePropertiesCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute property metrics"})
		return
	}

	if err := db.Model(&models.Notification{}).
		Where("is_sent = ? AND sent_at >= ? AND sent_at < ?", true, dayStart, dayEnd).
		Count(&snapshot.NotificationsSentCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute notification metrics"})
		return
	}
	if err := db.Model(&models.Notification{}).
		Where("is_read = ?", false).
		Count(&snapshot.UnreadNotificationsCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute notification metrics"})
		return
	}

	// One snapshot per day.
	if err := db.Where("date = ?", dayStart).Delete(&models.Analytics{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store analytics"})
		return
	}
	if err := db.Create(&snapshot).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store analytics"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"analytics": snapshot})
}

// GetAnalytics returns snapshots in a date range, defaulting to the last 30
// days.
func GetAnalytics(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return
	}

	if !authz.Can(authz.ActorFromUser(user), authz.ResourceAnalytics, authz.ActionView) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only admins can view analytics"})
		return
	}

	end := time.Now()
	start := end.AddDate(0, 0, -30)
	if from := c.Query("from"); from != "" {
		parsed, err := time.Parse("2006-01-02", from)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date, expected YYYY-MM-DD"})
			return
		}
		start = parsed
	}
	if to := c.Query("to"); to != "" {
		parsed, err := time.Parse("2006-01-02", to)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date, expected YYYY-MM-DD"})
			return
		}
		end = parsed.AddDate(0, 0, 1)
	}

	var snapshots []models.Analytics
	if err := utils.DB.
		Where("date >= ? AND date < ?", start, end).
		Order("date DESC").Find(&snapshots).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch analytics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"analytics": snapshots})
}

// GetUserSummary returns the caller's own totals: rent paid, active leases and
// open maintenance requests. Available to every role.
func GetUserSummary(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return
	}

	var totalPaid float64
	if err := utils.DB.Model(&models.Payment{}).
		Where("tenant_id = ? AND status = ?", user.ID, models.PaymentStatusCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&totalPaid).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute payment totals"})
		return
	}

	var activeLeases int64
	if err := utils.DB.Model(&models.Lease{}).
		Where("tenant_id = ? AND is_active = ?", user.ID, true).
		Count(&activeLeases).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count leases"})
		return
	}

	var openRequests int64
	if err := utils.DB.Model(&models.MaintenanceRequest{}).
		Where("tenant_id = ? AND status IN ?", user.ID,
			[]string{models.MaintenanceStatusPending, models.MaintenanceStatusInProgress}).
		Count(&openRequests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count maintenance requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_rent_paid":           totalPaid,
		"active_leases":             activeLeases,
		"open_maintenance_requests": openRequests,
	})
}
