package notifications

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Mwangea/RentalApartmentsBackend/handlers/auth"
	"github.com/Mwangea/RentalApartmentsBackend/models"
	"github.com/Mwangea/RentalApartmentsBackend/utils"
)

// GetNotifications lists the caller's notifications, newest first.
func GetNotifications(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return
	}

	var notifications []models.Notification
	if err := utils.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	var unread int64
	if err := utils.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", user.ID, false).
		Count(&unread).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count unread notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"unread_count":  unread,
	})
}

// MarkNotificationRead marks one of the caller's notifications as read.
func MarkNotificationRead(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return
	}

	var notification models.Notification
	if err := utils.DB.Where("id = ? AND user_id = ?", c.Param("id"), user.ID).
		First(&notification).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	if notification.IsRead {
		c.JSON(http.StatusOK, gin.H{"message": "Notification already read"})
		return
	}

	now := time.Now()
	if err := utils.DB.Model(&notification).
		Updates(map[string]interface{}{"is_read": true, "read_at": &now}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// MarkAllNotificationsRead marks every unread notification of the caller.
func MarkAllNotificationsRead(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return
	}

	now := time.Now()
	result := utils.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", user.ID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": &now})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notifications marked as read", "updated": result.RowsAffected})
}

// GetNotificationSettings returns the caller's delivery channel preferences.
func GetNotificationSettings(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"email_notifications": user.EmailNotifications,
		"sms_notifications":   user.SmsNotifications,
		"push_notifications":  user.PushNotifications,
	})
}

type notificationSettingsInput struct {
	EmailNotifications *bool `json:"email_notifications"`
	SmsNotifications   *bool `json:"sms_notifications"`
	PushNotifications  *bool `json:"push_notifications"`
}

// UpdateNotificationSettings toggles the caller's delivery channels. Omitted
// fields keep their current value.
func UpdateNotificationSettings(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return
	}

	var input notificationSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	updates := map[string]interface{}{}
	if input.EmailNotifications != nil {
		updates["email_notifications"] = *input.EmailNotifications
	}
	if input.SmsNotifications != nil {
		updates["sms_notifications"] = *input.SmsNotifications
	}
	if input.PushNotifications != nil {
		updates["push_notifications"] = *input.PushNotifications
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No settings provided"})
		return
	}

	if err := utils.DB.Model(&models.User{}).
		Where("id = ?", user.ID).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification settings updated"})
}
