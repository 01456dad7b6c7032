package notifications

import (
	"github.com/gin-gonic/gin"

	"github.com/Mwangea/RentalApartmentsBackend/services"
)

func RegisterNotificationsRoutes(r *gin.RouterGroup, notifier services.Notifier) {
	r.GET("/notifications", GetNotifications)
	r.PUT("/notifications/:id/read", MarkNotificationRead)
	r.PUT("/notifications/read-all", MarkAllNotificationsRead)
	r.GET("/notification-settings", GetNotificationSettings)
	r.PUT("/notification-settings", UpdateNotificationSettings)
	r.POST("/send-rent-reminder", SendRentReminder(notifier))
}
