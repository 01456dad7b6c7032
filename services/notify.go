package services

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/Mwangea/RentalApartmentsBackend/models"
	"github.com/Mwangea/RentalApartmentsBackend/utils"
)

const expoPushURL = "https://exp.host/--/api/v2/push/send"

// NotificationService persists notifications and delivers them best-effort
// over the channels each user opted into (email, SMS, Expo push). Channel
// failures are logged and never returned: the notification row is the source
// of truth, delivery is advisory.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

func (s *NotificationService) Notify(ctx context.Context, userID, title, message, kind string) error {
	notification := models.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    kind,
	}
	if err := s.db.WithContext(ctx).Create(&notification).Error; err != nil {
		return err
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		log.Printf("Failed to find user %s for notification delivery: %v", userID, err)
		return nil
	}

	delivered := false

	if user.EmailNotifications && user.Email != "" {
		utils.SendNotificationEmail(user.Email, title, message)
		delivered = true
	}

	if user.SmsNotifications && user.PhoneNumber != "" {
		utils.SendSms(user.PhoneNumber, message)
		delivered = true
	}

	if user.PushNotifications && user.PushToken != "" {
		sendPushNotification(user.PushToken, title, message)
		delivered = true
	}

	if delivered {
		now := time.Now()
		if err := s.db.WithContext(ctx).Model(&notification).
			Updates(map[string]interface{}{"is_sent": true, "sent_at": &now}).Error; err != nil {
			log.Printf("Failed to mark notification %d as sent: %v", notification.ID, err)
		}
	}

	return nil
}

func sendPushNotification(pushToken, title, message string) {
	payload, err := json.Marshal(map[string]interface{}{
		"to":    pushToken,
		"sound": "default",
		"title": title,
		"body":  message,
	})
	if err != nil {
		log.Printf("Failed to marshal push notification payload: %v", err)
		return
	}

	resp, err := http.Post(expoPushURL, "application/json", bytes.NewBuffer(payload))
	if err != nil {
		log.Printf("Failed to send push notification: %v", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Failed to send push notification, status: %d", resp.StatusCode)
	}
}
