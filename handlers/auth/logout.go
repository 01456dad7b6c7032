package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mwangea/RentalApartmentsBackend/models"
	"github.com/Mwangea/RentalApartmentsBackend/utils"
)

// Logout handles user sign-out
func Logout(c *gin.Context) {
	// JWT tokens are stateless; without a token blacklist there is nothing to
	// invalidate server-side, so just acknowledge.
	c.JSON(http.StatusOK, gin.H{
		"message": "Logout successful.",
	})
}

// SavePushToken stores the caller's Expo push token for push notifications.
func SavePushToken(c *gin.Context) {
	var req struct {
		PushToken string `json:"push_token"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	user, ok := CurrentUser(c)
	if !ok {
		return
	}

	if err := utils.DB.Model(&models.User{}).Where("id = ?", user.ID).
		Update("push_token", req.PushToken).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save push token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Push token saved"})
}
