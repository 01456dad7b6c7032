package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mwangea/RentalApartmentsBackend/authz"
	"github.com/Mwangea/RentalApartmentsBackend/models"
	"github.com/Mwangea/RentalApartmentsBackend/utils"
)

// ApproveLandlord lifts the approval hold on a landlord account.
func ApproveLandlord(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		return
	}

	if !authz.Can(authz.ActorFromUser(user), authz.ResourceUser, authz.ActionUpdate) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only admins can approve registrations"})
		return
	}

	var landlord models.User
	if err := utils.DB.First(&landlord, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if landlord.Role != models.RoleLandlord {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only landlord accounts require approval"})
		return
	}

	if err := utils.DB.Model(&landlord).Update("approved", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User approved successfully."})
}

// GetPendingLandlords lists landlord accounts awaiting approval.
func GetPendingLandlords(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		return
	}

	if !authz.Can(authz.ActorFromUser(user), authz.ResourceUser, authz.ActionView) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only admins can view pending registrations"})
		return
	}

	var landlords []models.User
	if err := utils.DB.Where("role = ? AND approved = ?", models.RoleLandlord, false).Find(&landlords).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pending landlords"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"landlords": landlords})
}

// GetUsersByRole lists all tenants or landlords for the admin dashboard.
func GetUsersByRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			return
		}

		if !authz.Can(authz.ActorFromUser(user), authz.ResourceUser, authz.ActionView) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only admins can list users"})
			return
		}

		var users []models.User
		query := utils.DB.Where("role = ?", role)
		if role == models.RoleLandlord {
			query = query.Where("approved = ?", true)
		}
		if err := query.Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"users": users})
	}
}
