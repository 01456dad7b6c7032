package leases

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Mwangea/RentalApartmentsBackend/authz"
	"github.com/Mwangea/RentalApartmentsBackend/handlers/auth"
	"github.com/Mwangea/RentalApartmentsBackend/models"
	"github.com/Mwangea/RentalApartmentsBackend/utils"
)

type createLeaseInput struct {
	PropertyID      uint      `json:"property_id"`
	TenantID        string    `json:"tenant_id"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	MonthlyRent     float64   `json:"monthly_rent"`
	SecurityDeposit float64   `json:"security_deposit"`
	LeaseTerms      string    `json:"lease_terms"`
}

func CreateLease(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return
	}

	actor := authz.ActorFromUser(user)
	if !authz.Can(actor, authz.ResourceLease, authz.ActionCreate) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to create a lease"})
		return
	}

	var input createLeaseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	if input.PropertyID == 0 || input.TenantID == "" || input.MonthlyRent <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Property, tenant and a positive monthly rent are required"})
		return
	}
	if !input.EndDate.After(input.StartDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "End date must be after the start date"})
		return
	}

	var property models.Property
	if err := utils.DB.First(&property, input.PropertyID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}

	// Landlords may only lease out their own properties.
	if !authz.Owns(actor, property.LandlordID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only create leases for your own properties"})
		return
	}

	lease := models.Lease{
		PropertyID:      input.PropertyID,
		TenantID:        input.TenantID,
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
		MonthlyRent:     input.MonthlyRent,
		SecurityDeposit: input.SecurityDeposit,
		LeaseTerms:      input.LeaseTerms,
		IsActive:        true,
	}

	if err := utils.DB.Create(&lease).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create lease"})
		return
	}

	// The unit now has a tenant.
	now := time.Now()
	if err := utils.DB.Model(&property).Updates(map[string]interface{}{
		"is_available":      false,
		"status":            "Occupied",
		"current_tenant_id": input.TenantID,
		"last_updated":      &now,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lease created but failed to update property"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"lease": lease})
}

func GetLease(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return
	}

	var lease models.Lease
	if err := utils.DB.First(&lease, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lease not found"})
		return
	}

	var property models.Property
	if err := utils.DB.First(&property, lease.PropertyID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch lease property"})
		return
	}

	// Admins, the lease tenant and the property landlord may view.
	actor := authz.ActorFromUser(user)
	if !authz.Owns(actor, lease.TenantID) && !authz.Owns(actor, property.LandlordID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to view this lease"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"lease": lease, "property": property})
}

// GetLeases lists all leases (admin) or the landlord's portfolio leases.
func GetLeases(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return
	}

	var leases []models.Lease
	switch user.Role {
	case models.RoleAdmin:
		if err := utils.DB.Find(&leases).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leases"})
			return
		}
	case models.RoleLandlord:
		err := utils.DB.
			Joins("JOIN properties ON properties.id = leases.property_id").
			Where("properties.landlord_id = ?", user.ID).
			Find(&leases).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leases"})
			return
		}
	default:
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to list leases"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"leases": leases})
}

// GetMyLeases lists the calling tenant's leases.
func GetMyLeases(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return
	}

	var leases []models.Lease
	if err := utils.DB.Where("tenant_id = ?", user.ID).Find(&leases).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leases"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"leases": leases})
}
