package properties

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Mwangea/RentalApartmentsBackend/authz"
	"github.com/Mwangea/RentalApartmentsBackend/handlers/auth"
	"github.com/Mwangea/RentalApartmentsBackend/models"
	"github.com/Mwangea/RentalApartmentsBackend/utils"
)

type propertyInput struct {
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	Description   string  `json:"description"`
	RentAmount    float64 `json:"rent_amount"`
	Bedrooms      int     `json:"bedrooms"`
	Bathrooms     int     `json:"bathrooms"`
	SquareFootage float64 `json:"square_footage"`
	IsAvailable   *bool   `json:"is_available"`
	LandlordID    string  `json:"landlord_id"`
}

// GetProperties lists properties. Tenants see available units only; admins
// see everything; landlords see their own portfolio.
func GetProperties(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return
	}

	var properties []models.Property
	query := utils.DB
	switch user.Role {
	case models.RoleAdmin:
	case models.RoleLandlord:
		query = query.Where("landlord_id = ?", user.ID)
	default:
		query = query.Where("is_available = ?", true)
	}

	if err := query.Find(&properties).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch properties"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"properties": properties})
}

func GetProperty(c *gin.Context) {
	var property models.Property
	if err := utils.DB.First(&property, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"property": property})
}

func CreateProperty(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return
	}

	actor := authz.ActorFromUser(user)
	if !authz.Can(actor, authz.ResourceProperty, authz.ActionCreate) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only admins and landlords can add properties"})
		return
	}

	var input propertyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	if input.Name == "" || input.Address == "" || input.RentAmount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name, address and a positive rent amount are required"})
		return
	}

	// Landlords always own what they create; admins may assign an owner.
	landlordID := user.ID
	if user.Role == models.RoleAdmin && input.LandlordID != "" {
		landlordID = input.LandlordID
	}

	available := true
	if input.IsAvailable != nil {
		available = *input.IsAvailable
	}

	property := models.Property{
		LandlordID:    landlordID,
		Name:          input.Name,
		Address:       input.Address,
		Description:   input.Description,
		RentAmount:    input.RentAmount,
		Bedrooms:      input.Bedrooms,
		Bathrooms:     input.Bathrooms,
		SquareFootage: input.SquareFootage,
		IsAvailable:   available,
		Status:        "Vacant",
	}

	if err := utils.DB.Create(&property).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create property"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"property": property})
}

func UpdateProperty(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return
	}

	var property models.Property
	if err := utils.DB.First(&property, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}

	actor := authz.ActorFromUser(user)
	if !authz.Can(actor, authz.ResourceProperty, authz.ActionUpdate) || !authz.Owns(actor, property.LandlordID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to update this property"})
		return
	}

	var input propertyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	now := time.Now()
	property.Name = input.Name
	property.Address = input.Address
	property.Description = input.Description
	property.RentAmount = input.RentAmount
	property.Bedrooms = input.Bedrooms
	property.Bathrooms = input.Bathrooms
	property.SquareFootage = input.SquareFootage
	if input.IsAvailable != nil {
		property.IsAvailable = *input.IsAvailable
	}
	property.LastUpdated = &now

	if err := utils.DB.Save(&property).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update property"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"property": property})
}

func DeleteProperty(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return
	}

	var property models.Property
	if err := utils.DB.First(&property, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}

	actor := authz.ActorFromUser(user)
	if !authz.Can(actor, authz.ResourceProperty, authz.ActionDelete) || !authz.Owns(actor, property.LandlordID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to delete this property"})
		return
	}

	if err := utils.DB.Delete(&property).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete property"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Property deleted"})
}

// UpdateRentAmount changes the asking rent on a property.
func UpdateRentAmount(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return
	}

	var property models.Property
	if err := utils.DB.First(&property, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}

	actor := authz.ActorFromUser(user)
	if !authz.Can(actor, authz.ResourceProperty, authz.ActionUpdate) || !authz.Owns(actor, property.LandlordID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to update this property"})
		return
	}

	var input struct {
		RentAmount float64 `json:"rent_amount"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.RentAmount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A positive rent amount is required"})
		return
	}

	now := time.Now()
	if err := utils.DB.Model(&property).
		Updates(map[string]interface{}{"rent_amount": input.RentAmount, "last_updated": &now}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update rent amount"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Rent amount updated"})
}

// SelectProperty lets a tenant express interest in an available unit.
func SelectProperty(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return
	}

	if user.Role != models.RoleTenant {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only tenants can select properties"})
		return
	}

	var property models.Property
	if err := utils.DB.First(&property, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}

	if !property.IsAvailable {
		c.JSON(http.StatusConflict, gin.H{"error": "Property is not available"})
		return
	}

	now := time.Now()
	if err := utils.DB.Model(&property).Updates(map[string]interface{}{
		"status":            "Selected",
		"current_tenant_id": user.ID,
		"last_updated":      &now,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to select property"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Property selected"})
}
