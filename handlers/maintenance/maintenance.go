package maintenance

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Mwangea/RentalApartmentsBackend/authz"
	"github.com/Mwangea/RentalApartmentsBackend/handlers/auth"
	"github.com/Mwangea/RentalApartmentsBackend/models"
	"github.com/Mwangea/RentalApartmentsBackend/services"
	"github.com/Mwangea/RentalApartmentsBackend/utils"
)

// API wires the maintenance endpoints to the notifier so status changes reach
// the affected tenant or landlord.
type API struct {
	notifier services.Notifier
}

func NewAPI(notifier services.Notifier) *API {
	return &API{notifier: notifier}
}

func (a *API) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/maintenance-requests", a.CreateRequest)
	r.GET("/maintenance-requests", a.GetRequests)
	r.GET("/maintenance-requests/mine", a.GetTenantRequests)
	r.PUT("/maintenance-requests/:id/status", a.UpdateStatus)
	r.DELETE("/maintenance-requests/:id", a.DeleteRequest)
}

type createRequestInput struct {
	PropertyID  uint   `json:"property_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Notes       string `json:"notes"`
}

func (a *API) CreateRequest(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return
	}

	if !authz.Can(authz.ActorFromUser(user), authz.ResourceMaintenance, authz.ActionCreate) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only tenants can create maintenance requests"})
		return
	}

	var input createRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	if input.PropertyID == 0 || input.Title == "" || input.Description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Property, title and description are required"})
		return
	}

	var property models.Property
	if err := utils.DB.First(&property, input.PropertyID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}

	request := models.MaintenanceRequest{
		PropertyID:  input.PropertyID,
		TenantID:    user.ID,
		Title:       input.Title,
		Description: input.Description,
		Status:      models.MaintenanceStatusPending,
		Notes:       input.Notes,
	}

	if err := utils.DB.Create(&request).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create maintenance request"})
		return
	}

	// Tell the landlord about the new request; delivery failure doesn't fail
	// the creation.
	if err := a.notifier.Notify(c.Request.Context(), property.LandlordID,
		"New Maintenance Request",
		"A new maintenance request has been created for property "+property.Address,
		models.NotificationTypeMaintenanceUpdate); err != nil {
		log.Printf("Failed to notify landlord %s: %v", property.LandlordID, err)
	}

	c.JSON(http.StatusCreated, gin.H{"request": request})
}

// GetRequests lists maintenance requests with paging. Admins see everything,
// landlords their portfolio, tenants their own requests.
func (a *API) GetRequests(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return
	}

	if !authz.Can(authz.ActorFromUser(user), authz.ResourceMaintenance, authz.ActionView) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to list maintenance requests"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	query := utils.DB.Model(&models.MaintenanceRequest{})
	switch user.Role {
	case models.RoleAdmin:
	case models.RoleLandlord:
		query = query.
			Joins("JOIN properties ON properties.id = maintenance_requests.property_id").
			Where("properties.landlord_id = ?", user.ID)
	default:
		query = query.Where("maintenance_requests.tenant_id = ?", user.ID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count maintenance requests"})
		return
	}

	var requests []models.MaintenanceRequest
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&requests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch maintenance requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_count": total,
		"page":        page,
		"page_size":   pageSize,
		"requests":    requests,
	})
}

func (a *API) GetTenantRequests(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return
	}

	var requests []models.MaintenanceRequest
	if err := utils.DB.Where("tenant_id = ?", user.ID).
		Order("created_at DESC").Find(&requests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch maintenance requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

func (a *API) UpdateStatus(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return
	}

	if !authz.Can(authz.ActorFromUser(user), authz.ResourceMaintenance, authz.ActionUpdate) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to update maintenance requests"})
		return
	}

	var input struct {
		Status string `json:"status"`
		Notes  string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	switch input.Status {
	case models.MaintenanceStatusPending, models.MaintenanceStatusInProgress,
		models.MaintenanceStatusCompleted, models.MaintenanceStatusCancelled:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status"})
		return
	}

	var request models.MaintenanceRequest
	if err := utils.DB.First(&request, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Maintenance request not found"})
		return
	}

	// Landlords may only touch requests on their own properties.
	if user.Role == models.RoleLandlord {
		var property models.Property
		if err := utils.DB.First(&property, request.PropertyID).Error; err != nil ||
			property.LandlordID != user.ID {
			c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to update this request"})
			return
		}
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":       input.Status,
		"last_updated": &now,
	}
	if input.Notes != "" {
		updates["notes"] = input.Notes
	}
	if input.Status == models.MaintenanceStatusCompleted {
		updates["completed_at"] = &now
	}

	if err := utils.DB.Model(&request).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update maintenance request"})
		return
	}

	if err := a.notifier.Notify(c.Request.Context(), request.TenantID,
		"Maintenance Request Update",
		"Your maintenance request '"+request.Title+"' status has been updated to "+input.Status,
		models.NotificationTypeMaintenanceUpdate); err != nil {
		log.Printf("Failed to notify tenant %s: %v", request.TenantID, err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Maintenance request updated"})
}

func (a *API) DeleteRequest(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return
	}

	if !authz.Can(authz.ActorFromUser(user), authz.ResourceMaintenance, authz.ActionDelete) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only admins can delete maintenance requests"})
		return
	}

	var request models.MaintenanceRequest
	if err := utils.DB.First(&request, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Maintenance request not found"})
		return
	}

	if err := utils.DB.Delete(&request).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete maintenance request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Maintenance request deleted"})
}
