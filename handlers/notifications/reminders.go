package notifications

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Mwangea/RentalApartmentsBackend/authz"
	"github.com/Mwangea/RentalApartmentsBackend/handlers/auth"
	"github.com/Mwangea/RentalApartmentsBackend/models"
	"github.com/Mwangea/RentalApartmentsBackend/services"
)

type rentReminderInput struct {
	UserID    string     `json:"user_id"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	DueDate   *time.Time `json:"due_date"`
	AmountDue float64    `json:"amount_due"`
}

// SendRentReminder lets an admin or landlord push a rent reminder to a tenant.
// Delivery goes through the notifier, so the reminder is persisted and then
// sent over whichever channels the tenant opted into.
func SendRentReminder(notifier services.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := auth.CurrentUser(c)
		if !ok {
			return
		}

		if !authz.Can(authz.ActorFromUser(user), authz.ResourceNotification, authz.ActionCreate) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only admins and landlords can send rent reminders"})
			return
		}

		var input rentReminderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		if input.UserID == "" || input.Message == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A tenant and a message are required"})
			return
		}

		title := input.Title
		if title == "" {
			title = "Rent Reminder"
		}

		message := input.Message
		if input.AmountDue > 0 && input.DueDate != nil {
			message = fmt.Sprintf("%s KES %.2f is due on %s.",
				message, input.AmountDue, input.DueDate.Format("2 Jan 2006"))
		}

		if err := notifier.Notify(c.Request.Context(), input.UserID, title, message,
			models.NotificationTypeRentReminder); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send rent reminder"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Rent reminder sent successfully"})
	}
}
