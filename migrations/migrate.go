package migrations

import (
	"github.com/Mwangea/RentalApartmentsBackend/models"
	"github.com/Mwangea/RentalApartmentsBackend/utils"
)

func MigrateUsers() {
	utils.DB.AutoMigrate(&models.User{})
}

func MigrateProperties() {
	utils.DB.AutoMigrate(&models.Property{})
	utils.DB.AutoMigrate(&models.Lease{})
}

func MigratePayments() {
	utils.DB.AutoMigrate(&models.Payment{})
}

func MigrateMaintenance() {
	utils.DB.AutoMigrate(&models.MaintenanceRequest{})
}

func MigrateNotifications() {
	utils.DB.AutoMigrate(&models.Notification{})
}

func MigrateAnalytics() {
	utils.DB.AutoMigrate(&models.Analytics{})
}
