package seed

import (
	"errors"
	"log"
	"os"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Mwangea/RentalApartmentsBackend/models"
	"github.com/Mwangea/RentalApartmentsBackend/utils"
)

// SeedAdminUser creates the initial admin account if no admin exists yet. The
// credentials come from ADMIN_EMAIL and ADMIN_PASSWORD, with development
// defaults.
func SeedAdminUser() error {
	var existing models.User
	err := utils.DB.Where("role = ?", models.RoleAdmin).First(&existing).Error
	if err == nil {
		log.Println("Admin user already exists. Skipping seeding.")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@rentalapartments.local"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "ChangeMe123!"
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		ID:        uuid.NewString(),
		FirstName: "System",
		LastName:  "Admin",
		Email:     email,
		Password:  string(hashed),
		Role:      models.RoleAdmin,
		Approved:  true,
	}

	if err := utils.DB.Create(&admin).Error; err != nil {
		return err
	}

	log.Println("Admin user seeded successfully.")
	return nil
}
