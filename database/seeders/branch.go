package seeders

import (
	"errors"

	"github.com/beshgebeya/pos/app/models"
	"github.com/beshgebeya/pos/config"
	"gorm.io/gorm"
)

func init() {
	Register("main-branch", MainBranch)
}

// MainBranch creates the default branch when it does not exist yet.
func MainBranch(db *gorm.DB) error {
	id := config.DefaultBranchID()

	var b models.Branch
	err := db.First(&b, id).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	b = models.Branch{
		Name:     "Main Branch",
		Location: "Addis Ababa",
		Phone:    "+251911234567",
	}
	b.ID = id
	return db.Create(&b).Error
}
