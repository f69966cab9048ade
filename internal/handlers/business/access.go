package business

import (
	"errors"
	"fmt"

	"github.com/BlockCoop-Sacco/block-coop-sacco-sub005/internal/models"
	"gorm.io/gorm"
)

// HasCapability reports whether caller holds the named capability. Admin
// implies every other capability.
func HasCapability(db *gorm.DB, caller, name string) (bool, error) {
	if caller == "" {
		return false, nil
	}
	var count int64
	err := db.Model(&models.Capability{}).
		Where("address = ? AND name IN ?", caller, []string{name, models.CapAdmin}).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// RequireCapability returns ErrAccessDenied unless caller holds the named
// capability.
func RequireCapability(db *gorm.DB, caller, name string) error {
	ok, err := HasCapability(db, caller, name)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s requires %s", ErrAccessDenied, caller, name)
	}
	return nil
}

// GrantCapability adds a capability to an address. Only admins may grant.
func GrantCapability(db *gorm.DB, caller, address, name string) error {
	if err := RequireCapability(db, caller, models.CapAdmin); err != nil {
		return err
	}
	cap := models.Capability{Address: address, Name: name}
	if err := db.Where("address = ? AND name = ?", address, name).
		FirstOrCreate(&cap).Error; err != nil {
		return err
	}
	return nil
}

// RevokeCapability removes a capability from an address.
func RevokeCapability(db *gorm.DB, caller, address, name string) error {
	if err := RequireCapability(db, caller, models.CapAdmin); err != nil {
		return err
	}
	res := db.Where("address = ? AND name = ?", address, name).
		Delete(&models.Capability{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("capability not found")
	}
	return nil
}
