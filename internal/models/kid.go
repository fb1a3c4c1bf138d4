package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Kid is a child whose allowance is managed by a guardian.
type Kid struct {
	DefaultModel
	GuardianID uuid.UUID `json:"guardianId"`
	Guardian   Guardian  `json:"-"`
	Name       string    `json:"name"`
	Age        int       `json:"age"`
}

func (k *Kid) BeforeSave(_ *gorm.DB) error {
	k.Name = strings.TrimSpace(k.Name)
	return nil
}

// KidOfGuardian returns the kid only if it is owned by the guardian.
// Unknown IDs and kids of other guardians both read as not found.
func KidOfGuardian(kidID, guardianID uuid.UUID) (Kid, error) {
	var kid Kid
	err := DB.First(&kid, "id = ? AND guardian_id = ?", kidID, guardianID).Error
	return kid, err
}

// DeleteKid soft-deletes a kid.
//
// Deletion is refused while the kid has ledger entries: the ledger is
// append-only and transactions reference the kid, so the history must
// be kept intact.
func DeleteKid(kidID, guardianID uuid.UUID) error {
	kid, err := KidOfGuardian(kidID, guardianID)
	if err != nil {
		return err
	}

	var count int64
	err = DB.Model(&Transaction{}).Where("kid_id = ?", kid.ID).Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return ErrKidHasTransactions
	}

	return DB.Delete(&kid).Error
}
