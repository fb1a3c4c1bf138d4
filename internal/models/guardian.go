package models

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Guardian is the authenticated account managing kids and the
// allocation settings.
type Guardian struct {
	DefaultModel
	PhoneNumber string `json:"phoneNumber" gorm:"uniqueIndex"`
	PinHash     string `json:"-"`
}

func (g *Guardian) BeforeSave(_ *gorm.DB) error {
	g.PhoneNumber = strings.TrimSpace(g.PhoneNumber)
	return nil
}

// SetPin hashes the PIN and stores the hash on the guardian.
func (g *Guardian) SetPin(pin string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	g.PinHash = string(hash)
	return nil
}

// CheckPin reports whether the PIN matches the stored hash.
func (g Guardian) CheckPin(pin string) bool {
	return bcrypt.CompareHashAndPassword([]byte(g.PinHash), []byte(pin)) == nil
}

// GuardianByPhoneNumber returns the guardian registered with the phone
// number.
func GuardianByPhoneNumber(phoneNumber string) (Guardian, error) {
	var guardian Guardian
	err := DB.First(&guardian, "phone_number = ?", strings.TrimSpace(phoneNumber)).Error
	return guardian, err
}
