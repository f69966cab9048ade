package business

import (
	"errors"
	"fmt"

	"github.com/BlockCoop-Sacco/block-coop-sacco-sub005/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockedBalance loads one (address, asset) ledger row under FOR UPDATE,
// creating a zero row if the account has never held the asset. The row lock
// is the single serialization point for that balance within the transaction.
func lockedBalance(tx *gorm.DB, address, asset string) (*models.Balance, error) {
	var b models.Balance
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("address = ? AND asset = ?", address, asset).
		First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		b = models.Balance{Address: address, Asset: asset, Amount: decimal.Zero}
		if err := tx.Create(&b).Error; err != nil {
			return nil, err
		}
		return &b, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// CreditBalance adds amount to the (address, asset) ledger entry.
func CreditBalance(tx *gorm.DB, address, asset string, amount decimal.Decimal) error {
	if amount.Sign() < 0 {
		return fmt.Errorf("%w: negative credit", ErrOverflow)
	}
	if amount.Sign() == 0 {
		return nil
	}
	b, err := lockedBalance(tx, address, asset)
	if err != nil {
		return err
	}
	b.Amount = b.Amount.Add(amount)
	return tx.Model(b).Update("amount", b.Amount).Error
}

// DebitBalance subtracts amount from the (address, asset) ledger entry,
// failing with ErrInsufficientFunds before any mutation if the balance does
// not cover it.
func DebitBalance(tx *gorm.DB, address, asset string, amount decimal.Decimal) error {
	if amount.Sign() < 0 {
		return fmt.Errorf("%w: negative debit", ErrOverflow)
	}
	if amount.Sign() == 0 {
		return nil
	}
	b, err := lockedBalance(tx, address, asset)
	if err != nil {
		return err
	}
	if b.Amount.LessThan(amount) {
		return fmt.Errorf("%w: %s has %s %s, needs %s", ErrInsufficientFunds, address, b.Amount, asset, amount)
	}
	b.Amount = b.Amount.Sub(amount)
	return tx.Model(b).Update("amount", b.Amount).Error
}

// TransferBalance moves amount between two addresses on the same asset
// ledger.
func TransferBalance(tx *gorm.DB, from, to, asset string, amount decimal.Decimal) error {
	if err := DebitBalance(tx, from, asset, amount); err != nil {
		return err
	}
	return CreditBalance(tx, to, asset, amount)
}

// GetBalance reads a balance without locking. Missing rows read as zero.
func GetBalance(db *gorm.DB, address, asset string) (decimal.Decimal, error) {
	var b models.Balance
	err := db.Where("address = ? AND asset = ?", address, asset).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	return b.Amount, nil
}

// LockedGlobalParams loads the singleton parameter row under FOR UPDATE so
// supply and treasury mutations have a single writer.
func LockedGlobalParams(tx *gorm.DB) (*models.GlobalParams, error) {
	var gp models.GlobalParams
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&gp, 1).Error
	if err != nil {
		return nil, fmt.Errorf("load global params: %w", err)
	}
	return &gp, nil
}

// GlobalParams loads the singleton parameter row read-only.
func GetGlobalParams(db *gorm.DB) (*models.GlobalParams, error) {
	var gp models.GlobalParams
	if err := db.First(&gp, 1).Error; err != nil {
		return nil, fmt.Errorf("load global params: %w", err)
	}
	return &gp, nil
}

// mintShares issues new share tokens to an address and grows circulating
// supply. The caller persists gp at the end of its unit of work.
func mintShares(tx *gorm.DB, gp *models.GlobalParams, to string, amount decimal.Decimal) error {
	if amount.Sign() == 0 {
		return nil
	}
	if err := CreditBalance(tx, to, models.AssetShare, amount); err != nil {
		return err
	}
	gp.CirculatingSupply = gp.CirculatingSupply.Add(amount)
	return nil
}
