package business

import (
	"errors"

	"github.com/BlockCoop-Sacco/block-coop-sacco-sub005/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Well-known bucket keys. Buckets are keyed free-form; these are the ones the
// core consults itself.
const (
	TaxBucketTransferBuy  = "transfer_buy"
	TaxBucketTransferSell = "transfer_sell"
)

// SetTaxBucket creates or updates a named fee bucket. Fee-manager capability
// required.
func SetTaxBucket(db *gorm.DB, caller, key string, rateBps uint, recipient string) error {
	if err := RequireCapability(db, caller, models.CapFeeManager); err != nil {
		return err
	}
	if key == "" {
		return validationf("bucket key must not be empty")
	}
	if rateBps > BpsDenominator {
		return validationf("rate %d exceeds %d bps", rateBps, BpsDenominator)
	}
	if recipient == "" {
		return validationf("bucket recipient must not be empty")
	}

	bucket := models.TaxBucket{Key: key}
	if err := db.Where("key = ?", key).FirstOrCreate(&bucket).Error; err != nil {
		return err
	}
	bucket.RateBps = rateBps
	bucket.RecipientAddress = recipient
	return db.Save(&bucket).Error
}

// QuoteTax returns (fee, net) for a transfer through the named bucket. An
// unknown key quotes as untaxed; fees floor-divide.
func QuoteTax(db *gorm.DB, key string, amount decimal.Decimal) (fee, net decimal.Decimal, err error) {
	var bucket models.TaxBucket
	qerr := db.Where("key = ?", key).First(&bucket).Error
	if errors.Is(qerr, gorm.ErrRecordNotFound) {
		return decimal.Zero, amount, nil
	}
	if qerr != nil {
		return decimal.Zero, decimal.Zero, qerr
	}
	fee = BpsShare(amount, bucket.RateBps)
	return fee, amount.Sub(fee), nil
}

// TaxedTransfer moves share tokens from one account to another, routing the
// bucket fee to the bucket recipient. Transfers touching the treasury are
// exempt so protocol flows are never taxed against themselves.
func TaxedTransfer(tx *gorm.DB, treasury, from, to, bucketKey string, amount decimal.Decimal) (fee decimal.Decimal, err error) {
	if amount.Sign() <= 0 {
		return decimal.Zero, validationf("transfer amount must be positive")
	}
	if from == treasury || to == treasury {
		return decimal.Zero, TransferBalance(tx, from, to, models.AssetShare, amount)
	}

	var bucket models.TaxBucket
	qerr := tx.Where("key = ?", bucketKey).First(&bucket).Error
	if qerr != nil && !errors.Is(qerr, gorm.ErrRecordNotFound) {
		return decimal.Zero, qerr
	}
	fee = decimal.Zero
	if qerr == nil {
		fee = BpsShare(amount, bucket.RateBps)
	}

	if err := DebitBalance(tx, from, models.AssetShare, amount); err != nil {
		return decimal.Zero, err
	}
	if err := CreditBalance(tx, to, models.AssetShare, amount.Sub(fee)); err != nil {
		return decimal.Zero, err
	}
	if fee.Sign() > 0 {
		if err := CreditBalance(tx, bucket.RecipientAddress, models.AssetShare, fee); err != nil {
			return decimal.Zero, err
		}
	}
	return fee, nil
}
