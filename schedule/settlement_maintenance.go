package main

import (
	"os"
	"time"

	"github.com/BlockCoop-Sacco/block-coop-sacco-sub005/internal/handlers/business"
	dbconfig "github.com/BlockCoop-Sacco/block-coop-sacco-sub005/pkg/config"

	"github.com/robfig/cron/v3"
	logger "github.com/sirupsen/logrus"
)

// RunReferralRetries retries deferred referral payouts once
func RunReferralRetries() error {
	logger.Info("> Running referral payout retries")
	retried, err := business.RetryFailedReferrals(dbconfig.DB)
	if err != nil {
		logger.Errorf("> Referral retry failed: %v", err)
		return err
	}
	logger.Infof("> Retried %d referral payouts", retried)
	return nil
}

// RunStakeSnapshots refreshes accrued-reward snapshots once
func RunStakeSnapshots() error {
	logger.Info("> Running stake reward snapshots")
	updated, err := business.SnapshotStakeRewards(dbconfig.DB, time.Now())
	if err != nil {
		logger.Errorf("> Stake snapshot failed: %v", err)
		return err
	}
	logger.Infof("> Refreshed %d stakes", updated)
	return nil
}

func main() {
	os.MkdirAll("logs", 0755)
	file, err := os.OpenFile("logs/settlement_maintenance.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	logger.SetFormatter(&logger.TextFormatter{FullTimestamp: true})
	logger.SetLevel(logger.InfoLevel)
	if err == nil {
		logger.SetOutput(file)
		defer file.Close()
	}

	dbconfig.InitDB()

	// One immediate pass, then on schedule
	RunReferralRetries()
	RunStakeSnapshots()

	c := cron.New(cron.WithSeconds())
	c.AddFunc("0 */1 * * * *", func() { RunReferralRetries() })
	c.AddFunc("30 */5 * * * *", func() { RunStakeSnapshots() })
	c.Start()

	select {}
}
