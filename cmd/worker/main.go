package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/BlockCoop-Sacco/block-coop-sacco-sub005/internal/handlers/business"
	"github.com/BlockCoop-Sacco/block-coop-sacco-sub005/internal/models"
	"github.com/BlockCoop-Sacco/block-coop-sacco-sub005/pkg/config"
	"github.com/robfig/cron/v3"

	logrus "github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(logrus.InfoLevel)

	// Initialize database
	config.InitDB()
	if err := business.Bootstrap(config.DB); err != nil {
		logrus.Fatal("Bootstrap failed: ", err)
	}

	// Cron jobs: referral payout retries and staking accrual snapshots
	c := cron.New(cron.WithSeconds())

	if _, err := c.AddFunc("0 */1 * * * *", func() {
		retried, err := business.RetryFailedReferrals(config.DB)
		if err != nil {
			logrus.Errorf("Referral retry run failed: %v", err)
			return
		}
		if retried > 0 {
			logrus.Infof("Retried %d referral payouts", retried)
		}
	}); err != nil {
		logrus.Fatal("Failed to schedule referral retry job: ", err)
	}

	if _, err := c.AddFunc("30 */5 * * * *", func() {
		updated, err := business.SnapshotStakeRewards(config.DB, time.Now())
		if err != nil {
			logrus.Errorf("Stake reward snapshot failed: %v", err)
			return
		}
		if updated > 0 {
			logrus.Infof("Refreshed accrued rewards on %d stakes", updated)
		}
	}); err != nil {
		logrus.Fatal("Failed to schedule stake snapshot job: ", err)
	}

	c.Start()
	defer c.Stop()

	// Without RabbitMQ the worker runs cron only
	if os.Getenv("RABBITMQ_HOST") == "" {
		logrus.Info("RabbitMQ not configured, running scheduled jobs only")
		select {}
	}

	config.InitRabbitMQ()
	defer config.RabbitMQ.Close()

	msgConsumer, err := config.NewConsumer(config.QueueSettlementEvents)
	if err != nil {
		logrus.Fatal("Failed to create consumer: ", err)
	}
	defer msgConsumer.Close()

	logrus.Info("Settlement worker started, waiting for events...")

	// Drain the settlement event queue. This is the notification boundary;
	// delivery targets (dashboards, messaging) hang off here.
	err = msgConsumer.Consume(func(msg []byte) error {
		var event models.SettlementEvent
		if err := json.Unmarshal(msg, &event); err != nil {
			logrus.Errorf("Failed to unmarshal event: %v", err)
			return err
		}

		entry := logrus.WithFields(logrus.Fields{
			"kind":    event.Kind,
			"address": event.Address,
		})
		if event.Level == "warning" {
			entry.Warn("settlement event")
		} else {
			entry.Info("settlement event")
		}
		return nil
	})
	if err != nil {
		logrus.Fatal("Consumer stopped: ", err)
	}
}
