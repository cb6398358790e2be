package main

import (
	"context"
	"time"

	"github.com/twnk123/malca-time/internal/config"
	"github.com/twnk123/malca-time/internal/mailer"
	"github.com/twnk123/malca-time/internal/notifier"
	"github.com/twnk123/malca-time/internal/storage"
)

func main() {
	db := config.MustInitPostgres()
	defer db.Close()

	rdb := config.MustInitRedis()

	reader := config.NewKafkaReader("orders", "order-notifier")
	defer reader.Close()

	repo := storage.NewPostgresRepository(db)
	analyticsCache := storage.NewAnalyticsCache(rdb, 48*time.Hour)
	sender := mailer.NewSMTPSender(config.SMTPFromEnv())

	consumer := notifier.NewConsumer(reader, repo, sender, analyticsCache)
	consumer.Start(context.Background())
}
