package main

import (
	"log"
	"os"
	"time"

	"github.com/twnk123/malca-time/internal/api/http"
	"github.com/twnk123/malca-time/internal/config"
	"github.com/twnk123/malca-time/internal/service"
	"github.com/twnk123/malca-time/internal/storage"
)

func main() {
	db := config.MustInitPostgres()
	defer db.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	rdb := config.MustInitRedis()
	analyticsCache := storage.NewAnalyticsCache(rdb, 48*time.Hour)

	kafkaWriter := config.NewKafkaWriter("orders")
	defer kafkaWriter.Close()
	publisher := storage.NewKafkaPublisher(kafkaWriter)

	baseURL := os.Getenv("PUBLIC_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost"
	}

	restaurantSvc := service.NewRestaurantService(repo)
	menuSvc := service.NewMenuService(repo, repo)
	discountSvc := service.NewDiscountService(repo)
	orderSvc := service.NewOrderService(repo, repo, repo, repo, publisher, service.DefaultQRGenerator{BaseURL: baseURL})
	analyticsSvc := service.NewAnalyticsService(repo, analyticsCache, repo)

	handler := httpapi.NewHandler(restaurantSvc, menuSvc, discountSvc, orderSvc, analyticsSvc)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	httpapi.StartServer(":"+port, httpapi.NewRouter(handler))
}
