package main

import (
	"log"
	"net/http"

	"suplementi-be/internal/config"
	"suplementi-be/internal/db"
	"suplementi-be/internal/logger"
	"suplementi-be/internal/order"
	"suplementi-be/internal/product"
	"suplementi-be/internal/server"
	"suplementi-be/internal/user"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo)

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo, user.LogMailer{})

	router := server.NewRouter(orderSvc, productSvc, userSvc)

	log.Printf("🚀 Admin API running at http://localhost:%s/", cfg.AppPort)
	log.Fatal(http.ListenAndServe(":"+cfg.AppPort, router))
}
