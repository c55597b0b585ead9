package main

import (
	"context"
	"log"
	"time"
	"wellness-availability-service/internal/app/config"
	"wellness-availability-service/internal/app/drivers/database"
	"wellness-availability-service/internal/app/services/core/appointments"
	"wellness-availability-service/internal/app/services/core/blocks"
)

type indexer interface {
	EnsureIndexes(ctx context.Context) error
}

func main() {
	driverConfig := config.NewDriverConfig()
	client := database.NewMongoDB(driverConfig)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	defer client.Disconnect(ctx)

	dbName := driverConfig.MongoDB.DbName
	targets := map[string]indexer{
		"blocks":       blocks.NewBlockMongoRepository(client, dbName).(*blocks.BlockMongoRepository),
		"appointments": appointments.NewAppointmentMongoRepository(client, dbName).(*appointments.AppointmentMongoRepository),
	}

	for name, target := range targets {
		if err := target.EnsureIndexes(ctx); err != nil {
			log.Fatalf("Error ensuring indexes for %s: %v", name, err)
		}
		log.Printf("Ensured indexes for %s", name)
	}
}
