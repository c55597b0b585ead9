package config

import (
	"context"
	"log"

	"github.com/go-chi/chi/v5"
	"github.com/minio/minio-go/v7"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Bootstrap struct {
	Router         *chi.Mux
	MongoDB        *mongo.Client
	Redis          *redis.Client
	RabbitMQ       *amqp091.Connection
	Minio          *minio.Client
	Logger         *zap.Logger
	Registry       *prometheus.Registry
	InternalConfig *InternalConfig
	DriverConfig   *DriverConfig
	// ConsumerStop and HousekeepingStop are called during Shutdown, before
	// the connections they depend on are closed.
	ConsumerStop     func()
	HousekeepingStop func()
}

func (b *Bootstrap) Shutdown(ctx context.Context) error {
	if b.ConsumerStop != nil {
		b.ConsumerStop()
		log.Println("Successfully stopped calendar sync consumer")
	}

	if b.HousekeepingStop != nil {
		b.HousekeepingStop()
		log.Println("Successfully stopped housekeeping worker")
	}

	err := b.RabbitMQ.Close()
	if err != nil {
		return err
	}
	log.Println("Successfully closing RabbitMQ")

	err = b.Redis.Close()
	if err != nil {
		return err
	}
	log.Println("Successfully closing Redis")

	err = b.MongoDB.Disconnect(ctx)
	if err != nil {
		return err
	}
	log.Println("Successfully disconnecting MongoDB")

	// Sync fails on stdout/stderr on some platforms.
	_ = b.Logger.Sync()
	log.Println("Successfully closing Logger")

	return nil
}
