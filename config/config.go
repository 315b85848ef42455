package config

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rhushabh77/crowdfunding-backend/rates"
)

type Config struct {
	MongoClient  *mongo.Client
	RedisClient  *redis.Client
	RateProvider *rates.Provider

	DBName         string
	Port           string
	OrganizerEmail string
}

// Load reads the environment (optionally from a .env file), connects mongo
// and, when configured, redis. Redis is optional: without it the exchange
// rate is fetched fresh on every call, which the provider contract allows.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	var redisClient *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("Redis unavailable, rate caching disabled: %v", err)
			redisClient = nil
		}
	}

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "crowdfunding"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	return &Config{
		MongoClient:    client,
		RedisClient:    redisClient,
		RateProvider:   rates.NewProvider(os.Getenv("RATE_API_URL"), redisClient),
		DBName:         dbName,
		Port:           port,
		OrganizerEmail: os.Getenv("ORGANIZER_EMAIL"),
	}, nil
}
