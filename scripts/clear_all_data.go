package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Config from .env
const (
	// PostgreSQL
	DB_HOST     = "localhost"
	DB_PORT     = "5432"
	DB_USER     = "postgres"
	DB_PASSWORD = "postgres"
	DB_NAME     = "couplesync"

	// Redis
	REDIS_ADDR = "localhost:6379"
)

func main() {
	fmt.Println("============================================")
	fmt.Println("  CoupleSync - Clear All Data")
	fmt.Println("============================================")
	fmt.Println()

	// 1. Clear PostgreSQL
	clearPostgreSQL()

	// 2. Clear Redis cache
	clearRedis()

	fmt.Println()
	fmt.Println("============================================")
	fmt.Println("  Done! Ready for fresh testing.")
	fmt.Println("============================================")
}

func clearPostgreSQL() {
	fmt.Println("[1/2] Clearing PostgreSQL...")

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		DB_HOST, DB_USER, DB_PASSWORD, DB_NAME, DB_PORT)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Printf("     Failed to connect to database: %v\n", err)
		return
	}

	// Tables to truncate (order matters for foreign keys)
	tables := []string{
		"tasks",
		"couples",
		"users",
	}

	// Truncate each table
	for _, table := range tables {
		result := db.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if result.Error != nil {
			fmt.Printf("     Warning: Could not truncate %s: %v\n", table, result.Error)
		}
	}

	fmt.Println("     PostgreSQL cleared successfully!")
}

func clearRedis() {
	fmt.Println("[2/2] Clearing Redis cache...")

	client := redis.NewClient(&redis.Options{Addr: REDIS_ADDR})
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		fmt.Printf("     Redis not available: %v (skipping)\n", err)
		return
	}

	if err := client.FlushDB(ctx).Err(); err != nil {
		fmt.Printf("     Failed to flush Redis: %v\n", err)
		return
	}

	fmt.Println("     Redis cache flushed!")
}
