// Package main seeds a pair of demo accounts with funded wallets so a
// fresh environment can place calls immediately.
package main

import (
	"context"
	"log"

	"aileana/internal/config"
	"aileana/internal/models"
	"aileana/internal/repositories"
	"aileana/internal/services/user"
	"aileana/internal/services/wallet"

	"github.com/shopspring/decimal"
)

type seedAccount struct {
	email     string
	password  string
	firstName string
	lastName  string
	balance   int64
}

var seedAccounts = []seedAccount{
	{"ada@example.com", "password123", "Ada", "Obi", 5000},
	{"bayo@example.com", "password123", "Bayo", "Ade", 5000},
}

func main() {
	config.LoadEnv()
	if err := repositories.InitDB(); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	defer func() {
		if sqlDB, err := repositories.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Printf("failed to close database connection: %v", err)
			}
		}
		if repositories.CacheService != nil {
			if err := repositories.CacheService.Close(); err != nil {
				log.Printf("failed to close redis connection: %v", err)
			}
		}
	}()

	userRepo := repositories.NewUserRepository(repositories.DB, repositories.CacheService)
	walletRepo := repositories.NewWalletRepository(repositories.DB)
	walletService := wallet.NewService(walletRepo, repositories.CacheService)
	userService := user.NewService(userRepo, walletService)

	ctx := context.Background()
	for _, account := range seedAccounts {
		var existing models.User
		if err := repositories.DB.Where("email = ?", account.email).First(&existing).Error; err == nil {
			log.Printf("user %s already exists, skipping", account.email)
			continue
		}

		created, err := userService.Register(ctx, &user.RegisterInput{
			Email:     account.email,
			Password:  account.password,
			FirstName: account.firstName,
			LastName:  account.lastName,
		})
		if err != nil {
			log.Fatalf("failed to seed user %s: %v", account.email, err)
		}

		reference := "SEED:" + account.email
		if _, _, err := walletService.Credit(ctx, created.ID, decimal.NewFromInt(account.balance), reference, "Seed balance"); err != nil {
			log.Fatalf("failed to fund wallet for %s: %v", account.email, err)
		}

		log.Printf("seeded %s with balance %d", account.email, account.balance)
	}

	log.Println("seed complete")
}
