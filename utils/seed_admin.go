package utils

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/muthuvelan/orderdeskbackend/accounts"
	"github.com/muthuvelan/orderdeskbackend/models"
)

func SeedAdminUser(ctx context.Context, repo *accounts.Repo) error {
	email := strings.ToLower(strings.TrimSpace(EnvDefault("ADMIN_EMAIL", "")))
	pass := EnvDefault("ADMIN_PASSWORD", "")

	if email == "" || pass == "" {
		return fmt.Errorf("missing ADMIN_EMAIL or ADMIN_PASSWORD env vars")
	}

	// Only insert if it doesn't exist
	if _, err := repo.FindUserByEmail(ctx, email); err == nil {
		fmt.Println("Admin user already exists:", email)
		return nil
	}

	hash, err := HashPassword(pass)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	now := time.Now().UTC()
	err = repo.InsertUser(ctx, &models.User{
		Id:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("seed admin insert failed: %w", err)
	}

	fmt.Println("Admin user seeded:", email)
	return nil
}
