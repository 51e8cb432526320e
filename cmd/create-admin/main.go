package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/xyz-asif/lostfound/internal/config"
	"github.com/xyz-asif/lostfound/internal/features/users"
	"github.com/xyz-asif/lostfound/internal/pkg/database"
	"github.com/xyz-asif/lostfound/internal/pkg/logger"
	apperrors "github.com/xyz-asif/lostfound/pkg/errors"
)

type options struct {
	Email    string
	Name     string
	Password string
	Role     string
}

func main() {
	cfg := config.Load()

	var opts options
	flag.StringVar(&opts.Email, "email", os.Getenv("ADMIN_EMAIL"), "admin email")
	flag.StringVar(&opts.Name, "name", envOr("ADMIN_NAME", "Admin User"), "display name")
	flag.StringVar(&opts.Password, "password", os.Getenv("ADMIN_PASSWORD"), "password; empty keeps the stored one, or defers to first login")
	flag.StringVar(&opts.Role, "role", users.RoleAdmin, "ADMIN or OWNER")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := database.NewConnection(ctx, database.DefaultConfig(cfg.MongoURI, cfg.MongoDB))
	if err != nil {
		logger.Fatal("failed to connect to MongoDB", "error", err)
	}
	defer conn.Close(context.Background())

	repo, err := users.NewRepository(ctx, conn.Database)
	if err != nil {
		logger.Fatal("failed to prepare users collection", "error", err)
	}

	u, err := promote(ctx, users.NewService(repo, logger.Default()), opts)
	if err != nil {
		logger.Fatal("failed to create admin", "error", err)
	}

	fmt.Printf("admin ready: id=%s email=%s roles=%s\n", u.ID.Hex(), u.Email, strings.Join(u.Roles, ","))
}

// promote upserts the account and grants it opts.Role alongside USER.
func promote(ctx context.Context, svc *users.Service, opts options) (*users.User, error) {
	role := strings.ToUpper(strings.TrimSpace(opts.Role))
	if role != users.RoleAdmin && role != users.RoleOwner {
		return nil, fmt.Errorf("role %q: %w", opts.Role, apperrors.ErrInvalidInput)
	}

	u, err := svc.Save(ctx, users.SaveUserRequest{
		Email:        opts.Email,
		Name:         opts.Name,
		AuthProvider: users.ProviderLocal,
		Password:     opts.Password,
	})
	if err != nil {
		return nil, err
	}

	if opts.Password != "" {
		if err := svc.SetPassword(ctx, u.ID.Hex(), opts.Password); err != nil {
			return nil, err
		}
	}
	if err := svc.SetRoles(ctx, u.ID.Hex(), []string{role, users.RoleUser}); err != nil {
		return nil, err
	}
	return svc.GetByID(ctx, u.ID.Hex())
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
