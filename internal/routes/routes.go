package routes

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/lostfound/internal/config"
	"github.com/xyz-asif/lostfound/internal/features/admin"
	"github.com/xyz-asif/lostfound/internal/features/auth"
	"github.com/xyz-asif/lostfound/internal/features/interactions"
	"github.com/xyz-asif/lostfound/internal/features/posts"
	"github.com/xyz-asif/lostfound/internal/features/search"
	"github.com/xyz-asif/lostfound/internal/features/users"
	"github.com/xyz-asif/lostfound/internal/pkg/clock"
	"github.com/xyz-asif/lostfound/internal/pkg/jwt"
	"github.com/xyz-asif/lostfound/internal/pkg/logger"
	"github.com/xyz-asif/lostfound/internal/pkg/metrics"
	"github.com/xyz-asif/lostfound/internal/pkg/ratelimit"
	"go.mongodb.org/mongo-driver/mongo"
)

// Stores bundles the persistence backends of every feature.
type Stores struct {
	Users  users.Store
	Posts  posts.Store
	Claims interactions.Store
}

// MemoryStores backs every feature with process-local maps.
func MemoryStores() *Stores {
	return &Stores{
		Users:  users.NewMemoryStore(),
		Posts:  posts.NewMemoryStore(),
		Claims: interactions.NewMemoryStore(),
	}
}

// MongoStores opens the feature repositories and ensures their indexes.
func MongoStores(ctx context.Context, db *mongo.Database) (*Stores, error) {
	userRepo, err := users.NewRepository(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("users repository: %w", err)
	}
	postRepo, err := posts.NewRepository(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("posts repository: %w", err)
	}
	claimRepo, err := interactions.NewRepository(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("interactions repository: %w", err)
	}
	return &Stores{Users: userRepo, Posts: postRepo, Claims: claimRepo}, nil
}

// Deps carries the shared collaborators. Zero values fall back to defaults:
// system clock, discarding logger, a limiter built from Config. A nil
// Verifier disables Google sign-in.
type Deps struct {
	Config   *config.Config
	Log      *logger.Logger
	Metrics  *metrics.Metrics
	Clock    clock.Clock
	Verifier auth.TokenVerifier
	Limiter  *ratelimit.RateLimiter
}

// TokenConfig derives the JWT settings from the application config.
func TokenConfig(cfg *config.Config) *jwt.Config {
	tokens := jwt.DefaultConfig(cfg.JWTSecret)
	if cfg.JWTAccessTTL > 0 {
		tokens.AccessExpiry = cfg.JWTAccessTTL
	}
	if cfg.JWTRefreshTTL > 0 {
		tokens.RefreshExpiry = cfg.JWTRefreshTTL
	}
	return tokens
}

func SetupRoutes(router *gin.Engine, stores *Stores, deps Deps) {
	if deps.Log == nil {
		deps.Log = logger.Discard()
	}
	if deps.Clock == nil {
		deps.Clock = clock.System{}
	}
	if deps.Limiter == nil {
		deps.Limiter = ratelimit.New(deps.Config.RateLimitRequests, deps.Config.RateLimitWindow)
	}
	tokens := TokenConfig(deps.Config)
	limit := ratelimit.Middleware(deps.Limiter)

	userService := users.NewService(stores.Users, deps.Log)
	postService := posts.NewService(stores.Posts, userService, deps.Clock, deps.Log, deps.Metrics)
	searchService := search.NewService(stores.Posts, deps.Log, deps.Metrics)
	claimService := interactions.NewService(stores.Claims, postService, userService, deps.Clock, deps.Log, deps.Metrics)
	authService := auth.NewService(userService, tokens, deps.Verifier, deps.Log)
	adminService := admin.NewService(postService, userService, deps.Log)

	api := router.Group("/api/v1")

	posts.RegisterRoutes(api, postService, search.Routes(searchService, limit))
	interactions.RegisterRoutes(api, claimService, limit)
	users.RegisterRoutes(api, userService)
	auth.RegisterRoutes(api, authService)
	admin.RegisterRoutes(api, adminService, auth.AdminRequired(tokens), func(g *gin.RouterGroup) {
		interactions.RegisterAdminRoutes(g, claimService)
	})
}
