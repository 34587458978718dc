package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
	"github.com/go-chi/render"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/surest/member-service/pkg/auth"
	"github.com/surest/member-service/pkg/login"
	"github.com/surest/member-service/pkg/member"
	"github.com/surest/member-service/pkg/signup"
	"github.com/surest/member-service/pkg/token"
)

type MemberDbConfig struct {
	Host     string `env:"MEMBER_PG_HOST" env-default:"localhost"`
	Port     uint16 `env:"MEMBER_PG_PORT" env-default:"5432"`
	Database string `env:"MEMBER_PG_DATABASE" env-default:"member_db"`
	User     string `env:"MEMBER_PG_USER" env-default:"member"`
	Password string `env:"MEMBER_PG_PASSWORD" env-default:"pwd"`
	Schema   string `env:"MEMBER_PG_SCHEMA" env-default:"public"`
}

func (d MemberDbConfig) toDatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable&search_path=%s,public",
		d.User, d.Password, d.Host, d.Port, d.Database, d.Schema)
}

type JwtConfig struct {
	Secret string `env:"JWT_SECRET" env-default:"very-secure-jwt-secret"`
	Expiry string `env:"JWT_EXPIRATION" env-default:"1h"`
}

type RedisConfig struct {
	Enabled  bool   `env:"REDIS_ENABLED" env-default:"false"`
	URL      string `env:"REDIS_URL" env-default:"redis://localhost:6379/0"`
	CacheTTL string `env:"MEMBER_CACHE_TTL" env-default:"5m"`
}

type ServerConfig struct {
	Host string `env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port uint16 `env:"HTTP_PORT" env-default:"8080"`
	// Storage selects the backing store: "postgres" or "inmem".
	// The in-memory store is for quick-start and demos only.
	Storage string `env:"STORAGE" env-default:"postgres"`
}

type BootstrapConfig struct {
	AdminUsername string `env:"BOOTSTRAP_ADMIN_USERNAME" env-default:"admin"`
	AdminPassword string `env:"BOOTSTRAP_ADMIN_PASSWORD" env-default:""`
}

type Config struct {
	MemberDbConfig  MemberDbConfig
	JwtConfig       JwtConfig
	RedisConfig     RedisConfig
	ServerConfig    ServerConfig
	BootstrapConfig BootstrapConfig
}

// loadEnvFile loads environment variables from .env file if it exists
// Only sets variables that are not already set in the environment
func loadEnvFile() {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		execPath, err := os.Executable()
		if err != nil {
			return
		}
		envFile = filepath.Join(filepath.Dir(execPath), ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}

	if err := godotenv.Load(envFile); err != nil {
		slog.Error("Failed to load .env file", "error", err, "path", envFile)
		return
	}
	slog.Info("Configuration loaded from .env file", "path", envFile)
}

// newRedisClient parses the Redis URL and verifies connectivity.
func newRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

// bootstrapAdmin creates the first ADMIN credential when the store is empty,
// so a fresh deployment is never locked out of the write endpoints.
func bootstrapAdmin(ctx context.Context, credRepo login.CredentialRepository, signupService *signup.Service, cfg BootstrapConfig) {
	exists, err := credRepo.AnyCredentialExists(ctx)
	if err != nil {
		slog.Error("Failed to check credential existence", "error", err)
		return
	}
	if exists {
		return
	}
	if cfg.AdminPassword == "" {
		slog.Warn("No credentials exist and BOOTSTRAP_ADMIN_PASSWORD is unset, skipping admin bootstrap")
		return
	}

	cred, err := signupService.Register(ctx, cfg.AdminUsername, cfg.AdminPassword, []string{auth.RoleAdmin})
	if err != nil {
		slog.Error("Failed to create bootstrap admin", "error", err)
		return
	}
	slog.Info("Bootstrap admin created", "username", cred.Username)
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
	}))
	slog.SetDefault(logger)

	loadEnvFile()

	config := Config{}
	cleanenv.ReadEnv(&config)

	tokenExpiry, err := time.ParseDuration(config.JwtConfig.Expiry)
	if err != nil {
		slog.Error("Failed to parse JWT_EXPIRATION", "error", err, "value", config.JwtConfig.Expiry)
		os.Exit(-1)
	}

	// Initialize repositories
	var credRepo login.CredentialRepository
	var memberRepo member.MemberRepository
	switch config.ServerConfig.Storage {
	case "inmem":
		slog.Warn("Using in-memory storage, all data is lost on shutdown")
		credRepo = login.NewInMemCredentialRepository(auth.RoleUser, auth.RoleAdmin)
		memberRepo = member.NewInMemMemberRepository()
	case "postgres":
		dbURL := config.MemberDbConfig.toDatabaseURL()
		pool, err := pgxpool.New(context.Background(), dbURL)
		if err != nil {
			slog.Error("Failed creating dbpool", "db", config.MemberDbConfig.Database, "host", config.MemberDbConfig.Host, "port", config.MemberDbConfig.Port, "user", config.MemberDbConfig.User, "schema", config.MemberDbConfig.Schema)
			os.Exit(-1)
		}
		defer pool.Close()
		credRepo = login.NewPostgresCredentialRepository(pool)
		memberRepo = member.NewPostgresMemberRepository(pool)
	default:
		slog.Error("Unknown STORAGE value", "value", config.ServerConfig.Storage)
		os.Exit(-1)
	}

	if config.RedisConfig.Enabled {
		cacheTTL, err := time.ParseDuration(config.RedisConfig.CacheTTL)
		if err != nil {
			slog.Error("Failed to parse MEMBER_CACHE_TTL", "error", err, "value", config.RedisConfig.CacheTTL)
			os.Exit(-1)
		}
		redisClient, err := newRedisClient(context.Background(), config.RedisConfig.URL)
		if err != nil {
			slog.Error("Failed connecting to redis, member cache disabled", "error", err)
		} else {
			memberRepo = member.NewCachedMemberRepository(memberRepo, redisClient, cacheTTL)
			slog.Info("Member cache enabled", "ttl", cacheTTL)
		}
	}

	// Initialize services
	tokenService := token.NewService(config.JwtConfig.Secret, tokenExpiry)
	hasher := login.NewBcryptHasher()
	loginService := login.NewLoginService(credRepo, hasher, tokenService)
	signupService := signup.NewService(credRepo, hasher)
	memberService := member.NewMemberService(memberRepo)

	bootstrapAdmin(context.Background(), credRepo, signupService, config.BootstrapConfig)

	loginHandle := login.NewHandle(loginService)
	signupHandle := signup.NewHandle(signupService)
	memberHandle := member.NewHandle(memberService)

	hmacAuth := jwtauth.New("HS256", []byte(config.JwtConfig.Secret), nil)
	principal := auth.NewMiddleware(tokenService, credRepo)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		render.PlainText(w, r, http.StatusText(http.StatusOK))
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Public endpoints
		r.Mount("/auth", login.Routes(loginHandle))
		r.Mount("/user", signup.Routes(signupHandle))

		// Protected endpoints
		r.Group(func(r chi.Router) {
			r.Use(auth.Verifier(hmacAuth))
			r.Use(principal.Principal)
			r.Mount("/members", member.Routes(memberHandle,
				auth.RequireAnyRole(auth.RoleUser, auth.RoleAdmin),
				auth.RequireAnyRole(auth.RoleAdmin),
			))
		})
	})

	addr := fmt.Sprintf("%s:%d", config.ServerConfig.Host, config.ServerConfig.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Starting server", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(-1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}
