package container

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/pocketbase/dbx"
	"github.com/redis/go-redis/v9"

	// Registers the postgres driver the database factory opens with.
	_ "github.com/lib/pq"

	"github.com/cleanarch/webapp/internal/config"
	"github.com/cleanarch/webapp/internal/domain"
	"github.com/cleanarch/webapp/internal/repository"
	"github.com/cleanarch/webapp/internal/services"
	"github.com/cleanarch/webapp/internal/usecase"
)

// cacheKeyPrefix namespaces this application's entries in a shared Redis.
const cacheKeyPrefix = "webapp:"

// RegisterCoreServices populates the core layer: configuration, the logger,
// and the raw database and cache client handles. Nothing here resolves
// anything from another layer.
func RegisterCoreServices(layer Container, cfg *config.AppConfig) error {
	// The config is already built, so it goes in as a fixed instance rather
	// than a factory.
	layer.RegisterInstance(ConfigToken, cfg)

	err := layer.Register(LoggerToken, func(_ context.Context, _ Container) (any, error) {
		handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: parseLogLevel(cfg.GetLogLevel()),
		})
		return slog.New(handler), nil
	}, Singleton)
	if err != nil {
		return fmt.Errorf("failed to register logger: %w", err)
	}

	err = layer.Register(DatabaseToken, func(_ context.Context, _ Container) (any, error) {
		db, err := dbx.Open("postgres", cfg.GetDatabaseURL())
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		db.DB().SetMaxOpenConns(cfg.GetMaxOpenConns())
		db.DB().SetMaxIdleConns(cfg.GetMaxIdleConns())
		return db, nil
	}, Singleton)
	if err != nil {
		return fmt.Errorf("failed to register database: %w", err)
	}

	err = layer.Register(RedisToken, func(_ context.Context, _ Container) (any, error) {
		return redis.NewClient(&redis.Options{
			Addr:     cfg.GetRedisAddr(),
			Password: cfg.GetRedisPassword(),
			DB:       cfg.GetRedisDB(),
		}), nil
	}, Singleton)
	if err != nil {
		return fmt.Errorf("failed to register redis client: %w", err)
	}

	return nil
}

// RegisterInfrastructureServices populates the infrastructure layer:
// repository implementations and technical services. Factories resolve core
// tokens through the parent chain.
func RegisterInfrastructureServices(layer Container) error {
	// Development mode and tests may have pre-registered an in-memory
	// repository; the guard keeps the database-backed one from shadowing it.
	if !layer.IsRegistered(UserRepositoryToken) {
		err := layer.Register(UserRepositoryToken, func(ctx context.Context, c Container) (any, error) {
			db, err := resolveAs[*dbx.DB](ctx, c, DatabaseToken)
			if err != nil {
				return nil, err
			}
			return repository.NewDBXUserRepository(db), nil
		}, Singleton)
		if err != nil {
			return fmt.Errorf("failed to register user repository: %w", err)
		}
	}

	if !layer.IsRegistered(CacheBackendToken) {
		err := layer.Register(CacheBackendToken, func(ctx context.Context, c Container) (any, error) {
			client, err := resolveAs[*redis.Client](ctx, c, RedisToken)
			if err != nil {
				return nil, err
			}
			return services.NewRedisCacheBackend(client, cacheKeyPrefix), nil
		}, Singleton)
		if err != nil {
			return fmt.Errorf("failed to register cache backend: %w", err)
		}
	}

	err := layer.Register(TokenServiceToken, func(ctx context.Context, c Container) (any, error) {
		cfg, err := resolveAs[config.SecurityConfig](ctx, c, ConfigToken)
		if err != nil {
			return nil, err
		}
		return services.NewTokenService(cfg), nil
	}, Singleton)
	if err != nil {
		return fmt.Errorf("failed to register token service: %w", err)
	}

	return nil
}

// RegisterDomainServices populates the domain layer with the business-rule
// services.
func RegisterDomainServices(layer Container) error {
	err := layer.Register(PasswordPolicyToken, func(_ context.Context, _ Container) (any, error) {
		return domain.NewPasswordPolicy(), nil
	}, Singleton)
	if err != nil {
		return fmt.Errorf("failed to register password policy: %w", err)
	}

	err = layer.Register(RegistrationPolicyToken, func(ctx context.Context, c Container) (any, error) {
		users, err := resolveAs[repository.UserRepository](ctx, c, UserRepositoryToken)
		if err != nil {
			return nil, err
		}
		return domain.NewUserRegistrationPolicy(users), nil
	}, Singleton)
	if err != nil {
		return fmt.Errorf("failed to register registration policy: %w", err)
	}

	return nil
}

// RegisterApplicationServices populates the application layer with the use
// cases the presentation layer resolves.
func RegisterApplicationServices(layer Container) error {
	err := layer.Register(CreateUserUseCaseToken, func(ctx context.Context, c Container) (any, error) {
		users, err := resolveAs[repository.UserRepository](ctx, c, UserRepositoryToken)
		if err != nil {
			return nil, err
		}
		registration, err := resolveAs[*domain.UserRegistrationPolicy](ctx, c, RegistrationPolicyToken)
		if err != nil {
			return nil, err
		}
		passwords, err := resolveAs[*domain.PasswordPolicy](ctx, c, PasswordPolicyToken)
		if err != nil {
			return nil, err
		}
		logger, err := resolveAs[*slog.Logger](ctx, c, LoggerToken)
		if err != nil {
			return nil, err
		}
		return usecase.NewCreateUserUseCase(users, registration, passwords, logger), nil
	}, Singleton)
	if err != nil {
		return fmt.Errorf("failed to register create user use case: %w", err)
	}

	err = layer.Register(AuthenticateUseCaseToken, func(ctx context.Context, c Container) (any, error) {
		users, err := resolveAs[repository.UserRepository](ctx, c, UserRepositoryToken)
		if err != nil {
			return nil, err
		}
		tokens, err := resolveAs[services.TokenService](ctx, c, TokenServiceToken)
		if err != nil {
			return nil, err
		}
		logger, err := resolveAs[*slog.Logger](ctx, c, LoggerToken)
		if err != nil {
			return nil, err
		}
		return usecase.NewAuthenticateUserUseCase(users, tokens, logger), nil
	}, Singleton)
	if err != nil {
		return fmt.Errorf("failed to register authenticate use case: %w", err)
	}

	err = layer.Register(GetUserUseCaseToken, func(ctx context.Context, c Container) (any, error) {
		users, err := resolveAs[repository.UserRepository](ctx, c, UserRepositoryToken)
		if err != nil {
			return nil, err
		}
		cache, err := buildUserCache(ctx, c)
		if err != nil {
			return nil, err
		}
		logger, err := resolveAs[*slog.Logger](ctx, c, LoggerToken)
		if err != nil {
			return nil, err
		}
		return usecase.NewGetUserUseCase(users, cache, logger), nil
	}, Singleton)
	if err != nil {
		return fmt.Errorf("failed to register get user use case: %w", err)
	}

	err = layer.Register(ListUsersUseCaseToken, func(ctx context.Context, c Container) (any, error) {
		users, err := resolveAs[repository.UserRepository](ctx, c, UserRepositoryToken)
		if err != nil {
			return nil, err
		}
		return usecase.NewListUsersUseCase(users), nil
	}, Singleton)
	if err != nil {
		return fmt.Errorf("failed to register list users use case: %w", err)
	}

	err = layer.Register(UpdateProfileUseCaseToken, func(ctx context.Context, c Container) (any, error) {
		users, err := resolveAs[repository.UserRepository](ctx, c, UserRepositoryToken)
		if err != nil {
			return nil, err
		}
		cache, err := buildUserCache(ctx, c)
		if err != nil {
			return nil, err
		}
		logger, err := resolveAs[*slog.Logger](ctx, c, LoggerToken)
		if err != nil {
			return nil, err
		}
		return usecase.NewUpdateProfileUseCase(users, cache, logger), nil
	}, Singleton)
	if err != nil {
		return fmt.Errorf("failed to register update profile use case: %w", err)
	}

	err = layer.Register(HealthServiceToken, func(ctx context.Context, c Container) (any, error) {
		cfg, err := resolveAs[config.Config](ctx, c, ConfigToken)
		if err != nil {
			return nil, err
		}
		db, err := resolveAs[*dbx.DB](ctx, c, DatabaseToken)
		if err != nil {
			return nil, err
		}
		client, err := resolveAs[*redis.Client](ctx, c, RedisToken)
		if err != nil {
			return nil, err
		}
		return services.NewHealthService(
			cfg.GetEnvironment(),
			services.NewDatabaseChecker(db),
			services.NewRedisChecker(client),
		), nil
	}, Singleton)
	if err != nil {
		return fmt.Errorf("failed to register health service: %w", err)
	}

	return nil
}

// buildUserCache assembles the typed user cache from the backend and the
// configured TTL. It is constructed per consuming factory; the shared state
// lives in the backend, not the wrapper.
func buildUserCache(ctx context.Context, c Container) (*services.UserCache, error) {
	backend, err := resolveAs[services.CacheBackend](ctx, c, CacheBackendToken)
	if err != nil {
		return nil, err
	}
	cfg, err := resolveAs[config.CacheConfig](ctx, c, ConfigToken)
	if err != nil {
		return nil, err
	}
	return services.NewUserCache(backend, cfg.GetCacheTTL()), nil
}

// resolveAs resolves a token through the given container and asserts the
// result, for use inside factory bodies.
func resolveAs[T any](ctx context.Context, c Container, token Token) (T, error) {
	var zero T

	value, err := c.ResolveWithContext(ctx, token)
	if err != nil {
		return zero, fmt.Errorf("failed to resolve %s: %w", string(token), err)
	}
	typed, ok := value.(T)
	if !ok {
		return zero, &ResolvedTypeError{
			Token: token,
			Want:  fmt.Sprintf("%T", zero),
			Got:   fmt.Sprintf("%T", value),
		}
	}
	return typed, nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
