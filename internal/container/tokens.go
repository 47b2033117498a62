package container

import "sync"

// Tokens for every resolvable service, grouped by the layer whose composition
// module registers them. The constant is the single source of truth for a
// service's name; registration sites and resolve sites both use it.
const (
	// Core layer.
	ConfigToken   Token = "config"
	LoggerToken   Token = "logger"
	DatabaseToken Token = "database"
	RedisToken    Token = "redis"

	// Infrastructure layer.
	UserRepositoryToken Token = "user_repository"
	CacheBackendToken   Token = "cache_backend"
	TokenServiceToken   Token = "token_service"

	// Domain layer.
	PasswordPolicyToken     Token = "password_policy"
	RegistrationPolicyToken Token = "registration_policy"

	// Application layer.
	CreateUserUseCaseToken    Token = "create_user_use_case"
	AuthenticateUseCaseToken  Token = "authenticate_use_case"
	GetUserUseCaseToken       Token = "get_user_use_case"
	ListUsersUseCaseToken     Token = "list_users_use_case"
	UpdateProfileUseCaseToken Token = "update_profile_use_case"
	HealthServiceToken        Token = "health_service"
)

var (
	tokenMu sync.Mutex
	tokens  = make(map[string]Token)
)

// DefineToken interns a token for a logical name. The same name always yields
// the same token, so re-importing a composition module cannot mint a second
// identity for an already-known service. Services wired by this repository use
// the constants above; DefineToken exists for extensions that add services at
// runtime setup.
func DefineToken(name string) Token {
	tokenMu.Lock()
	defer tokenMu.Unlock()

	if t, ok := tokens[name]; ok {
		return t
	}
	t := Token(name)
	tokens[name] = t
	return t
}
