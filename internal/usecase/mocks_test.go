package usecase

import (
	"context"

	"github.com/cleanarch/webapp/internal/domain"
	"github.com/cleanarch/webapp/internal/services"
)

// MockUserRepository implements repository.UserRepository with overridable
// function fields. Unset methods panic so tests fail loudly on unexpected
// calls.
type MockUserRepository struct {
	CreateFunc           func(ctx context.Context, user *domain.User) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.User, error)
	GetByEmailFunc       func(ctx context.Context, email string) (*domain.User, error)
	GetByUsernameFunc    func(ctx context.Context, username string) (*domain.User, error)
	UpdateFunc           func(ctx context.Context, user *domain.User) error
	DeleteFunc           func(ctx context.Context, id string) error
	ListFunc             func(ctx context.Context, offset, limit int) ([]*domain.User, error)
	CountFunc            func(ctx context.Context) (int, error)
	ExistsByEmailFunc    func(ctx context.Context, email string) (bool, error)
	ExistsByUsernameFunc func(ctx context.Context, username string) (bool, error)

	CreateCalls int
	UpdateCalls int
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	m.CreateCalls++
	if m.CreateFunc == nil {
		panic("unexpected call to Create")
	}
	return m.CreateFunc(ctx, user)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFunc == nil {
		panic("unexpected call to GetByID")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc == nil {
		panic("unexpected call to GetByEmail")
	}
	return m.GetByEmailFunc(ctx, email)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetByUsernameFunc == nil {
		panic("unexpected call to GetByUsername")
	}
	return m.GetByUsernameFunc(ctx, username)
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	m.UpdateCalls++
	if m.UpdateFunc == nil {
		panic("unexpected call to Update")
	}
	return m.UpdateFunc(ctx, user)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc == nil {
		panic("unexpected call to Delete")
	}
	return m.DeleteFunc(ctx, id)
}

func (m *MockUserRepository) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	if m.ListFunc == nil {
		panic("unexpected call to List")
	}
	return m.ListFunc(ctx, offset, limit)
}

func (m *MockUserRepository) Count(ctx context.Context) (int, error) {
	if m.CountFunc == nil {
		panic("unexpected call to Count")
	}
	return m.CountFunc(ctx)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc == nil {
		panic("unexpected call to ExistsByEmail")
	}
	return m.ExistsByEmailFunc(ctx, email)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if m.ExistsByUsernameFunc == nil {
		panic("unexpected call to ExistsByUsername")
	}
	return m.ExistsByUsernameFunc(ctx, username)
}

// MockTokenService implements services.TokenService with overridable function
// fields.
type MockTokenService struct {
	GeneratePairFunc func(user *domain.User) (*domain.TokenPair, error)
	ValidateFunc     func(tokenString string) (*services.TokenClaims, error)
}

func (m *MockTokenService) GeneratePair(user *domain.User) (*domain.TokenPair, error) {
	if m.GeneratePairFunc == nil {
		panic("unexpected call to GeneratePair")
	}
	return m.GeneratePairFunc(user)
}

func (m *MockTokenService) Validate(tokenString string) (*services.TokenClaims, error) {
	if m.ValidateFunc == nil {
		panic("unexpected call to Validate")
	}
	return m.ValidateFunc(tokenString)
}
