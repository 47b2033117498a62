package repository

import (
	"context"
	"time"

	"github.com/pocketbase/dbx"

	"github.com/cleanarch/webapp/internal/domain"
)

const usersTable = "users"

// userRow is the database shape of a user record.
type userRow struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	Username     string    `db:"username"`
	Name         string    `db:"name"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	Theme        string    `db:"theme"`
	Language     string    `db:"language"`
	Timezone     string    `db:"timezone"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (r *userRow) toDomain() *domain.User {
	return &domain.User{
		ID:           r.ID,
		Email:        r.Email,
		Username:     r.Username,
		Name:         r.Name,
		PasswordHash: r.PasswordHash,
		Role:         domain.UserRole(r.Role),
		Preferences: domain.UserPreferences{
			Theme:    r.Theme,
			Language: r.Language,
			Timezone: r.Timezone,
		},
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func rowParams(user *domain.User) dbx.Params {
	return dbx.Params{
		"email":         user.Email,
		"username":      user.Username,
		"name":          user.Name,
		"password_hash": user.PasswordHash,
		"role":          string(user.Role),
		"theme":         user.Preferences.Theme,
		"language":      user.Preferences.Language,
		"timezone":      user.Preferences.Timezone,
		"created_at":    user.CreatedAt,
		"updated_at":    user.UpdatedAt,
	}
}

// dbxUserRepository implements UserRepository on top of a SQL database via dbx.
type dbxUserRepository struct {
	db *dbx.DB
}

// NewDBXUserRepository creates a user repository backed by the given database
// handle.
func NewDBXUserRepository(db *dbx.DB) UserRepository {
	return &dbxUserRepository{db: db}
}

// Create inserts a new user record.
func (r *dbxUserRepository) Create(ctx context.Context, user *domain.User) error {
	params := rowParams(user)
	params["id"] = user.ID

	if _, err := r.db.Insert(usersTable, params).WithContext(ctx).Execute(); err != nil {
		return wrapQuery(err)
	}
	return nil
}

// GetByID retrieves a user by ID.
func (r *dbxUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getBy(ctx, dbx.HashExp{"id": id})
}

// GetByEmail retrieves a user by email address.
func (r *dbxUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getBy(ctx, dbx.HashExp{"email": email})
}

// GetByUsername retrieves a user by username.
func (r *dbxUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getBy(ctx, dbx.HashExp{"username": username})
}

func (r *dbxUserRepository) getBy(ctx context.Context, cond dbx.HashExp) (*domain.User, error) {
	var row userRow
	err := r.db.Select().From(usersTable).Where(cond).WithContext(ctx).One(&row)
	if err != nil {
		if isNoRows(err) {
			return nil, notFoundUser()
		}
		return nil, wrapQuery(err)
	}
	return row.toDomain(), nil
}

// Update rewrites an existing user record.
func (r *dbxUserRepository) Update(ctx context.Context, user *domain.User) error {
	result, err := r.db.Update(usersTable, rowParams(user), dbx.HashExp{"id": user.ID}).
		WithContext(ctx).Execute()
	if err != nil {
		return wrapQuery(err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return notFoundUser()
	}
	return nil
}

// Delete removes a user record by ID.
func (r *dbxUserRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Delete(usersTable, dbx.HashExp{"id": id}).WithContext(ctx).Execute()
	if err != nil {
		return wrapQuery(err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return notFoundUser()
	}
	return nil
}

// List retrieves users ordered by creation time with pagination.
func (r *dbxUserRepository) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	var rows []userRow
	err := r.db.Select().From(usersTable).
		OrderBy("created_at ASC").
		Offset(int64(offset)).
		Limit(int64(limit)).
		WithContext(ctx).
		All(&rows)
	if err != nil {
		return nil, wrapQuery(err)
	}

	users := make([]*domain.User, 0, len(rows))
	for i := range rows {
		users = append(users, rows[i].toDomain())
	}
	return users, nil
}

// Count returns the total number of users.
func (r *dbxUserRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.Select("COUNT(*)").From(usersTable).WithContext(ctx).Row(&count)
	if err != nil {
		return 0, wrapQuery(err)
	}
	return count, nil
}

// ExistsByEmail checks if a user exists with the given email.
func (r *dbxUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.existsBy(ctx, dbx.HashExp{"email": email})
}

// ExistsByUsername checks if a user exists with the given username.
func (r *dbxUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.existsBy(ctx, dbx.HashExp{"username": username})
}

func (r *dbxUserRepository) existsBy(ctx context.Context, cond dbx.HashExp) (bool, error) {
	var count int
	err := r.db.Select("COUNT(*)").From(usersTable).Where(cond).WithContext(ctx).Row(&count)
	if err != nil {
		return false, wrapQuery(err)
	}
	return count > 0, nil
}
