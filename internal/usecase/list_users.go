package usecase

import (
	"context"

	"github.com/cleanarch/webapp/internal/domain"
	"github.com/cleanarch/webapp/internal/repository"
	"github.com/cleanarch/webapp/internal/result"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListUsersQuery is the pagination input for ListUsersUseCase.
type ListUsersQuery struct {
	Offset int `form:"offset"`
	Limit  int `form:"limit"`
}

// UserPage is one page of users plus the total count.
type UserPage struct {
	Users  []*domain.User `json:"users"`
	Total  int            `json:"total"`
	Offset int            `json:"offset"`
	Limit  int            `json:"limit"`
}

// ListUsersUseCase lists users with pagination.
type ListUsersUseCase struct {
	users repository.UserRepository
}

// NewListUsersUseCase wires the use case from its collaborators.
func NewListUsersUseCase(users repository.UserRepository) *ListUsersUseCase {
	return &ListUsersUseCase{users: users}
}

// Execute returns the requested page. Out-of-range pagination values are
// clamped rather than rejected.
func (uc *ListUsersUseCase) Execute(ctx context.Context, query ListUsersQuery) result.Result[*UserPage] {
	if query.Offset < 0 {
		query.Offset = 0
	}
	if query.Limit <= 0 {
		query.Limit = defaultPageSize
	}
	if query.Limit > maxPageSize {
		query.Limit = maxPageSize
	}

	users, err := uc.users.List(ctx, query.Offset, query.Limit)
	if err != nil {
		return result.FailFromError[*UserPage](err)
	}

	total, err := uc.users.Count(ctx)
	if err != nil {
		return result.FailFromError[*UserPage](err)
	}

	sanitized := make([]*domain.User, 0, len(users))
	for _, user := range users {
		sanitized = append(sanitized, user.Sanitized())
	}

	return result.Ok(&UserPage{
		Users:  sanitized,
		Total:  total,
		Offset: query.Offset,
		Limit:  query.Limit,
	})
}
