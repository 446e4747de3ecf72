package user

import (
	"context"
	"testing"

	"takapay/internal/models"
	"takapay/internal/repositories"
	"takapay/internal/utils/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserRepo struct {
	mock.Mock
}

type mockTxRepo struct {
	mock.Mock
	repositories.TransactionRepository
}

func (m *MockUserRepo) Create(user *models.User) error { return m.Called(user).Error(0) }

func (m *MockUserRepo) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) GetByPhone(phone string) (*models.User, error) {
	args := m.Called(phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) Update(user *models.User) error { return m.Called(user).Error(0) }

func (m *MockUserRepo) UpdateStatus(id uint, status string) error {
	return m.Called(id, status).Error(0)
}

func (m *MockUserRepo) Delete(id uint) error { return m.Called(id).Error(0) }

func (m *MockUserRepo) IncrementTokenVersion(userID uint) error {
	return m.Called(userID).Error(0)
}

func (m *MockUserRepo) ListFiltered(filter repositories.UserListFilter, limit, offset int) ([]models.User, int64, error) {
	args := m.Called(filter, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func (m *mockTxRepo) ListForUser(ctx context.Context, userID uint, filter repositories.TransactionListFilter, limit, offset int) ([]models.Transaction, int64, error) {
	args := m.Called(ctx, userID, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Transaction), args.Get(1).(int64), args.Error(2)
}

func consumer(status string) *models.User {
	u := &models.User{
		FirstName: "Rahim",
		LastName:  "Uddin",
		Email:     "rahim@example.com",
		Phone:     "+8801711000000",
		Role:      models.RoleUser,
		Status:    status,
	}
	u.ID = 1
	return u
}

func TestService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		target  string
		wantErr error
	}{
		{"pending to active", models.UserStatusPending, models.UserStatusActive, nil},
		{"pending to rejected", models.UserStatusPending, models.UserStatusRejected, nil},
		{"active to suspended", models.UserStatusActive, models.UserStatusSuspended, nil},
		{"suspended back to active", models.UserStatusSuspended, models.UserStatusActive, nil},
		{"pending cannot suspend", models.UserStatusPending, models.UserStatusSuspended, ErrIllegalTransition},
		{"active cannot be rejected", models.UserStatusActive, models.UserStatusRejected, ErrIllegalTransition},
		{"rejected is terminal", models.UserStatusRejected, models.UserStatusActive, ErrIllegalTransition},
		{"same status is not a transition", models.UserStatusActive, models.UserStatusActive, ErrIllegalTransition},
		{"unknown status", models.UserStatusActive, "BANNED", ErrUnknownStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepo)
			if tt.wantErr != ErrUnknownStatus {
				users.On("GetByID", uint(1)).Return(consumer(tt.from), nil)
			}
			if tt.wantErr == nil {
				users.On("UpdateStatus", uint(1), tt.target).Return(nil)
				if tt.target == models.UserStatusSuspended || tt.target == models.UserStatusRejected {
					users.On("IncrementTokenVersion", uint(1)).Return(nil)
				}
			}

			s := NewService(users, new(mockTxRepo))
			change, err := s.UpdateStatus(context.Background(), 1, tt.target)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				users.AssertNotCalled(t, "UpdateStatus")
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.from, change.From)
				assert.Equal(t, tt.target, change.To)
				users.AssertExpectations(t)
			}
		})
	}

	t.Run("illegal transition error names the legal targets", func(t *testing.T) {
		users := new(MockUserRepo)
		users.On("GetByID", uint(1)).Return(consumer(models.UserStatusPending), nil)

		s := NewService(users, new(mockTxRepo))
		_, err := s.UpdateStatus(context.Background(), 1, models.UserStatusSuspended)
		require.Error(t, err)
		assert.Contains(t, err.Error(), models.UserStatusActive)
		assert.Contains(t, err.Error(), models.UserStatusRejected)
	})
}

func TestService_List(t *testing.T) {
	t.Run("filter passes through trimmed", func(t *testing.T) {
		users := new(MockUserRepo)
		users.On("ListFiltered", repositories.UserListFilter{
			Search:         "rahim",
			CreatedAtStart: "2026-01-01",
			CreatedAtEnd:   "2026-06-30",
		}, 10, 0).Return([]models.User{*consumer(models.UserStatusActive)}, int64(14), nil)

		p := pagination.New(1, 10)
		s := NewService(users, new(mockTxRepo))
		result, err := s.List(context.Background(), ListFilter{
			Search:         "  rahim ",
			CreatedAtStart: "2026-01-01",
			CreatedAtEnd:   "2026-06-30",
		}, &p)
		require.NoError(t, err)
		assert.Equal(t, 1, result.UsersFetched)
		assert.Equal(t, int64(14), result.UsersMatched)
		assert.Equal(t, int64(14), p.Total)
	})

	t.Run("malformed date rejected at the boundary", func(t *testing.T) {
		users := new(MockUserRepo)
		p := pagination.New(1, 10)
		s := NewService(users, new(mockTxRepo))
		_, err := s.List(context.Background(), ListFilter{CreatedAtStart: "01/02/2026"}, &p)
		assert.Error(t, err)
		users.AssertNotCalled(t, "ListFiltered")
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		p := pagination.New(1, 10)
		s := NewService(new(MockUserRepo), new(mockTxRepo))
		_, err := s.List(context.Background(), ListFilter{Role: "superuser"}, &p)
		assert.Error(t, err)
	})
}

func TestService_Delete(t *testing.T) {
	t.Run("admin cannot delete self", func(t *testing.T) {
		s := NewService(new(MockUserRepo), new(mockTxRepo))
		err := s.Delete(context.Background(), 9, 9)
		assert.ErrorIs(t, err, ErrCannotDeleteSelf)
	})

	t.Run("missing user", func(t *testing.T) {
		users := new(MockUserRepo)
		users.On("GetByID", uint(2)).Return(nil, repositories.ErrUserNotFound)

		s := NewService(users, new(mockTxRepo))
		err := s.Delete(context.Background(), 2, 9)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("existing user deleted", func(t *testing.T) {
		users := new(MockUserRepo)
		users.On("GetByID", uint(1)).Return(consumer(models.UserStatusActive), nil)
		users.On("Delete", uint(1)).Return(nil)

		s := NewService(users, new(mockTxRepo))
		require.NoError(t, s.Delete(context.Background(), 1, 9))
		users.AssertExpectations(t)
	})
}
