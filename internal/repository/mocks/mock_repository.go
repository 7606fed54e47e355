package mocks

import (
	"time"

	"nutricoach/internal/models"
	"nutricoach/internal/repository"

	"github.com/stretchr/testify/mock"
)

// Shared MockUserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByReferralCode(code string) (*models.User, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ListReferredUsers(referrerID uint) ([]models.User, error) {
	args := m.Called(referrerID)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// Shared MockHealthProfileRepository
type MockHealthProfileRepository struct {
	mock.Mock
}

func (m *MockHealthProfileRepository) Create(profile *models.HealthProfile) error {
	args := m.Called(profile)
	return args.Error(0)
}

func (m *MockHealthProfileRepository) FindByUserID(userID uint) (*models.HealthProfile, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.HealthProfile), args.Error(1)
}

func (m *MockHealthProfileRepository) Update(profile *models.HealthProfile) error {
	args := m.Called(profile)
	return args.Error(0)
}

func (m *MockHealthProfileRepository) DeleteByUserID(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

// Shared MockBMIRecordRepository
type MockBMIRecordRepository struct {
	mock.Mock
}

func (m *MockBMIRecordRepository) Create(record *models.BMIRecord) error {
	args := m.Called(record)
	return args.Error(0)
}

func (m *MockBMIRecordRepository) FindAllByUserID(userID uint, limit int) ([]models.BMIRecord, error) {
	args := m.Called(userID, limit)
	return args.Get(0).([]models.BMIRecord), args.Error(1)
}

func (m *MockBMIRecordRepository) DeleteByUserID(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

// Shared MockDietPlanRepository
type MockDietPlanRepository struct {
	mock.Mock
}

func (m *MockDietPlanRepository) Create(plan *models.DietPlan) error {
	args := m.Called(plan)
	return args.Error(0)
}

func (m *MockDietPlanRepository) FindAllByUserID(userID uint) ([]models.DietPlan, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.DietPlan), args.Error(1)
}

func (m *MockDietPlanRepository) FindLatestByUserID(userID uint) (*models.DietPlan, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DietPlan), args.Error(1)
}

func (m *MockDietPlanRepository) FindByID(id uint) (*models.DietPlan, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DietPlan), args.Error(1)
}

func (m *MockDietPlanRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// Shared MockTaskRepository
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(task *models.Task) error {
	args := m.Called(task)
	return args.Error(0)
}

func (m *MockTaskRepository) FindAllByUserID(userID uint) ([]models.Task, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.Task), args.Error(1)
}

func (m *MockTaskRepository) FindByID(id uint) (*models.Task, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockTaskRepository) Update(task *models.Task) error {
	args := m.Called(task)
	return args.Error(0)
}

func (m *MockTaskRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockTaskRepository) CountByUserIDAndStatus(userID uint, status string) (int64, error) {
	args := m.Called(userID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskRepository) FindInProgressStartedBefore(cutoff time.Time) ([]models.Task, error) {
	args := m.Called(cutoff)
	return args.Get(0).([]models.Task), args.Error(1)
}

var (
	_ repository.UserRepository          = (*MockUserRepository)(nil)
	_ repository.HealthProfileRepository = (*MockHealthProfileRepository)(nil)
	_ repository.BMIRecordRepository     = (*MockBMIRecordRepository)(nil)
	_ repository.DietPlanRepository      = (*MockDietPlanRepository)(nil)
	_ repository.TaskRepository          = (*MockTaskRepository)(nil)
)
