package controllers_test

import (
	"errors"
	"net/http"
	"nutricoach/internal/controllers"
	"nutricoach/internal/health"
	"nutricoach/internal/models"
	"nutricoach/internal/repository/mocks"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type profileFixture struct {
	profiles *mocks.MockHealthProfileRepository
	records  *mocks.MockBMIRecordRepository
	cache    *memoryPlanCache
	router   *gin.Engine
}

func setupProfileFixture(userID uint) *profileFixture {
	f := &profileFixture{
		profiles: new(mocks.MockHealthProfileRepository),
		records:  new(mocks.MockBMIRecordRepository),
		cache:    newMemoryPlanCache(),
	}
	controller := controllers.NewHealthProfileController(f.profiles, f.records, f.cache)

	f.router = setupTestRouter(userID)
	f.router.GET("/profile", controller.GetProfile)
	f.router.POST("/profile", controller.CreateProfile)
	f.router.PUT("/profile", controller.UpdateProfile)
	f.router.PATCH("/profile", controller.PatchProfile)
	f.router.DELETE("/profile", controller.DeleteProfile)
	f.router.GET("/profile/bmi-history", controller.GetBMIHistory)
	f.router.GET("/admin/users/:user_id/profile", controller.GetProfileByUserID)
	return f
}

func (f *profileFixture) assertExpectations(t *testing.T) {
	f.profiles.AssertExpectations(t)
	f.records.AssertExpectations(t)
}

func storedProfile() *models.HealthProfile {
	p := &models.HealthProfile{
		ID:            1,
		UserID:        1,
		HeightCm:      170,
		WeightKg:      70,
		Age:           30,
		Sex:           health.SexMale,
		ActivityLevel: health.Moderate,
	}
	p.ApplyMetrics(health.ComputeMetrics(p.Measurement()))
	return p
}

var validMeasurement = map[string]interface{}{
	"height_cm":          170,
	"weight_kg":          70,
	"age":                30,
	"sex":                "male",
	"activity_level":     "moderate",
	"medical_conditions": []string{"hypertension"},
}

func TestGetProfile(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(*mocks.MockHealthProfileRepository)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name: "successful retrieval",
			setupMock: func(m *mocks.MockHealthProfileRepository) {
				m.On("FindByUserID", uint(1)).Return(storedProfile(), nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "Health profile retrieved successfully",
		},
		{
			name: "profile not found",
			setupMock: func(m *mocks.MockHealthProfileRepository) {
				m.On("FindByUserID", uint(1)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "Profile not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupProfileFixture(1)
			tt.setupMock(f.profiles)

			w := performRequest(f.router, "GET", "/profile", nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedMsg, decodeResponse(t, w)["message"])
			f.assertExpectations(t)
		})
	}
}

func TestGetProfileUnauthorized(t *testing.T) {
	f := setupProfileFixture(0)

	w := performRequest(f.router, "GET", "/profile", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Unauthorized", decodeResponse(t, w)["message"])
}

func TestCreateProfile(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		setupMock      func(*profileFixture)
		expectedStatus int
		expectedMsg    string
		invalidated    bool
	}{
		{
			name:        "successful creation computes metrics",
			requestBody: validMeasurement,
			setupMock: func(f *profileFixture) {
				f.profiles.On("FindByUserID", uint(1)).Return(nil, gorm.ErrRecordNotFound)
				f.profiles.On("Create", mock.MatchedBy(func(p *models.HealthProfile) bool {
					return p.UserID == 1 &&
						p.BMI == 24.2 &&
						p.BMR == 1618 &&
						p.DailyCalories == 2508 &&
						p.IdealWeightMin == 53 && p.IdealWeightMax == 72 &&
						p.Category == health.Normal &&
						p.ColorTag == "green" &&
						len(p.MedicalConditions) == 1
				})).Return(nil)
				f.records.On("Create", mock.MatchedBy(func(r *models.BMIRecord) bool {
					return r.UserID == 1 && r.BMI == 24.2 && r.Category == health.Normal
				})).Return(nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "Profile created successfully",
			invalidated:    true,
		},
		{
			name:        "history failure does not fail the request",
			requestBody: validMeasurement,
			setupMock: func(f *profileFixture) {
				f.profiles.On("FindByUserID", uint(1)).Return(nil, gorm.ErrRecordNotFound)
				f.profiles.On("Create", mock.Anything).Return(nil)
				f.records.On("Create", mock.Anything).Return(errors.New("disk full"))
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "Profile created successfully",
			invalidated:    true,
		},
		{
			name:        "profile already exists",
			requestBody: validMeasurement,
			setupMock: func(f *profileFixture) {
				f.profiles.On("FindByUserID", uint(1)).Return(storedProfile(), nil)
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "Profile already exists",
		},
		{
			name:        "database error",
			requestBody: validMeasurement,
			setupMock: func(f *profileFixture) {
				f.profiles.On("FindByUserID", uint(1)).Return(nil, gorm.ErrRecordNotFound)
				f.profiles.On("Create", mock.Anything).Return(errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "Failed to create profile",
		},
		{
			name: "out of range age",
			requestBody: map[string]interface{}{
				"height_cm":      170,
				"weight_kg":      70,
				"age":            5,
				"sex":            "male",
				"activity_level": "moderate",
			},
			setupMock:      func(f *profileFixture) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid request data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupProfileFixture(1)
			tt.setupMock(f)

			w := performRequest(f.router, "POST", "/profile", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedMsg, decodeResponse(t, w)["message"])
			if tt.invalidated {
				assert.Equal(t, []uint{1}, f.cache.invalidated)
			} else {
				assert.Empty(t, f.cache.invalidated)
			}
			f.assertExpectations(t)
		})
	}
}

func TestUpdateProfile(t *testing.T) {
	f := setupProfileFixture(1)
	f.profiles.On("FindByUserID", uint(1)).Return(storedProfile(), nil)
	f.profiles.On("Update", mock.MatchedBy(func(p *models.HealthProfile) bool {
		return p.WeightKg == 95 && p.BMI == 32.9 && p.Category == health.Obese && p.ColorTag == "red"
	})).Return(nil)
	f.records.On("Create", mock.MatchedBy(func(r *models.BMIRecord) bool {
		return r.WeightKg == 95 && r.Category == health.Obese
	})).Return(nil)

	body := map[string]interface{}{
		"height_cm":      170,
		"weight_kg":      95,
		"age":            30,
		"sex":            "male",
		"activity_level": "moderate",
	}
	w := performRequest(f.router, "PUT", "/profile", body)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Profile updated successfully", decodeResponse(t, w)["message"])
	assert.Equal(t, []uint{1}, f.cache.invalidated)
	f.assertExpectations(t)
}

func TestUpdateProfileNotFound(t *testing.T) {
	f := setupProfileFixture(1)
	f.profiles.On("FindByUserID", uint(1)).Return(nil, gorm.ErrRecordNotFound)

	w := performRequest(f.router, "PUT", "/profile", validMeasurement)

	assert.Equal(t, http.StatusNotFound, w.Code)
	f.assertExpectations(t)
}

func TestPatchProfile(t *testing.T) {
	tests := []struct {
		name        string
		requestBody map[string]interface{}
		matches     func(*models.HealthProfile) bool
	}{
		{
			name:        "weight only",
			requestBody: map[string]interface{}{"weight_kg": 50},
			matches: func(p *models.HealthProfile) bool {
				return p.WeightKg == 50 && p.HeightCm == 170 && p.BMI == 17.3 && p.Category == health.Underweight
			},
		},
		{
			name:        "activity level only",
			requestBody: map[string]interface{}{"activity_level": "sedentary"},
			matches: func(p *models.HealthProfile) bool {
				return p.ActivityLevel == health.Sedentary && p.BMR == 1618 && p.DailyCalories == 1942
			},
		},
		{
			name:        "conditions replaced",
			requestBody: map[string]interface{}{"medical_conditions": []string{"diabetes", "high cholesterol"}},
			matches: func(p *models.HealthProfile) bool {
				return len(p.MedicalConditions) == 2 && p.BMI == 24.2
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupProfileFixture(1)
			f.profiles.On("FindByUserID", uint(1)).Return(storedProfile(), nil)
			f.profiles.On("Update", mock.MatchedBy(tt.matches)).Return(nil)
			f.records.On("Create", mock.Anything).Return(nil)

			w := performRequest(f.router, "PATCH", "/profile", tt.requestBody)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "Profile patched successfully", decodeResponse(t, w)["message"])
			f.assertExpectations(t)
		})
	}
}

func TestPatchProfileRejectsInvalidField(t *testing.T) {
	f := setupProfileFixture(1)

	w := performRequest(f.router, "PATCH", "/profile", map[string]interface{}{"sex": "unknown"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	f.assertExpectations(t)
}

func TestDeleteProfile(t *testing.T) {
	f := setupProfileFixture(1)
	f.profiles.On("DeleteByUserID", uint(1)).Return(nil)

	w := performRequest(f.router, "DELETE", "/profile", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []uint{1}, f.cache.invalidated)
	f.assertExpectations(t)
}

func TestGetBMIHistory(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		setupMock      func(*mocks.MockBMIRecordRepository)
		expectedStatus int
	}{
		{
			name:  "default limit",
			query: "",
			setupMock: func(m *mocks.MockBMIRecordRepository) {
				m.On("FindAllByUserID", uint(1), 30).Return([]models.BMIRecord{{ID: 2, BMI: 24.2}, {ID: 1, BMI: 25.1}}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:  "explicit limit",
			query: "?limit=5",
			setupMock: func(m *mocks.MockBMIRecordRepository) {
				m.On("FindAllByUserID", uint(1), 5).Return([]models.BMIRecord{}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid limit",
			query:          "?limit=-1",
			setupMock:      func(m *mocks.MockBMIRecordRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:  "repository error",
			query: "",
			setupMock: func(m *mocks.MockBMIRecordRepository) {
				m.On("FindAllByUserID", uint(1), 30).Return([]models.BMIRecord{}, errors.New("db down"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupProfileFixture(1)
			tt.setupMock(f.records)

			w := performRequest(f.router, "GET", "/profile/bmi-history"+tt.query, nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
			f.assertExpectations(t)
		})
	}
}

func TestGetProfileByUserID(t *testing.T) {
	f := setupProfileFixture(9)
	other := storedProfile()
	other.UserID = 4
	f.profiles.On("FindByUserID", uint(4)).Return(other, nil)

	w := performRequest(f.router, "GET", "/admin/users/4/profile", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, float64(4), data["user_id"])

	w = performRequest(f.router, "GET", "/admin/users/abc/profile", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	f.assertExpectations(t)
}
