package utils

import (
	"fmt"
	"log"
	"math"
	mathrand "math/rand"
	"nutricoach/internal/health"
	"nutricoach/internal/models"
	"nutricoach/internal/services"
	"time"

	"gorm.io/gorm"
)

const (
	DefaultNumUsers = 100

	demoEmailPattern = "demo%d@nutricoach.local"
	demoEmailLike    = "demo%@nutricoach.local"
	demoPassword     = "DemoPassword123!"
	seedBatchSize    = 100
)

var (
	demoActivityLevels = []health.ActivityLevel{
		health.Sedentary, health.Light, health.Moderate, health.Active, health.VeryActive,
	}
	demoSexes      = []health.Sex{health.SexMale, health.SexFemale, health.SexOther}
	demoConditions = [][]string{
		nil,
		nil,
		{"Type 2 Diabetes"},
		{"Hypertension"},
		{"High Cholesterol"},
		{"high blood pressure", "diabetes"},
	}
)

// SeedDemoUsers creates numUsers demo accounts, each with a random but valid
// health profile, its first BMI record and a generated diet plan.
func SeedDemoUsers(db *gorm.DB, numUsers int) error {
	if numUsers <= 0 {
		return fmt.Errorf("number of users must be positive, got %d", numUsers)
	}

	// bcrypt is slow on purpose; every demo account shares one hash.
	hash, err := HashPassword(demoPassword)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	var maxID uint
	row := db.Model(&models.User{}).Select("COALESCE(MAX(id), 0)").Row()
	if err := row.Scan(&maxID); err != nil {
		return fmt.Errorf("failed to get max user ID: %w", err)
	}
	baseIndex := int(maxID) + 1

	startTime := time.Now()
	r := mathrand.New(mathrand.NewSource(time.Now().UnixNano()))

	for i := 0; i < numUsers; i += seedBatchSize {
		end := min(i+seedBatchSize, numUsers)
		err := db.Transaction(func(tx *gorm.DB) error {
			for j := i; j < end; j++ {
				if err := seedDemoUser(tx, baseIndex+j, hash, r); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to seed users %d-%d: %w", i, end-1, err)
		}
		log.Printf("Created demo users %d-%d", baseIndex+i, baseIndex+end-1)
	}

	elapsed := time.Since(startTime)
	log.Printf("Successfully created %d demo users in %s (%.2f users/sec)",
		numUsers, elapsed, float64(numUsers)/elapsed.Seconds())
	return nil
}

func seedDemoUser(tx *gorm.DB, index int, passwordHash string, r *mathrand.Rand) error {
	user := models.User{
		Name:         fmt.Sprintf("Demo User %d", index),
		Email:        fmt.Sprintf(demoEmailPattern, index),
		Password:     passwordHash,
		Role:         models.RoleUser,
		ReferralCode: models.NewReferralCode(),
	}
	if err := tx.Create(&user).Error; err != nil {
		return fmt.Errorf("failed to create user %d: %w", index, err)
	}

	profile := GenerateDemoProfile(user.ID, r)
	if err := tx.Create(profile).Error; err != nil {
		return fmt.Errorf("failed to create profile for user %d: %w", user.ID, err)
	}
	if err := tx.Create(models.NewBMIRecord(profile)).Error; err != nil {
		return fmt.Errorf("failed to create BMI record for user %d: %w", user.ID, err)
	}
	if err := tx.Create(services.BuildDietPlan(profile)).Error; err != nil {
		return fmt.Errorf("failed to create diet plan for user %d: %w", user.ID, err)
	}
	return nil
}

// GenerateDemoProfile returns a profile whose measurements stay inside the
// ranges the API accepts, with metrics already computed.
func GenerateDemoProfile(userID uint, r *mathrand.Rand) *models.HealthProfile {
	sex := demoSexes[r.Intn(len(demoSexes))]
	height := 150 + r.Float64()*45
	// BMI between 16 and 38 keeps every category represented.
	bmi := 16 + r.Float64()*22
	weight := bmi * (height / 100) * (height / 100)

	profile := &models.HealthProfile{
		UserID:            userID,
		HeightCm:          math.Round(height*10) / 10,
		WeightKg:          math.Round(weight*10) / 10,
		Age:               18 + r.Intn(63),
		Sex:               sex,
		ActivityLevel:     demoActivityLevels[r.Intn(len(demoActivityLevels))],
		MedicalConditions: models.StringList(demoConditions[r.Intn(len(demoConditions))]),
	}
	services.RefreshProfile(profile)
	return profile
}

// ClearDemoUsers hard-deletes demo users and everything they own.
func ClearDemoUsers(db *gorm.DB) (int64, error) {
	var ids []uint
	if err := db.Unscoped().Model(&models.User{}).Where("email LIKE ?", demoEmailLike).Pluck("id", &ids).Error; err != nil {
		return 0, fmt.Errorf("error finding demo users: %w", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	owned := []interface{}{
		&models.Task{},
		&models.DietPlan{},
		&models.BMIRecord{},
		&models.HealthProfile{},
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		for _, table := range owned {
			if err := tx.Unscoped().Where("user_id IN ?", ids).Delete(table).Error; err != nil {
				return fmt.Errorf("error clearing table %T: %w", table, err)
			}
		}
		return tx.Unscoped().Where("id IN ?", ids).Delete(&models.User{}).Error
	})
	if err != nil {
		return 0, err
	}

	log.Printf("Deleted %d demo users", len(ids))
	return int64(len(ids)), nil
}

// CountDemoUsers returns how many demo accounts exist.
func CountDemoUsers(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.User{}).Where("email LIKE ?", demoEmailLike).Count(&count).Error
	return count, err
}

// FindDuplicateEmails lists emails stored more than once, ignoring case.
func FindDuplicateEmails(db *gorm.DB) ([]string, error) {
	var emails []string
	err := db.Model(&models.User{}).
		Select("LOWER(email)").
		Group("LOWER(email)").
		Having("COUNT(*) > 1").
		Pluck("LOWER(email)", &emails).Error
	return emails, err
}
