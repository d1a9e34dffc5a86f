package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hiresynapse/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRepository persists profiles and their six child collections.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	Create(ctx context.Context, profile *models.Profile) error
	Update(ctx context.Context, profile *models.Profile) error
	// GetAggregate loads the profile with every child collection, each sorted by orderBy[kind].
	GetAggregate(ctx context.Context, userID uint, orderBy map[models.EntityKind]string) (*models.Profile, error)

	FindChild(ctx context.Context, kind models.EntityKind, id uint) (models.ProfileChild, error)
	ListChildren(ctx context.Context, kind models.EntityKind, profileID uint, orderBy string) ([]models.ProfileChild, error)
	CountChildren(ctx context.Context, kind models.EntityKind, profileID uint) (int64, error)
	CreateChild(ctx context.Context, child models.ProfileChild) error
	SaveChild(ctx context.Context, child models.ProfileChild) error
	DeleteChild(ctx context.Context, child models.ProfileChild) error
	// SkillExists reports whether the profile has a skill named name ignoring case, other than excludeID.
	SkillExists(ctx context.Context, profileID uint, name string, excludeID uint) (bool, error)
}

// ErrDuplicate is returned by CreateChild and SaveChild when a unique index rejects the row.
var ErrDuplicate = errors.New("duplicate row")

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository returns a new ProfileRepository implementation.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// preloadNames maps child kinds to the Profile association that holds them.
var preloadNames = map[models.EntityKind]string{
	models.KindEducation:     "Education",
	models.KindExperience:    "Experience",
	models.KindSkill:         "Skills",
	models.KindProject:       "Projects",
	models.KindAward:         "Awards",
	models.KindCertification: "Certifications",
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	if err := conn(ctx, r.db).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, notFoundOr(err, "Profile for user", userID)
	}
	return &profile, nil
}

// Create inserts profile. A concurrent insert for the same user yields ErrDuplicate.
func (r *profileRepository) Create(ctx context.Context, profile *models.Profile) error {
	if err := conn(ctx, r.db).Omit(clause.Associations).Create(profile).Error; err != nil {
		if IsDuplicate(err) {
			return ErrDuplicate
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *profileRepository) Update(ctx context.Context, profile *models.Profile) error {
	if err := conn(ctx, r.db).Omit(clause.Associations).Save(profile).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *profileRepository) GetAggregate(ctx context.Context, userID uint, orderBy map[models.EntityKind]string) (*models.Profile, error) {
	q := conn(ctx, r.db)
	for _, kind := range models.EntityKinds {
		order := orderBy[kind]
		q = q.Preload(preloadNames[kind], func(db *gorm.DB) *gorm.DB {
			if order == "" {
				return db
			}
			return db.Order(order)
		})
	}

	var profile models.Profile
	if err := q.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, notFoundOr(err, "Profile for user", userID)
	}
	return &profile, nil
}

func (r *profileRepository) FindChild(ctx context.Context, kind models.EntityKind, id uint) (models.ProfileChild, error) {
	child, ok := models.NewChild(kind)
	if !ok {
		return nil, fmt.Errorf("unknown profile child kind %q", kind)
	}
	if err := conn(ctx, r.db).First(child, id).Error; err != nil {
		return nil, notFoundOr(err, kind.Label(), id)
	}
	return child, nil
}

func (r *profileRepository) ListChildren(ctx context.Context, kind models.EntityKind, profileID uint, orderBy string) ([]models.ProfileChild, error) {
	q := conn(ctx, r.db).Where("profile_id = ?", profileID)
	if orderBy != "" {
		q = q.Order(orderBy)
	}

	var (
		out []models.ProfileChild
		err error
	)
	switch kind {
	case models.KindEducation:
		out, err = findChildren[models.Education](q)
	case models.KindExperience:
		out, err = findChildren[models.WorkExperience](q)
	case models.KindSkill:
		out, err = findChildren[models.Skill](q)
	case models.KindProject:
		out, err = findChildren[models.Project](q)
	case models.KindAward:
		out, err = findChildren[models.Award](q)
	case models.KindCertification:
		out, err = findChildren[models.Certification](q)
	default:
		return nil, fmt.Errorf("unknown profile child kind %q", kind)
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return out, nil
}

func findChildren[T any, PT interface {
	*T
	models.ProfileChild
}](q *gorm.DB) ([]models.ProfileChild, error) {
	var rows []T
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]models.ProfileChild, len(rows))
	for i := range rows {
		out[i] = PT(&rows[i])
	}
	return out, nil
}

func (r *profileRepository) CountChildren(ctx context.Context, kind models.EntityKind, profileID uint) (int64, error) {
	child, ok := models.NewChild(kind)
	if !ok {
		return 0, fmt.Errorf("unknown profile child kind %q", kind)
	}
	var n int64
	if err := conn(ctx, r.db).Model(child).Where("profile_id = ?", profileID).Count(&n).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}

func (r *profileRepository) CreateChild(ctx context.Context, child models.ProfileChild) error {
	if err := conn(ctx, r.db).Create(child).Error; err != nil {
		if IsDuplicate(err) {
			return ErrDuplicate
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *profileRepository) SaveChild(ctx context.Context, child models.ProfileChild) error {
	if err := conn(ctx, r.db).Save(child).Error; err != nil {
		if IsDuplicate(err) {
			return ErrDuplicate
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *profileRepository) DeleteChild(ctx context.Context, child models.ProfileChild) error {
	if err := conn(ctx, r.db).Delete(child).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *profileRepository) SkillExists(ctx context.Context, profileID uint, name string, excludeID uint) (bool, error) {
	db := conn(ctx, r.db)
	if db.Dialector.Name() == "sqlite" {
		return skillExistsFolded(db, profileID, name, excludeID)
	}
	q := db.Model(&models.Skill{}).
		Where("profile_id = ? AND lower(name) = lower(?)", profileID, name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return n > 0, nil
}

// skillExistsFolded compares names in Go. SQLite's lower() only folds ASCII, so "Élan" and
// "élan" would otherwise both pass.
func skillExistsFolded(db *gorm.DB, profileID uint, name string, excludeID uint) (bool, error) {
	q := db.Model(&models.Skill{}).Where("profile_id = ?", profileID)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var names []string
	if err := q.Pluck("name", &names).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	for _, existing := range names {
		if strings.EqualFold(existing, name) {
			return true, nil
		}
	}
	return false, nil
}
