// Package service holds the application's business rules on top of the repositories.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"hiresynapse/internal/middleware"
	"hiresynapse/internal/models"
	"hiresynapse/internal/observability"
	"hiresynapse/internal/repository"
	"hiresynapse/internal/validation"

	"go.opentelemetry.io/otel/attribute"
)

// Outcome describes what AddChild did with a submission.
type Outcome string

const (
	OutcomeCreated        Outcome = "created"
	OutcomeDuplicateSkill Outcome = "duplicate_skill"
)

// AddChildResult is returned by AddChild. Child is nil when nothing was written.
type AddChildResult struct {
	Child   models.ProfileChild
	Outcome Outcome
	Warning string
}

type UpdateProfileInput struct {
	UserID      uint   `json:"-"`
	Bio         string `json:"bio"`
	Summary     string `json:"summary"`
	Location    string `json:"location" validate:"max=100"`
	Website     string `json:"website" validate:"omitempty,weburl,max=200"`
	LinkedInURL string `json:"linkedin_url" validate:"omitempty,weburl,max=200"`
}

// childOrder is the list order of each child kind, newest first for dated entries.
var childOrder = map[models.EntityKind]string{
	models.KindEducation:     "start_date DESC, id DESC",
	models.KindExperience:    "start_date DESC, id DESC",
	models.KindSkill:         "lower(name) ASC, id ASC",
	models.KindProject:       "start_date DESC NULLS LAST, name ASC",
	models.KindAward:         "date_received DESC NULLS LAST, title ASC",
	models.KindCertification: "issue_date DESC, name ASC",
}

// ProfileService manages a user's profile and its six child collections. Every child
// operation is scoped to the requesting account's profile.
type ProfileService struct {
	profiles repository.ProfileRepository
	tx       repository.Transactor
}

func NewProfileService(profiles repository.ProfileRepository, tx repository.Transactor) *ProfileService {
	return &ProfileService{profiles: profiles, tx: tx}
}

// EnsureProfile returns the user's profile, creating it on first call.
func (s *ProfileService) EnsureProfile(ctx context.Context, userID uint) (*models.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if models.ErrorCode(err) != models.CodeNotFound {
		return nil, err
	}

	profile = &models.Profile{UserID: userID}
	if err := s.profiles.Create(ctx, profile); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return s.profiles.GetByUserID(ctx, userID)
		}
		return nil, err
	}
	middleware.Logger.InfoContext(ctx, "profile created", slog.Uint64("user_id", uint64(userID)))
	return profile, nil
}

// GetProfile returns the profile with every child collection in list order.
func (s *ProfileService) GetProfile(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.profiles.GetAggregate(ctx, userID, childOrder)
}

func (s *ProfileService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.Profile, error) {
	if errs := validation.Struct(in); errs != nil {
		return nil, models.NewFieldValidationError(errs)
	}

	var profile *models.Profile
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		profile, err = s.profiles.GetByUserID(ctx, in.UserID)
		if err != nil {
			return err
		}
		profile.Bio = in.Bio
		profile.Summary = in.Summary
		profile.Location = in.Location
		profile.Website = in.Website
		profile.LinkedInURL = in.LinkedInURL
		return s.profiles.Update(ctx, profile)
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// authorizeChild loads the child row and checks that it belongs to userID's profile.
// It fails with NOT_FOUND when the row is absent and FORBIDDEN when another profile owns it.
func (s *ProfileService) authorizeChild(ctx context.Context, userID uint, kind models.EntityKind, id uint) (models.ProfileChild, error) {
	child, err := s.profiles.FindChild(ctx, kind, id)
	if err != nil {
		if models.ErrorCode(err) == models.CodeNotFound {
			observability.AccessDenied.WithLabelValues(string(kind), "not_found").Inc()
		}
		return nil, err
	}
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if child.GetProfileID() != profile.ID {
		observability.AccessDenied.WithLabelValues(string(kind), "forbidden").Inc()
		middleware.Logger.WarnContext(ctx, "profile child access denied",
			slog.String("kind", string(kind)),
			slog.Uint64("child_id", uint64(id)),
			slog.Uint64("user_id", uint64(userID)))
		return nil, models.NewForbiddenError(kind.Label(), id)
	}
	return child, nil
}

// AddChild validates fields and attaches a new row of kind to the user's profile.
// A skill whose name the profile already has, ignoring case, is reported as
// OutcomeDuplicateSkill and nothing is written.
func (s *ProfileService) AddChild(ctx context.Context, userID uint, kind models.EntityKind, fields Fields) (res *AddChildResult, err error) {
	ctx, span := observability.StartSpan(ctx, "service", "ProfileService.AddChild", attribute.String("kind", string(kind)))
	defer func() { observability.EndSpan(span, err) }()

	in, err := decodeChild(kind, fields)
	if err != nil {
		s.count(kind, "add", "invalid")
		return nil, err
	}
	duplicate := &AddChildResult{Outcome: OutcomeDuplicateSkill}
	if skill, ok := in.(*skillInput); ok {
		duplicate.Warning = fmt.Sprintf("Skill '%s' already exists in your profile.", skill.Name)
	}

	res = &AddChildResult{Outcome: OutcomeCreated}
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		profile, err := s.profiles.GetByUserID(ctx, userID)
		if err != nil {
			return err
		}
		if skill, ok := in.(*skillInput); ok {
			exists, err := s.profiles.SkillExists(ctx, profile.ID, skill.Name, 0)
			if err != nil {
				return err
			}
			if exists {
				res = duplicate
				return nil
			}
		}

		child, _ := models.NewChild(kind)
		in.apply(child)
		child.SetProfileID(profile.ID)
		if err := s.profiles.CreateChild(ctx, child); err != nil {
			return err
		}
		res.Child = child
		return nil
	})
	if errors.Is(err, repository.ErrDuplicate) && kind == models.KindSkill {
		// A concurrent add won the race to the unique index.
		res, err = duplicate, nil
	}
	if err != nil {
		s.count(kind, "add", "error")
		return nil, err
	}

	s.count(kind, "add", string(res.Outcome))
	if res.Child != nil {
		middleware.Logger.InfoContext(ctx, "profile child added",
			slog.String("kind", string(kind)),
			slog.Uint64("child_id", uint64(res.Child.GetID())))
	}
	return res, nil
}

// GetChild returns one child row owned by userID's profile.
func (s *ProfileService) GetChild(ctx context.Context, userID uint, kind models.EntityKind, id uint) (models.ProfileChild, error) {
	return s.authorizeChild(ctx, userID, kind, id)
}

// EditChild replaces the editable fields of a child row owned by userID's profile.
func (s *ProfileService) EditChild(ctx context.Context, userID uint, kind models.EntityKind, id uint, fields Fields) (child models.ProfileChild, err error) {
	ctx, span := observability.StartSpan(ctx, "service", "ProfileService.EditChild", attribute.String("kind", string(kind)))
	defer func() { observability.EndSpan(span, err) }()

	in, err := decodeChild(kind, fields)
	if err != nil {
		s.count(kind, "edit", "invalid")
		return nil, err
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		child, err = s.authorizeChild(ctx, userID, kind, id)
		if err != nil {
			return err
		}
		if skill, ok := in.(*skillInput); ok {
			taken, err := s.profiles.SkillExists(ctx, child.GetProfileID(), skill.Name, id)
			if err != nil {
				return err
			}
			if taken {
				return repository.ErrDuplicate
			}
		}
		in.apply(child)
		return s.profiles.SaveChild(ctx, child)
	})
	if errors.Is(err, repository.ErrDuplicate) {
		err = models.NewFieldValidationError(map[string]string{
			"name": "You already have a skill with this name.",
		})
	}
	if err != nil {
		s.count(kind, "edit", models.ErrorCode(err))
		return nil, err
	}

	s.count(kind, "edit", "updated")
	return child, nil
}

// DeleteChild permanently removes a child row owned by userID's profile.
func (s *ProfileService) DeleteChild(ctx context.Context, userID uint, kind models.EntityKind, id uint) (err error) {
	ctx, span := observability.StartSpan(ctx, "service", "ProfileService.DeleteChild", attribute.String("kind", string(kind)))
	defer func() { observability.EndSpan(span, err) }()

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		child, err := s.authorizeChild(ctx, userID, kind, id)
		if err != nil {
			return err
		}
		return s.profiles.DeleteChild(ctx, child)
	})
	if err != nil {
		s.count(kind, "delete", models.ErrorCode(err))
		return err
	}

	s.count(kind, "delete", "deleted")
	middleware.Logger.InfoContext(ctx, "profile child deleted",
		slog.String("kind", string(kind)),
		slog.Uint64("child_id", uint64(id)))
	return nil
}

// ListChildren returns the user's rows of kind in list order.
func (s *ProfileService) ListChildren(ctx context.Context, userID uint, kind models.EntityKind) ([]models.ProfileChild, error) {
	if _, ok := models.NewChild(kind); !ok {
		return nil, models.NewValidationError("Unknown profile section: " + string(kind))
	}
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.profiles.ListChildren(ctx, kind, profile.ID, childOrder[kind])
}

func (s *ProfileService) count(kind models.EntityKind, op, outcome string) {
	if outcome == "" {
		outcome = "error"
	}
	observability.ProfileChildOperations.WithLabelValues(string(kind), op, outcome).Inc()
}
