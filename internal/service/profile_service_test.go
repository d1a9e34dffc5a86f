package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"hiresynapse/internal/models"
	"hiresynapse/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileService_EnsureProfileIsIdempotent(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.register(t, "ada")

	first, err := env.profiles.EnsureProfile(ctx, user.ID)
	require.NoError(t, err)
	second, err := env.profiles.EnsureProfile(ctx, user.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, user.Profile.ID, first.ID)

	var n int64
	require.NoError(t, env.db.Model(&models.Profile{}).Where("user_id = ?", user.ID).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestProfileService_DuplicateSkillIsNoOp(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.register(t, "ada")

	res, err := env.profiles.AddChild(ctx, user.ID, models.KindSkill, Fields{"name": "Python"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, res.Outcome)
	require.NotNil(t, res.Child)

	res, err = env.profiles.AddChild(ctx, user.ID, models.KindSkill, Fields{"name": "python"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeDuplicateSkill, res.Outcome)
	assert.Nil(t, res.Child)
	assert.Contains(t, res.Warning, "python")

	skills, err := env.profiles.ListChildren(ctx, user.ID, models.KindSkill)
	require.NoError(t, err)
	require.Len(t, skills, 1)
	assert.Equal(t, "Python", skills[0].(*models.Skill).Name)
}

func TestProfileService_DuplicateSkillFoldsAccents(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.register(t, "ada")

	_, err := env.profiles.AddChild(ctx, user.ID, models.KindSkill, Fields{"name": "Élan"})
	require.NoError(t, err)

	res, err := env.profiles.AddChild(ctx, user.ID, models.KindSkill, Fields{"name": "élan"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeDuplicateSkill, res.Outcome)
}

func TestProfileService_OtherAccountCannotEditOrDelete(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")

	res, err := env.profiles.AddChild(ctx, bob.ID, models.KindAward, Fields{
		"title":  "Employee of the Month",
		"issuer": "Acme",
	})
	require.NoError(t, err)
	id := res.Child.GetID()

	_, err = env.profiles.EditChild(ctx, alice.ID, models.KindAward, id, Fields{"title": "Hijacked"})
	assertAccessDenied(t, err)
	assert.Equal(t, models.CodeForbidden, models.ErrorCode(err))

	err = env.profiles.DeleteChild(ctx, alice.ID, models.KindAward, id)
	assertAccessDenied(t, err)

	_, err = env.profiles.GetChild(ctx, alice.ID, models.KindAward, id)
	assertAccessDenied(t, err)

	child, err := env.profiles.GetChild(ctx, bob.ID, models.KindAward, id)
	require.NoError(t, err)
	assert.Equal(t, "Employee of the Month", child.(*models.Award).Title)
	assert.Equal(t, "Acme", child.(*models.Award).Issuer)
}

func TestProfileService_MissingChildIsNotFound(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	user := env.register(t, "ada")

	err := env.profiles.DeleteChild(context.Background(), user.ID, models.KindProject, 404)
	assertAccessDenied(t, err)
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
}

func TestProfileService_AddChildValidation(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.register(t, "ada")

	tests := []struct {
		name   string
		kind   models.EntityKind
		fields Fields
		field  string
	}{
		{"education without start date", models.KindEducation, Fields{"institution_name": "MIT"}, "start_date"},
		{"experience without start date", models.KindExperience, Fields{"job_title": "Dev", "company_name": "Acme"}, "start_date"},
		{"experience with bad date", models.KindExperience, Fields{"job_title": "Dev", "company_name": "Acme", "start_date": "03/01/2021"}, "start_date"},
		{"certification without issue date", models.KindCertification, Fields{"name": "CKA", "issuing_organization": "CNCF"}, "issue_date"},
		{"project with bad url", models.KindProject, Fields{"name": "Site", "url": "not a url"}, "url"},
		{"project with script url", models.KindProject, Fields{"name": "Site", "url": "javascript:alert(1)"}, "url"},
		{"certification with opaque url", models.KindCertification, Fields{"name": "CKA", "issuing_organization": "CNCF", "issue_date": "2023-01-01", "credential_url": "foo:bar"}, "credential_url"},
		{"education name too long", models.KindEducation, Fields{"institution_name": strings.Repeat("u", 256), "start_date": "2020-01-01"}, "institution_name"},
		{"blank skill", models.KindSkill, Fields{"name": "   "}, "name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.profiles.AddChild(ctx, user.ID, tt.kind, tt.fields)
			assertValidationError(t, err, tt.field)
		})
	}

	for _, kind := range models.EntityKinds {
		n, err := repository.NewProfileRepository(env.db).CountChildren(ctx, kind, user.Profile.ID)
		require.NoError(t, err)
		assert.Zero(t, n, "nothing written for %s", kind)
	}
}

func TestProfileService_TextFieldsAccept255Characters(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.register(t, "ada")

	long := strings.Repeat("x", 255)
	cases := []struct {
		kind   models.EntityKind
		fields Fields
	}{
		{models.KindEducation, Fields{"institution_name": long, "degree": long, "field_of_study": long, "start_date": "2020-01-01"}},
		{models.KindExperience, Fields{"job_title": long, "company_name": long, "start_date": "2020-01-01"}},
		{models.KindProject, Fields{"name": long}},
		{models.KindAward, Fields{"title": long, "issuer": long}},
		{models.KindCertification, Fields{"name": long, "issuing_organization": long, "credential_id": long, "issue_date": "2021-01-01"}},
	}
	for _, tc := range cases {
		res, err := env.profiles.AddChild(ctx, user.ID, tc.kind, tc.fields)
		require.NoError(t, err, "%s", tc.kind)
		require.NotNil(t, res.Child, "%s", tc.kind)
	}

	_, err := env.profiles.AddChild(ctx, user.ID, models.KindAward, Fields{"title": long + "x"})
	assertValidationError(t, err, "title")
}

func TestProfileService_ListEducationNewestFirst(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.register(t, "ada")

	for _, start := range []string{"2020-01-01", "2022-06-01", "2021-03-01"} {
		_, err := env.profiles.AddChild(ctx, user.ID, models.KindEducation, Fields{
			"institution_name": "School " + start,
			"start_date":       start,
		})
		require.NoError(t, err)
	}

	rows, err := env.profiles.ListChildren(ctx, user.ID, models.KindEducation)
	require.NoError(t, err)
	var got []string
	for _, row := range rows {
		got = append(got, row.(*models.Education).StartDate.Format("2006-01-02"))
	}
	assert.Equal(t, []string{"2022-06-01", "2021-03-01", "2020-01-01"}, got)
}

func TestProfileService_EditChildReplacesFields(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.register(t, "ada")

	res, err := env.profiles.AddChild(ctx, user.ID, models.KindExperience, Fields{
		"job_title":    "Engineer",
		"company_name": "Acme",
		"location":     "Berlin",
		"start_date":   "2019-02-01",
		"end_date":     "2021-02-01",
	})
	require.NoError(t, err)

	edited, err := env.profiles.EditChild(ctx, user.ID, models.KindExperience, res.Child.GetID(), Fields{
		"job_title":    "Senior Engineer",
		"company_name": "Acme",
		"start_date":   "2019-02-01",
	})
	require.NoError(t, err)

	exp := edited.(*models.WorkExperience)
	assert.Equal(t, "Senior Engineer", exp.JobTitle)
	assert.Empty(t, exp.Location)
	assert.Nil(t, exp.EndDate)
}

func TestProfileService_SkillRenameCollision(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.register(t, "ada")

	_, err := env.profiles.AddChild(ctx, user.ID, models.KindSkill, Fields{"name": "Go"})
	require.NoError(t, err)
	res, err := env.profiles.AddChild(ctx, user.ID, models.KindSkill, Fields{"name": "Rust"})
	require.NoError(t, err)

	_, err = env.profiles.EditChild(ctx, user.ID, models.KindSkill, res.Child.GetID(), Fields{"name": "GO"})
	assertValidationError(t, err, "name")

	renamed, err := env.profiles.EditChild(ctx, user.ID, models.KindSkill, res.Child.GetID(), Fields{"name": "rust"})
	require.NoError(t, err)
	assert.Equal(t, "rust", renamed.(*models.Skill).Name)
}

func TestProfileService_UpdateProfile(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.register(t, "ada")

	for _, bad := range []string{"example", "javascript:alert(1)", "foo:bar", "mailto:ada@example.com"} {
		_, err := env.profiles.UpdateProfile(ctx, UpdateProfileInput{UserID: user.ID, Website: bad})
		assertValidationError(t, err, "website")
		_, err = env.profiles.UpdateProfile(ctx, UpdateProfileInput{UserID: user.ID, LinkedInURL: bad})
		assertValidationError(t, err, "linkedin_url")
	}

	profile, err := env.profiles.UpdateProfile(ctx, UpdateProfileInput{
		UserID:      user.ID,
		Bio:         "Backend developer",
		Website:     "https://ada.dev",
		LinkedInURL: "https://linkedin.com/in/ada",
	})
	require.NoError(t, err)
	assert.Equal(t, user.Profile.ID, profile.ID)

	full, err := env.profiles.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Backend developer", full.Bio)
	assert.Equal(t, "https://linkedin.com/in/ada", full.LinkedInURL)
}

func TestProfileService_GetProfileOrdersEveryCollection(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.register(t, "ada")

	for _, name := range []string{"kubernetes", "Docker", "ansible"} {
		_, err := env.profiles.AddChild(ctx, user.ID, models.KindSkill, Fields{"name": name})
		require.NoError(t, err)
	}
	_, err := env.profiles.AddChild(ctx, user.ID, models.KindAward, Fields{"title": "Undated"})
	require.NoError(t, err)
	_, err = env.profiles.AddChild(ctx, user.ID, models.KindAward, Fields{"title": "Dated", "date_received": "2020-05-05"})
	require.NoError(t, err)

	profile, err := env.profiles.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, profile.Skills, 3)
	assert.Equal(t, []string{"ansible", "Docker", "kubernetes"},
		[]string{profile.Skills[0].Name, profile.Skills[1].Name, profile.Skills[2].Name})
	require.Len(t, profile.Awards, 2)
	assert.Equal(t, "Dated", profile.Awards[0].Title)
}

// racingProfileRepo reports no existing skill, then loses the insert to the unique index.
type racingProfileRepo struct {
	repository.ProfileRepository
}

func (racingProfileRepo) GetByUserID(_ context.Context, userID uint) (*models.Profile, error) {
	return &models.Profile{ID: 1, UserID: userID}, nil
}

func (racingProfileRepo) SkillExists(context.Context, uint, string, uint) (bool, error) {
	return false, nil
}

func (racingProfileRepo) CreateChild(context.Context, models.ProfileChild) error {
	return repository.ErrDuplicate
}

type directTransactor struct{}

func (directTransactor) WithinTransaction(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func TestProfileService_AddSkillLosingRaceIsDuplicate(t *testing.T) {
	t.Parallel()
	svc := NewProfileService(racingProfileRepo{}, directTransactor{})

	res, err := svc.AddChild(context.Background(), 1, models.KindSkill, Fields{"name": "Go"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeDuplicateSkill, res.Outcome)
}

type failingProfileRepo struct {
	repository.ProfileRepository
	err error
}

func (r failingProfileRepo) GetByUserID(context.Context, uint) (*models.Profile, error) {
	return nil, r.err
}

func TestProfileService_StorageFailureIsInternal(t *testing.T) {
	t.Parallel()
	storageErr := models.NewInternalError(errors.New("connection reset"))
	svc := NewProfileService(failingProfileRepo{err: storageErr}, directTransactor{})

	_, err := svc.AddChild(context.Background(), 1, models.KindProject, Fields{"name": "Site"})
	assert.ErrorIs(t, err, storageErr)
	assert.Equal(t, models.CodeInternal, models.ErrorCode(err))

	_, err = svc.EnsureProfile(context.Background(), 1)
	assert.Equal(t, models.CodeInternal, models.ErrorCode(err))
}

func TestProfileService_UnknownKind(t *testing.T) {
	t.Parallel()
	svc := NewProfileService(racingProfileRepo{}, directTransactor{})

	_, err := svc.AddChild(context.Background(), 1, models.EntityKind("hobbies"), Fields{})
	assertValidationError(t, err, "")
	_, err = svc.ListChildren(context.Background(), 1, models.EntityKind("hobbies"))
	assertValidationError(t, err, "")
}
