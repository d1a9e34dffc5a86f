package seed

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"hiresynapse/internal/middleware"
	"hiresynapse/internal/models"
	"hiresynapse/internal/service"

	"github.com/brianvoe/gofakeit/v6"
)

// DemoPassword is the password of every generated demo account.
const DemoPassword = "Demo-Password-2024!"

var demoSkills = []string{
	"Go", "Python", "SQL", "PostgreSQL", "Redis", "Docker", "Kubernetes", "React",
	"TypeScript", "AWS", "Linux", "Git", "REST APIs", "GraphQL", "Terraform",
}

// DemoOptions controls how much data the demo seeder generates.
type DemoOptions struct {
	Users        int
	Applications int
}

// DemoSeeder creates fake accounts with populated profiles through the service layer, so every
// generated row passes the same validation and ownership rules as real input.
type DemoSeeder struct {
	users        *service.UserService
	profiles     *service.ProfileService
	applications *service.ApplicationService
	letters      *service.CoverLetterService
	faker        *gofakeit.Faker
}

// NewDemoSeeder returns a seeder whose output is reproducible for a given seed. Zero picks a
// time-based seed.
func NewDemoSeeder(users *service.UserService, profiles *service.ProfileService,
	applications *service.ApplicationService, letters *service.CoverLetterService, seed int64) *DemoSeeder {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &DemoSeeder{
		users:        users,
		profiles:     profiles,
		applications: applications,
		letters:      letters,
		faker:        gofakeit.New(seed),
	}
}

// Run generates opts.Users accounts and returns them.
func (d *DemoSeeder) Run(ctx context.Context, opts DemoOptions) ([]*models.User, error) {
	created := make([]*models.User, 0, opts.Users)
	for i := 1; i <= opts.Users; i++ {
		user, err := d.account(ctx, i)
		if err != nil {
			return created, err
		}
		if err := d.populateProfile(ctx, user.ID); err != nil {
			return created, fmt.Errorf("profile for %s: %w", user.Username, err)
		}
		if err := d.tracking(ctx, user.ID, opts.Applications); err != nil {
			return created, fmt.Errorf("applications for %s: %w", user.Username, err)
		}
		created = append(created, user)
	}

	middleware.Logger.InfoContext(ctx, "demo data seeded", slog.Int("users", len(created)))
	return created, nil
}

func (d *DemoSeeder) account(ctx context.Context, n int) (*models.User, error) {
	username := fmt.Sprintf("demo%02d_%s", n, strings.ToLower(d.faker.LetterN(5)))
	return d.users.Register(ctx, service.RegisterInput{
		Username: username,
		Email:    username + "@demo.hiresynapse.dev",
		Password: DemoPassword,
	})
}

func (d *DemoSeeder) date(from, to time.Time) string {
	return d.faker.DateRange(from, to).Format("2006-01-02")
}

func (d *DemoSeeder) populateProfile(ctx context.Context, userID uint) error {
	f := d.faker
	now := time.Now()
	tenYearsAgo := now.AddDate(-10, 0, 0)
	fourYearsAgo := now.AddDate(-4, 0, 0)

	_, err := d.profiles.UpdateProfile(ctx, service.UpdateProfileInput{
		UserID:   userID,
		Bio:      f.Paragraph(1, 3, 12, " "),
		Summary:  f.Sentence(12),
		Location: f.City(),
		Website:  f.URL(),
	})
	if err != nil {
		return err
	}

	children := []struct {
		kind   models.EntityKind
		fields service.Fields
	}{
		{models.KindEducation, service.Fields{
			"institution_name": f.Company() + " University",
			"degree":           f.RandomString([]string{"B.Sc.", "M.Sc.", "B.Tech", "MBA"}),
			"field_of_study":   f.RandomString([]string{"Computer Science", "Mathematics", "Economics", "Design"}),
			"start_date":       d.date(tenYearsAgo, fourYearsAgo),
		}},
		{models.KindExperience, service.Fields{
			"job_title":    f.JobTitle(),
			"company_name": f.Company(),
			"location":     f.City(),
			"start_date":   d.date(fourYearsAgo, now),
			"description":  f.Sentence(15),
		}},
		{models.KindProject, service.Fields{
			"name":        f.AppName(),
			"description": f.Sentence(10),
			"url":         f.URL(),
		}},
		{models.KindCertification, service.Fields{
			"name":                 f.RandomString([]string{"AWS Solutions Architect", "CKA", "PMP", "Scrum Master"}),
			"issuing_organization": f.Company(),
			"issue_date":           d.date(fourYearsAgo, now),
		}},
	}
	for _, skill := range d.pickSkills(f.Number(3, 6)) {
		children = append(children, struct {
			kind   models.EntityKind
			fields service.Fields
		}{models.KindSkill, service.Fields{"name": skill}})
	}

	for _, c := range children {
		if _, err := d.profiles.AddChild(ctx, userID, c.kind, c.fields); err != nil {
			return fmt.Errorf("%s: %w", c.kind, err)
		}
	}
	return nil
}

func (d *DemoSeeder) pickSkills(n int) []string {
	out := make([]string, 0, n)
	seen := map[string]bool{}
	for len(out) < n && len(seen) < len(demoSkills) {
		s := d.faker.RandomString(demoSkills)
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func (d *DemoSeeder) tracking(ctx context.Context, userID uint, n int) error {
	f := d.faker
	statuses := make([]string, 0, len(models.ApplicationStatuses))
	for _, s := range models.ApplicationStatuses {
		statuses = append(statuses, string(s))
	}

	for i := 0; i < n; i++ {
		company := f.Company()
		_, err := d.applications.Create(ctx, service.ApplicationInput{
			UserID:      userID,
			CompanyName: company,
			JobTitle:    f.JobTitle(),
			Location:    f.City(),
			Status:      models.ApplicationStatus(f.RandomString(statuses)),
			DateApplied: d.date(time.Now().AddDate(0, -3, 0), time.Now()),
			Notes:       f.Sentence(8),
		})
		if err != nil {
			return err
		}
		if i == 0 {
			_, err := d.letters.Create(ctx, service.CoverLetterInput{
				UserID: userID,
				Title:  company,
				Body:   f.Paragraph(3, 4, 15, "\n\n"),
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}
