// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"devlink/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

var statuses = []string{
	"Developer", "Junior Developer", "Senior Developer", "Manager",
	"Student or Learning", "Instructor or Teacher", "Intern",
}

var skillPool = []string{
	"Go", "JavaScript", "TypeScript", "Python", "SQL", "PostgreSQL",
	"Redis", "Docker", "Kubernetes", "React", "Vue", "HTML", "CSS",
	"GraphQL", "gRPC", "AWS", "Terraform", "Linux", "Git",
}

// Seeder builds domain entities and persists them to the database.
type Seeder struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewSeeder creates a new Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // Weak random number generator is fine for seeding
	return &Seeder{db: db, r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Seed populates the database with test data
func (s *Seeder) Seed(opts Options) error {
	log.Printf("Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	users, err := s.CreateUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("%d test users created", len(users))

	profiles := 0
	for _, user := range users {
		// Not every user fills out a profile.
		if s.r.Intn(10) < 8 {
			if _, err := s.CreateProfile(user); err != nil {
				return fmt.Errorf("failed to create profile: %w", err)
			}
			profiles++
		}
	}
	log.Printf("%d profiles created", profiles)

	posts, err := s.CreatePosts(users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("%d posts created", len(posts))

	if err := s.CreateEngagement(users, posts); err != nil {
		return fmt.Errorf("failed to create engagement: %w", err)
	}

	log.Println("Database seeding completed successfully!")
	log.Println("All test users have the password: password123")
	return nil
}

// ClearAll truncates all seeded tables.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE comments, likes, posts, experiences, educations, profiles, users RESTART IDENTITY CASCADE;`
	return s.db.Exec(sql).Error
}

// CreateUsers persists n sample users sharing the password "password123".
func (s *Seeder) CreateUsers(n int) ([]*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		email := fmt.Sprintf("%d.%s", i, gofakeit.Email())
		user := &models.User{
			Name:     gofakeit.Name(),
			Email:    email,
			Password: string(hashed),
			Avatar:   models.GravatarURL(email),
		}
		if err := s.db.Create(user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// CreateProfile persists a sample profile for the given user, with a few
// experience and education entries.
func (s *Seeder) CreateProfile(user *models.User) (*models.Profile, error) {
	skills := make([]string, 0, 5)
	for _, idx := range s.r.Perm(len(skillPool))[:2+s.r.Intn(4)] {
		skills = append(skills, skillPool[idx])
	}

	profile := &models.Profile{
		UserID:         user.ID,
		Handle:         strings.ToLower(gofakeit.Username()),
		Status:         statuses[s.r.Intn(len(statuses))],
		Company:        gofakeit.Company(),
		Website:        gofakeit.URL(),
		Location:       fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.StateAbr()),
		Bio:            gofakeit.Sentence(12),
		GithubUsername: strings.ToLower(gofakeit.Username()),
		Skills:         skills,
		Social: models.SocialLinks{
			Linkedin:  fmt.Sprintf("https://linkedin.com/in/%s", strings.ToLower(gofakeit.Username())),
			Instagram: fmt.Sprintf("https://instagram.com/%s", strings.ToLower(gofakeit.Username())),
		},
	}
	if err := s.db.Create(profile).Error; err != nil {
		return nil, err
	}

	for i := 0; i < 1+s.r.Intn(3); i++ {
		from := gofakeit.DateRange(time.Now().AddDate(-8, 0, 0), time.Now().AddDate(-1, 0, 0))
		exp := &models.Experience{
			ProfileID:   profile.ID,
			Title:       gofakeit.JobTitle(),
			Company:     gofakeit.Company(),
			Location:    gofakeit.City(),
			From:        from,
			Current:     i == 0,
			Description: gofakeit.Sentence(10),
		}
		if !exp.Current {
			to := gofakeit.DateRange(from, time.Now())
			exp.To = &to
		}
		if err := s.db.Create(exp).Error; err != nil {
			return nil, err
		}
	}

	from := gofakeit.DateRange(time.Now().AddDate(-12, 0, 0), time.Now().AddDate(-5, 0, 0))
	to := from.AddDate(4, 0, 0)
	edu := &models.Education{
		ProfileID:    profile.ID,
		School:       fmt.Sprintf("%s University", gofakeit.City()),
		Degree:       "BSc",
		FieldOfStudy: "Computer Science",
		From:         from,
		To:           &to,
	}
	if err := s.db.Create(edu).Error; err != nil {
		return nil, err
	}

	return profile, nil
}

// CreatePosts persists n sample posts spread across the given users with
// realistic created_at spread.
func (s *Seeder) CreatePosts(users []*models.User, n int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, nil
	}

	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[s.r.Intn(len(users))]
		post := &models.Post{
			UserID: author.ID,
			Text:   gofakeit.Paragraph(1, 2, 8, " "),
			Name:   author.Name,
			Avatar: author.Avatar,
		}
		daysBack := s.r.Intn(90)
		hoursBack := s.r.Intn(24)
		post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)
		posts = append(posts, post)
	}
	if err := s.db.Create(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// CreateEngagement sprinkles likes and comments over the given posts.
func (s *Seeder) CreateEngagement(users []*models.User, posts []*models.Post) error {
	likes := 0
	comments := 0
	for _, post := range posts {
		for _, idx := range s.r.Perm(len(users))[:s.r.Intn(len(users)/2+1)] {
			like := &models.Like{PostID: post.ID, UserID: users[idx].ID}
			if err := s.db.Create(like).Error; err != nil {
				return err
			}
			likes++
		}

		for i := 0; i < s.r.Intn(4); i++ {
			author := users[s.r.Intn(len(users))]
			comment := &models.Comment{
				PostID: post.ID,
				UserID: author.ID,
				Text:   gofakeit.Sentence(8),
				Name:   author.Name,
				Avatar: author.Avatar,
			}
			if err := s.db.Create(comment).Error; err != nil {
				return err
			}
			comments++
		}
	}
	log.Printf("%d likes and %d comments created", likes, comments)
	return nil
}
