package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"devlink/internal/models"
	"devlink/internal/repository"
)

// UpsertOutcome distinguishes whether an upsert created a fresh profile or
// updated an existing one.
type UpsertOutcome int

const (
	OutcomeCreated UpsertOutcome = iota
	OutcomeUpdated
)

// UpsertProfileInput carries the full replacement state for a user's profile.
// Skills is the raw comma separated string from the client.
type UpsertProfileInput struct {
	UserID         uint
	Handle         string
	Status         string
	Company        string
	Website        string
	Location       string
	Bio            string
	GithubUsername string
	Skills         string
	Social         models.SocialLinks
}

// ExperienceInput describes a single work experience entry.
type ExperienceInput struct {
	Title       string
	Company     string
	Location    string
	From        time.Time
	To          *time.Time
	Current     bool
	Description string
}

// EducationInput describes a single education entry.
type EducationInput struct {
	School       string
	Degree       string
	FieldOfStudy string
	From         time.Time
	To           *time.Time
	Current      bool
	Description  string
}

// ProfileService implements profile management on top of the profile and user
// repositories.
type ProfileService struct {
	profiles repository.ProfileRepository
	users    repository.UserRepository
	posts    repository.PostRepository
}

func NewProfileService(profiles repository.ProfileRepository, users repository.UserRepository, posts repository.PostRepository) *ProfileService {
	return &ProfileService{profiles: profiles, users: users, posts: posts}
}

// SplitSkills turns a comma separated skills string into a trimmed list,
// dropping empty segments.
func SplitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

func (s *ProfileService) validateUpsert(input UpsertProfileInput) error {
	if strings.TrimSpace(input.Handle) == "" {
		return models.NewValidationError("Handle is required")
	}
	if strings.TrimSpace(input.Status) == "" {
		return models.NewValidationError("Status is required")
	}
	if strings.TrimSpace(input.Skills) == "" {
		return models.NewValidationError("Skills is required")
	}
	return nil
}

// Upsert creates the caller's profile if none exists, otherwise replaces its
// scalar fields. The returned outcome tells the handler which status to send.
func (s *ProfileService) Upsert(ctx context.Context, input UpsertProfileInput) (*models.Profile, UpsertOutcome, error) {
	if err := s.validateUpsert(input); err != nil {
		return nil, 0, err
	}

	existing, err := s.profiles.GetByUserID(ctx, input.UserID)
	if err != nil {
		var appErr *models.AppError
		if !errors.As(err, &appErr) || appErr.Code != models.CodeNotFound {
			return nil, 0, err
		}
		existing = nil
	}

	outcome := OutcomeUpdated
	profile := existing
	if profile == nil {
		profile = &models.Profile{UserID: input.UserID}
		outcome = OutcomeCreated
	}

	profile.Handle = strings.TrimSpace(input.Handle)
	profile.Status = strings.TrimSpace(input.Status)
	profile.Company = input.Company
	profile.Website = input.Website
	profile.Location = input.Location
	profile.Bio = input.Bio
	profile.GithubUsername = input.GithubUsername
	profile.Skills = SplitSkills(input.Skills)
	profile.Social = input.Social

	if outcome == OutcomeCreated {
		if err := s.profiles.Create(ctx, profile); err != nil {
			return nil, 0, err
		}
	} else {
		if err := s.profiles.Update(ctx, profile); err != nil {
			return nil, 0, err
		}
	}

	// Re-read so the response carries the preloaded user and entry lists.
	saved, err := s.profiles.GetByUserID(ctx, input.UserID)
	if err != nil {
		return nil, 0, err
	}
	return saved, outcome, nil
}

// GetByUserID returns the profile belonging to the given user.
func (s *ProfileService) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.profiles.GetByUserID(ctx, userID)
}

// List returns all profiles, newest first.
func (s *ProfileService) List(ctx context.Context) ([]*models.Profile, error) {
	return s.profiles.List(ctx)
}

// AddExperience prepends a work experience entry to the caller's profile.
func (s *ProfileService) AddExperience(ctx context.Context, userID uint, input ExperienceInput) (*models.Profile, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if strings.TrimSpace(input.Company) == "" {
		return nil, models.NewValidationError("Company is required")
	}
	if input.From.IsZero() {
		return nil, models.NewValidationError("From date is required")
	}

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	exp := &models.Experience{
		ProfileID:   profile.ID,
		Title:       strings.TrimSpace(input.Title),
		Company:     strings.TrimSpace(input.Company),
		Location:    input.Location,
		From:        input.From,
		To:          input.To,
		Current:     input.Current,
		Description: input.Description,
	}
	if err := s.profiles.AddExperience(ctx, exp); err != nil {
		return nil, err
	}
	return s.profiles.GetByUserID(ctx, userID)
}

// RemoveExperience deletes the experience entry with the given id from the
// caller's profile. An unknown id leaves the profile unchanged.
func (s *ProfileService) RemoveExperience(ctx context.Context, userID, expID uint) (*models.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.profiles.RemoveExperience(ctx, profile.ID, expID); err != nil {
		return nil, err
	}
	return s.profiles.GetByUserID(ctx, userID)
}

// AddEducation prepends an education entry to the caller's profile.
func (s *ProfileService) AddEducation(ctx context.Context, userID uint, input EducationInput) (*models.Profile, error) {
	if strings.TrimSpace(input.School) == "" {
		return nil, models.NewValidationError("School is required")
	}
	if strings.TrimSpace(input.Degree) == "" {
		return nil, models.NewValidationError("Degree is required")
	}
	if strings.TrimSpace(input.FieldOfStudy) == "" {
		return nil, models.NewValidationError("Field of study is required")
	}
	if input.From.IsZero() {
		return nil, models.NewValidationError("From date is required")
	}

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	edu := &models.Education{
		ProfileID:    profile.ID,
		School:       strings.TrimSpace(input.School),
		Degree:       strings.TrimSpace(input.Degree),
		FieldOfStudy: strings.TrimSpace(input.FieldOfStudy),
		From:         input.From,
		To:           input.To,
		Current:      input.Current,
		Description:  input.Description,
	}
	if err := s.profiles.AddEducation(ctx, edu); err != nil {
		return nil, err
	}
	return s.profiles.GetByUserID(ctx, userID)
}

// RemoveEducation deletes the education entry with the given id from the
// caller's profile. An unknown id leaves the profile unchanged.
func (s *ProfileService) RemoveEducation(ctx context.Context, userID, eduID uint) (*models.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.profiles.RemoveEducation(ctx, profile.ID, eduID); err != nil {
		return nil, err
	}
	return s.profiles.GetByUserID(ctx, userID)
}

// DeleteAccount removes the caller's posts, profile, and user record.
func (s *ProfileService) DeleteAccount(ctx context.Context, userID uint) error {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return err
	}
	for _, p := range posts {
		if p.UserID == userID {
			if err := s.posts.Delete(ctx, p.ID); err != nil {
				return err
			}
		}
	}
	if err := s.profiles.Delete(ctx, userID); err != nil {
		return err
	}
	return s.users.Delete(ctx, userID)
}
