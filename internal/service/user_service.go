package service

import (
	"context"
	"fmt"

	"collegeconnect/internal/domain"
	"collegeconnect/internal/security"
)

// UserService provides profile and directory operations.
type UserService struct {
	users domain.UserRepository
	hash  *security.PasswordHasher
}

func NewUserService(users domain.UserRepository, hash *security.PasswordHasher) *UserService {
	return &UserService{users: users, hash: hash}
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// ListStudents returns the full directory. Filtering by branch/year happens
// client-side.
func (s *UserService) ListStudents(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

// UpdateProfileInput carries partial profile updates. Nil fields are left
// untouched. Email is the login key and is not updatable here.
type UpdateProfileInput struct {
	Name            *string
	Password        *string
	ContactNumber   *string
	CollegeName     *string
	Branch          *string
	Year            *string
	RollNo          *string
	Bio             *string
	ProfilePhoto    *string
	Skills          *[]string
	CurrentLearning *[]string

	HackathonParticipation *string
	CodingContestRanks     *string
	Internship             *string
	CollegeClubs           *string
	ProfileLinks           *domain.ProfileLinks
}

func (s *UserService) UpdateProfile(ctx context.Context, userID int64, in UpdateProfileInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", domain.ErrValidation)
		}
		user.Name = *in.Name
	}
	if in.Branch != nil {
		if !domain.ValidBranch(*in.Branch) {
			return nil, fmt.Errorf("%w: unknown branch %q", domain.ErrValidation, *in.Branch)
		}
		user.Branch = *in.Branch
	}
	if in.Year != nil {
		if !domain.ValidYear(*in.Year) {
			return nil, fmt.Errorf("%w: unknown year %q", domain.ErrValidation, *in.Year)
		}
		user.Year = *in.Year
	}
	if in.Password != nil {
		if *in.Password == "" {
			return nil, fmt.Errorf("%w: password must not be empty", domain.ErrValidation)
		}
		// Hash only here, where the plaintext actually changed. The
		// stored digest must never be hashed again.
		hashed, err := s.hash.Hash(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.HashedPassword = hashed
	}
	if in.ContactNumber != nil {
		user.ContactNumber = *in.ContactNumber
	}
	if in.CollegeName != nil {
		user.CollegeName = *in.CollegeName
	}
	if in.RollNo != nil {
		user.RollNo = *in.RollNo
	}
	if in.Bio != nil {
		user.Bio = *in.Bio
	}
	if in.ProfilePhoto != nil {
		user.ProfilePhoto = *in.ProfilePhoto
	}
	if in.Skills != nil {
		user.Skills = *in.Skills
	}
	if in.CurrentLearning != nil {
		user.CurrentLearning = *in.CurrentLearning
	}
	if in.HackathonParticipation != nil {
		user.HackathonParticipation = *in.HackathonParticipation
	}
	if in.CodingContestRanks != nil {
		user.CodingContestRanks = *in.CodingContestRanks
	}
	if in.Internship != nil {
		user.Internship = *in.Internship
	}
	if in.CollegeClubs != nil {
		user.CollegeClubs = *in.CollegeClubs
	}
	if in.ProfileLinks != nil {
		user.ProfileLinks = *in.ProfileLinks
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
