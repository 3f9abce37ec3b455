package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sqlite3 "modernc.org/sqlite"
	sqlitelib "modernc.org/sqlite/lib"

	"collegeconnect/internal/domain"
)

const userColumns = `id, name, email, hashed_password, contact_number, college_name,
	branch, year, roll_no, bio, profile_photo, skills, current_learning,
	hackathon_participation, coding_contest_ranks, internship, college_clubs,
	profile_links, created_at, updated_at`

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

var _ domain.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	skills, learning, links, err := marshalProfile(u)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	query := `
		INSERT INTO users (name, email, hashed_password, contact_number, college_name,
			branch, year, roll_no, bio, profile_photo, skills, current_learning,
			hackathon_participation, coding_contest_ranks, internship, college_clubs,
			profile_links, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	res, err := r.db.ExecContext(ctx, query,
		u.Name, u.Email, u.HashedPassword, u.ContactNumber, u.CollegeName,
		u.Branch, u.Year, u.RollNo, u.Bio, u.ProfilePhoto, skills, learning,
		u.HackathonParticipation, u.CodingContestRanks, u.Internship, u.CollegeClubs,
		links, now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	u.ID = id
	u.CreatedAt = now
	u.UpdatedAt = now
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *UserRepo) List(ctx context.Context) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := r.scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepo) Update(ctx context.Context, u *domain.User) error {
	skills, learning, links, err := marshalProfile(u)
	if err != nil {
		return err
	}
	u.UpdatedAt = time.Now().UTC()
	query := `
		UPDATE users
		SET name = ?, email = ?, hashed_password = ?, contact_number = ?,
			college_name = ?, branch = ?, year = ?, roll_no = ?, bio = ?,
			profile_photo = ?, skills = ?, current_learning = ?,
			hackathon_participation = ?, coding_contest_ranks = ?,
			internship = ?, college_clubs = ?, profile_links = ?, updated_at = ?
		WHERE id = ?
	`
	_, err = r.db.ExecContext(ctx, query,
		u.Name, u.Email, u.HashedPassword, u.ContactNumber, u.CollegeName,
		u.Branch, u.Year, u.RollNo, u.Bio, u.ProfilePhoto, skills, learning,
		u.HackathonParticipation, u.CodingContestRanks, u.Internship, u.CollegeClubs,
		links, u.UpdatedAt, u.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *UserRepo) scanUser(row rowScanner) (*domain.User, error) {
	u := &domain.User{}
	var skills, learning, links string
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.HashedPassword, &u.ContactNumber, &u.CollegeName,
		&u.Branch, &u.Year, &u.RollNo, &u.Bio, &u.ProfilePhoto, &skills, &learning,
		&u.HackathonParticipation, &u.CodingContestRanks, &u.Internship, &u.CollegeClubs,
		&links, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	if err := unmarshalProfile(u, skills, learning, links); err != nil {
		return nil, err
	}
	return u, nil
}

// Slice and link fields are persisted as JSON text columns.
func marshalProfile(u *domain.User) (skills, learning, links string, err error) {
	if u.Skills == nil {
		u.Skills = []string{}
	}
	if u.CurrentLearning == nil {
		u.CurrentLearning = []string{}
	}
	b, err := json.Marshal(u.Skills)
	if err != nil {
		return "", "", "", fmt.Errorf("marshal skills: %w", err)
	}
	skills = string(b)
	b, err = json.Marshal(u.CurrentLearning)
	if err != nil {
		return "", "", "", fmt.Errorf("marshal current learning: %w", err)
	}
	learning = string(b)
	b, err = json.Marshal(u.ProfileLinks)
	if err != nil {
		return "", "", "", fmt.Errorf("marshal profile links: %w", err)
	}
	links = string(b)
	return skills, learning, links, nil
}

func unmarshalProfile(u *domain.User, skills, learning, links string) error {
	if err := json.Unmarshal([]byte(skills), &u.Skills); err != nil {
		return fmt.Errorf("unmarshal skills: %w", err)
	}
	if err := json.Unmarshal([]byte(learning), &u.CurrentLearning); err != nil {
		return fmt.Errorf("unmarshal current learning: %w", err)
	}
	if err := json.Unmarshal([]byte(links), &u.ProfileLinks); err != nil {
		return fmt.Errorf("unmarshal profile links: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var se *sqlite3.Error
	if errors.As(err, &se) {
		return se.Code() == sqlitelib.SQLITE_CONSTRAINT_UNIQUE ||
			se.Code() == sqlitelib.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}
