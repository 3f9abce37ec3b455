package domain

import "context"

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// Create inserts the user and sets its ID. A unique-constraint
	// violation on email is reported as ErrDuplicateEmail so the
	// concurrent-registration race surfaces the same way as the
	// pre-insert check.
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Update(ctx context.Context, u *User) error
}

// MessageRepository defines persistence operations for messages.
type MessageRepository interface {
	Create(ctx context.Context, m *Message) error
	// ListBetween returns messages exchanged between a and b in either
	// direction, oldest first.
	ListBetween(ctx context.Context, a, b int64) ([]*Message, error)
	// ListInvolving returns every message where userID is sender or
	// receiver, newest first, with sender and receiver refs populated.
	ListInvolving(ctx context.Context, userID int64) ([]*Message, error)
}
