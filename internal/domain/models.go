package domain

import "time"

// Branches lists the branch values accepted for a student profile.
var Branches = []string{"CSE", "ECE", "EE", "Civil"}

// Years lists the study-year values accepted for a student profile.
var Years = []string{"First", "Second", "Third", "Fourth"}

// ValidBranch reports whether b is one of the known branches.
func ValidBranch(b string) bool {
	for _, v := range Branches {
		if v == b {
			return true
		}
	}
	return false
}

// ValidYear reports whether y is one of the known years.
func ValidYear(y string) bool {
	for _, v := range Years {
		if v == y {
			return true
		}
	}
	return false
}

// ProfileLinks holds external profile URLs for a user.
type ProfileLinks struct {
	GitHub    string `json:"github"`
	LinkedIn  string `json:"linkedin"`
	Portfolio string `json:"portfolio"`
	Resume    string `json:"resume"`
}

// User represents a student account with its directory profile.
// HashedPassword is never serialized to clients.
type User struct {
	ID                     int64        `db:"id" json:"id"`
	Name                   string       `db:"name" json:"name"`
	Email                  string       `db:"email" json:"email"`
	HashedPassword         string       `db:"hashed_password" json:"-"`
	ContactNumber          string       `db:"contact_number" json:"contactNumber"`
	CollegeName            string       `db:"college_name" json:"collegeName"`
	Branch                 string       `db:"branch" json:"branch"`
	Year                   string       `db:"year" json:"year"`
	RollNo                 string       `db:"roll_no" json:"rollNo"`
	Bio                    string       `db:"bio" json:"bio"`
	ProfilePhoto           string       `db:"profile_photo" json:"profilePhoto"`
	Skills                 []string     `db:"skills" json:"skills"`
	CurrentLearning        []string     `db:"current_learning" json:"currentLearning"`
	HackathonParticipation string       `db:"hackathon_participation" json:"hackathonParticipation"`
	CodingContestRanks     string       `db:"coding_contest_ranks" json:"codingContestRanks"`
	Internship             string       `db:"internship" json:"internship"`
	CollegeClubs           string       `db:"college_clubs" json:"collegeClubs"`
	ProfileLinks           ProfileLinks `db:"profile_links" json:"profileLinks"`
	CreatedAt              time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt              time.Time    `db:"updated_at" json:"updatedAt"`
}

// UserRef is the trimmed user identity attached to messages.
type UserRef struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Ref returns the trimmed identity view of the user.
func (u *User) Ref() UserRef {
	return UserRef{ID: u.ID, Name: u.Name, Email: u.Email}
}

// Message is a single direct message. Messages are immutable once created.
type Message struct {
	ID         int64     `db:"id" json:"id"`
	SenderID   int64     `db:"sender_id" json:"-"`
	ReceiverID int64     `db:"receiver_id" json:"-"`
	Content    string    `db:"content" json:"content"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`

	// Populated on read from the users table.
	Sender   UserRef `json:"sender"`
	Receiver UserRef `json:"receiver"`
}

// Counterpart returns the party of the message that is not userID.
// For a self-message both parties are userID and the result is userID.
func (m *Message) Counterpart(userID int64) UserRef {
	if m.SenderID == userID {
		return m.Receiver
	}
	return m.Sender
}

// ConversationSummary pairs a counterpart with the most recent message
// exchanged with them. It is derived on read and never persisted.
type ConversationSummary struct {
	User        UserRef  `json:"user"`
	LastMessage *Message `json:"lastMessage"`
}
