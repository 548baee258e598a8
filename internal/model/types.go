package model

// Role is a user's permission level. Roles are ordered:
// user < moderator < co-owner < owner.
type Role string

const (
	// RoleUser is the default role for new accounts.
	RoleUser Role = "user"

	// RoleModerator may moderate content (delete posts/comments/messages,
	// edit scripture, mutate the calendar).
	RoleModerator Role = "moderator"

	// RoleCoOwner has moderator powers. Reserved for trusted accounts.
	RoleCoOwner Role = "co-owner"

	// RoleOwner has moderator powers and is additionally the only role
	// that may reassign other users' roles.
	RoleOwner Role = "owner"
)

// ParseRole maps a stored role string to a Role.
// Unknown values normalize to RoleUser - stored data is untrusted.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleModerator, RoleCoOwner, RoleOwner:
		return Role(s)
	default:
		return RoleUser
	}
}

// CanModerate reports whether the role is permitted to perform
// content-moderation operations.
func (r Role) CanModerate() bool {
	return r == RoleModerator || r == RoleCoOwner || r == RoleOwner
}

// User is the session subject and friend-graph node.
//
// ID is globally unique and is the stable cross-reference key (friend
// lists, likes, message endpoints). Username is unique and is the primary
// lookup key for the users collection. The two must always resolve
// consistently.
type User struct {
	ID             string   `json:"id"`
	Username       string   `json:"username"`
	Password       string   `json:"password,omitempty"`
	Bio            string   `json:"bio"`
	ProfilePicture string   `json:"profilePicture,omitempty"`
	Role           Role     `json:"role"`
	Friends        []string `json:"friends"`
	FriendRequests []string `json:"friendRequests"`
}

// MediaType classifies an optional post attachment.
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaAudio MediaType = "audio"
	MediaVideo MediaType = "video"
)

// Post is a feed entry. Likes and Dislikes hold user ids and are
// mutually exclusive per user at all times.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	CreatedAt int64     `json:"createdAt"`
	MediaURL  string    `json:"mediaUrl,omitempty"`
	MediaType MediaType `json:"mediaType,omitempty"`
	Likes     []string  `json:"likes"`
	Dislikes  []string  `json:"dislikes"`
}

// Comment belongs to a post and is cascade-deleted with it.
type Comment struct {
	ID        string `json:"id"`
	PostID    string `json:"postId"`
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"createdAt"`
}

// GlobalMessage is an entry in the single shared broadcast log.
// Sender fields are a snapshot taken at send time.
type GlobalMessage struct {
	ID                   string `json:"id"`
	SenderID             string `json:"senderId"`
	SenderUsername       string `json:"senderUsername"`
	SenderProfilePicture string `json:"senderProfilePicture,omitempty"`
	Text                 string `json:"text"`
	Timestamp            int64  `json:"timestamp"`
}

// Message is a direct message. A conversation is the unordered pair
// {SenderID, ReceiverID}.
type Message struct {
	ID         string `json:"id"`
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
	Text       string `json:"text"`
	Timestamp  int64  `json:"timestamp"`
}

// Scripture is a shared text entry, editable by moderators.
type Scripture struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	AuthorID  string `json:"authorId"`
	CreatedAt int64  `json:"createdAt"`
}

// CalendarEvent is keyed by its date - at most one event per date.
// Date uses the YYYY-MM-DD layout.
type CalendarEvent struct {
	Date        string `json:"date"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CalendarDateLayout is the required layout for CalendarEvent.Date.
const CalendarDateLayout = "2006-01-02"
