package model

import "time"

// User is a registered account. PasswordHash is a bcrypt hash; it is never
// serialized into API responses or the session slot.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SessionUser is the session-safe projection of a User (no credentials).
type SessionUser struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Session returns the session-safe projection of u.
func (u *User) Session() *SessionUser {
	return &SessionUser{ID: u.ID, Username: u.Username, Email: u.Email, CreatedAt: u.CreatedAt}
}

// Post is a feed entry. Author is a username join, not a foreign key.
// Comments always equals len(CommentList) after any mutation.
type Post struct {
	ID        string             `json:"id"`
	Author    string             `json:"author"`
	Title     string             `json:"title,omitempty"`
	Caption   string             `json:"caption,omitempty"`
	Location  string             `json:"location,omitempty"`
	Image     *string            `json:"image,omitempty"`
	Likes     int                `json:"likes"`
	Liked     bool               `json:"liked"`
	Comments  int                `json:"comments"`
	CreatedAt time.Time          `json:"createdAt"`
	Features  map[string]Feature `json:"features,omitempty"`
	// CommentList is nil until the thread is first opened; the stored key
	// stays "commentsData" for compatibility with existing data files.
	CommentList []Comment `json:"commentsData,omitempty"`
}

// Comment is attached to a post. IDs are unique within the post only.
type Comment struct {
	ID    string `json:"id"`
	User  string `json:"user"`
	Text  string `json:"text"`
	Time  string `json:"time"`
	Likes int    `json:"likes"`
}

// Reel is a short-video entry with the same like semantics as Post.
type Reel struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Caption   string    `json:"caption,omitempty"`
	Music     string    `json:"music,omitempty"`
	Likes     int       `json:"likes"`
	Liked     bool      `json:"liked"`
	Comments  int       `json:"comments"`
	Video     *string   `json:"video,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Story has no time-based expiry; stories stay until deleted.
type Story struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Avatar    string    `json:"avatar"`
	Viewed    bool      `json:"viewed"`
	CreatedAt time.Time `json:"createdAt"`
}

// ConversationType distinguishes direct chats from groups.
type ConversationType string

const (
	ConversationDirect ConversationType = "direct"
	ConversationGroup  ConversationType = "group"
)

// Conversation holds an append-only message list. LastMessage and Time are
// denormalized summaries of the most recent message and must be kept in sync
// by the service layer's single append routine.
type Conversation struct {
	ID          string           `json:"id"`
	Type        ConversationType `json:"type"`
	Name        string           `json:"name"`
	Avatar      string           `json:"avatar,omitempty"`
	Members     []string         `json:"members,omitempty"`
	LastMessage string           `json:"lastMessage"`
	Time        string           `json:"time"`
	Unread      int              `json:"unread"`
	Messages    []Message        `json:"messages"`
}

// Message is a single chat line. Time is a display label, not a timestamp.
type Message struct {
	ID     string `json:"id"`
	Sender string `json:"sender"`
	Text   string `json:"text"`
	Time   string `json:"time"`
	IsMe   bool   `json:"isMe"`
}

// NotificationType enumerates the notification kinds the UI renders.
type NotificationType string

const (
	NotificationLike    NotificationType = "like"
	NotificationFollow  NotificationType = "follow"
	NotificationComment NotificationType = "comment"
	NotificationMention NotificationType = "mention"
)

// Notification is a single inbox entry.
type Notification struct {
	ID     string           `json:"id"`
	Type   NotificationType `json:"type"`
	User   string           `json:"user"`
	Text   string           `json:"text"`
	Time   string           `json:"time"`
	Unread bool             `json:"unread"`
	PostID string           `json:"postId,omitempty"`
}

// Profile is the per-username presentation record. Posts is derived on read
// from the post and reel collections, never stored.
type Profile struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Bio         string `json:"bio"`
	Avatar      string `json:"avatar"`
	Posts       int    `json:"posts"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
}

// Settings is the app preference object.
type Settings struct {
	Notifications  bool   `json:"notifications"`
	DarkMode       bool   `json:"darkMode"`
	Language       string `json:"language"`
	LanguageName   string `json:"languageName,omitempty"`
	Direction      string `json:"direction,omitempty"`
	PrivateAccount bool   `json:"privateAccount"`
}

// DefaultSettings returns the preferences used before the user saves any.
func DefaultSettings() *Settings {
	return &Settings{Notifications: true, DarkMode: true, Language: "en"}
}
