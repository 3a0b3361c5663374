package model

import "time"

// Profile represents a member of the platform as stored in the
// `profiles` table.  Identity and profile data live in a single
// row: the id doubles as the auth subject embedded in access
// tokens.  Role and status drive moderation; the notification
// and privacy flags back the settings page.
//
// Fields:
//  ID            – primary key identifier, also the JWT subject.
//  Email         – unique university email address.
//  PasswordHash  – bcrypt hashed password.
//  FirstName     – given name shown on film credits.
//  LastName      – family name shown on film credits.
//  Bio           – short free-form biography.
//  FieldOfStudy  – e.g. "Film Production", "Animation".
//  AvatarURL     – public URL of the stored avatar, empty if unset.
//  Role          – "user" or "admin".
//  Status        – "pending", "active" or "banned".
//  Language      – preferred UI language code.
//  NotifyNewFilm          – notify when a new film is published.
//  NotifyCommentReplies   – notify about replies to own comments.
//  NotifyAnnouncements    – notify about platform announcements.
//  IsPublic      – whether the profile is publicly visible.
//  CreatedAt     – timestamp of account creation.
//  UpdatedAt     – timestamp of last update.
type Profile struct {
	ID                   uint64    // profiles.id
	Email                string    // profiles.email
	PasswordHash         string    // profiles.password_hash
	FirstName            string    // profiles.first_name
	LastName             string    // profiles.last_name
	Bio                  string    // profiles.bio
	FieldOfStudy         string    // profiles.field_of_study
	AvatarURL            string    // profiles.avatar_url
	Role                 string    // profiles.role
	Status               string    // profiles.status
	Language             string    // profiles.language
	NotifyNewFilm        bool      // profiles.notifications_new_film
	NotifyCommentReplies bool      // profiles.notifications_comment_replies
	NotifyAnnouncements  bool      // profiles.notifications_platform_announcements
	IsPublic             bool      // profiles.is_public
	CreatedAt            time.Time // profiles.created_at
	UpdatedAt            time.Time // profiles.updated_at
}

// Role values stored in profiles.role.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Status values stored in profiles.status.
const (
	StatusPending = "pending"
	StatusActive  = "active"
	StatusBanned  = "banned"
)
