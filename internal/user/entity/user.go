package entity

import "time"

// User represents an account row in the `users` table.
// PasswordHash never leaves the service layer; use the projections below for output.
type User struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password"`
	FirstName    *string   `db:"first_name"`
	LastName     *string   `db:"last_name"`
	ProfilePic   *string   `db:"profile_pic"`
	JoinDate     time.Time `db:"join_date"`
}

// PublicUser is the projection returned right after registration.
type PublicUser struct {
	ID       int64  `db:"id" json:"id"`
	Username string `db:"username" json:"username"`
	Email    string `db:"email" json:"email"`
}

// Profile is the caller's own profile projection.
type Profile struct {
	ID         int64     `db:"id" json:"id"`
	Username   string    `db:"username" json:"username"`
	Email      string    `db:"email" json:"email"`
	FirstName  *string   `db:"first_name" json:"first_name"`
	LastName   *string   `db:"last_name" json:"last_name"`
	ProfilePic *string   `db:"profile_pic" json:"profile_pic"`
	JoinDate   time.Time `db:"join_date" json:"join_date"`
}

// ProfileUpdate replaces every mutable profile field; nil clears optional ones.
type ProfileUpdate struct {
	Username   string
	Email      string
	FirstName  *string
	LastName   *string
	ProfilePic *string
}

// Profile projects u without its password hash.
func (u *User) Profile() *Profile {
	return &Profile{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		ProfilePic: u.ProfilePic,
		JoinDate:   u.JoinDate,
	}
}
