package entity

// User is the aggregate root for the dating domain. Passwords are stored as
// bcrypt hashes in Password and never serialized.
//
// Likes and Matches are id lists mutated only through the match engine;
// Matches is always symmetric between two users.
type User struct {
	ID           string   `json:"id"`
	Email        string   `json:"email"`
	Password     string   `json:"-"`
	Username     string   `json:"username"`
	Age          int      `json:"age"`
	Bio          string   `json:"bio"`
	ImageID      string   `json:"image,omitempty"`
	Likes        []string `json:"likes"`
	Matches      []string `json:"matches"`
	RegisteredAt int64    `json:"registerDate"`
}

// PublicProfile is the privacy-scoped view of a user handed to other users:
// no email, no credential, no likes/matches.
type PublicProfile struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Age          int    `json:"age"`
	Bio          string `json:"bio"`
	ImageID      string `json:"image,omitempty"`
	RegisteredAt int64  `json:"registerDate"`
}

// Public strips the sensitive fields from a user.
func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:           u.ID,
		Username:     u.Username,
		Age:          u.Age,
		Bio:          u.Bio,
		ImageID:      u.ImageID,
		RegisteredAt: u.RegisteredAt,
	}
}
