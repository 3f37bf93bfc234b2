package entity

// Image holds profile-picture bytes in the store, one per user.
type Image struct {
	ID       string
	Name     string
	Mimetype string
	Data     []byte
}
