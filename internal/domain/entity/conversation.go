package entity

// Conversation is the channel container for messages between exactly two
// matched users. Created once per matched pair, never mutated afterwards.
type Conversation struct {
	ID           string    `json:"id"`
	Participants [2]string `json:"participants"`
	CreatedAt    int64     `json:"createdAt"`
}

// HasParticipant reports whether the given user id is one of the two
// participants.
func (c *Conversation) HasParticipant(userID string) bool {
	return c.Participants[0] == userID || c.Participants[1] == userID
}

// OrderedPair returns the participant pair in lexicographic order. The store
// keys conversations by this unordered pair so a matched pair can never own
// two conversations.
func OrderedPair(a, b string) (low, high string) {
	if a < b {
		return a, b
	}
	return b, a
}
