package entity

// LikeOutcome is the store-level result of recording a like. The whole
// transition (like insert, mutual check, match rows, conversation creation)
// happens atomically in the store, so two users liking each other
// near-simultaneously still end up with exactly one conversation.
type LikeOutcome struct {
	// Mutual is true when the reverse like exists, i.e. the pair is matched.
	Mutual bool
	// Conversation is the pair conversation; set only when Mutual. It is the
	// existing conversation when the pair was already matched.
	Conversation *Conversation
	// AlreadyMatched is true when the match predates this like submission.
	AlreadyMatched bool
}
