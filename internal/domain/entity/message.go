package entity

// Message is immutable once created. Created is a client-supplied epoch-millis
// timestamp; Read exists on the wire but no read-state transition uses it.
type Message struct {
	ID             string `json:"id"`
	ConversationID string `json:"conversationID"`
	Sender         string `json:"sender"`
	Receiver       string `json:"receiver"`
	Body           string `json:"message"`
	Created        int64  `json:"created"`
	Read           bool   `json:"read"`
}
