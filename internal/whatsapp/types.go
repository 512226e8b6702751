package whatsapp

// Payload is the body Meta posts to the webhook endpoint.
type Payload struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

// Entry is one webhook entry; Meta batches changes under it.
type Entry struct {
	ID      string   `json:"id"`
	Changes []Change `json:"changes"`
}

// Change is one change notification inside an entry.
type Change struct {
	Field string `json:"field"`
	Value Value  `json:"value"`
}

// Value carries the metadata and messages of a change.
type Value struct {
	MessagingProduct string    `json:"messaging_product"`
	Metadata         Metadata  `json:"metadata"`
	Messages         []Message `json:"messages"`
}

// Metadata identifies the business phone number the message was sent to.
type Metadata struct {
	DisplayPhoneNumber string `json:"display_phone_number"`
	PhoneNumberID      string `json:"phone_number_id"`
}

// Message is one inbound user message.
type Message struct {
	From      string `json:"from"`
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`
	Text      *Text  `json:"text,omitempty"`
}

// Text is the body of a text-type message.
type Text struct {
	Body string `json:"body"`
}

// IncomingText is the flattened form of a webhook delivery the service layer
// works with.
type IncomingText struct {
	PhoneNumberID string
	From          string
	Body          string
}

// FirstTextMessage extracts the first text message from a webhook payload.
// Returns false when the payload carries no text message, which covers
// status updates, media messages and empty deliveries.
func FirstTextMessage(p *Payload) (IncomingText, bool) {
	if p.Object == "" || len(p.Entry) == 0 {
		return IncomingText{}, false
	}
	entry := p.Entry[0]
	if len(entry.Changes) == 0 {
		return IncomingText{}, false
	}
	value := entry.Changes[0].Value
	if len(value.Messages) == 0 {
		return IncomingText{}, false
	}
	msg := value.Messages[0]
	if msg.Type != "text" || msg.Text == nil {
		return IncomingText{}, false
	}
	return IncomingText{
		PhoneNumberID: value.Metadata.PhoneNumberID,
		From:          msg.From,
		Body:          msg.Text.Body,
	}, true
}
