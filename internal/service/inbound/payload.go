package inbound

// Payload is the inbound delivery contract posted by the mail forwarder.
type Payload struct {
	From    string            `json:"from"`
	To      []string          `json:"to"`
	Cc      []string          `json:"cc,omitempty"`
	Bcc     []string          `json:"bcc,omitempty"`
	Subject string            `json:"subject"`
	Text    string            `json:"text,omitempty"`
	HTML    string            `json:"html,omitempty"`
	Date    string            `json:"date"`
	Headers map[string]string `json:"headers,omitempty"`
}
