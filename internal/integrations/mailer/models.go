package mailer

// Message письмо для отправки
type Message struct {
	From     string   `json:"from"`
	To       []string `json:"to"`
	Subject  string   `json:"subject"`
	TextBody string   `json:"textBody"`
	HTMLBody string   `json:"htmlBody,omitempty"`
}

// SendResult ответ почтового сервиса
type SendResult struct {
	MessageID string `json:"messageId"`
	Status    string `json:"status"`
}
