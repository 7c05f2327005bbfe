package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either Template+Data or Subject with Text/HTML is set.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "payment_receipt"
	Data     map[string]any `json:"data,omitempty"`
}

// Resolve renders the job's template (when set) into subject, text and html.
func (j EmailJob) Resolve(render func(name string, data any) (string, string, string, error)) (subject, text, html string, err error) {
	if j.Template == "" {
		return j.Subject, j.Text, j.HTML, nil
	}
	return render(j.Template, j.Data)
}
