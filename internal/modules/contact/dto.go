package contact

type SubmitRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"max=200"`
	Body    string `json:"body" validate:"required,min=10,max=5000"`
}
