package http

// Auth DTOs
type LoginRequest struct {
	Password string `json:"password"`
}

type SessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	Token         string `json:"token,omitempty"`
	Message       string `json:"message,omitempty"`
}

// Experience DTOs
type CertificateImageRequest struct {
	URL string `json:"url" binding:"required"`
	Alt string `json:"alt"`
}

// Contact DTOs
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type ContactResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}
