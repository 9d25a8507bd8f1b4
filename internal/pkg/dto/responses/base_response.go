package responses

type ResponseDTO struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponseDTO struct {
	Success         bool   `json:"success"`
	Error           string `json:"error"`
	Code            string `json:"code"`
	RefreshRequired bool   `json:"refresh_required,omitempty"`
	DevMessage      string `json:"dev_message,omitempty"`
}
