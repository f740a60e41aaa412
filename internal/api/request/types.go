package request

// LoginRequest is the request body for submitting login credentials
type LoginRequest struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

// VerifyRequest is the request body for the verification step
type VerifyRequest struct {
	Code string `json:"code"`
}

// ChatRequest is the request body for sending a chat message
type ChatRequest struct {
	Message string `json:"message"`
}

// UpdateTailRequest is the request body for mutating the newest query-log entry
type UpdateTailRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

// UpdatePlayerRequest is the request body for a guided injury update
type UpdatePlayerRequest struct {
	Injury string `json:"injury"`
	Status string `json:"status"`
}
