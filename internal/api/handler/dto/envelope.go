package dto

// Envelope wraps every response body.
type Envelope struct {
	Status  int    `json:"status" example:"200"`
	Message string `json:"message" example:"OK"`
	Data    any    `json:"data"`
}

// ValidationErrorResponse documents the 400 body of a field validation failure.
type ValidationErrorResponse struct {
	Status  int               `json:"status" example:"400"`
	Message string            `json:"message" example:"validation failed"`
	Data    map[string]string `json:"data"`
}

type TokenRequest struct {
	Username string `json:"username" example:"operator"`
}

type TokenResponse struct {
	Token string `json:"token"`
}
