package handler

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the uniform error body. Code is a stable machine key
// the frontend switches on; Message is for display.
type ErrorResponse struct {
	Error errorPayload `json:"error"`
}

func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: errorPayload{
			Code:    code,
			Message: message,
		},
	}
}

// SuccessResponse is the body for mutations whose only result is that they
// happened (profile completion, interest, mark-read).
type SuccessResponse struct {
	Success bool `json:"success"`
}

func NewSuccessResponse() SuccessResponse {
	return SuccessResponse{Success: true}
}
