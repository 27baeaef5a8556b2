package dto

// Response is the success envelope every endpoint answers with.
type Response struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// ErrorResponse is the failure envelope.
type ErrorResponse struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Errors     []string `json:"errors"`
	Success    bool     `json:"success"`
}

func NewResponse(statusCode int, data interface{}, message string) Response {
	if message == "" {
		message = "Success"
	}
	return Response{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    statusCode < 400,
	}
}

func NewErrorResponse(statusCode int, message string, errs []string) ErrorResponse {
	if errs == nil {
		errs = []string{}
	}
	return ErrorResponse{
		StatusCode: statusCode,
		Message:    message,
		Errors:     errs,
		Success:    false,
	}
}
