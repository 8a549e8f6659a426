package protocol

import "net/http"

// Response is the single reply envelope both surfaces serialize. Data is
// present only on success.
type Response struct {
	Status  int            `json:"status"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

func OK(message string, data map[string]any) *Response {
	return &Response{Status: http.StatusOK, Message: message, Data: data}
}

func Created(message string, data map[string]any) *Response {
	return &Response{Status: http.StatusCreated, Message: message, Data: data}
}

func Error(status int, message string) *Response {
	return &Response{Status: status, Message: message}
}
