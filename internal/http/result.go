package httpapi

// Result uniform response envelope for the kiosk API.
type Result[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Result  T      `json:"result,omitempty"`
}

func Ok[T any](result T) Result[T] {
	return Result[T]{Success: true, Result: result}
}

func Fail(message string) Result[any] {
	return Result[any]{Success: false, Message: message}
}
