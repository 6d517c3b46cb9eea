package utils

// ResponseData is the JSON envelope returned by every REST endpoint.
type ResponseData struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Results any    `json:"results,omitempty"`
}

// PanicIfNeeded aborts the current handler when err is not nil. The
// recovery middleware turns the panic into a typed JSON error response.
func PanicIfNeeded(err error) {
	if err != nil {
		panic(err)
	}
}
