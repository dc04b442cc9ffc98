package errs

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// statusCodes maps application error codes to HTTP status codes.
var statusCodes = map[string]int{
	EINVALID:  http.StatusBadRequest,
	ENOTFOUND: http.StatusNotFound,
	EINTERNAL: http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status code for an application error code.
func ErrorStatusCode(code string) int {
	if status, ok := statusCodes[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// ErrorResponse is the json body returned for any failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ReturnError writes an error to the response, translating its code into the
// matching HTTP status. Internal errors are logged before being returned.
func ReturnError(w http.ResponseWriter, r *http.Request, err error) {
	code, message := ErrorCode(err), ErrorMessage(err)
	if code == EINTERNAL {
		LogError(r, err)
	}
	w.WriteHeader(ErrorStatusCode(code))
	json.NewEncoder(w).Encode(&ErrorResponse{Error: message})
}

// LogError logs an error together with the request it occurred on.
func LogError(r *http.Request, err error) {
	zap.L().Error("http error",
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
		zap.Error(err),
	)
}
