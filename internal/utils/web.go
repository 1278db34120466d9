package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"

	"github.com/go-playground/validator/v10"

	internal_errors "github.com/corkboard-dev/corkboard/internal/errors"
	"github.com/corkboard-dev/corkboard/internal/logger"
)

func WriteErrorAndStatusCode(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), internal_errors.StatusCode(err))
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeValidate decodes JSON into body and checks its validate tags.
func DecodeValidate(r io.Reader, body any) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		logger.Log.Debug("invalid request body", "error", err)
		return internal_errors.NewValidation("Body is invalid json")
	}
	if err := validate.Struct(body); err != nil {
		logger.Log.Debug("request body failed validation", "error", err)
		return internal_errors.NewValidation("Required fields missing or invalid")
	}
	return nil
}

// GetIP extracts the client IP from RemoteAddr. Proxy headers are not
// trusted; there is no reverse proxy in front of this service.
func GetIP(r *http.Request) (string, error) {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	if net.ParseIP(ip) == nil {
		return "", fmt.Errorf("invalid IP address: %s", ip)
	}
	return ip, nil
}
