package api

import (
	"encoding/json"
	"io"
	"net/http"
)

// envelope is the response wrapper every VidTube endpoint uses:
//
//	{ "statusCode": 200, "data": {...}, "message": "ok", "success": true }
type envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Success    bool            `json:"success"`
}

// decodeEnvelope unmarshals a 2xx response body into out. Endpoints that
// return no payload (e.g. logout) may pass a *struct{} target; an absent
// data field is only legal in that case.
func decodeEnvelope(endpoint string, body io.Reader, out any) error {
	var env envelope
	if err := json.NewDecoder(body).Decode(&env); err != nil {
		return &DecodeError{Endpoint: endpoint, Err: err}
	}

	if len(env.Data) == 0 || string(env.Data) == "null" {
		if _, ok := out.(*struct{}); ok {
			return nil
		}
		return &DecodeError{Endpoint: endpoint, Err: errMissingData}
	}

	if err := json.Unmarshal(env.Data, out); err != nil {
		return &DecodeError{Endpoint: endpoint, Err: err}
	}
	return nil
}

// parseErrorMessage extracts the server-provided message from an error
// response body, falling back to the HTTP status text.
func parseErrorMessage(statusCode int, body []byte) string {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Message != "" {
		return env.Message
	}
	return http.StatusText(statusCode)
}
