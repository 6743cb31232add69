package webhook

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ValidationError reports a malformed inbound payload. Rejected requests never
// reach the state machine and never mutate session state.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("webhook: %s: %s", e.Field, e.Reason)
}

// inboundPayload covers both accepted webhook shapes:
//
//	{ "type": "button_response", "from": <id>, "button_response": { "body": <label> } }
//	{ "type": "text", "from": <id>, "text": <string> | { "body": <string> } }
type inboundPayload struct {
	Type           string          `json:"type"`
	From           string          `json:"from"`
	ButtonResponse *buttonResponse `json:"button_response"`
	Text           json.RawMessage `json:"text"`
}

type buttonResponse struct {
	Body string `json:"body"`
}

// ParsePayload decodes an inbound webhook body and extracts the user
// identifier and raw response value.
func ParsePayload(data []byte) (userID, value string, err error) {
	var p inboundPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return "", "", &ValidationError{Field: "body", Reason: "invalid JSON"}
	}

	userID = strings.TrimSpace(p.From)
	if userID == "" {
		return "", "", &ValidationError{Field: "from", Reason: "missing user identifier"}
	}

	switch p.Type {
	case "button_response":
		if p.ButtonResponse == nil {
			return "", "", &ValidationError{Field: "button_response", Reason: "missing"}
		}
		value = p.ButtonResponse.Body
	case "text":
		value, err = decodeText(p.Text)
		if err != nil {
			return "", "", err
		}
	default:
		return "", "", &ValidationError{Field: "type", Reason: fmt.Sprintf("unrecognized event shape %q", p.Type)}
	}

	if strings.TrimSpace(value) == "" {
		return "", "", &ValidationError{Field: "value", Reason: "missing response value"}
	}
	return userID, value, nil
}

// decodeText accepts either a bare string or an object with a body field.
func decodeText(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", &ValidationError{Field: "text", Reason: "missing"}
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var obj struct {
		Body string `json:"body"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return "", &ValidationError{Field: "text", Reason: "neither string nor object"}
	}
	return obj.Body, nil
}
