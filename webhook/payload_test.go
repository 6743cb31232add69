package webhook

import (
	"errors"
	"testing"
)

func TestParsePayloadButtonResponse(t *testing.T) {
	body := []byte(`{"type":"button_response","from":"15551234567","button_response":{"body":"Beginner"}}`)
	userID, value, err := ParsePayload(body)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if userID != "15551234567" || value != "Beginner" {
		t.Fatalf("got %q %q", userID, value)
	}
}

func TestParsePayloadTextString(t *testing.T) {
	body := []byte(`{"type":"text","from":"15551234567","text":"France"}`)
	_, value, err := ParsePayload(body)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if value != "France" {
		t.Fatalf("value = %q", value)
	}
}

func TestParsePayloadTextObject(t *testing.T) {
	body := []byte(`{"type":"text","from":"15551234567","text":{"body":"hard"}}`)
	_, value, err := ParsePayload(body)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if value != "hard" {
		t.Fatalf("value = %q", value)
	}
}

func TestParsePayloadRejectsMalformed(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"invalid json", `{`},
		{"missing from", `{"type":"text","text":"hi"}`},
		{"blank from", `{"type":"text","from":"  ","text":"hi"}`},
		{"unknown type", `{"type":"sticker","from":"1555"}`},
		{"missing button body", `{"type":"button_response","from":"1555"}`},
		{"missing text", `{"type":"text","from":"1555"}`},
		{"empty value", `{"type":"text","from":"1555","text":"   "}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := ParsePayload([]byte(tc.body))
			var valErr *ValidationError
			if !errors.As(err, &valErr) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
		})
	}
}
