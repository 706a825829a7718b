package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SendRequest is the body of POST /send.
type SendRequest struct {
	To      string `json:"to" validate:"required"`
	Subject string `json:"subject" validate:"required"`
	HTML    string `json:"html"`
	Text    string `json:"text"`
}

// VerificationRequest is the body of POST /send-verification.
type VerificationRequest struct {
	To              string `json:"to" validate:"required"`
	VerificationURL string `json:"verification_url" validate:"required"`
	Username        string `json:"username"`
}

// PasswordResetRequest is the body of POST /send-password-reset.
type PasswordResetRequest struct {
	To       string `json:"to" validate:"required"`
	ResetURL string `json:"reset_url" validate:"required"`
	Username string `json:"username"`
}

// DividendAlertRequest is the body of POST /send-dividend-alert.
// Clients send amounts and day counts both as strings and as numbers.
type DividendAlertRequest struct {
	To          string     `json:"to" validate:"required"`
	StockSymbol FlexString `json:"stock_symbol" validate:"required"`
	Date        FlexString `json:"dividend_date"`
	Amount      FlexString `json:"dividend_amount"`
	DaysAdvance FlexString `json:"days_advance"`
}

// FlexString decodes a JSON string or number into its text form.
// Numbers keep their literal spelling, so 0.50 stays "0.50". Null decodes to "".
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*s = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = FlexString(v)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*s = FlexString(n.String())
	return nil
}

func (s FlexString) String() string {
	return string(s)
}

// or returns s, or def when s is empty.
func (s FlexString) or(def string) string {
	if s == "" {
		return def
	}
	return string(s)
}
