package sms

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"pitch-booking/logger"
)

// Sender delivers a text message to a phone number
type Sender interface {
	Send(phone, message string) error
}

// SMSService talks to the configured SMS gateway over HTTP
type SMSService struct {
	BaseURL string
	APIKey  string
	Sender  string
	client  *http.Client
}

// NewSMSService builds a client from SMS_* environment variables
func NewSMSService() *SMSService {
	return &SMSService{
		BaseURL: os.Getenv("SMS_BASE_URL"),
		APIKey:  os.Getenv("SMS_API_KEY"),
		Sender:  os.Getenv("SMS_SENDER_ID"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type smsPayload struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Message string `json:"message"`
}

type smsResponse struct {
	Status string `json:"status"`
	Detail string `json:"detail"`
}

// Send delivers the message through the gateway. When no gateway is
// configured the message is only logged, which keeps local development
// working without an SMS account.
func (s *SMSService) Send(phone, message string) error {
	if s.BaseURL == "" {
		logger.Warning(fmt.Sprintf("SMS_BASE_URL not set, skipping SMS to %s: %s", phone, message))
		return nil
	}

	body, err := json.Marshal(smsPayload{To: phone, From: s.Sender, Message: message})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.BaseURL+"/v1/sms/send", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api_key", s.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sms gateway error: status=%d body=%s", resp.StatusCode, string(respBody))
	}

	var parsed smsResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	if parsed.Status != "" && parsed.Status != "success" {
		return fmt.Errorf("sms delivery failed: %s", parsed.Detail)
	}

	return nil
}
