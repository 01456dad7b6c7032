package utils

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"os"
)

// SmsMessage represents the structure of a message to send via the SMS gateway
type SmsMessage struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// SendSms delivers a notification to the user's phone number via the SMS gateway
func SendSms(phoneNumber, message string) {
	sms := SmsMessage{
		Phone:   phoneNumber,
		Message: message,
	}

	payload, err := json.Marshal(sms)
	if err != nil {
		log.Printf("Failed to marshal SMS payload: %v", err)
		return
	}

	req, err := http.NewRequest("POST", os.Getenv("SMS_GATEWAY_URL")+"/v1/send", bytes.NewBuffer(payload))
	if err != nil {
		log.Printf("Failed to create SMS gateway request: %v", err)
		return
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+os.Getenv("SMS_GATEWAY_API_KEY"))

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		log.Printf("Failed to send SMS: %v", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Failed to send SMS: received status code %d", resp.StatusCode)
	}
}
