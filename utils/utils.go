package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pitch-booking/database"
	operatorModel "pitch-booking/models/operator"
	"pitch-booking/types"
)

// OperatorUUIDFromClaims extracts the operator UUID from decoded JWT claims
func OperatorUUIDFromClaims(c *fiber.Ctx) (string, error) {
	claims, ok := c.Locals("user").(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("invalid user claims")
	}

	uuid, ok := claims["uuid"].(string)
	if !ok || uuid == "" {
		return "", fmt.Errorf("operator uuid not found in token")
	}
	return uuid, nil
}

// GetOperatorByUUID retrieves an operator by their UUID from the database
func GetOperatorByUUID(uuid string) (*operatorModel.Operator, error) {
	if uuid == "" {
		return nil, errors.New("UUID cannot be empty")
	}

	var op operatorModel.Operator
	if err := database.DB.Where("uuid = ?", uuid).First(&op).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("operator not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &op, nil
}

// ValidatePhoneNumber validates phone number using the specified regex pattern
// Pattern: /^(?:\+88)?01[0-9]{9}$/
// Allows: 01xxxxxxxxx or +8801xxxxxxxxx (where x is any digit 0-9)
func ValidatePhoneNumber(phone string) bool {
	phone = strings.TrimSpace(phone)

	pattern := `^(?:\+88)?01[0-9]{9}$`
	re := regexp.MustCompile(pattern)

	return re.MatchString(phone)
}

// sanitizeRequestBody sanitizes request body for file uploads and large content
func sanitizeRequestBody(c *fiber.Ctx) string {
	// Check if this is a multipart form (file upload)
	contentType := c.Get("Content-Type")
	if strings.Contains(contentType, "multipart/form-data") {
		formData := make(map[string]interface{})

		if form, err := c.MultipartForm(); err == nil {
			// Add text fields
			for key, values := range form.Value {
				if len(values) > 0 {
					formData[key] = values[0]
				}
			}

			// Add file field information without content
			for key, files := range form.File {
				fileInfo := make([]map[string]interface{}, len(files))
				for i, file := range files {
					fileInfo[i] = map[string]interface{}{
						"filename": file.Filename,
						"size":     file.Size,
						"content":  "[FILE_CONTENT_REMOVED]",
					}
				}
				formData[key] = fileInfo
			}
		}

		if jsonBytes, err := json.Marshal(formData); err == nil {
			return string(jsonBytes)
		}
		return "[MULTIPART_FORM_DATA]"
	}

	body := string(c.Body())
	if len(body) > 1000 && (strings.Contains(body, "data:image/") ||
		strings.Contains(body, "base64") ||
		isLikelyBase64(body)) {
		return "[LARGE_REQUEST_BODY_WITH_POSSIBLE_FILE_CONTENT]"
	}

	return body
}

// isLikelyBase64 detects if content looks like base64
func isLikelyBase64(content string) bool {
	if len(content) < 100 {
		return false
	}

	base64Chars := 0
	for _, char := range content {
		if (char >= 'A' && char <= 'Z') ||
			(char >= 'a' && char <= 'z') ||
			(char >= '0' && char <= '9') ||
			char == '+' || char == '/' || char == '=' {
			base64Chars++
		}
	}

	return float64(base64Chars)/float64(len(content)) > 0.8
}

// CreateSanitizedLogEntry creates a deep copied and sanitized log entry for logging
func CreateSanitizedLogEntry(c *fiber.Ctx) types.LogEntry {
	// Create deep copies of all data to prevent memory reference issues
	method := string([]byte(c.Method()))
	url := string([]byte(c.OriginalURL()))
	requestBody := sanitizeRequestBody(c)
	responseBody := string(append([]byte(nil), c.Response().Body()...))

	requestHeaders := make([]byte, len(c.Request().Header.Header()))
	copy(requestHeaders, c.Request().Header.Header())

	responseHeaders := make([]byte, len(c.Response().Header.Header()))
	copy(responseHeaders, c.Response().Header.Header())

	return types.LogEntry{
		Method:          method,
		URL:             url,
		RequestBody:     requestBody,
		ResponseBody:    responseBody,
		RequestHeaders:  string(requestHeaders),
		ResponseHeaders: string(responseHeaders),
		StatusCode:      c.Response().StatusCode(),
		CreatedAt:       time.Now(),
	}
}
