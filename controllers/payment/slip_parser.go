package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"google.golang.org/genai"

	"pitch-booking/database"
	"pitch-booking/logger"
	paymentModel "pitch-booking/models/payment"
	slipParserService "pitch-booking/services/slip_parser"
	"pitch-booking/types"
)

// ParsePaymentSlip handles the payment slip image upload and parsing using Gemini Vision API
func (pc *PaymentController) ParsePaymentSlip(c *fiber.Ctx) error {
	startTime := time.Now()

	// Initialize slip parser service
	service := slipParserService.NewSlipParserService(database.DB)

	// Generate unique request ID
	requestID := service.GenerateRequestID()

	// An optional booking_id form field links the slip to a booking
	var bookingID uint
	if raw := c.FormValue("booking_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
				Message: "booking_id must be a positive integer",
				Status:  fiber.StatusBadRequest,
				Data:    map[string]interface{}{"request_id": requestID},
			})
		}
		bookingID = uint(parsed)
	}

	// Get uploaded file
	file, err := c.FormFile("image")
	if err != nil {
		logger.Error(fmt.Sprintf("No image file provided for request %s", requestID), err)

		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: "No image file provided",
			Status:  fiber.StatusBadRequest,
			Data:    map[string]interface{}{"request_id": requestID},
		})
	}

	// Validate file type
	mimeType := file.Header.Get("Content-Type")
	if !isValidImageType(mimeType) {
		logger.Error(fmt.Sprintf("Invalid file type %s for request %s", mimeType, requestID),
			fmt.Errorf("invalid mime type: %s", mimeType))

		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: "Invalid file type. Only JPEG, JPG, PNG, and WebP files are allowed",
			Status:  fiber.StatusBadRequest,
			Data:    map[string]interface{}{"request_id": requestID},
		})
	}

	// Validate file size (max 10MB)
	maxSize := int64(10 * 1024 * 1024) // 10MB
	if file.Size > maxSize {
		logger.Error(fmt.Sprintf("File size %d exceeds max %d for request %s", file.Size, maxSize, requestID),
			fmt.Errorf("file size %d exceeds max %d", file.Size, maxSize))

		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: "File size too large. Maximum size is 10MB",
			Status:  fiber.StatusBadRequest,
			Data:    map[string]interface{}{"request_id": requestID},
		})
	}

	// Create initial database request record
	_, err = service.CreateInitialRequest(c, requestID, bookingID, file.Filename, file.Size, mimeType)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to create initial request %s", requestID), err)

		return pc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Message: "Failed to initialize request",
			Status:  fiber.StatusInternalServerError,
			Data:    map[string]interface{}{"request_id": requestID},
		})
	}

	// Open the uploaded file
	src, err := file.Open()
	if err != nil {
		processingTime := time.Since(startTime).Milliseconds()
		service.SaveFailureResultAsync(requestID, "Failed to open uploaded file", processingTime)

		logger.Error(fmt.Sprintf("Failed to open uploaded file for request %s", requestID), err)

		return pc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Message: "Failed to process uploaded file",
			Status:  fiber.StatusInternalServerError,
			Data:    map[string]interface{}{"request_id": requestID},
		})
	}
	defer src.Close()

	// Read file content
	fileBytes, err := io.ReadAll(src)
	if err != nil {
		processingTime := time.Since(startTime).Milliseconds()
		service.SaveFailureResultAsync(requestID, "Failed to read file content", processingTime)

		logger.Error(fmt.Sprintf("Failed to read file content for request %s", requestID), err)

		return pc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Message: "Failed to read file content",
			Status:  fiber.StatusInternalServerError,
			Data:    map[string]interface{}{"request_id": requestID},
		})
	}

	// Start async file saving
	service.SaveFileAsync(requestID, fileBytes, file.Filename, mimeType)

	// Parse the payment slip using Gemini Vision API
	result, err := pc.parseSlipWithGemini(fileBytes, mimeType)
	if err != nil {
		processingTime := time.Since(startTime).Milliseconds()
		service.SaveFailureResultAsync(requestID, fmt.Sprintf("Gemini parsing failed: %s", err.Error()), processingTime)

		logger.Error(fmt.Sprintf("Failed to parse payment slip with Gemini for request %s", requestID), err)

		return pc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Message: "Failed to parse payment slip",
			Status:  fiber.StatusInternalServerError,
			Data: map[string]interface{}{
				"error":      err.Error(),
				"request_id": requestID,
			},
		})
	}

	// Calculate processing time
	processingTime := time.Since(startTime).Milliseconds()
	result.ProcessingTimeMs = processingTime
	result.RequestID = requestID

	// Save success result asynchronously
	service.SaveSuccessResultAsync(requestID, result)

	// Log successful parsing
	logger.Success(fmt.Sprintf("Payment slip parsed successfully in %dms with transaction ID: %s, Request ID: %s",
		processingTime, result.TransactionID, requestID))

	return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Payment slip parsed successfully",
		Data:    result,
	})
}

// parseSlipWithGemini uses Gemini Vision API to extract structured data from the payment slip
func (pc *PaymentController) parseSlipWithGemini(imageBytes []byte, mimeType string) (*paymentModel.SlipParserResponse, error) {
	ctx := context.Background()

	// Get API key from environment
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("API_KEY not found in environment variables")
	}

	// Create Gemini client
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	// Create the prompt for extracting payment slip data
	prompt := `Analyze this mobile banking payment slip image and extract the following information. Return ONLY valid JSON.

			Extract these fields from the image. If a field is missing or unclear, use an empty string (or 0 for amount).

			Required JSON format:
			{
			"amount": number,                // Transferred amount as a plain number, no currency symbol
			"transaction_id": string,        // Transaction/TrxID reference
			"sender_name": string,           // Name of the sender if shown
			"sender_phone": string,          // Sender's phone/wallet number
			"provider": string,              // Payment provider (bKash, Nagad, Rocket, bank name)
			"transaction_date": string       // Date and time of the transaction as shown
			}`

	// Generate content with image and prompt
	content := &genai.Content{
		Parts: []*genai.Part{
			&genai.Part{Text: prompt},
			&genai.Part{InlineData: &genai.Blob{
				MIMEType: mimeType,
				Data:     imageBytes,
			}},
		},
	}

	result, err := client.Models.GenerateContent(
		ctx,
		"gemini-2.5-flash-lite",
		[]*genai.Content{content},
		&genai.GenerateContentConfig{
			Temperature: genai.Ptr(float32(0.1)),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content with OCR: %w", err)
	}

	// Extract text from result
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no content generated by OCR")
	}

	responseText := result.Candidates[0].Content.Parts[0].Text
	if responseText == "" {
		return nil, fmt.Errorf("empty response from OCR")
	}

	// Extract JSON from markdown code blocks if present
	jsonText := extractJSONFromMarkdown(responseText)

	// Parse JSON response
	var parsedData paymentModel.SlipParserResponse
	if err := json.Unmarshal([]byte(jsonText), &parsedData); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w, response: %s", err, jsonText)
	}

	return &parsedData, nil
}

// extractJSONFromMarkdown extracts JSON content from markdown code blocks
func extractJSONFromMarkdown(text string) string {
	// Remove leading and trailing whitespace
	text = strings.TrimSpace(text)

	// Check if the text starts with ```json and ends with ```
	if strings.HasPrefix(text, "```json") && strings.HasSuffix(text, "```") {
		// Remove the markdown code block markers
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
		text = strings.TrimSpace(text)
		return text
	}

	// Check if the text starts with ``` and ends with ``` (generic code block)
	if strings.HasPrefix(text, "```") && strings.HasSuffix(text, "```") {
		// Find the first newline after the opening ```
		lines := strings.Split(text, "\n")
		if len(lines) > 1 {
			// Join all lines except the first and last
			jsonLines := lines[1 : len(lines)-1]
			return strings.Join(jsonLines, "\n")
		}
	}

	// If no markdown code blocks found, return the text as is
	return text
}

// isValidImageType checks if the provided content type is a valid image type
func isValidImageType(contentType string) bool {
	validTypes := map[string]bool{
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
		"image/webp": true,
	}
	return validTypes[contentType]
}
