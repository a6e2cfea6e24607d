package slip_parser

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pitch-booking/logger"
	paymentModel "pitch-booking/models/payment"
)

// SlipParserService handles payment slip parsing requests
type SlipParserService struct {
	DB        *gorm.DB
	UploadDir string
}

// NewSlipParserService creates a new slip parser service
func NewSlipParserService(db *gorm.DB) *SlipParserService {
	return &SlipParserService{
		DB:        db,
		UploadDir: "uploaded_slips",
	}
}

// GenerateRequestID generates a 24 character unique request ID
func (s *SlipParserService) GenerateRequestID() string {
	// Generate 12 random bytes (which will become 24 hex characters)
	bytes := make([]byte, 12)
	rand.Read(bytes)

	requestID := hex.EncodeToString(bytes)

	// Use last 6 characters of timestamp + 18 characters of random hex
	timestamp := time.Now().Unix()
	return fmt.Sprintf("%06x%s", timestamp&0xffffff, requestID[:18])
}

// CreateInitialRequest creates an initial request record in the database
func (s *SlipParserService) CreateInitialRequest(c *fiber.Ctx, requestID string, bookingID uint, originalFileName string, fileSize int64, mimeType string) (*paymentModel.SlipParserRequest, error) {
	ipAddress := c.IP()
	if ipAddress == "" {
		ipAddress = "unknown"
	}

	request := &paymentModel.SlipParserRequest{
		RequestID:        requestID,
		BookingID:        bookingID,
		OriginalFileName: originalFileName,
		FileSize:         fileSize,
		MimeType:         mimeType,
		Status:           "processing",
		IPAddress:        ipAddress,
		UserAgent:        c.Get("User-Agent"),
	}

	if err := s.DB.Create(request).Error; err != nil {
		return nil, fmt.Errorf("failed to create initial request: %w", err)
	}

	return request, nil
}

// SaveFileAsync saves the uploaded slip image asynchronously
func (s *SlipParserService) SaveFileAsync(requestID string, fileBytes []byte, originalFileName, mimeType string) {
	go func() {
		if err := s.saveFile(requestID, fileBytes, originalFileName); err != nil {
			logger.Error(fmt.Sprintf("Failed to save file for request %s", requestID), err)
			s.updateRequestWithFileError(requestID, err.Error())
		}
	}()
}

// saveFile saves the file to disk and updates the database record
func (s *SlipParserService) saveFile(requestID string, fileBytes []byte, originalFileName string) error {
	if err := s.ensureUploadDir(); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	hash := sha256.Sum256(fileBytes)
	fileHash := hex.EncodeToString(hash[:])

	ext := filepath.Ext(originalFileName)
	savedFileName := fmt.Sprintf("%s_%d%s", requestID, time.Now().Unix(), ext)
	filePath := filepath.Join(s.UploadDir, savedFileName)

	if err := os.WriteFile(filePath, fileBytes, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	updates := map[string]interface{}{
		"saved_file_name": savedFileName,
		"file_hash":       fileHash,
		"file_path":       filePath,
	}

	if err := s.DB.Model(&paymentModel.SlipParserRequest{}).Where("request_id = ?", requestID).Updates(updates).Error; err != nil {
		// If database update fails, try to clean up the file
		os.Remove(filePath)
		return fmt.Errorf("failed to update request with file info: %w", err)
	}

	logger.Success(fmt.Sprintf("File saved successfully for request %s: %s", requestID, savedFileName))
	return nil
}

// SaveSuccessResultAsync saves the parsing result asynchronously
func (s *SlipParserService) SaveSuccessResultAsync(requestID string, result *paymentModel.SlipParserResponse) {
	go func() {
		var request paymentModel.SlipParserRequest
		if err := s.DB.Where("request_id = ?", requestID).First(&request).Error; err != nil {
			logger.Error(fmt.Sprintf("Failed to find request %s", requestID), err)
			return
		}
		if err := request.MarkAsSuccess(s.DB, result); err != nil {
			logger.Error(fmt.Sprintf("Failed to save success result for request %s", requestID), err)
		}
	}()
}

// SaveFailureResultAsync saves the failure result asynchronously
func (s *SlipParserService) SaveFailureResultAsync(requestID string, errorMsg string, processingTime int64) {
	go func() {
		var request paymentModel.SlipParserRequest
		if err := s.DB.Where("request_id = ?", requestID).First(&request).Error; err != nil {
			logger.Error(fmt.Sprintf("Failed to find request %s", requestID), err)
			return
		}
		if err := request.MarkAsFailed(s.DB, errorMsg, processingTime); err != nil {
			logger.Error(fmt.Sprintf("Failed to save failure result for request %s", requestID), err)
		}
	}()
}

// updateRequestWithFileError updates the request with file saving error
func (s *SlipParserService) updateRequestWithFileError(requestID string, errorMsg string) {
	updates := map[string]interface{}{
		"status":        "failed",
		"error_message": fmt.Sprintf("File saving error: %s", errorMsg),
	}

	if err := s.DB.Model(&paymentModel.SlipParserRequest{}).Where("request_id = ?", requestID).Updates(updates).Error; err != nil {
		logger.Error(fmt.Sprintf("Failed to update request %s with file error", requestID), err)
	}
}

// ensureUploadDir creates the upload directory if it doesn't exist
func (s *SlipParserService) ensureUploadDir() error {
	if _, err := os.Stat(s.UploadDir); os.IsNotExist(err) {
		if err := os.MkdirAll(s.UploadDir, 0755); err != nil {
			return err
		}
		logger.Info(fmt.Sprintf("Created upload directory: %s", s.UploadDir))
	}
	return nil
}

// GetRequestByID retrieves a request by ID
func (s *SlipParserService) GetRequestByID(requestID string) (*paymentModel.SlipParserRequest, error) {
	var request paymentModel.SlipParserRequest
	if err := s.DB.Where("request_id = ?", requestID).First(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// CleanupOldFiles removes slip images older than the given number of days
func (s *SlipParserService) CleanupOldFiles(daysOld int) error {
	cutoffDate := time.Now().AddDate(0, 0, -daysOld)

	var oldRequests []paymentModel.SlipParserRequest
	if err := s.DB.Where("created_at < ? AND file_path != ''", cutoffDate).Find(&oldRequests).Error; err != nil {
		return err
	}

	for _, request := range oldRequests {
		if request.FilePath != "" {
			if err := os.Remove(request.FilePath); err != nil && !os.IsNotExist(err) {
				logger.Error(fmt.Sprintf("Failed to remove old file: %s", request.FilePath), err)
			}
		}

		if err := s.DB.Model(&request).Update("file_path", "").Error; err != nil {
			logger.Error(fmt.Sprintf("Failed to clear file path for request %s", request.RequestID), err)
		}
	}

	return nil
}
