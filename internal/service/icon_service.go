package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/spendwise/spendwise-backend/internal/domain"
	"github.com/spendwise/spendwise-backend/internal/repository/storage"
)

const (
	MaxIconSize     = 2 * 1024 * 1024 // 2MB
	MinIconWidth    = 32
	MinIconHeight   = 32
	IconWidth       = 128
	IconJPEGQuality = 85

	// IconURLExpiry is how long a presigned icon link stays valid
	IconURLExpiry = 24 * time.Hour
)

var (
	ErrIconTooLarge             = errors.New("file too large. Maximum size is 2MB")
	ErrIconInvalidFormat        = errors.New("invalid format. Supported: JPEG, PNG, WebP")
	ErrIconTooSmall             = errors.New("image too small. Minimum 32x32 pixels")
	ErrIconInvalidData          = errors.New("invalid image data")
	ErrIconStorageNotConfigured = errors.New("icon storage not configured")
)

// allowedIconExtensions maps extensions to content types
var allowedIconExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// IconService handles budget icon image uploads. Uploads are resized to a
// fixed width, stored privately, and referenced from the budget via a
// presigned URL.
type IconService struct {
	budgetRepo domain.BudgetRepository
	storage    storage.ObjectRepository
}

// NewIconService creates a new IconService
func NewIconService(budgetRepo domain.BudgetRepository, storage storage.ObjectRepository) *IconService {
	return &IconService{
		budgetRepo: budgetRepo,
		storage:    storage,
	}
}

// IsEnabled indicates whether icon uploads are supported (storage configured).
func (s *IconService) IsEnabled() bool {
	return s != nil && s.storage != nil
}

// validateAndDecode validates the icon image and returns the decoded image
func (s *IconService) validateAndDecode(data []byte, filename string) (image.Image, error) {
	if len(data) > MaxIconSize {
		return nil, ErrIconTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedIconExtensions[ext]; !ok {
		return nil, ErrIconInvalidFormat
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrIconInvalidData
	}

	bounds := img.Bounds()
	if bounds.Dx() < MinIconWidth || bounds.Dy() < MinIconHeight {
		return nil, ErrIconTooSmall
	}

	return img, nil
}

// UploadIcon validates, resizes, and stores a budget icon, then records
// its presigned URL on the budget. Returns the updated budget.
func (s *IconService) UploadIcon(ctx context.Context, owner string, budgetID int32, data []byte, filename string) (*domain.Budget, error) {
	if !s.IsEnabled() {
		return nil, ErrIconStorageNotConfigured
	}

	// The budget must exist and belong to the caller
	if _, err := s.budgetRepo.GetByID(owner, budgetID); err != nil {
		return nil, err
	}

	img, err := s.validateAndDecode(data, filename)
	if err != nil {
		return nil, err
	}

	processed := img
	if img.Bounds().Dx() > IconWidth {
		processed = imaging.Resize(img, IconWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, processed, &jpeg.Options{Quality: IconJPEGQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode icon: %w", err)
	}

	objectPath := fmt.Sprintf("icons/%s/%d/%s.jpg", sanitizePathSegment(owner), budgetID, uuid.New().String())
	if _, err := s.storage.Upload(ctx, objectPath, bytes.NewReader(buf.Bytes()), "image/jpeg", int64(buf.Len())); err != nil {
		return nil, fmt.Errorf("failed to upload icon: %w", err)
	}

	url, err := s.storage.GeneratePresignedURL(ctx, objectPath, IconURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to presign icon: %w", err)
	}

	return s.budgetRepo.SetIconURL(owner, budgetID, url)
}
