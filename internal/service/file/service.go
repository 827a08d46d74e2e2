package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	"github.com/talentindo/hrms-backend-go/internal/domain/employee"
	"github.com/talentindo/hrms-backend-go/internal/pkg/storage"
	"golang.org/x/image/draw"
)

var ErrUnsupportedImage = errors.New("File must be a JPEG or PNG image")

// Photos larger than this edge are scaled down before storage.
const maxPhotoEdge = 512

type Service interface {
	UploadEmployeePhoto(ctx context.Context, employeeID string, content []byte) (string, error)
}

type serviceImpl struct {
	storage      storage.FileStorage
	employeeRepo employee.Repository
}

func NewService(fileStorage storage.FileStorage, employeeRepo employee.Repository) Service {
	return &serviceImpl{
		storage:      fileStorage,
		employeeRepo: employeeRepo,
	}
}

// UploadEmployeePhoto decodes, downscales and re-encodes the photo as JPEG,
// stores it, and records the path on the employee.
func (s *serviceImpl) UploadEmployeePhoto(ctx context.Context, employeeID string, content []byte) (string, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return "", err
	}

	img, _, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return "", ErrUnsupportedImage
	}
	img = downscale(img)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
		return "", fmt.Errorf("failed to encode photo: %w", err)
	}

	path := fmt.Sprintf("photos/%s.jpg", employeeID)
	if _, err := s.storage.Upload(ctx, &buf, path, "image/jpeg"); err != nil {
		return "", fmt.Errorf("failed to store photo: %w", err)
	}

	if err := s.employeeRepo.UpdatePhotoURL(ctx, employeeID, path); err != nil {
		return "", err
	}

	return path, nil
}

// downscale fits the image inside maxPhotoEdge, preserving the aspect ratio.
func downscale(img image.Image) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxPhotoEdge && h <= maxPhotoEdge {
		return img
	}

	scale := float64(maxPhotoEdge) / float64(w)
	if h > w {
		scale = float64(maxPhotoEdge) / float64(h)
	}
	dstW := int(float64(w) * scale)
	dstH := int(float64(h) * scale)

	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
