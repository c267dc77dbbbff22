package services

import (
	"context"
	"errors"
	"fmt"
	"hostel-server/config"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

const (
	CNICFolder  = "hostel/cnic"
	RoomsFolder = "hostel/rooms"
)

// Uploader stores an image and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, data, folder string) (string, error)
}

type CloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryUploader(cfg config.CloudinaryConfig) (*CloudinaryUploader, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	if cfg.URL != "" {
		cld, err = cloudinary.NewFromURL(cfg.URL)
	} else {
		cld, err = cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	}
	if err != nil {
		return nil, fmt.Errorf("configuring cloudinary: %w", err)
	}
	return &CloudinaryUploader{cld: cld}, nil
}

func (u *CloudinaryUploader) Upload(ctx context.Context, data, folder string) (string, error) {
	res, err := u.cld.Upload.Upload(ctx, data, uploader.UploadParams{
		PublicID: uuid.NewString(),
		Folder:   folder,
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if res == nil || res.SecureURL == "" {
		return "", errors.New("cloudinary upload returned no url")
	}
	return res.SecureURL, nil
}

func isDataURI(value string) bool {
	return strings.HasPrefix(value, "data:")
}

// storeImage uploads inline base64 images. URLs, and every value when no
// uploader is configured, are kept as given.
func storeImage(ctx context.Context, up Uploader, value, folder string) (string, error) {
	if up == nil || !isDataURI(value) {
		return value, nil
	}
	return up.Upload(ctx, value, folder)
}
