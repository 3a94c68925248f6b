package media

import (
	"context"
	"fmt"
	"time"

	"marketmate-be/internal/logger"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

const cloudinaryTimeout = 15 * time.Second

type cloudinaryRemover struct {
	upload *uploader.API
}

func NewCloudinaryRemover(cloudName, apiKey, apiSecret string) (Remover, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary config: %w", err)
	}
	return &cloudinaryRemover{upload: &cld.Upload}, nil
}

func (c *cloudinaryRemover) Remove(ctx context.Context, publicID string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "media"),
		zap.String("public_id", publicID),
	)

	ctx, cancel := context.WithTimeout(ctx, cloudinaryTimeout)
	defer cancel()

	res, err := c.upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		log.Error("cloudinary request failed", zap.Error(err))
		return err
	}
	if res.Error.Message != "" {
		return fmt.Errorf("cloudinary error: %s", res.Error.Message)
	}

	// "not found" means the image is already gone.
	if res.Result != "ok" && res.Result != "not found" {
		return fmt.Errorf("cloudinary destroy returned %q", res.Result)
	}

	log.Info("image removed", zap.String("result", res.Result))
	return nil
}
