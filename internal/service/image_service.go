package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"photoset/api/internal/model"
	"photoset/api/internal/repository"
)

var ErrImageFieldsRequired = errors.New("prompt and image_url are required")

// ImageRehoster copies a remote image into durable storage and returns the
// new URL. *storage.Uploader satisfies it.
type ImageRehoster interface {
	Rehost(ctx context.Context, srcURL string) (string, error)
}

type SaveImageInput struct {
	Prompt   string
	ImageURL string
	Theme    string
	Model    string
}

type ImageService interface {
	Save(ctx context.Context, user *model.User, input SaveImageInput) (*model.GeneratedImage, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.GeneratedImage, error)
	SetFavorite(ctx context.Context, imageID, userID uuid.UUID, favorite bool) error
	SetArchived(ctx context.Context, imageID, userID uuid.UUID, archived bool) error
}

type imageService struct {
	imageRepo repository.ImageRepository
	rehoster  ImageRehoster // nil when S3 re-hosting is not configured
	log       *zap.Logger
}

func NewImageService(imageRepo repository.ImageRepository, rehoster ImageRehoster, log *zap.Logger) ImageService {
	return &imageService{
		imageRepo: imageRepo,
		rehoster:  rehoster,
		log:       log,
	}
}

func (s *imageService) Save(ctx context.Context, user *model.User, input SaveImageInput) (*model.GeneratedImage, error) {
	if input.Prompt == "" || input.ImageURL == "" {
		return nil, ErrImageFieldsRequired
	}

	imageURL := input.ImageURL
	if s.rehoster != nil {
		hosted, err := s.rehoster.Rehost(ctx, imageURL)
		if err != nil {
			// Keep the provider URL rather than lose the image.
			s.log.Warn("image re-host failed, keeping provider url",
				zap.String("user_id", user.ID.String()),
				zap.Error(err),
			)
		} else {
			imageURL = hosted
		}
	}

	image := &model.GeneratedImage{
		UserID:   user.ID,
		Prompt:   input.Prompt,
		ImageURL: imageURL,
		Theme:    input.Theme,
		Model:    input.Model,
	}
	if err := s.imageRepo.Create(ctx, image); err != nil {
		return nil, err
	}
	return image, nil
}

func (s *imageService) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.GeneratedImage, error) {
	return s.imageRepo.ListByUser(ctx, userID, 100)
}

func (s *imageService) SetFavorite(ctx context.Context, imageID, userID uuid.UUID, favorite bool) error {
	return s.imageRepo.SetFavorite(ctx, imageID, userID, favorite)
}

func (s *imageService) SetArchived(ctx context.Context, imageID, userID uuid.UUID, archived bool) error {
	return s.imageRepo.SetArchived(ctx, imageID, userID, archived)
}

var _ ImageService = (*imageService)(nil)
