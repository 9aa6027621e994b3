package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"photoset/api/internal/model"
	"photoset/api/internal/repository"
)

type AdminStats struct {
	TotalUsers       int64 `json:"total_users"`
	TotalImages      int64 `json:"total_images"`
	TotalCreditsUsed int64 `json:"total_credits_used"`
	ActiveUsers      int64 `json:"active_users"`
}

type GalleryItemInput struct {
	ImageURL    string
	Title       string
	Description string
	Theme       string
	Category    string
}

// GalleryItemUpdate carries a partial update; nil fields stay untouched.
type GalleryItemUpdate struct {
	Title       *string
	Description *string
	ImageURL    *string
	IsVisible   *bool
}

type PhotoshootInput struct {
	ImageURL    string
	Title       string
	Description string
	ThemeID     string
	Icon        string
}

type AdminService interface {
	Stats(ctx context.Context) (*AdminStats, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	ListImages(ctx context.Context) ([]model.GeneratedImage, error)
	// ExportImages serves the paginated dashboard export; archived images
	// are excluded, and the total reflects that filter.
	ExportImages(ctx context.Context, limit, offset int) ([]model.GeneratedImage, int64, error)

	AddGalleryItem(ctx context.Context, createdBy uuid.UUID, input GalleryItemInput) (*model.GalleryItem, error)
	ListGallery(ctx context.Context, category string) ([]model.GalleryItem, error)
	UpdateGalleryItem(ctx context.Context, id uuid.UUID, update GalleryItemUpdate) error

	AddPhotoshoot(ctx context.Context, createdBy uuid.UUID, input PhotoshootInput) (*model.PhotoshootExample, error)
	ListPhotoshoots(ctx context.Context) ([]model.PhotoshootExample, error)
}

type adminService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	imageRepo   repository.ImageRepository
	galleryRepo repository.GalleryRepository
}

func NewAdminService(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	imageRepo repository.ImageRepository,
	galleryRepo repository.GalleryRepository,
) AdminService {
	return &adminService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		imageRepo:   imageRepo,
		galleryRepo: galleryRepo,
	}
}

func (s *adminService) Stats(ctx context.Context) (*AdminStats, error) {
	totalUsers, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalImages, err := s.imageRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	creditsUsed, err := s.userRepo.SumCreditsExcludingPlan(ctx, "unlimited")
	if err != nil {
		return nil, err
	}
	activeUsers, err := s.sessionRepo.CountActiveUsersSince(ctx, time.Now().UTC().Add(-7*24*time.Hour))
	if err != nil {
		return nil, err
	}
	return &AdminStats{
		TotalUsers:       totalUsers,
		TotalImages:      totalImages,
		TotalCreditsUsed: creditsUsed,
		ActiveUsers:      activeUsers,
	}, nil
}

func (s *adminService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx, 100)
}

func (s *adminService) ListImages(ctx context.Context) ([]model.GeneratedImage, error) {
	return s.imageRepo.ListAll(ctx, 100, 0)
}

func (s *adminService) ExportImages(ctx context.Context, limit, offset int) ([]model.GeneratedImage, int64, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	images, err := s.imageRepo.ListAll(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.imageRepo.CountVisible(ctx)
	if err != nil {
		return nil, 0, err
	}
	return images, total, nil
}

func (s *adminService) AddGalleryItem(ctx context.Context, createdBy uuid.UUID, input GalleryItemInput) (*model.GalleryItem, error) {
	category := input.Category
	if category == "" {
		category = "gallery"
	}
	item := &model.GalleryItem{
		ImageURL:    input.ImageURL,
		Title:       input.Title,
		Description: input.Description,
		Theme:       input.Theme,
		Category:    category,
		IsVisible:   true,
		CreatedBy:   createdBy,
	}
	if err := s.galleryRepo.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *adminService) ListGallery(ctx context.Context, category string) ([]model.GalleryItem, error) {
	if category == "" {
		category = "gallery"
	}
	return s.galleryRepo.ListItems(ctx, category)
}

func (s *adminService) UpdateGalleryItem(ctx context.Context, id uuid.UUID, update GalleryItemUpdate) error {
	fields := map[string]interface{}{}
	if update.Title != nil {
		fields["title"] = *update.Title
	}
	if update.Description != nil {
		fields["description"] = *update.Description
	}
	if update.ImageURL != nil {
		fields["image_url"] = *update.ImageURL
	}
	if update.IsVisible != nil {
		fields["is_visible"] = *update.IsVisible
	}
	if len(fields) == 0 {
		return nil
	}
	return s.galleryRepo.UpdateItem(ctx, id, fields)
}

func (s *adminService) AddPhotoshoot(ctx context.Context, createdBy uuid.UUID, input PhotoshootInput) (*model.PhotoshootExample, error) {
	icon := input.Icon
	if icon == "" {
		icon = "Image"
	}
	example := &model.PhotoshootExample{
		ImageURL:    input.ImageURL,
		Title:       input.Title,
		Description: input.Description,
		ThemeID:     input.ThemeID,
		Icon:        icon,
		IsVisible:   true,
		CreatedBy:   createdBy,
	}
	if err := s.galleryRepo.CreatePhotoshoot(ctx, example); err != nil {
		return nil, err
	}
	return example, nil
}

func (s *adminService) ListPhotoshoots(ctx context.Context) ([]model.PhotoshootExample, error) {
	return s.galleryRepo.ListPhotoshoots(ctx)
}

var _ AdminService = (*adminService)(nil)
