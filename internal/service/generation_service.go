package service

import (
	"context"

	"go.uber.org/zap"

	"photoset/api/internal/model"
	"photoset/api/internal/provider/openai"
	"photoset/api/internal/repository"
)

// ImageGenerator is the external image-generation collaborator.
// *openai.Client satisfies it.
type ImageGenerator interface {
	Generate(ctx context.Context, req openai.GenerateRequest) (*openai.Image, error)
}

type GenerateInput struct {
	Prompt string
	Size   string
	Model  string
}

type GenerateResult struct {
	ImageURL           string                   `json:"image_url"`
	Prompt             string                   `json:"prompt"`
	Model              string                   `json:"model"`
	RemainingFree      *int                     `json:"remaining_free,omitempty"`
	RemainingCredits   *int                     `json:"remaining_credits,omitempty"`
	SubscriptionStatus model.SubscriptionStatus `json:"subscription_status"`
}

type GenerationService interface {
	// Generate checks the caller's quota, calls the provider, and debits
	// exactly one counter: the free-tier counter for unsubscribed users, the
	// credit balance for subscribed ones.
	Generate(ctx context.Context, user *model.User, input GenerateInput) (*GenerateResult, error)
}

type generationService struct {
	userRepo  repository.UserRepository
	generator ImageGenerator
	log       *zap.Logger
}

func NewGenerationService(userRepo repository.UserRepository, generator ImageGenerator, log *zap.Logger) GenerationService {
	return &generationService{
		userRepo:  userRepo,
		generator: generator,
		log:       log,
	}
}

func (s *generationService) Generate(ctx context.Context, user *model.User, input GenerateInput) (*GenerateResult, error) {
	if input.Prompt == "" {
		return nil, ErrPromptRequired
	}

	if user.Subscribed() {
		if user.Credits <= 0 {
			return nil, ErrNoCredits
		}
	} else if user.FreeGenerationsUsed >= user.FreeGenerationsLimit {
		return nil, ErrFreeLimitExceeded
	}

	image, err := s.generator.Generate(ctx, openai.GenerateRequest{
		Prompt: input.Prompt,
		Size:   input.Size,
		Model:  input.Model,
	})
	if err != nil {
		return nil, err
	}

	result := &GenerateResult{
		ImageURL:           image.URL,
		Prompt:             input.Prompt,
		Model:              input.Model,
		SubscriptionStatus: user.SubscriptionStatus,
	}

	// Conditional updates at the storage layer keep concurrent requests from
	// losing debits; a failed guard means another request spent the last unit.
	if user.Subscribed() {
		ok, err := s.userRepo.ConsumeCredit(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrNoCredits
		}
		remaining := user.Credits - 1
		result.RemainingCredits = &remaining
	} else {
		ok, err := s.userRepo.ConsumeFreeGeneration(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrFreeLimitExceeded
		}
		remaining := user.FreeGenerationsLimit - user.FreeGenerationsUsed - 1
		if remaining < 0 {
			remaining = 0
		}
		result.RemainingFree = &remaining
	}

	s.log.Info("image generated",
		zap.String("user_id", user.ID.String()),
		zap.String("model", input.Model),
		zap.String("subscription_status", string(user.SubscriptionStatus)),
	)
	return result, nil
}

var _ GenerationService = (*generationService)(nil)
