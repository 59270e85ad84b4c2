package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/support-desk/internal/auth"
	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/events"
	"github.com/spec-kit/support-desk/internal/repository"
	apperrors "github.com/spec-kit/support-desk/pkg/util"
)

// ProfileService validates and persists account profile edits.
type ProfileService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	bcryptCost int
}

// ProfileDependencies bundles collaborators for the profile service.
type ProfileDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
	BcryptCost int
}

// ProfileUpdateInput describes a profile edit. Password fields are optional;
// when either is set both must match exactly.
type ProfileUpdateInput struct {
	Name            string
	Email           string
	Mobile          string
	Password        string
	ConfirmPassword string
}

// NewProfileService constructs the service.
func NewProfileService(deps ProfileDependencies) *ProfileService {
	return &ProfileService{
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		bcryptCost: deps.BcryptCost,
	}
}

// Get loads a profile.
func (s *ProfileService) Get(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": userID})
		}
		return nil, apperrors.NewStorageError(err)
	}
	return user, nil
}

// UpdateProfile persists name/email/mobile and, when both password fields are
// supplied and equal, rehashes the credential. Validation failures abort
// before any write.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID int64, input ProfileUpdateInput) (*domain.User, error) {
	missing := map[string]any{}
	checkRequired(missing, "name", input.Name)
	checkRequired(missing, "email", input.Email)
	checkRequired(missing, "mobile", input.Mobile)
	if len(missing) > 0 {
		return nil, apperrors.NewValidationError("missing required fields", missing)
	}

	changePassword := input.Password != "" || input.ConfirmPassword != ""
	if changePassword && input.Password != input.ConfirmPassword {
		return nil, apperrors.NewValidationError("passwords do not match", nil)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": userID})
		}
		return nil, apperrors.NewStorageError(err)
	}

	user.Username = input.Name
	user.Email = input.Email
	user.MobileNumber = input.Mobile
	if changePassword {
		hash, err := auth.HashPassword(input.Password, s.bcryptCost)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		user.PasswordHash = hash
	}

	if err := s.users.UpdateProfile(ctx, user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": userID})
		}
		return nil, apperrors.NewStorageError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventProfileUpdated,
		ActorID:   user.ID,
		ActorRole: user.Role,
		Payload: events.ProfileUpdatedPayload{
			UserID:            user.ID,
			CredentialChanged: changePassword,
		},
	})
	return user, nil
}

func (s *ProfileService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
