package crm

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/autocrm/autocrm/internal/domain/user"
	"github.com/autocrm/autocrm/internal/shared/biztime"
	"github.com/autocrm/autocrm/internal/shared/errors"
)

// GetUser returns (nil, nil) when no users row has the id.
func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if u, ok := s.users.get(id); ok {
		return u, nil
	}
	u, err := s.deps.Users.Get(ctx, id)
	if err != nil {
		return nil, errors.NewBackendError("failed to get user", err)
	}
	if u != nil {
		s.users.put(u)
	}
	return u, nil
}

// GetUserFresh reads the users row past the cache and refreshes the cached
// entry. Role checks use it so a role change made elsewhere applies at once.
func (s *Service) GetUserFresh(ctx context.Context, id uuid.UUID) (*user.User, error) {
	u, err := s.deps.Users.Get(ctx, id)
	if err != nil {
		return nil, errors.NewBackendError("failed to get user", err)
	}
	if u == nil {
		s.users.invalidate(id)
		return nil, nil
	}
	s.users.put(u)
	return u, nil
}

func (s *Service) GetAllUsers(ctx context.Context) ([]*user.User, error) {
	users, err := s.deps.Users.List(ctx)
	if err != nil {
		return nil, errors.NewBackendError("failed to list users", err)
	}
	return users, nil
}

// UpsertUser writes the profile row keyed by id. An empty email or role keeps
// the stored value; a new row defaults to the customer role.
func (s *Service) UpsertUser(ctx context.Context, in UserInput) (*user.User, error) {
	if in.ID == uuid.Nil {
		return nil, errors.NewValidationError("user ID is required")
	}

	existing, err := s.deps.Users.Get(ctx, in.ID)
	if err != nil {
		return nil, errors.NewBackendError("failed to get user", err)
	}

	email, role := in.Email, user.Role(in.Role)
	if existing != nil {
		if email == "" {
			email = existing.Email()
		}
		if role == "" {
			role = existing.Role()
		}
	}
	if role == "" {
		role = user.RoleCustomer
	}

	u, err := user.NewUser(in.ID, email, role)
	if err != nil {
		return nil, errors.NewValidationError("invalid user", err.Error())
	}
	if err := u.UpdateProfile(in.FirstName, in.LastName, in.FriendlyName); err != nil {
		return nil, errors.NewValidationError("invalid user", err.Error())
	}
	if existing != nil {
		u.SetProfilePictureURL(existing.ProfilePictureURL())
	}

	if err := s.deps.Users.Upsert(ctx, u); err != nil {
		return nil, errors.NewBackendError("failed to upsert user", err)
	}
	s.users.put(u)
	return u, nil
}

// UploadProfilePicture stores the image under the user's id and points the
// profile at its public URL. A failed profile write leaves the object behind.
func (s *Service) UploadProfilePicture(ctx context.Context, userID uuid.UUID, up Upload) (*user.User, error) {
	u, err := s.deps.Users.Get(ctx, userID)
	if err != nil {
		return nil, errors.NewBackendError("failed to get user", err)
	}
	if u == nil {
		return nil, errors.NewNotFoundError("user not found", userID.String())
	}
	if up.Body == nil {
		return nil, errors.NewValidationError("file is required")
	}

	path := ownedPath(userID.String(), profileObjectName(up.FileName, biztime.NowUTC()))
	if err := s.deps.Storage.Upload(ctx, s.opts.ProfileBucket, path, up.ContentType, up.Body); err != nil {
		return nil, errors.NewBackendError("failed to upload profile picture", err)
	}

	u.SetProfilePictureURL(s.deps.Storage.PublicURL(s.opts.ProfileBucket, path))
	if err := s.deps.Users.Upsert(ctx, u); err != nil {
		return nil, errors.NewBackendError(fmt.Sprintf("failed to save profile picture URL for %s", path), err)
	}
	s.users.put(u)
	s.logger.Infow("profile picture updated", "user_id", userID, "path", path)
	return u, nil
}
