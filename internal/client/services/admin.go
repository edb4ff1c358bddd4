package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/umsclient/internal/client/api"
	"github.com/dmitrijs2005/umsclient/internal/client/models"
	"github.com/dmitrijs2005/umsclient/internal/logging"
)

// AdminService backs the admin dashboard: listing, searching, deleting and
// editing user records. Search filters client-side, the way the dashboard
// does, so typing in the search box costs no extra requests.
type AdminService interface {
	ListUsers(ctx context.Context) ([]models.UserRecord, error)
	SearchUsers(ctx context.Context, term string) ([]models.UserRecord, error)
	DeleteUser(ctx context.Context, id string) error
	CreateUser(ctx context.Context, username, email, password string) (models.UserRecord, error)
	UpdateUser(ctx context.Context, id string, patch models.UserPatch) (models.UserRecord, error)
}

type adminService struct {
	client api.Client
	log    logging.Logger
}

func NewAdminService(client api.Client, log logging.Logger) AdminService {
	return &adminService{client: client, log: log}
}

func (s *adminService) ListUsers(ctx context.Context) ([]models.UserRecord, error) {
	users, err := s.client.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

func (s *adminService) SearchUsers(ctx context.Context, term string) ([]models.UserRecord, error) {
	users, err := s.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	return FilterUsers(users, term), nil
}

// FilterUsers keeps records whose username or email contains term,
// case-insensitively. An empty term keeps everything.
func FilterUsers(users []models.UserRecord, term string) []models.UserRecord {
	if term == "" {
		return users
	}
	needle := strings.ToLower(term)

	out := make([]models.UserRecord, 0, len(users))
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Username), needle) ||
			strings.Contains(strings.ToLower(u.Email), needle) {
			out = append(out, u)
		}
	}
	return out
}

func (s *adminService) DeleteUser(ctx context.Context, id string) error {
	if err := s.client.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	s.log.Info(ctx, "user deleted", "user_id", id)
	return nil
}

func (s *adminService) CreateUser(ctx context.Context, username, email, password string) (models.UserRecord, error) {
	patch := models.UserPatch{Username: &username, Email: &email, Password: &password}
	rec, err := s.client.CreateUser(ctx, patch)
	if err != nil {
		return models.UserRecord{}, fmt.Errorf("creating user: %w", err)
	}
	s.log.Info(ctx, "user created", "user_id", rec.ID)
	return rec, nil
}

func (s *adminService) UpdateUser(ctx context.Context, id string, patch models.UserPatch) (models.UserRecord, error) {
	rec, err := s.client.UpdateUser(ctx, id, patch)
	if err != nil {
		return models.UserRecord{}, fmt.Errorf("updating user: %w", err)
	}
	return rec, nil
}
