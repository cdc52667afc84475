package services

import (
	"context"

	identity "github.com/dawitf/ece-backend/internal/app/auth"
	"github.com/dawitf/ece-backend/internal/app/models"
	"github.com/dawitf/ece-backend/internal/app/models/dto"
	"github.com/dawitf/ece-backend/internal/pkg/apperrors"
)

// contactStore is the slice of contact persistence the service needs.
type contactStore interface {
	Upsert(ctx context.Context, contact *models.Contact) error
	GetByUserID(ctx context.Context, userID int64) (*models.ContactInfo, error)
	ListAll(ctx context.Context) ([]models.ContactInfo, error)
	Delete(ctx context.Context, userID int64) error
}

// ContactService manages per-user office contact information.
type ContactService struct {
	contacts contactStore
}

// NewContactService creates a new contact service
func NewContactService(contacts contactStore) *ContactService {
	return &ContactService{contacts: contacts}
}

// SaveContact writes the acting user's contact card, replacing any
// existing one.
func (s *ContactService) SaveContact(ctx context.Context, actor identity.ActingIdentity, req dto.ContactRequest) error {
	if req.OfficeRoom == "" || req.PhoneNumber == "" || req.Availability == "" {
		return apperrors.NewValidationError("officeRoom, phoneNumber and availability are required")
	}
	return s.contacts.Upsert(ctx, &models.Contact{
		UserID:       actor.UserID,
		OfficeRoom:   req.OfficeRoom,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		Availability: req.Availability,
	})
}

// GetContact returns one user's contact card.
func (s *ContactService) GetContact(ctx context.Context, userID int64) (*models.ContactInfo, error) {
	return s.contacts.GetByUserID(ctx, userID)
}

// GetContacts lists every contact card.
func (s *ContactService) GetContacts(ctx context.Context) ([]models.ContactInfo, error) {
	return s.contacts.ListAll(ctx)
}

// DeleteContact removes the acting user's contact card. Admins may
// remove any user's card.
func (s *ContactService) DeleteContact(ctx context.Context, actor identity.ActingIdentity, userID int64) error {
	if actor.Role != models.RoleAdmin {
		userID = actor.UserID
	}
	return s.contacts.Delete(ctx, userID)
}
