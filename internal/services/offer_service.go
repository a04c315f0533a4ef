package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/perditionlabs/recruitd/internal/mailer"
	"github.com/perditionlabs/recruitd/internal/models"
	"github.com/perditionlabs/recruitd/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrOfferNotFound          = errors.New("offer not found")
	ErrOfferNotDraft          = errors.New("offer has already been sent")
	ErrOfferNotSent           = errors.New("offer is not awaiting a reply")
	ErrOfferExpired           = errors.New("offer has expired")
	ErrOfferExpiryInPast      = errors.New("offer expiry must be in the future")
	ErrApplicationNotDecided  = errors.New("application has not been marked successful")
	ErrInvalidOfferResolution = errors.New("reply must accept or decline")
)

// OfferService provides business logic for offers. Status transitions are
// time-gated: a reply after expiry is rejected and leaves the status as is.
type OfferService struct {
	offerRepo repository.OfferRepository
	appRepo   repository.ApplicationRepository
	mail      mailer.Mailer
}

// NewOfferService creates a new OfferService. mail may be nil, in which case
// sending an offer skips the notification.
func NewOfferService(offerRepo repository.OfferRepository, appRepo repository.ApplicationRepository, mail mailer.Mailer) *OfferService {
	return &OfferService{
		offerRepo: offerRepo,
		appRepo:   appRepo,
		mail:      mail,
	}
}

// CreateOfferInput represents parameters to draft an offer.
type CreateOfferInput struct {
	ApplicationID uint64
	EmailTemplate string
	ExpiresAt     time.Time
}

// CreateOffer drafts an offer for a successful application.
func (s *OfferService) CreateOffer(input CreateOfferInput) (*models.Offer, error) {
	if !input.ExpiresAt.After(time.Now()) {
		return nil, ErrOfferExpiryInPast
	}

	app, err := s.appRepo.FindByID(input.ApplicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}
	if app.PrivateStatus != models.ApplicationStatusSuccessful {
		return nil, ErrApplicationNotDecided
	}

	offer := &models.Offer{
		ApplicationID: app.ID,
		RoleID:        app.RoleID,
		EmailTemplate: input.EmailTemplate,
		ReplyToken:    uuid.NewString(),
		ExpiresAt:     input.ExpiresAt,
		Status:        models.OfferStatusDraft,
	}

	if err := s.offerRepo.Create(offer); err != nil {
		return nil, fmt.Errorf("failed to create offer: %w", err)
	}

	return offer, nil
}

// GetOffer returns an offer by ID.
func (s *OfferService) GetOffer(offerID uint64) (*models.Offer, error) {
	offer, err := s.offerRepo.FindByID(offerID, "Application", "Role")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfferNotFound
		}
		return nil, fmt.Errorf("failed to find offer: %w", err)
	}
	return offer, nil
}

// GetOfferByToken returns the offer a reply token refers to. This is the
// applicant-facing lookup and needs no membership.
func (s *OfferService) GetOfferByToken(token string) (*models.Offer, error) {
	offer, err := s.offerRepo.FindByReplyToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfferNotFound
		}
		return nil, fmt.Errorf("failed to find offer: %w", err)
	}
	return offer, nil
}

// SendOffer transitions a draft offer to Sent and mails the applicant the
// rendered template.
func (s *OfferService) SendOffer(offerID uint64) (*models.Offer, error) {
	offer, err := s.offerRepo.FindByID(offerID, "Application", "Application.User")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfferNotFound
		}
		return nil, fmt.Errorf("failed to find offer: %w", err)
	}

	if offer.Status != models.OfferStatusDraft {
		return nil, ErrOfferNotDraft
	}
	if offer.Expired(time.Now()) {
		return nil, ErrOfferExpired
	}

	offer.Status = models.OfferStatusSent
	if err := s.offerRepo.Update(offer); err != nil {
		return nil, fmt.Errorf("failed to send offer: %w", err)
	}

	if s.mail != nil {
		if err := s.mail.Send(offer.Application.User.Email, "You have an offer", offer.EmailTemplate); err != nil {
			return nil, fmt.Errorf("failed to mail offer: %w", err)
		}
	}

	return offer, nil
}

// RespondToOffer records the applicant's reply. Replies are only valid on a
// Sent offer before its expiry; anything else leaves the status unchanged.
func (s *OfferService) RespondToOffer(token string, accept bool) (*models.Offer, error) {
	offer, err := s.offerRepo.FindByReplyToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfferNotFound
		}
		return nil, fmt.Errorf("failed to find offer: %w", err)
	}

	if offer.Status != models.OfferStatusSent {
		return nil, ErrOfferNotSent
	}
	if offer.Expired(time.Now()) {
		return nil, ErrOfferExpired
	}

	if accept {
		offer.Status = models.OfferStatusAccepted
	} else {
		offer.Status = models.OfferStatusDeclined
	}

	if err := s.offerRepo.Update(offer); err != nil {
		return nil, fmt.Errorf("failed to record offer reply: %w", err)
	}

	return offer, nil
}

// ListByRole lists a role's offers for reviewers.
func (s *OfferService) ListByRole(roleID uint64) ([]models.Offer, error) {
	offers, err := s.offerRepo.ListByRole(roleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	return offers, nil
}
