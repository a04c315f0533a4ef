package dto

import (
	"time"

	"github.com/perditionlabs/recruitd/internal/models"
)

// OfferDTO represents an offer in API responses. The reply token is never
// included; it travels only inside the offer email.
type OfferDTO struct {
	ID            uint64             `json:"id"`
	ApplicationID uint64             `json:"application_id"`
	RoleID        uint64             `json:"role_id"`
	EmailTemplate string             `json:"email_template"`
	ExpiresAt     time.Time          `json:"expires_at"`
	Status        models.OfferStatus `json:"status"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// ToOfferDTO converts an offer to DTO
func ToOfferDTO(offer models.Offer) OfferDTO {
	return OfferDTO{
		ID:            offer.ID,
		ApplicationID: offer.ApplicationID,
		RoleID:        offer.RoleID,
		EmailTemplate: offer.EmailTemplate,
		ExpiresAt:     offer.ExpiresAt,
		Status:        offer.Status,
		CreatedAt:     offer.CreatedAt,
	}
}

// ToOfferDTOs converts a list of offers to DTOs
func ToOfferDTOs(offers []models.Offer) []OfferDTO {
	dtos := make([]OfferDTO, len(offers))
	for i, offer := range offers {
		dtos[i] = ToOfferDTO(offer)
	}
	return dtos
}
