package access

import (
	"errors"

	"github.com/perditionlabs/recruitd/internal/models"
	"gorm.io/gorm"
)

// ResourceKind names a resource type the resolver can walk to its owning
// organisation.
type ResourceKind string

const (
	KindOrganisation ResourceKind = "organisation"
	KindCampaign     ResourceKind = "campaign"
	KindRole         ResourceKind = "role"
	KindQuestion     ResourceKind = "question"
	KindApplication  ResourceKind = "application"
	KindAnswer       ResourceKind = "answer"
	KindComment      ResourceKind = "comment"
	KindRating       ResourceKind = "rating"
	KindOffer        ResourceKind = "offer"
)

// Resolver walks a resource's ownership chain to its organisation and looks
// up the caller's membership there. Resolution is read-only; it never writes
// and never assumes the chain is intact, so a dangling foreign key simply
// resolves to a denied Check.
type Resolver struct {
	db *gorm.DB
}

func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

// Resolve returns the permission Check for userID over the resource. The
// superuser flag lives on the user row and trumps every membership lookup,
// so it is consulted first: a superuser acts even with no membership at all.
func (r *Resolver) Resolve(kind ResourceKind, resourceID, userID uint64) Check {
	var user models.User
	if err := r.db.Select("id", "superuser").First(&user, userID).Error; err != nil {
		return Denied()
	}
	if user.Superuser {
		return Resolved(models.AdminLevelAdmin, true)
	}

	level, err := r.membershipLevel(kind, resourceID, userID)
	if err != nil {
		return Denied()
	}
	return Resolved(level, false)
}

type membershipRow struct {
	AdminLevel models.AdminLevel
}

// membershipLevel runs the one named join chain for the resource kind. Each
// chain is a fixed query shape ending at the memberships table.
func (r *Resolver) membershipLevel(kind ResourceKind, resourceID, userID uint64) (models.AdminLevel, error) {
	q := r.db.Table("memberships").
		Select("memberships.admin_level").
		Where("memberships.user_id = ?", userID)

	switch kind {
	case KindOrganisation:
		q = q.Where("memberships.organisation_id = ?", resourceID)

	case KindCampaign:
		q = joinCampaign(q).
			Where("campaigns.id = ?", resourceID)

	case KindRole:
		q = joinRole(q).
			Where("roles.id = ?", resourceID)

	case KindQuestion:
		q = joinCampaign(q).
			Joins("JOIN questions ON questions.campaign_id = campaigns.id AND questions.deleted_at IS NULL").
			Where("questions.id = ?", resourceID)

	case KindApplication:
		q = joinApplication(q).
			Where("applications.id = ?", resourceID)

	case KindAnswer:
		q = joinApplication(q).
			Joins("JOIN answers ON answers.application_id = applications.id AND answers.deleted_at IS NULL").
			Where("answers.id = ?", resourceID)

	case KindComment:
		q = joinApplication(q).
			Joins("JOIN comments ON comments.application_id = applications.id AND comments.deleted_at IS NULL").
			Where("comments.id = ?", resourceID)

	case KindRating:
		q = joinApplication(q).
			Joins("JOIN ratings ON ratings.application_id = applications.id AND ratings.deleted_at IS NULL").
			Where("ratings.id = ?", resourceID)

	case KindOffer:
		q = joinApplication(q).
			Joins("JOIN offers ON offers.application_id = applications.id AND offers.deleted_at IS NULL").
			Where("offers.id = ?", resourceID)

	default:
		return "", ErrDenied
	}

	var row membershipRow
	if err := q.Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrDenied
		}
		return "", err
	}
	return row.AdminLevel, nil
}

func joinCampaign(q *gorm.DB) *gorm.DB {
	return q.Joins("JOIN campaigns ON campaigns.organisation_id = memberships.organisation_id AND campaigns.deleted_at IS NULL")
}

func joinRole(q *gorm.DB) *gorm.DB {
	return joinCampaign(q).
		Joins("JOIN roles ON roles.campaign_id = campaigns.id AND roles.deleted_at IS NULL")
}

func joinApplication(q *gorm.DB) *gorm.DB {
	return joinRole(q).
		Joins("JOIN applications ON applications.role_id = roles.id AND applications.deleted_at IS NULL")
}
