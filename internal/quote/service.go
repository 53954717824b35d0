package quote

import (
	"errors"
	"fmt"

	"github.com/coverdesk/api-operations/internal/activity"
	"github.com/coverdesk/api-operations/internal/deal"
	"gorm.io/gorm"
)

// Service owns the quote status transition: on an actual change it writes one
// audit record and moves the linked deal per the status-to-stage table.
type Service struct {
	Quotes     Repository
	Deals      deal.Repository
	Activities activity.Repository
}

func NewService() *Service {
	return &Service{
		Quotes:     NewRepository(),
		Deals:      deal.NewRepository(),
		Activities: activity.NewRepository(),
	}
}

// UpdateStatus sets the quote status. Setting the current status again is a
// no-op: no audit record, no deal update.
func (s *Service) UpdateStatus(db *gorm.DB, id uint, newStatus string, actorID uint) (*Quote, error) {
	if !ValidStatus(newStatus) {
		return nil, fmt.Errorf("invalid quote status %q", newStatus)
	}

	current, err := s.Quotes.GetByID(db, id)
	if err != nil {
		return nil, err
	}
	if current.Status == newStatus {
		return current, nil
	}

	oldStatus := current.Status
	if err := s.Quotes.SetStatus(db, id, newStatus); err != nil {
		return nil, err
	}
	current.Status = newStatus

	if err := s.Activities.Save(db, &activity.Activity{
		EntityType:  "quote",
		EntityID:    id,
		Description: fmt.Sprintf("status changed from %s to %s", oldStatus, newStatus),
		ActorID:     actorID,
		System:      actorID == 0,
	}); err != nil {
		return nil, err
	}

	if stage, ok := DealStageFor(newStatus); ok {
		linked, err := s.Deals.GetByQuote(db, id)
		switch {
		case err == nil:
			if err := s.Deals.SetStage(db, linked.ID, stage); err != nil {
				return nil, err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// No linked deal; nothing to move.
		default:
			return nil, err
		}
	}

	return current, nil
}
