package repositories

import (
	"errors"
	"strings"

	"creatordna_backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CollabRequestRepository owns the request aggregate: the request row,
// its matches, and its audit trail. Every state transition runs in a
// transaction that first locks the request row, so concurrent accepts,
// declines, cancels and proposal refreshes serialize on the aggregate.
type CollabRequestRepository interface {
	CreateRequest(request *models.CollabRequest) error
	FindRequestByID(id string) (*models.CollabRequest, error)
	ListByRequester(requesterID string) ([]models.CollabRequest, error)
	ListByStatus(status models.RequestStatus) ([]models.CollabRequest, error)

	// CancelRequest moves the request to cancelled and voids any
	// proposed matches. Only open and matched requests can be cancelled.
	CancelRequest(requestID, actorID string) (*models.CollabRequest, error)

	// ReplaceProposedMatches atomically swaps the request's proposed
	// match set. The request's status is re-checked under the row lock,
	// so a cancel or accept that landed while scoring was in flight
	// wins and the stale proposal set is discarded.
	ReplaceProposedMatches(requestID string, matches []models.CollabMatch) error

	FindMatches(requestID string) ([]models.CollabMatch, error)
	FindMatchByID(matchID string) (*models.CollabMatch, error)

	// AcceptMatch accepts exactly one match per request. Returns the
	// accepted match and its request on success.
	AcceptMatch(matchID, actorID string) (*models.CollabMatch, *models.CollabRequest, error)

	// DeclineMatch declines a proposed match. When the last proposed
	// match is declined on a matched request, the request reverts to
	// open so it can be re-proposed.
	DeclineMatch(matchID, actorID string) (*models.CollabMatch, *models.CollabRequest, error)

	// HasAcceptedMatchOnProject reports whether the creator already has
	// an accepted match on any request of the given project.
	HasAcceptedMatchOnProject(creatorID, projectID string) (bool, error)

	ListAudit(requestID string) ([]models.CollabAuditEntry, error)
}

type CollabRequestRepositoryImpl struct {
	db *gorm.DB
}

func NewCollabRequestRepository(db *gorm.DB) CollabRequestRepository {
	return &CollabRequestRepositoryImpl{db: db}
}

func (r *CollabRequestRepositoryImpl) CreateRequest(request *models.CollabRequest) error {
	if request.Status == "" {
		request.Status = models.RequestStatusOpen
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(request).Error; err != nil {
			return err
		}
		return appendAudit(tx, request.ID, nil, "", string(request.Status), request.RequesterID)
	})
}

func (r *CollabRequestRepositoryImpl) FindRequestByID(id string) (*models.CollabRequest, error) {
	var request models.CollabRequest
	err := r.db.First(&request, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *CollabRequestRepositoryImpl) ListByRequester(requesterID string) ([]models.CollabRequest, error) {
	var requests []models.CollabRequest
	err := r.db.Where("requester_id = ?", requesterID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *CollabRequestRepositoryImpl) ListByStatus(status models.RequestStatus) ([]models.CollabRequest, error) {
	var requests []models.CollabRequest
	err := r.db.Where("status = ?", status).
		Order("created_at ASC").
		Find(&requests).Error
	return requests, err
}

func (r *CollabRequestRepositoryImpl) CancelRequest(requestID, actorID string) (*models.CollabRequest, error) {
	var request models.CollabRequest
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := lockRequest(tx, requestID, &request); err != nil {
			return err
		}
		// Retried cancels converge on the same terminal state.
		if request.Status == models.RequestStatusCancelled {
			return nil
		}
		if !models.CanTransition(request.Status, models.RequestStatusCancelled) {
			return ErrInvalidStatus
		}

		// Proposed matches are voided; accepted ones cannot exist here
		// because accepted requests are not cancellable.
		var voided []models.CollabMatch
		if err := tx.Where("request_id = ? AND status = ?", requestID, models.MatchStatusProposed).
			Find(&voided).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.CollabMatch{}).
			Where("request_id = ? AND status = ?", requestID, models.MatchStatusProposed).
			Update("status", models.MatchStatusDeclined).Error; err != nil {
			return err
		}
		for i := range voided {
			if err := appendAudit(tx, requestID, &voided[i].ID,
				string(models.MatchStatusProposed), string(models.MatchStatusDeclined), actorID); err != nil {
				return err
			}
		}

		from := request.Status
		request.Status = models.RequestStatusCancelled
		if err := tx.Model(&request).Update("status", request.Status).Error; err != nil {
			return err
		}
		return appendAudit(tx, requestID, nil, string(from), string(request.Status), actorID)
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *CollabRequestRepositoryImpl) ReplaceProposedMatches(requestID string, matches []models.CollabMatch) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var request models.CollabRequest
		if err := lockRequest(tx, requestID, &request); err != nil {
			return err
		}
		// Commit-time check: a request that was cancelled or accepted
		// while matches were being scored must not come back to life.
		if request.Status != models.RequestStatusOpen && request.Status != models.RequestStatusMatched {
			return ErrInvalidStatus
		}

		if err := tx.Where("request_id = ? AND status = ?", requestID, models.MatchStatusProposed).
			Delete(&models.CollabMatch{}).Error; err != nil {
			return err
		}

		// Declined and accepted rows survive the swap and keep the
		// (request_id, candidate_id) slot; those candidates cannot be
		// proposed again for this request.
		var settledRows []models.CollabMatch
		if err := tx.Where("request_id = ?", requestID).Find(&settledRows).Error; err != nil {
			return err
		}
		settled := make(map[string]bool, len(settledRows))
		for _, m := range settledRows {
			settled[m.CandidateID] = true
		}

		kept := make([]models.CollabMatch, 0, len(matches))
		for i := range matches {
			if settled[matches[i].CandidateID] {
				continue
			}
			matches[i].RequestID = requestID
			matches[i].Status = models.MatchStatusProposed
			kept = append(kept, matches[i])
		}
		if len(kept) > 0 {
			if err := tx.Create(&kept).Error; err != nil {
				return err
			}
		}

		target := models.RequestStatusOpen
		if len(kept) > 0 {
			target = models.RequestStatusMatched
		}
		if target == request.Status {
			return nil
		}
		from := request.Status
		if err := tx.Model(&request).Update("status", target).Error; err != nil {
			return err
		}
		return appendAudit(tx, requestID, nil, string(from), string(target), request.RequesterID)
	})
}

func (r *CollabRequestRepositoryImpl) FindMatches(requestID string) ([]models.CollabMatch, error) {
	var matches []models.CollabMatch
	err := r.db.Where("request_id = ?", requestID).
		Order("score DESC, created_at ASC, id ASC").
		Find(&matches).Error
	return matches, err
}

func (r *CollabRequestRepositoryImpl) FindMatchByID(matchID string) (*models.CollabMatch, error) {
	var match models.CollabMatch
	err := r.db.First(&match, "id = ?", matchID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, err
	}
	return &match, nil
}

func (r *CollabRequestRepositoryImpl) AcceptMatch(matchID, actorID string) (*models.CollabMatch, *models.CollabRequest, error) {
	var match models.CollabMatch
	var request models.CollabRequest
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&match, "id = ?", matchID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMatchNotFound
			}
			return err
		}
		// Lock the request first: the row lock is the serialization
		// point for the whole aggregate.
		if err := lockRequest(tx, match.RequestID, &request); err != nil {
			return err
		}
		// Re-read the match under the lock; its status may have moved.
		if err := tx.First(&match, "id = ?", matchID).Error; err != nil {
			return err
		}

		switch request.Status {
		case models.RequestStatusAccepted:
			return ErrAlreadyAccepted
		case models.RequestStatusCancelled:
			return ErrInvalidStatus
		}
		if match.Status == models.MatchStatusAccepted {
			return ErrAlreadyAccepted
		}
		if match.Status != models.MatchStatusProposed {
			return ErrInvalidStatus
		}

		match.Status = models.MatchStatusAccepted
		if err := tx.Model(&match).Update("status", match.Status).Error; err != nil {
			// The partial unique index on accepted matches backs up the
			// row lock; a violation here means a concurrent accept won.
			if isUniqueViolation(err) {
				return ErrAlreadyAccepted
			}
			return err
		}

		var siblings []models.CollabMatch
		if err := tx.Where("request_id = ? AND id <> ? AND status = ?",
			request.ID, match.ID, models.MatchStatusProposed).
			Find(&siblings).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.CollabMatch{}).
			Where("request_id = ? AND id <> ? AND status = ?",
				request.ID, match.ID, models.MatchStatusProposed).
			Update("status", models.MatchStatusDeclined).Error; err != nil {
			return err
		}
		for i := range siblings {
			if err := appendAudit(tx, request.ID, &siblings[i].ID,
				string(models.MatchStatusProposed), string(models.MatchStatusDeclined), actorID); err != nil {
				return err
			}
		}

		from := request.Status
		request.Status = models.RequestStatusAccepted
		if err := tx.Model(&request).Update("status", request.Status).Error; err != nil {
			return err
		}
		return appendAudit(tx, request.ID, &match.ID, string(from), string(request.Status), actorID)
	})
	if err != nil {
		return nil, nil, err
	}
	return &match, &request, nil
}

func (r *CollabRequestRepositoryImpl) DeclineMatch(matchID, actorID string) (*models.CollabMatch, *models.CollabRequest, error) {
	var match models.CollabMatch
	var request models.CollabRequest
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&match, "id = ?", matchID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMatchNotFound
			}
			return err
		}
		if err := lockRequest(tx, match.RequestID, &request); err != nil {
			return err
		}
		if err := tx.First(&match, "id = ?", matchID).Error; err != nil {
			return err
		}

		// Retried declines are a no-op.
		if match.Status == models.MatchStatusDeclined {
			return nil
		}
		if match.Status != models.MatchStatusProposed {
			return ErrInvalidStatus
		}

		match.Status = models.MatchStatusDeclined
		if err := tx.Model(&match).Update("status", match.Status).Error; err != nil {
			return err
		}
		if err := appendAudit(tx, request.ID, &match.ID,
			string(models.MatchStatusProposed), string(match.Status), actorID); err != nil {
			return err
		}

		// A matched request with nothing left proposed or accepted goes
		// back to open so it can be re-proposed.
		if request.Status == models.RequestStatusMatched {
			var live int64
			if err := tx.Model(&models.CollabMatch{}).
				Where("request_id = ? AND status IN ?", request.ID,
					[]models.MatchStatus{models.MatchStatusProposed, models.MatchStatusAccepted}).
				Count(&live).Error; err != nil {
				return err
			}
			if live == 0 {
				from := request.Status
				request.Status = models.RequestStatusOpen
				if err := tx.Model(&request).Update("status", request.Status).Error; err != nil {
					return err
				}
				if err := appendAudit(tx, request.ID, nil, string(from), string(request.Status), actorID); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &match, &request, nil
}

func (r *CollabRequestRepositoryImpl) HasAcceptedMatchOnProject(creatorID, projectID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.CollabMatch{}).
		Joins("JOIN collab_requests ON collab_requests.id = collab_matches.request_id").
		Where("collab_matches.candidate_id = ? AND collab_matches.status = ? AND collab_requests.project_id = ?",
			creatorID, models.MatchStatusAccepted, projectID).
		Count(&count).Error
	return count > 0, err
}

func (r *CollabRequestRepositoryImpl) ListAudit(requestID string) ([]models.CollabAuditEntry, error) {
	var entries []models.CollabAuditEntry
	err := r.db.Where("request_id = ?", requestID).
		Order("created_at ASC, id ASC").
		Find(&entries).Error
	return entries, err
}

func lockRequest(tx *gorm.DB, requestID string, dest *models.CollabRequest) error {
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(dest, "id = ?", requestID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRequestNotFound
	}
	return err
}

// appendAudit records a transition on the request itself (matchID nil)
// or on one of its matches. From/to hold whichever status vocabulary
// the transition belongs to.
func appendAudit(tx *gorm.DB, requestID string, matchID *string, from, to, actorID string) error {
	return tx.Create(&models.CollabAuditEntry{
		ID:         uuid.NewString(),
		RequestID:  requestID,
		MatchID:    matchID,
		FromStatus: from,
		ToStatus:   to,
		ActorID:    actorID,
	}).Error
}

// isUniqueViolation matches Postgres error code 23505 by message; the
// pure-Go driver does not expose a typed error for it through gorm.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "23505") ||
		strings.Contains(msg, "UNIQUE constraint")
}
