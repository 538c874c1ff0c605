package services

import (
	"context"
	"fmt"

	"creatordna_backend/internal/algorithms"
	"creatordna_backend/internal/config"
	"creatordna_backend/internal/fairness"
	"creatordna_backend/internal/logger"
	"creatordna_backend/internal/models"
	"creatordna_backend/internal/repositories"
	"creatordna_backend/pkg/apperrors"
)

type MatchingService interface {
	// ProposeMatches scores all eligible candidates for the request and
	// atomically replaces its proposed match set with the top K. The
	// request moves to matched when at least one proposal exists, and
	// back to open when none do.
	ProposeMatches(ctx context.Context, requestID string) error
}

type MatchingServiceImpl struct {
	requestRepo     repositories.CollabRequestRepository
	creatorRepo     repositories.CreatorRepository
	notificationSvc NotificationService
	fairnessWindow  fairness.Window
}

func NewMatchingService(
	requestRepo repositories.CollabRequestRepository,
	creatorRepo repositories.CreatorRepository,
	notificationSvc NotificationService,
	fairnessWindow fairness.Window,
) MatchingService {
	return &MatchingServiceImpl{
		requestRepo:     requestRepo,
		creatorRepo:     creatorRepo,
		notificationSvc: notificationSvc,
		fairnessWindow:  fairnessWindow,
	}
}

func (s *MatchingServiceImpl) ProposeMatches(ctx context.Context, requestID string) error {
	request, err := s.requestRepo.FindRequestByID(requestID)
	if err != nil {
		return translateRepoError(err)
	}
	if request.Status != models.RequestStatusOpen && request.Status != models.RequestStatusMatched {
		return apperrors.ErrInvalidRequestStatus
	}

	cfg := config.GetConfig()
	weights := algorithms.Weights{
		Skill:        cfg.Matching.SkillWeight,
		Location:     cfg.Matching.LocationWeight,
		Availability: cfg.Matching.AvailabilityWeight,
	}
	criteria := algorithms.Criteria{
		NeededRoles: request.GetNeededRoles(),
	}
	if request.LocationPref != nil {
		criteria.LocationPref = *request.LocationPref
	}
	if request.Availability != nil {
		criteria.Availability = *request.Availability
	}

	profiles, err := s.creatorRepo.FindAll()
	if err != nil {
		return translateRepoError(err)
	}

	// Declined and accepted matches are never touched by a refresh, so
	// their candidates are out of the running for this request.
	existing, err := s.requestRepo.FindMatches(requestID)
	if err != nil {
		return translateRepoError(err)
	}
	settled := make(map[string]bool, len(existing))
	for _, m := range existing {
		if m.Status != models.MatchStatusProposed {
			settled[m.CandidateID] = true
		}
	}

	var scored []algorithms.Scored
	for _, p := range profiles {
		if p.ID == request.RequesterID {
			continue
		}
		if settled[p.ID] {
			continue
		}
		if !algorithms.HasSkillOverlap(p.GetSkills(), criteria.NeededRoles) {
			continue
		}
		taken, err := s.requestRepo.HasAcceptedMatchOnProject(p.ID, request.ProjectID)
		if err != nil {
			return translateRepoError(err)
		}
		if taken {
			continue
		}

		candidate := algorithms.Candidate{
			CreatorID:    p.ID,
			Skills:       p.GetSkills(),
			Location:     p.Location,
			Availability: p.Availability,
			RegSeq:       p.RegSeq,
		}
		score, reasons := algorithms.ScoreCandidate(candidate, criteria, weights)
		if score <= 0 {
			continue
		}
		score = algorithms.ApplyFairnessPenalty(score,
			s.fairnessWindow.Penalty(ctx, p.ID), cfg.Matching.FairnessWeight)

		scored = append(scored, algorithms.Scored{
			Candidate: candidate,
			Score:     score,
			Reasons:   reasons,
		})
	}

	algorithms.Rank(scored)
	if len(scored) > cfg.Matching.MaxMatches {
		scored = scored[:cfg.Matching.MaxMatches]
	}

	matches := make([]models.CollabMatch, 0, len(scored))
	for _, sc := range scored {
		match := models.CollabMatch{
			RequestID:   requestID,
			CandidateID: sc.Candidate.CreatorID,
			Score:       sc.Score,
			Status:      models.MatchStatusProposed,
		}
		match.SetReasons(sc.Reasons)
		matches = append(matches, match)
	}

	if err := s.requestRepo.ReplaceProposedMatches(requestID, matches); err != nil {
		// The request was cancelled or accepted while we were scoring;
		// the fresh proposal set is stale and dropped.
		translated := translateRepoError(err)
		if apperrors.Is(translated, apperrors.ErrInvalidRequestStatus) {
			logger.CtxInfo(ctx, "discarding stale match proposals", "request_id", requestID)
			return nil
		}
		return translated
	}

	for _, sc := range scored {
		if _, err := s.fairnessWindow.Incr(ctx, sc.Candidate.CreatorID); err != nil {
			logger.CtxWarn(ctx, "fairness counter increment failed",
				"creator_id", sc.Candidate.CreatorID, "error", err)
		}
		notifyErr := s.notificationSvc.Emit(ctx, sc.Candidate.CreatorID,
			models.NotificationKindMatch,
			fmt.Sprintf("request:%s", requestID),
			"New collaboration match",
			"You were matched with a collaboration request that fits your profile.",
			map[string]interface{}{"request_id": requestID, "score": sc.Score},
		)
		if notifyErr != nil {
			logger.CtxWarn(ctx, "match notification failed",
				"creator_id", sc.Candidate.CreatorID, "error", notifyErr)
		}
	}

	logger.CtxInfo(ctx, "match proposals refreshed",
		"request_id", requestID, "proposed", len(scored))
	return nil
}
