package services

import (
	"context"
	"errors"
	"fmt"

	"creatordna_backend/internal/logger"
	"creatordna_backend/internal/models"
	"creatordna_backend/internal/repositories"
	"creatordna_backend/internal/services/dto"
	"creatordna_backend/pkg/apperrors"
)

// CollaborationBonusPoints is granted to both parties when a match is
// accepted.
const CollaborationBonusPoints = 5

const collaborationBonusReason = "Collaboration Bonus"

// MatchProposer decouples request creation from match scoring. The
// production implementation is the async matching worker; tests pass a
// synchronous one.
type MatchProposer interface {
	Enqueue(requestID string) bool
}

type CollabService interface {
	CreateRequest(ctx context.Context, userID string, req *dto.CreateCollabRequestRequest) (*dto.CollabRequestResponse, error)
	GetRequest(ctx context.Context, requestID string) (*dto.CollabRequestResponse, error)
	ListMyRequests(ctx context.Context, userID string) ([]dto.CollabRequestResponse, error)
	CancelRequest(ctx context.Context, userID, requestID string) (*dto.CollabRequestResponse, error)

	ListMatches(ctx context.Context, userID, requestID string) ([]dto.MatchResponse, error)
	AcceptMatch(ctx context.Context, userID, requestID, matchID string) (*dto.AcceptMatchResponse, error)
	DeclineMatch(ctx context.Context, userID, requestID, matchID string) (*dto.MatchResponse, error)

	GetAudit(ctx context.Context, userID, requestID string) ([]dto.AuditEntryResponse, error)
}

type CollabServiceImpl struct {
	requestRepo     repositories.CollabRequestRepository
	creatorRepo     repositories.CreatorRepository
	projectRepo     repositories.ProjectRepository
	rewardRepo      repositories.RewardRepository
	notificationSvc NotificationService
	matchingSvc     MatchingService
	proposer        MatchProposer // nil means propose synchronously
}

func NewCollabService(
	requestRepo repositories.CollabRequestRepository,
	creatorRepo repositories.CreatorRepository,
	projectRepo repositories.ProjectRepository,
	rewardRepo repositories.RewardRepository,
	notificationSvc NotificationService,
	matchingSvc MatchingService,
) *CollabServiceImpl {
	return &CollabServiceImpl{
		requestRepo:     requestRepo,
		creatorRepo:     creatorRepo,
		projectRepo:     projectRepo,
		rewardRepo:      rewardRepo,
		notificationSvc: notificationSvc,
		matchingSvc:     matchingSvc,
	}
}

// SetProposer installs the async match proposer. Called once at wiring
// time; not safe to call after the service is in use.
func (s *CollabServiceImpl) SetProposer(p MatchProposer) {
	s.proposer = p
}

func (s *CollabServiceImpl) CreateRequest(ctx context.Context, userID string, req *dto.CreateCollabRequestRequest) (*dto.CollabRequestResponse, error) {
	profile, err := s.creatorRepo.FindByUserID(userID)
	if err != nil {
		return nil, translateRepoError(err)
	}

	project, err := s.projectRepo.FindByID(req.ProjectID)
	if err != nil {
		// A dangling project reference is bad input, not a lookup miss.
		if errors.Is(err, repositories.ErrProjectNotFound) {
			return nil, apperrors.NewBadRequestError("project_id does not reference an existing project")
		}
		return nil, translateRepoError(err)
	}
	if project.CreatorID != profile.ID {
		return nil, apperrors.NewForbiddenError("Only the project owner may open a collaboration request")
	}

	request := &models.CollabRequest{
		RequesterID:  profile.ID,
		ProjectID:    req.ProjectID,
		LocationPref: req.LocationPref,
		Availability: req.Availability,
		Budget:       req.Budget,
		Status:       models.RequestStatusOpen,
	}
	request.SetNeededRoles(req.NeededRoles)

	if err := s.requestRepo.CreateRequest(request); err != nil {
		return nil, translateRepoError(err)
	}

	logger.CtxInfo(ctx, "collab request created",
		"request_id", request.ID, "project_id", request.ProjectID, "requester_id", profile.ID)

	s.propose(ctx, request.ID)

	resp := toCollabRequestResponse(request)
	return &resp, nil
}

// propose hands the request to the async worker when one is wired,
// otherwise scores inline.
func (s *CollabServiceImpl) propose(ctx context.Context, requestID string) {
	if s.proposer != nil && s.proposer.Enqueue(requestID) {
		return
	}
	if err := s.matchingSvc.ProposeMatches(ctx, requestID); err != nil {
		logger.CtxWarn(ctx, "match proposal failed", "request_id", requestID, "error", err)
	}
}

func (s *CollabServiceImpl) GetRequest(ctx context.Context, requestID string) (*dto.CollabRequestResponse, error) {
	request, err := s.requestRepo.FindRequestByID(requestID)
	if err != nil {
		return nil, translateRepoError(err)
	}
	resp := toCollabRequestResponse(request)
	return &resp, nil
}

func (s *CollabServiceImpl) ListMyRequests(ctx context.Context, userID string) ([]dto.CollabRequestResponse, error) {
	profile, err := s.creatorRepo.FindByUserID(userID)
	if err != nil {
		return nil, translateRepoError(err)
	}
	requests, err := s.requestRepo.ListByRequester(profile.ID)
	if err != nil {
		return nil, translateRepoError(err)
	}
	resp := make([]dto.CollabRequestResponse, 0, len(requests))
	for i := range requests {
		resp = append(resp, toCollabRequestResponse(&requests[i]))
	}
	return resp, nil
}

func (s *CollabServiceImpl) CancelRequest(ctx context.Context, userID, requestID string) (*dto.CollabRequestResponse, error) {
	profile, request, err := s.authorizeRequester(userID, requestID)
	if err != nil {
		return nil, err
	}

	// Capture candidates whose proposals are about to be voided.
	matches, err := s.requestRepo.FindMatches(requestID)
	if err != nil {
		return nil, translateRepoError(err)
	}

	cancelled, err := s.requestRepo.CancelRequest(requestID, profile.ID)
	if err != nil {
		return nil, translateRepoError(err)
	}

	logger.CtxInfo(ctx, "collab request cancelled",
		"request_id", requestID, "from_status", string(request.Status))

	for _, m := range matches {
		if m.Status != models.MatchStatusProposed {
			continue
		}
		if err := s.notificationSvc.Emit(ctx, m.CandidateID,
			models.NotificationKindDecline,
			fmt.Sprintf("match:%s:cancelled", m.ID),
			"Collaboration request withdrawn",
			"A collaboration request you were matched with has been withdrawn.",
			map[string]interface{}{"request_id": requestID, "match_id": m.ID},
		); err != nil {
			logger.CtxWarn(ctx, "cancel notification failed", "match_id", m.ID, "error", err)
		}
	}

	resp := toCollabRequestResponse(cancelled)
	return &resp, nil
}

func (s *CollabServiceImpl) ListMatches(ctx context.Context, userID, requestID string) ([]dto.MatchResponse, error) {
	_, _, err := s.authorizeRequester(userID, requestID)
	if err != nil {
		return nil, err
	}

	matches, err := s.requestRepo.FindMatches(requestID)
	if err != nil {
		return nil, translateRepoError(err)
	}

	resp := make([]dto.MatchResponse, 0, len(matches))
	for i := range matches {
		m := toMatchResponse(&matches[i])
		if candidate, err := s.creatorRepo.FindByID(matches[i].CandidateID); err == nil {
			m.Candidate = toCreatorSummary(candidate)
		}
		resp = append(resp, m)
	}
	return resp, nil
}

func (s *CollabServiceImpl) AcceptMatch(ctx context.Context, userID, requestID, matchID string) (*dto.AcceptMatchResponse, error) {
	profile, err := s.creatorRepo.FindByUserID(userID)
	if err != nil {
		return nil, translateRepoError(err)
	}

	match, err := s.requestRepo.FindMatchByID(matchID)
	if err != nil {
		return nil, translateRepoError(err)
	}
	if match.RequestID != requestID {
		return nil, apperrors.ErrMatchNotFound
	}
	request, err := s.requestRepo.FindRequestByID(match.RequestID)
	if err != nil {
		return nil, translateRepoError(err)
	}
	// Either side of the pairing may seal it.
	if request.RequesterID != profile.ID && match.CandidateID != profile.ID {
		return nil, apperrors.ErrNotMatchParticipant
	}

	// Pre-checks above are advisory; the repository re-validates under
	// the request row lock and is the single source of truth for the
	// accept race.
	accepted, acceptedRequest, err := s.requestRepo.AcceptMatch(matchID, profile.ID)
	if err != nil {
		return nil, translateRepoError(err)
	}

	logger.CtxInfo(ctx, "match accepted",
		"match_id", matchID, "request_id", acceptedRequest.ID, "candidate_id", accepted.CandidateID)

	s.grantCollaborationBonus(ctx, accepted.CandidateID)
	s.grantCollaborationBonus(ctx, acceptedRequest.RequesterID)

	// once per affected party; the dedup key is per recipient
	for _, recipient := range []string{accepted.CandidateID, acceptedRequest.RequesterID} {
		if err := s.notificationSvc.Emit(ctx, recipient,
			models.NotificationKindAccept,
			fmt.Sprintf("match:%s", matchID),
			"Match accepted",
			"Your collaboration match was accepted. Time to create together!",
			map[string]interface{}{"request_id": acceptedRequest.ID, "match_id": matchID},
		); err != nil {
			logger.CtxWarn(ctx, "accept notification failed", "match_id", matchID, "error", err)
		}
	}

	// Candidates displaced by the accept learn their proposal is gone.
	siblings, err := s.requestRepo.FindMatches(acceptedRequest.ID)
	if err == nil {
		for _, sib := range siblings {
			if sib.ID == matchID || sib.Status != models.MatchStatusDeclined {
				continue
			}
			if err := s.notificationSvc.Emit(ctx, sib.CandidateID,
				models.NotificationKindDecline,
				fmt.Sprintf("match:%s", sib.ID),
				"Match closed",
				"The collaboration request you were matched with has been filled.",
				map[string]interface{}{"request_id": acceptedRequest.ID, "match_id": sib.ID},
			); err != nil {
				logger.CtxWarn(ctx, "decline notification failed", "match_id", sib.ID, "error", err)
			}
		}
	}

	return &dto.AcceptMatchResponse{
		Match:   toMatchResponse(accepted),
		Request: toCollabRequestResponse(acceptedRequest),
	}, nil
}

func (s *CollabServiceImpl) DeclineMatch(ctx context.Context, userID, requestID, matchID string) (*dto.MatchResponse, error) {
	profile, err := s.creatorRepo.FindByUserID(userID)
	if err != nil {
		return nil, translateRepoError(err)
	}

	match, err := s.requestRepo.FindMatchByID(matchID)
	if err != nil {
		return nil, translateRepoError(err)
	}
	if match.RequestID != requestID {
		return nil, apperrors.ErrMatchNotFound
	}
	request, err := s.requestRepo.FindRequestByID(match.RequestID)
	if err != nil {
		return nil, translateRepoError(err)
	}
	// Requester declines a proposal they don't want; the candidate may
	// also bow out of their own match.
	if request.RequesterID != profile.ID && match.CandidateID != profile.ID {
		return nil, apperrors.ErrNotMatchParticipant
	}

	declined, _, err := s.requestRepo.DeclineMatch(matchID, profile.ID)
	if err != nil {
		return nil, translateRepoError(err)
	}

	logger.CtxInfo(ctx, "match declined", "match_id", matchID, "request_id", request.ID)

	// Only the counterparty needs to hear about it.
	recipient := declined.CandidateID
	if profile.ID == declined.CandidateID {
		recipient = request.RequesterID
	}
	if err := s.notificationSvc.Emit(ctx, recipient,
		models.NotificationKindDecline,
		fmt.Sprintf("match:%s", matchID),
		"Match declined",
		"A collaboration match was declined.",
		map[string]interface{}{"request_id": request.ID, "match_id": matchID},
	); err != nil {
		logger.CtxWarn(ctx, "decline notification failed", "match_id", matchID, "error", err)
	}

	resp := toMatchResponse(declined)
	return &resp, nil
}

func (s *CollabServiceImpl) GetAudit(ctx context.Context, userID, requestID string) ([]dto.AuditEntryResponse, error) {
	_, _, err := s.authorizeRequester(userID, requestID)
	if err != nil {
		return nil, err
	}

	entries, err := s.requestRepo.ListAudit(requestID)
	if err != nil {
		return nil, translateRepoError(err)
	}

	resp := make([]dto.AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, dto.AuditEntryResponse{
			ID:         e.ID,
			RequestID:  e.RequestID,
			MatchID:    e.MatchID,
			FromStatus: e.FromStatus,
			ToStatus:   e.ToStatus,
			ActorID:    e.ActorID,
			CreatedAt:  e.CreatedAt,
		})
	}
	return resp, nil
}

func (s *CollabServiceImpl) authorizeRequester(userID, requestID string) (*models.CreatorProfile, *models.CollabRequest, error) {
	profile, err := s.creatorRepo.FindByUserID(userID)
	if err != nil {
		return nil, nil, translateRepoError(err)
	}
	request, err := s.requestRepo.FindRequestByID(requestID)
	if err != nil {
		return nil, nil, translateRepoError(err)
	}
	if request.RequesterID != profile.ID {
		return nil, nil, apperrors.ErrNotRequestOwner
	}
	return profile, request, nil
}

func (s *CollabServiceImpl) grantCollaborationBonus(ctx context.Context, creatorID string) {
	if err := s.rewardRepo.Create(&models.Reward{
		CreatorID: creatorID,
		Reason:    collaborationBonusReason,
		Points:    CollaborationBonusPoints,
	}); err != nil {
		logger.CtxWarn(ctx, "reward grant failed", "creator_id", creatorID, "error", err)
		return
	}
	if err := s.creatorRepo.AddPoints(creatorID, CollaborationBonusPoints); err != nil {
		logger.CtxWarn(ctx, "points update failed", "creator_id", creatorID, "error", err)
	}
}

func toCollabRequestResponse(r *models.CollabRequest) dto.CollabRequestResponse {
	return dto.CollabRequestResponse{
		ID:           r.ID,
		RequesterID:  r.RequesterID,
		ProjectID:    r.ProjectID,
		NeededRoles:  r.GetNeededRoles(),
		LocationPref: r.LocationPref,
		Availability: r.Availability,
		Budget:       r.Budget,
		Status:       string(r.Status),
		CreatedAt:    r.CreatedAt,
	}
}

func toMatchResponse(m *models.CollabMatch) dto.MatchResponse {
	return dto.MatchResponse{
		ID:          m.ID,
		RequestID:   m.RequestID,
		CandidateID: m.CandidateID,
		Score:       m.Score,
		Reasons:     m.GetReasons(),
		Status:      string(m.Status),
		CreatedAt:   m.CreatedAt,
	}
}

func toCreatorSummary(p *models.CreatorProfile) *dto.CreatorSummary {
	return &dto.CreatorSummary{
		ID:           p.ID,
		DisplayName:  p.DisplayName,
		Role:         p.Role,
		Skills:       p.GetSkills(),
		Location:     p.Location,
		Availability: p.Availability,
	}
}
