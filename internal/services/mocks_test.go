package services

import (
	"sort"
	"sync"

	"creatordna_backend/internal/models"
	"creatordna_backend/internal/repositories"

	"github.com/google/uuid"
)

// In-memory repositories for service tests. The request fake mirrors
// the transactional semantics of the real repository: one mutex plays
// the role of the request row lock.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) FindByID(id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) ExistsByEmail(email string) (bool, error) {
	_, err := r.FindByEmail(email)
	return err == nil, nil
}

type fakeCreatorRepo struct {
	mu       sync.Mutex
	profiles map[string]*models.CreatorProfile
	nextSeq  int64
}

func newFakeCreatorRepo() *fakeCreatorRepo {
	return &fakeCreatorRepo{profiles: make(map[string]*models.CreatorProfile)}
}

func (r *fakeCreatorRepo) Create(profile *models.CreatorProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	r.nextSeq++
	profile.RegSeq = r.nextSeq
	clone := *profile
	r.profiles[profile.ID] = &clone
	return nil
}

func (r *fakeCreatorRepo) Update(profile *models.CreatorProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[profile.ID]; !ok {
		return repositories.ErrCreatorNotFound
	}
	clone := *profile
	r.profiles[profile.ID] = &clone
	return nil
}

func (r *fakeCreatorRepo) FindByID(id string) (*models.CreatorProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.profiles[id]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, repositories.ErrCreatorNotFound
}

func (r *fakeCreatorRepo) FindByUserID(userID string) (*models.CreatorProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p.UserID == userID {
			clone := *p
			return &clone, nil
		}
	}
	return nil, repositories.ErrCreatorNotFound
}

func (r *fakeCreatorRepo) FindAll() ([]models.CreatorProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.CreatorProfile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RegSeq < out[j].RegSeq })
	return out, nil
}

func (r *fakeCreatorRepo) AddPoints(creatorID string, points int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[creatorID]
	if !ok {
		return repositories.ErrCreatorNotFound
	}
	p.Points += points
	return nil
}

type fakeProjectRepo struct {
	mu       sync.Mutex
	projects map[string]*models.Project
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[string]*models.Project)}
}

func (r *fakeProjectRepo) Create(project *models.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if project.ID == "" {
		project.ID = uuid.NewString()
	}
	clone := *project
	r.projects[project.ID] = &clone
	return nil
}

func (r *fakeProjectRepo) FindByID(id string) (*models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.projects[id]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, repositories.ErrProjectNotFound
}

func (r *fakeProjectRepo) ListByCreator(creatorID string) ([]models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Project
	for _, p := range r.projects {
		if p.CreatorID == creatorID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProjectRepo) Exists(id string) (bool, error) {
	_, err := r.FindByID(id)
	return err == nil, nil
}

type fakeRewardRepo struct {
	mu      sync.Mutex
	rewards []models.Reward
}

func newFakeRewardRepo() *fakeRewardRepo { return &fakeRewardRepo{} }

func (r *fakeRewardRepo) Create(reward *models.Reward) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if reward.ID == "" {
		reward.ID = uuid.NewString()
	}
	r.rewards = append(r.rewards, *reward)
	return nil
}

func (r *fakeRewardRepo) ListByCreator(creatorID string) ([]models.Reward, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Reward
	for _, rw := range r.rewards {
		if rw.CreatorID == creatorID {
			out = append(out, rw)
		}
	}
	return out, nil
}

type dedupKey struct {
	recipientID string
	kind        models.NotificationKind
	payloadRef  string
}

type fakeNotificationRepo struct {
	mu   sync.Mutex
	rows []models.Notification
	seen map[dedupKey]bool
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{seen: make(map[dedupKey]bool)}
}

func (r *fakeNotificationRepo) Create(n *models.Notification) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := dedupKey{n.RecipientID, n.Kind, n.PayloadRef}
	if r.seen[key] {
		return false, nil
	}
	r.seen[key] = true
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	r.rows = append(r.rows, *n)
	return true, nil
}

func (r *fakeNotificationRepo) FindByID(id string) (*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == id {
			clone := r.rows[i]
			return &clone, nil
		}
	}
	return nil, repositories.ErrNotificationNotFound
}

func (r *fakeNotificationRepo) FindByRecipient(criteria repositories.NotificationCriteria) ([]models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Notification
	for _, n := range r.rows {
		if n.RecipientID != criteria.RecipientID || n.IsArchived {
			continue
		}
		if criteria.UnreadOnly && n.IsRead {
			continue
		}
		if criteria.Kind != nil && n.Kind != *criteria.Kind {
			continue
		}
		out = append(out, n)
	}
	if criteria.Offset > 0 && criteria.Offset < len(out) {
		out = out[criteria.Offset:]
	} else if criteria.Offset >= len(out) {
		out = nil
	}
	if criteria.Limit > 0 && len(out) > criteria.Limit {
		out = out[:criteria.Limit]
	}
	return out, nil
}

func (r *fakeNotificationRepo) GetUnreadCount(recipientID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, n := range r.rows {
		if n.RecipientID == recipientID && !n.IsRead && !n.IsArchived {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkAsRead(id, recipientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == id && r.rows[i].RecipientID == recipientID {
			r.rows[i].IsRead = true
			return nil
		}
	}
	return repositories.ErrNotificationNotFound
}

func (r *fakeNotificationRepo) MarkAllAsRead(recipientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].RecipientID == recipientID {
			r.rows[i].IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) Archive(id, recipientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == id && r.rows[i].RecipientID == recipientID {
			r.rows[i].IsArchived = true
			return nil
		}
	}
	return repositories.ErrNotificationNotFound
}

// fakeRequestRepo replays the aggregate rules of the real repository.
// The mutex stands in for the request row lock.
type fakeRequestRepo struct {
	mu       sync.Mutex
	requests map[string]*models.CollabRequest
	matches  map[string]*models.CollabMatch
	matchSeq map[string]int64 // insertion order, for stable tie-breaks
	nextSeq  int64
	audit    []models.CollabAuditEntry
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{
		requests: make(map[string]*models.CollabRequest),
		matches:  make(map[string]*models.CollabMatch),
		matchSeq: make(map[string]int64),
	}
}

func (r *fakeRequestRepo) CreateRequest(request *models.CollabRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if request.ID == "" {
		request.ID = uuid.NewString()
	}
	if request.Status == "" {
		request.Status = models.RequestStatusOpen
	}
	clone := *request
	r.requests[request.ID] = &clone
	r.appendAudit(request.ID, nil, "", string(request.Status), request.RequesterID)
	return nil
}

func (r *fakeRequestRepo) FindRequestByID(id string) (*models.CollabRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findRequestLocked(id)
}

func (r *fakeRequestRepo) findRequestLocked(id string) (*models.CollabRequest, error) {
	if req, ok := r.requests[id]; ok {
		clone := *req
		return &clone, nil
	}
	return nil, repositories.ErrRequestNotFound
}

func (r *fakeRequestRepo) ListByRequester(requesterID string) ([]models.CollabRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.CollabRequest
	for _, req := range r.requests {
		if req.RequesterID == requesterID {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (r *fakeRequestRepo) ListByStatus(status models.RequestStatus) ([]models.CollabRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.CollabRequest
	for _, req := range r.requests {
		if req.Status == status {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (r *fakeRequestRepo) CancelRequest(requestID, actorID string) (*models.CollabRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	request, ok := r.requests[requestID]
	if !ok {
		return nil, repositories.ErrRequestNotFound
	}
	if request.Status == models.RequestStatusCancelled {
		clone := *request
		return &clone, nil
	}
	if !models.CanTransition(request.Status, models.RequestStatusCancelled) {
		return nil, repositories.ErrInvalidStatus
	}
	for _, m := range r.matches {
		if m.RequestID == requestID && m.Status == models.MatchStatusProposed {
			m.Status = models.MatchStatusDeclined
			r.appendAudit(requestID, &m.ID,
				string(models.MatchStatusProposed), string(m.Status), actorID)
		}
	}
	from := request.Status
	request.Status = models.RequestStatusCancelled
	r.appendAudit(requestID, nil, string(from), string(request.Status), actorID)
	clone := *request
	return &clone, nil
}

func (r *fakeRequestRepo) ReplaceProposedMatches(requestID string, matches []models.CollabMatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	request, ok := r.requests[requestID]
	if !ok {
		return repositories.ErrRequestNotFound
	}
	if request.Status != models.RequestStatusOpen && request.Status != models.RequestStatusMatched {
		return repositories.ErrInvalidStatus
	}
	for id, m := range r.matches {
		if m.RequestID == requestID && m.Status == models.MatchStatusProposed {
			delete(r.matches, id)
		}
	}
	// Mirror the (request_id, candidate_id) unique index: surviving
	// declined and accepted rows block re-proposal of their candidates.
	settled := make(map[string]bool)
	for _, m := range r.matches {
		if m.RequestID == requestID {
			settled[m.CandidateID] = true
		}
	}
	kept := 0
	for i := range matches {
		m := matches[i]
		if settled[m.CandidateID] {
			continue
		}
		if m.ID == "" {
			m.ID = uuid.NewString()
		}
		m.RequestID = requestID
		m.Status = models.MatchStatusProposed
		matches[i] = m
		clone := m
		r.matches[m.ID] = &clone
		r.nextSeq++
		r.matchSeq[m.ID] = r.nextSeq
		kept++
	}
	target := models.RequestStatusOpen
	if kept > 0 {
		target = models.RequestStatusMatched
	}
	if target != request.Status {
		from := request.Status
		request.Status = target
		r.appendAudit(requestID, nil, string(from), string(target), request.RequesterID)
	}
	return nil
}

func (r *fakeRequestRepo) FindMatches(requestID string) ([]models.CollabMatch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.CollabMatch
	for _, m := range r.matches {
		if m.RequestID == requestID {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return r.matchSeq[out[i].ID] < r.matchSeq[out[j].ID]
	})
	return out, nil
}

func (r *fakeRequestRepo) FindMatchByID(matchID string) (*models.CollabMatch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.matches[matchID]; ok {
		clone := *m
		return &clone, nil
	}
	return nil, repositories.ErrMatchNotFound
}

func (r *fakeRequestRepo) AcceptMatch(matchID, actorID string) (*models.CollabMatch, *models.CollabRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	match, ok := r.matches[matchID]
	if !ok {
		return nil, nil, repositories.ErrMatchNotFound
	}
	request, ok := r.requests[match.RequestID]
	if !ok {
		return nil, nil, repositories.ErrRequestNotFound
	}

	switch request.Status {
	case models.RequestStatusAccepted:
		return nil, nil, repositories.ErrAlreadyAccepted
	case models.RequestStatusCancelled:
		return nil, nil, repositories.ErrInvalidStatus
	}
	if match.Status == models.MatchStatusAccepted {
		return nil, nil, repositories.ErrAlreadyAccepted
	}
	if match.Status != models.MatchStatusProposed {
		return nil, nil, repositories.ErrInvalidStatus
	}

	match.Status = models.MatchStatusAccepted
	for _, sib := range r.matches {
		if sib.RequestID == request.ID && sib.ID != match.ID && sib.Status == models.MatchStatusProposed {
			sib.Status = models.MatchStatusDeclined
			r.appendAudit(request.ID, &sib.ID,
				string(models.MatchStatusProposed), string(sib.Status), actorID)
		}
	}
	from := request.Status
	request.Status = models.RequestStatusAccepted
	r.appendAudit(request.ID, &match.ID, string(from), string(request.Status), actorID)

	matchClone := *match
	requestClone := *request
	return &matchClone, &requestClone, nil
}

func (r *fakeRequestRepo) DeclineMatch(matchID, actorID string) (*models.CollabMatch, *models.CollabRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	match, ok := r.matches[matchID]
	if !ok {
		return nil, nil, repositories.ErrMatchNotFound
	}
	request, ok := r.requests[match.RequestID]
	if !ok {
		return nil, nil, repositories.ErrRequestNotFound
	}
	if match.Status == models.MatchStatusDeclined {
		matchClone := *match
		requestClone := *request
		return &matchClone, &requestClone, nil
	}
	if match.Status != models.MatchStatusProposed {
		return nil, nil, repositories.ErrInvalidStatus
	}

	match.Status = models.MatchStatusDeclined
	r.appendAudit(request.ID, &match.ID,
		string(models.MatchStatusProposed), string(match.Status), actorID)
	if request.Status == models.RequestStatusMatched {
		live := 0
		for _, sib := range r.matches {
			if sib.RequestID == request.ID &&
				(sib.Status == models.MatchStatusProposed || sib.Status == models.MatchStatusAccepted) {
				live++
			}
		}
		if live == 0 {
			from := request.Status
			request.Status = models.RequestStatusOpen
			r.appendAudit(request.ID, nil, string(from), string(request.Status), actorID)
		}
	}

	matchClone := *match
	requestClone := *request
	return &matchClone, &requestClone, nil
}

func (r *fakeRequestRepo) HasAcceptedMatchOnProject(creatorID, projectID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.matches {
		if m.CandidateID != creatorID || m.Status != models.MatchStatusAccepted {
			continue
		}
		if req, ok := r.requests[m.RequestID]; ok && req.ProjectID == projectID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRequestRepo) ListAudit(requestID string) ([]models.CollabAuditEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.CollabAuditEntry
	for _, e := range r.audit {
		if e.RequestID == requestID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeRequestRepo) appendAudit(requestID string, matchID *string, from, to, actorID string) {
	r.audit = append(r.audit, models.CollabAuditEntry{
		ID:         uuid.NewString(),
		RequestID:  requestID,
		MatchID:    matchID,
		FromStatus: from,
		ToStatus:   to,
		ActorID:    actorID,
	})
}
