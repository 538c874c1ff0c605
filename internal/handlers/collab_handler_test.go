package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"creatordna_backend/internal/auth"
	"creatordna_backend/internal/config"
	"creatordna_backend/internal/models"
	"creatordna_backend/internal/services/dto"
	"creatordna_backend/internal/validator"
	"creatordna_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCollabService lets each test script the service behavior.
type stubCollabService struct {
	createFn  func(userID string, req *dto.CreateCollabRequestRequest) (*dto.CollabRequestResponse, error)
	getFn     func(requestID string) (*dto.CollabRequestResponse, error)
	matchesFn func(userID, requestID string) ([]dto.MatchResponse, error)
	acceptFn  func(userID, requestID, matchID string) (*dto.AcceptMatchResponse, error)
	declineFn func(userID, requestID, matchID string) (*dto.MatchResponse, error)
	cancelFn  func(userID, requestID string) (*dto.CollabRequestResponse, error)
}

func (s *stubCollabService) CreateRequest(_ context.Context, userID string, req *dto.CreateCollabRequestRequest) (*dto.CollabRequestResponse, error) {
	return s.createFn(userID, req)
}

func (s *stubCollabService) GetRequest(_ context.Context, requestID string) (*dto.CollabRequestResponse, error) {
	return s.getFn(requestID)
}

func (s *stubCollabService) ListMyRequests(_ context.Context, userID string) ([]dto.CollabRequestResponse, error) {
	return nil, nil
}

func (s *stubCollabService) CancelRequest(_ context.Context, userID, requestID string) (*dto.CollabRequestResponse, error) {
	return s.cancelFn(userID, requestID)
}

func (s *stubCollabService) ListMatches(_ context.Context, userID, requestID string) ([]dto.MatchResponse, error) {
	return s.matchesFn(userID, requestID)
}

func (s *stubCollabService) AcceptMatch(_ context.Context, userID, requestID, matchID string) (*dto.AcceptMatchResponse, error) {
	return s.acceptFn(userID, requestID, matchID)
}

func (s *stubCollabService) DeclineMatch(_ context.Context, userID, requestID, matchID string) (*dto.MatchResponse, error) {
	return s.declineFn(userID, requestID, matchID)
}

func (s *stubCollabService) GetAudit(_ context.Context, userID, requestID string) ([]dto.AuditEntryResponse, error) {
	return nil, nil
}

func setupCollabRouter(t *testing.T, svc *stubCollabService) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 60
	config.AppConfig = cfg
	validator.Init()

	router := gin.New()
	api := router.Group("/api/v1")
	NewCollabHandler(svc).RegisterRoutes(api)

	token, err := auth.GenerateToken("user-1", models.UserRoleCreator)
	require.NoError(t, err)
	return router, token
}

func doJSON(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateRequest_Created(t *testing.T) {
	svc := &stubCollabService{
		createFn: func(userID string, req *dto.CreateCollabRequestRequest) (*dto.CollabRequestResponse, error) {
			assert.Equal(t, "user-1", userID)
			return &dto.CollabRequestResponse{ID: "r1", Status: "open", NeededRoles: req.NeededRoles}, nil
		},
	}
	router, token := setupCollabRouter(t, svc)

	w := doJSON(router, http.MethodPost, "/api/v1/collab/requests", token, gin.H{
		"project_id":   "a6b7c1de-1111-4222-8333-444455556666",
		"needed_roles": []string{"Editor"},
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp dto.CollabRequestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "r1", resp.ID)
}

func TestCreateRequest_ValidationFailure(t *testing.T) {
	svc := &stubCollabService{
		createFn: func(string, *dto.CreateCollabRequestRequest) (*dto.CollabRequestResponse, error) {
			t.Fatal("service must not be called on invalid input")
			return nil, nil
		},
	}
	router, token := setupCollabRouter(t, svc)

	// missing needed_roles
	w := doJSON(router, http.MethodPost, "/api/v1/collab/requests", token, gin.H{
		"project_id": "a6b7c1de-1111-4222-8333-444455556666",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// unknown role tag
	w = doJSON(router, http.MethodPost, "/api/v1/collab/requests", token, gin.H{
		"project_id":   "a6b7c1de-1111-4222-8333-444455556666",
		"needed_roles": []string{"Astronaut"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateRequest_Unauthorized(t *testing.T) {
	router, _ := setupCollabRouter(t, &stubCollabService{})

	w := doJSON(router, http.MethodPost, "/api/v1/collab/requests", "", gin.H{
		"project_id":   "a6b7c1de-1111-4222-8333-444455556666",
		"needed_roles": []string{"Editor"},
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetRequest_NotFound(t *testing.T) {
	svc := &stubCollabService{
		getFn: func(string) (*dto.CollabRequestResponse, error) {
			return nil, apperrors.ErrRequestNotFound
		},
	}
	router, token := setupCollabRouter(t, svc)

	w := doJSON(router, http.MethodGet, "/api/v1/collab/requests/r-missing", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var envelope apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, apperrors.CodeNotFound, envelope.Error.Code)
}

func TestAcceptMatch_Conflict(t *testing.T) {
	svc := &stubCollabService{
		acceptFn: func(_, requestID, matchID string) (*dto.AcceptMatchResponse, error) {
			assert.Equal(t, "r1", requestID)
			assert.Equal(t, "m1", matchID)
			return nil, apperrors.ErrAlreadyAccepted
		},
	}
	router, token := setupCollabRouter(t, svc)

	w := doJSON(router, http.MethodPost, "/api/v1/collab/requests/r1/matches/m1/accept", token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	var envelope apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, apperrors.CodeAlreadyAccepted, envelope.Error.Code)
}

func TestAcceptMatch_Forbidden(t *testing.T) {
	svc := &stubCollabService{
		acceptFn: func(string, string, string) (*dto.AcceptMatchResponse, error) {
			return nil, apperrors.ErrNotMatchParticipant
		},
	}
	router, token := setupCollabRouter(t, svc)

	w := doJSON(router, http.MethodPost, "/api/v1/collab/requests/r1/matches/m1/accept", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListMatches_OK(t *testing.T) {
	svc := &stubCollabService{
		matchesFn: func(userID, requestID string) ([]dto.MatchResponse, error) {
			assert.Equal(t, "r1", requestID)
			return []dto.MatchResponse{
				{ID: "m1", Score: 0.9, Reasons: []string{"Has 1/1 required skills"}},
				{ID: "m2", Score: 0.4},
			}, nil
		},
	}
	router, token := setupCollabRouter(t, svc)

	w := doJSON(router, http.MethodGet, "/api/v1/collab/requests/r1/matches", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Matches []dto.MatchResponse `json:"matches"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Matches, 2)
	assert.Equal(t, "m1", body.Matches[0].ID)
}

func TestCancelRequest_InvalidStatus(t *testing.T) {
	svc := &stubCollabService{
		cancelFn: func(string, string) (*dto.CollabRequestResponse, error) {
			return nil, apperrors.ErrInvalidRequestStatus
		},
	}
	router, token := setupCollabRouter(t, svc)

	w := doJSON(router, http.MethodPost, "/api/v1/collab/requests/r1/cancel", token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}
