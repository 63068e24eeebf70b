package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/claim-ledger/internal/adapter"
	"github.com/feral-file/claim-ledger/internal/api/middleware"
	"github.com/feral-file/claim-ledger/internal/api/shared/dto"
	apierrors "github.com/feral-file/claim-ledger/internal/api/shared/errors"
	"github.com/feral-file/claim-ledger/internal/mocks"
)

const (
	testAPIKey  = "game-server-key"
	testAddress = "0x00000000000000000000000000000000000000aa"
)

type testHandler struct {
	ctrl     *gomock.Controller
	executor *mocks.MockAPIExecutor
	router   *gin.Engine
}

func setupTestHandler(t *testing.T) *testHandler {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	exec := mocks.NewMockAPIExecutor(ctrl)

	auth, err := middleware.NewAuthenticator(middleware.AuthConfig{APIKeys: []string{testAPIKey}}, adapter.NewClock())
	require.NoError(t, err)

	router := gin.New()
	SetupRoutes(router, NewHandler(exec), auth, nil)

	return &testHandler{ctrl: ctrl, executor: exec, router: router}
}

func (th *testHandler) do(method, path string, body []byte, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	th.router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) apierrors.APIError {
	var apiErr apierrors.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	return apiErr
}

func TestHealthCheck(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		th := setupTestHandler(t)
		th.executor.EXPECT().Ping(gomock.Any()).Return(nil)

		w := th.do(http.MethodGet, "/health", nil, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("database down", func(t *testing.T) {
		th := setupTestHandler(t)
		th.executor.EXPECT().Ping(gomock.Any()).Return(apierrors.NewServiceUnavailableError("Database is not reachable"))

		w := th.do(http.MethodGet, "/health", nil, nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, apierrors.ErrCodeServiceUnavailable, decodeError(t, w).Code)
	})
}

func TestGetLeaderboard(t *testing.T) {
	computedAt := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)

	t.Run("defaults", func(t *testing.T) {
		th := setupTestHandler(t)
		// an absent limit is left to the projection's configured default
		th.executor.EXPECT().GetLeaderboard(gomock.Any(), "", 0, 0).Return(&dto.LeaderboardResponse{
			Entries: []dto.LeaderboardEntryResponse{
				{Rank: 1, Address: testAddress, Metric: "100", ClaimCount: 2},
			},
			Limit:      20,
			ComputedAt: computedAt,
		}, nil)

		w := th.do(http.MethodGet, "/api/v1/leaderboard", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.LeaderboardResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Entries, 1)
		assert.Equal(t, 1, resp.Entries[0].Rank)
		assert.Nil(t, resp.PeriodKey)
	})

	t.Run("limit is capped", func(t *testing.T) {
		th := setupTestHandler(t)
		th.executor.EXPECT().GetLeaderboard(gomock.Any(), "current", 100, 40).Return(&dto.LeaderboardResponse{}, nil)

		w := th.do(http.MethodGet, "/api/v1/leaderboard?period=current&limit=500&offset=40", nil, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("explicit limit", func(t *testing.T) {
		th := setupTestHandler(t)
		th.executor.EXPECT().GetLeaderboard(gomock.Any(), "", 7, 0).Return(&dto.LeaderboardResponse{}, nil)

		w := th.do(http.MethodGet, "/api/v1/leaderboard?limit=7", nil, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("invalid limit", func(t *testing.T) {
		th := setupTestHandler(t)

		w := th.do(http.MethodGet, "/api/v1/leaderboard?limit=0", nil, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("non numeric offset", func(t *testing.T) {
		th := setupTestHandler(t)

		w := th.do(http.MethodGet, "/api/v1/leaderboard?offset=abc", nil, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("invalid period", func(t *testing.T) {
		th := setupTestHandler(t)
		th.executor.EXPECT().GetLeaderboard(gomock.Any(), "2026-03-04", 20, 0).
			Return(nil, apierrors.NewValidationError("invalid period: 2026-03-04"))

		w := th.do(http.MethodGet, "/api/v1/leaderboard?period=2026-03-04", nil, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, apierrors.ErrCodeValidationFailed, decodeError(t, w).Code)
	})

	t.Run("unavailable", func(t *testing.T) {
		th := setupTestHandler(t)
		th.executor.EXPECT().GetLeaderboard(gomock.Any(), "", 20, 0).
			Return(nil, apierrors.NewServiceUnavailableError("Leaderboard is temporarily unavailable"))

		w := th.do(http.MethodGet, "/api/v1/leaderboard", nil, nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestGetUser(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		th := setupTestHandler(t)
		th.executor.EXPECT().GetUser(gomock.Any(), testAddress).Return(&dto.UserResponse{
			Address:        testAddress,
			CurrentBalance: "-5",
			TotalClaimed:   "10",
			ClaimCount:     1,
		}, nil)

		w := th.do(http.MethodGet, "/api/v1/users/"+testAddress, nil, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "-5", resp.CurrentBalance)
		assert.Equal(t, "10", resp.TotalClaimed)
	})

	t.Run("not found", func(t *testing.T) {
		th := setupTestHandler(t)
		th.executor.EXPECT().GetUser(gomock.Any(), testAddress).Return(nil, nil)

		w := th.do(http.MethodGet, "/api/v1/users/"+testAddress, nil, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid address", func(t *testing.T) {
		th := setupTestHandler(t)
		th.executor.EXPECT().GetUser(gomock.Any(), "nope").Return(nil, apierrors.NewValidationError("invalid address: nope"))

		w := th.do(http.MethodGet, "/api/v1/users/nope", nil, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestGetUserHistory(t *testing.T) {
	t.Run("transfers", func(t *testing.T) {
		th := setupTestHandler(t)
		th.executor.EXPECT().GetTransferHistory(gomock.Any(), testAddress, 5).Return(&dto.TransferListResponse{
			Items: []dto.TransferResponse{{EventID: "0xabc-1", Amount: "7"}},
		}, nil)

		w := th.do(http.MethodGet, "/api/v1/users/"+testAddress+"/transfers?limit=5", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.TransferListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "0xabc-1", resp.Items[0].EventID)
	})

	t.Run("claims", func(t *testing.T) {
		th := setupTestHandler(t)
		th.executor.EXPECT().GetClaimHistory(gomock.Any(), testAddress, 20).Return(&dto.ClaimListResponse{
			Items: []dto.ClaimResponse{{EventID: "0xdef-0", Amount: "3"}},
		}, nil)

		w := th.do(http.MethodGet, "/api/v1/users/"+testAddress+"/claims", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"nonce":null`)
	})

	t.Run("database error", func(t *testing.T) {
		th := setupTestHandler(t)
		th.executor.EXPECT().GetClaimHistory(gomock.Any(), testAddress, 20).
			Return(nil, apierrors.NewDatabaseError("Failed to get claims"))

		w := th.do(http.MethodGet, "/api/v1/users/"+testAddress+"/claims", nil, nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, apierrors.ErrCodeDatabaseError, decodeError(t, w).Code)
	})
}

func TestSubmitScore(t *testing.T) {
	authHeader := http.Header{"Authorization": []string{"ApiKey " + testAPIKey}}

	t.Run("stored", func(t *testing.T) {
		th := setupTestHandler(t)
		score := int64(42)
		th.executor.EXPECT().SubmitScore(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, req dto.SubmitScoreRequest) (*dto.SubmitScoreResponse, error) {
				assert.Equal(t, "fid:7", req.Identity)
				require.NotNil(t, req.Score)
				assert.Equal(t, score, *req.Score)
				return &dto.SubmitScoreResponse{Identity: "fid:7", PeriodKey: "2026-03-02", Stored: true}, nil
			})

		w := th.do(http.MethodPost, "/api/v1/scores", []byte(`{"identity":"fid:7","score":42}`), authHeader)
		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.SubmitScoreResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Stored)
		assert.Equal(t, "2026-03-02", resp.PeriodKey)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		th := setupTestHandler(t)

		w := th.do(http.MethodPost, "/api/v1/scores", []byte(`{"identity":"fid:7","score":42}`), nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, apierrors.ErrCodeUnauthorized, decodeError(t, w).Code)
	})

	t.Run("wrong api key", func(t *testing.T) {
		th := setupTestHandler(t)

		w := th.do(http.MethodPost, "/api/v1/scores", []byte(`{"identity":"fid:7","score":42}`),
			http.Header{"Authorization": []string{"ApiKey wrong"}})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing score", func(t *testing.T) {
		th := setupTestHandler(t)

		w := th.do(http.MethodPost, "/api/v1/scores", []byte(`{"identity":"fid:7"}`), authHeader)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("negative score", func(t *testing.T) {
		th := setupTestHandler(t)

		w := th.do(http.MethodPost, "/api/v1/scores", []byte(`{"identity":"fid:7","score":-1}`), authHeader)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		th := setupTestHandler(t)

		w := th.do(http.MethodPost, "/api/v1/scores", []byte(`{`), authHeader)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
