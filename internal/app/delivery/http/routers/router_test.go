package routers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"clinicdesk-service/internal/app/config"
	"clinicdesk-service/internal/app/contracts"
	"clinicdesk-service/internal/app/delivery/http/controllers"
	"clinicdesk-service/internal/app/delivery/http/middlewares"
	"clinicdesk-service/internal/app/models"
	"clinicdesk-service/internal/pkg/constvars"
	"clinicdesk-service/internal/pkg/dto/responses"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type mockAuthProviderClient struct {
	mock.Mock
}

func (m *mockAuthProviderClient) VerifyToken(ctx context.Context, token string) (*models.Principal, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Principal), args.Error(1)
}

func (m *mockAuthProviderClient) GetUserByID(ctx context.Context, id string) (*models.Principal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Principal), args.Error(1)
}

type mockIdentityResolver struct {
	mock.Mock
}

func (m *mockIdentityResolver) Resolve(ctx context.Context, principal *models.Principal) (*models.ResolvedIdentity, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ResolvedIdentity), args.Error(1)
}

type mockFileUsecase struct {
	mock.Mock
}

func (m *mockFileUsecase) UploadFile(ctx context.Context, identity *models.ResolvedIdentity, patientID, filename, contentType string, reader io.Reader, size int64) (*responses.UploadFileResponse, error) {
	args := m.Called(ctx, identity, patientID, filename, contentType, reader, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.UploadFileResponse), args.Error(1)
}

func (m *mockFileUsecase) GetDownloadURL(ctx context.Context, identity *models.ResolvedIdentity, key string) (*responses.DownloadURLResponse, error) {
	args := m.Called(ctx, identity, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.DownloadURLResponse), args.Error(1)
}

func (m *mockFileUsecase) DeleteFile(ctx context.Context, identity *models.ResolvedIdentity, key string) error {
	args := m.Called(ctx, identity, key)
	return args.Error(0)
}

func (m *mockFileUsecase) ListPatientFiles(ctx context.Context, identity *models.ResolvedIdentity, patientID string) (*responses.ListFilesResponse, error) {
	args := m.Called(ctx, identity, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.ListFilesResponse), args.Error(1)
}

func testInternalConfig() *config.InternalConfig {
	return &config.InternalConfig{
		App: config.App{
			Env:                        "test",
			Version:                    "v1",
			EndpointPrefix:             "api",
			MaxRequests:                100,
			UploadMaxRequestsPerMinute: 30,
			UploadBlockTimeInMinute:    5,
		},
		Minio: config.MinioInternal{
			BucketName:             "clinical-documents",
			PresignedURLExpMinutes: 15,
			UploadMaxSizeInMB:      10,
		},
	}
}

func newTestRouter(role string, fileUsecase contracts.FileUsecase) *chi.Mux {
	internalConfig := testInternalConfig()
	logger := zap.NewNop()

	principal := &models.Principal{ID: "caller-1", Email: "caller@clinic.test"}
	identity := &models.ResolvedIdentity{Principal: principal, Role: role}

	authProviderClient := new(mockAuthProviderClient)
	authProviderClient.On("VerifyToken", mock.Anything, mock.Anything).Return(principal, nil)

	identityResolver := new(mockIdentityResolver)
	identityResolver.On("Resolve", mock.Anything, mock.Anything).Return(identity, nil)

	mw := middlewares.NewMiddlewares(logger, authProviderClient, identityResolver, nil, nil, internalConfig)

	fileController := &controllers.FileController{FileUsecase: fileUsecase, InternalConfig: internalConfig, Log: logger}
	userController := &controllers.UserController{Log: logger}
	healthController := &controllers.HealthController{InternalConfig: internalConfig}

	router := chi.NewRouter()
	appRouters := NewRouters(router, mw, internalConfig, fileController, userController, healthController)
	appRouters.SetupRoutes()
	return router
}

func decodeErrorBody(t *testing.T, recorder *httptest.ResponseRecorder) responses.ErrorResponseDTO {
	t.Helper()
	var body responses.ErrorResponseDTO
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

func authedRequest(method, target string) *http.Request {
	request := httptest.NewRequest(method, target, nil)
	request.Header.Set(constvars.HeaderAuthorization, "Bearer test-token")
	return request
}

func TestHealthRoute(t *testing.T) {
	router := newTestRouter(constvars.ClinicdeskRoleClient, new(mockFileUsecase))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	assert.Equal(t, constvars.StatusOK, recorder.Code)
}

func TestAuthenticatedRoutesRejectAnonymous(t *testing.T) {
	router := newTestRouter(constvars.ClinicdeskRoleClient, new(mockFileUsecase))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil))

	assert.Equal(t, constvars.StatusUnauthorized, recorder.Code)
	assert.Equal(t, constvars.ErrCodeNoToken, decodeErrorBody(t, recorder).Code)
}

func TestGetMeRoute(t *testing.T) {
	router := newTestRouter(constvars.ClinicdeskRoleClinician, new(mockFileUsecase))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, authedRequest(http.MethodGet, "/api/v1/users/me"))

	assert.Equal(t, constvars.StatusOK, recorder.Code)

	var body responses.ResponseDTO
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.True(t, body.Success)
	data, _ := body.Data.(map[string]interface{})
	assert.Equal(t, constvars.ClinicdeskRoleClinician, data["role"])
	assert.Equal(t, "caller-1", data["id"])
}

func TestFileRouteGuards(t *testing.T) {
	key := "patients/patient-2/abc_report.pdf"

	t.Run("client cannot delete files", func(t *testing.T) {
		fileUsecase := new(mockFileUsecase)
		router := newTestRouter(constvars.ClinicdeskRoleClient, fileUsecase)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, authedRequest(http.MethodDelete, "/api/v1/files/"+key))

		assert.Equal(t, constvars.StatusForbidden, recorder.Code)
		assert.Equal(t, constvars.ErrCodeForbiddenRole, decodeErrorBody(t, recorder).Code)
		fileUsecase.AssertNotCalled(t, "DeleteFile", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("clinician deletes through the usecase", func(t *testing.T) {
		fileUsecase := new(mockFileUsecase)
		fileUsecase.On("DeleteFile", mock.Anything, mock.Anything, key).Return(nil)
		router := newTestRouter(constvars.ClinicdeskRoleClinician, fileUsecase)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, authedRequest(http.MethodDelete, "/api/v1/files/"+key))

		assert.Equal(t, constvars.StatusOK, recorder.Code)
		fileUsecase.AssertExpectations(t)
	})

	t.Run("client cannot list another patient's files", func(t *testing.T) {
		fileUsecase := new(mockFileUsecase)
		router := newTestRouter(constvars.ClinicdeskRoleClient, fileUsecase)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, authedRequest(http.MethodGet, "/api/v1/files/patient/patient-2"))

		assert.Equal(t, constvars.StatusForbidden, recorder.Code)
		assert.Equal(t, constvars.ErrCodeForbiddenOwnership, decodeErrorBody(t, recorder).Code)
		fileUsecase.AssertNotCalled(t, "ListPatientFiles", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("client lists their own files", func(t *testing.T) {
		fileUsecase := new(mockFileUsecase)
		fileUsecase.On("ListPatientFiles", mock.Anything, mock.Anything, "caller-1").
			Return(&responses.ListFilesResponse{PatientID: "caller-1", Files: []contracts.StoredObjectInfo{}}, nil)
		router := newTestRouter(constvars.ClinicdeskRoleClient, fileUsecase)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, authedRequest(http.MethodGet, "/api/v1/files/patient/caller-1"))

		assert.Equal(t, constvars.StatusOK, recorder.Code)
	})

	t.Run("any authenticated role reaches the download route", func(t *testing.T) {
		fileUsecase := new(mockFileUsecase)
		fileUsecase.On("GetDownloadURL", mock.Anything, mock.Anything, key).
			Return(&responses.DownloadURLResponse{Key: key, URL: "https://minio.local/x", ExpiresInSeconds: 900}, nil)
		router := newTestRouter(constvars.ClinicdeskRoleClient, fileUsecase)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, authedRequest(http.MethodGet, "/api/v1/files/download/"+key))

		assert.Equal(t, constvars.StatusOK, recorder.Code)
		fileUsecase.AssertExpectations(t)
	})
}

func TestRequestIDFlowsThroughTheStack(t *testing.T) {
	router := newTestRouter(constvars.ClinicdeskRoleClient, new(mockFileUsecase))

	recorder := httptest.NewRecorder()
	request := authedRequest(http.MethodGet, "/api/v1/users/me")
	request.Header.Set(constvars.HeaderXRequestID, "trace-99")
	router.ServeHTTP(recorder, request)

	assert.Equal(t, "trace-99", recorder.Header().Get(constvars.HeaderXRequestID))
}
