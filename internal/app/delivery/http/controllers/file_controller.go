package controllers

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"clinicdesk-service/internal/app/config"
	"clinicdesk-service/internal/app/contracts"
	"clinicdesk-service/internal/app/models"
	"clinicdesk-service/internal/pkg/constvars"
	"clinicdesk-service/internal/pkg/exceptions"
	"clinicdesk-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type FileController struct {
	FileUsecase    contracts.FileUsecase
	InternalConfig *config.InternalConfig
	Log            *zap.Logger
}

var (
	fileControllerInstance *FileController
	onceFileController     sync.Once
)

func NewFileController(fileUsecase contracts.FileUsecase, internalConfig *config.InternalConfig, logger *zap.Logger) *FileController {
	onceFileController.Do(func() {
		fileControllerInstance = &FileController{
			FileUsecase:    fileUsecase,
			InternalConfig: internalConfig,
			Log:            logger,
		}
	})
	return fileControllerInstance
}

func (c *FileController) UploadFile(w http.ResponseWriter, r *http.Request) {
	identity, _ := r.Context().Value(constvars.CONTEXT_RESOLVED_IDENTITY_KEY).(*models.ResolvedIdentity)

	maxBytes := c.InternalConfig.Minio.UploadMaxSizeInMB * 1024 * 1024
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}

	file, header, err := r.FormFile(constvars.FileUploadFormField)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}
	defer file.Close()

	patientID := r.FormValue(constvars.FileUploadPatientField)
	contentType := header.Header.Get(constvars.HeaderContentType)
	if contentType == "" {
		contentType = constvars.MIMEOctetStream
	}

	result, err := c.FileUsecase.UploadFile(r.Context(), identity, patientID, header.Filename, contentType, file, header.Size)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.UploadFileSuccessMessage, result)
}

func (c *FileController) GetDownloadURL(w http.ResponseWriter, r *http.Request) {
	identity, _ := r.Context().Value(constvars.CONTEXT_RESOLVED_IDENTITY_KEY).(*models.ResolvedIdentity)

	key := chi.URLParam(r, "*")
	result, err := c.FileUsecase.GetDownloadURL(r.Context(), identity, key)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DownloadURLSuccessMessage, result)
}

func (c *FileController) DeleteFile(w http.ResponseWriter, r *http.Request) {
	identity, _ := r.Context().Value(constvars.CONTEXT_RESOLVED_IDENTITY_KEY).(*models.ResolvedIdentity)

	key := chi.URLParam(r, "*")
	if err := c.FileUsecase.DeleteFile(r.Context(), identity, key); err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DeleteFileSuccessMessage, nil)
}

func (c *FileController) ListPatientFiles(w http.ResponseWriter, r *http.Request) {
	identity, _ := r.Context().Value(constvars.CONTEXT_RESOLVED_IDENTITY_KEY).(*models.ResolvedIdentity)

	patientID := chi.URLParam(r, "patientID")
	result, err := c.FileUsecase.ListPatientFiles(r.Context(), identity, patientID)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ListFilesSuccessMessage, result)
}
