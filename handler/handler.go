package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ntu-info/emogo-backend-chaudharyinder/dto"
	"github.com/ntu-info/emogo-backend-chaudharyinder/entities"
	"github.com/ntu-info/emogo-backend-chaudharyinder/pkg/videostore"
	"github.com/ntu-info/emogo-backend-chaudharyinder/repository"
	"github.com/ntu-info/emogo-backend-chaudharyinder/service"
)

type Handler struct {
	service service.RecordService
	videos  videostore.Store
}

func New(svc service.RecordService, videos videostore.Store) *Handler {
	return &Handler{
		service: svc,
		videos:  videos,
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "EmoGo Backend is Live!",
		"version": "2.0.0",
		"status":  "operational",
	})
}

func (h *Handler) CreateRecord(c *gin.Context) {
	var req dto.CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: "invalid request body", Detail: err.Error()})
		return
	}

	id, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
				Error:  "validation failed",
				Field:  validationErr.Field,
				Detail: validationErr.Reason,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to create record"})
		return
	}

	c.JSON(http.StatusCreated, dto.RecordResponse{Status: "success", ID: id})
}

func (h *Handler) ListRecords(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: "invalid query parameters", Detail: err.Error()})
		return
	}

	records, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch records"})
		return
	}

	c.JSON(http.StatusOK, dto.ListRecordsResponse{Records: records, Count: len(records)})
}

func (h *Handler) GetRecord(c *gin.Context) {
	record, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondRecordError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *Handler) DeleteRecord(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.respondRecordError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RecordResponse{Status: "success", Deleted: id})
}

func (h *Handler) CleanupRecords(c *gin.Context) {
	deleted, err := h.service.Cleanup(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to clean up records"})
		return
	}

	c.JSON(http.StatusOK, dto.RecordResponse{Status: "success", DeletedCount: &deleted})
}

func (h *Handler) UploadVideo(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "missing file upload", Detail: err.Error()})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to store video"})
		return
	}
	defer file.Close()

	ctx := c.Request.Context()
	name, err := h.videos.Save(ctx, fileHeader.Filename, file, fileHeader.Size, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to store video")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to store video"})
		return
	}

	url, err := h.videos.URL(ctx, name)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to resolve video url")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to store video"})
		return
	}

	c.JSON(http.StatusCreated, dto.UploadVideoResponse{Status: "success", File: name, URL: url})
}

// respondRecordError maps the id-keyed operations' failures: malformed id
// before any store call, then not-found, then a generic store failure.
func (h *Handler) respondRecordError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, entities.ErrInvalidRecordID):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid record ID format"})
	case errors.Is(err, repository.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Record not found"})
	default:
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("record operation failed")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
	}
}
