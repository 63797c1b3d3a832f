package controller

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ebuka-odih/mini-ecommerce-backend/internal/app/repository"
	"github.com/ebuka-odih/mini-ecommerce-backend/internal/app/service"
	apperrors "github.com/ebuka-odih/mini-ecommerce-backend/internal/errors"
	"github.com/ebuka-odih/mini-ecommerce-backend/internal/middleware"
)

type MediaController struct {
	mediaService service.MediaService
}

func NewMediaController(mediaService service.MediaService) *MediaController {
	return &MediaController{
		mediaService: mediaService,
	}
}

type ImportFromURLsRequest struct {
	URLs   []string `json:"urls" binding:"required,min=1"`
	Folder string   `json:"folder"`
	Tags   []string `json:"tags"`
}

type BulkDeleteRequest struct {
	ImageIDs []uint `json:"image_ids" binding:"required,min=1"`
}

type MoveToFolderRequest struct {
	ImageIDs []uint `json:"image_ids" binding:"required,min=1"`
	Folder   string `json:"folder" binding:"required"`
}

type RetagRequest struct {
	Tags []string `json:"tags" binding:"required"`
}

type SetFeaturedRequest struct {
	IsFeatured *bool `json:"is_featured" binding:"required"`
}

// ListImages returns images in the media library, optionally filtered
// GET /api/v1/admin/media?folder=&tag=&search=&featured=
func (ctrl *MediaController) ListImages(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter := repository.ImageFilter{
		Folder:   c.Query("folder"),
		Tag:      c.Query("tag"),
		Search:   c.Query("search"),
		Featured: c.Query("featured") == "true",
		Limit:    parseIntQuery(c, "limit", 50),
		Offset:   parseIntQuery(c, "offset", 0),
	}

	images, err := ctrl.mediaService.ListImages(filter)
	if err != nil {
		log.Error("Failed to fetch images", err, nil)
		apperrors.InternalError(c, "Failed to fetch images")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"images": images,
		"count":  len(images),
	})
}

// ListFolders returns the distinct folder labels in use
// GET /api/v1/admin/media/folders
func (ctrl *MediaController) ListFolders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	folders, err := ctrl.mediaService.ListFolders()
	if err != nil {
		log.Error("Failed to fetch folders", err, nil)
		apperrors.InternalError(c, "Failed to fetch folders")
		return
	}

	c.JSON(http.StatusOK, gin.H{"folders": folders})
}

// GetImage returns a single image
// GET /api/v1/admin/media/:id
func (ctrl *MediaController) GetImage(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	image, err := ctrl.mediaService.GetImage(id)
	if err != nil {
		if errors.Is(err, service.ErrImageNotFound) {
			apperrors.NotFound(c, apperrors.MediaImageNotFound, "Image not found")
			return
		}
		log.Error("Failed to fetch image", err, map[string]interface{}{
			"image_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch image")
		return
	}

	c.JSON(http.StatusOK, gin.H{"image": image})
}

// Upload stores one or more multipart files in the media library
// POST /api/v1/admin/media/upload
func (ctrl *MediaController) Upload(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	form, err := c.MultipartForm()
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Expected multipart form data")
		return
	}

	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "No files provided")
		return
	}

	var files []service.UploadFile
	for _, header := range fileHeaders {
		f, err := header.Open()
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Unreadable file: "+header.Filename)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Unreadable file: "+header.Filename)
			return
		}
		files = append(files, service.UploadFile{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	var uploadedBy *uint
	if userID, ok := middleware.GetUserID(c); ok {
		uploadedBy = &userID
	}

	images, err := ctrl.mediaService.Upload(
		c.Request.Context(),
		files,
		c.PostForm("folder"),
		form.Value["tags"],
		uploadedBy,
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidFileType):
			apperrors.BadRequest(c, apperrors.MediaInvalidFileType, "Only image files are allowed (JPEG, PNG, GIF, WEBP)")
		case errors.Is(err, service.ErrFileTooLarge):
			apperrors.BadRequest(c, apperrors.MediaFileTooLarge, "File exceeds the maximum upload size")
		case errors.Is(err, service.ErrInvalidTag):
			apperrors.BadRequest(c, apperrors.MediaInvalidTag, "Tags must not contain commas")
		default:
			log.Error("Failed to upload files", err, nil)
			apperrors.InternalError(c, "Failed to upload files")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"images": images,
		"count":  len(images),
	})
}

// ImportFromURLs fetches remote images into the library. Partial failure
// is a 200 with per-URL results, not an error.
// POST /api/v1/admin/media/import
func (ctrl *MediaController) ImportFromURLs(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ImportFromURLsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	report, err := ctrl.mediaService.ImportFromURLs(c.Request.Context(), req.URLs, req.Folder, req.Tags)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTag) {
			apperrors.BadRequest(c, apperrors.MediaInvalidTag, "Tags must not contain commas")
			return
		}
		log.Error("Failed to import images", err, nil)
		apperrors.InternalError(c, "Failed to import images")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"imported": report.Imported,
		"failed":   report.Failed,
	})
}

// BulkDelete removes images, reporting per-id outcomes
// POST /api/v1/admin/media/bulk-delete
func (ctrl *MediaController) BulkDelete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	report, err := ctrl.mediaService.BulkDelete(c.Request.Context(), req.ImageIDs)
	if err != nil {
		log.Error("Failed to bulk delete images", err, nil)
		apperrors.InternalError(c, "Failed to delete images")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deleted": report.Deleted,
		"failed":  report.Failed,
	})
}

// MoveToFolder relabels a set of images
// POST /api/v1/admin/media/move
func (ctrl *MediaController) MoveToFolder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req MoveToFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	if err := ctrl.mediaService.MoveToFolder(req.ImageIDs, req.Folder); err != nil {
		if errors.Is(err, service.ErrImageNotFound) {
			apperrors.NotFound(c, apperrors.MediaImageNotFound, "One or more images were not found")
			return
		}
		log.Error("Failed to move images", err, nil)
		apperrors.InternalError(c, "Failed to move images")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Images moved"})
}

// Retag replaces an image's tag list
// PUT /api/v1/admin/media/:id/tags
func (ctrl *MediaController) Retag(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req RetagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	image, err := ctrl.mediaService.Retag(id, req.Tags)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrImageNotFound):
			apperrors.NotFound(c, apperrors.MediaImageNotFound, "Image not found")
		case errors.Is(err, service.ErrInvalidTag):
			apperrors.BadRequest(c, apperrors.MediaInvalidTag, "Tags must not contain commas")
		default:
			log.Error("Failed to retag image", err, map[string]interface{}{
				"image_id": id,
			})
			apperrors.InternalError(c, "Failed to retag image")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"image": image})
}

// SetFeatured flags or unflags an image as featured
// PUT /api/v1/admin/media/:id/featured
func (ctrl *MediaController) SetFeatured(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req SetFeaturedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	image, err := ctrl.mediaService.SetFeatured(id, *req.IsFeatured)
	if err != nil {
		if errors.Is(err, service.ErrImageNotFound) {
			apperrors.NotFound(c, apperrors.MediaImageNotFound, "Image not found")
			return
		}
		log.Error("Failed to update image", err, map[string]interface{}{
			"image_id": id,
		})
		apperrors.InternalError(c, "Failed to update image")
		return
	}

	c.JSON(http.StatusOK, gin.H{"image": image})
}
