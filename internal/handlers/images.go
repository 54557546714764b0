package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/satishydv/gharwa-backend/internal/repository"
	"github.com/satishydv/gharwa-backend/internal/service"
	"github.com/sirupsen/logrus"
)

// ImagesHandler serves one ordered image collection. The same handler backs
// the gallery and the hero slider; label/plural feed the response messages
// and allowOrder gates the hero-only editable fields.
type ImagesHandler struct {
	service    service.ImageService
	label      string // "Image" or "Hero image"
	noun       string // "image" or "hero image"
	plural     string // "gallery images" or "hero images"
	allowOrder bool   // hero exposes display_order and description
	log        *logrus.Logger
}

// NewGalleryHandler creates the handler for the photo gallery.
func NewGalleryHandler(svc service.ImageService, log *logrus.Logger) *ImagesHandler {
	return &ImagesHandler{service: svc, label: "Image", noun: "image", plural: "gallery images", log: log}
}

// NewHeroHandler creates the handler for the homepage hero slider.
func NewHeroHandler(svc service.ImageService, log *logrus.Logger) *ImagesHandler {
	return &ImagesHandler{service: svc, label: "Hero image", noun: "hero image", plural: "hero images", allowOrder: true, log: log}
}

// UpdateImageRequest represents the admin image update payload.
type UpdateImageRequest struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	AltText      string  `json:"alt_text"`
	IsActive     *bool   `json:"is_active"`
	Description  *string `json:"description"`
	DisplayOrder *int    `json:"display_order"`
}

// UpdateMetadataRequest represents the filename-keyed metadata update payload.
type UpdateMetadataRequest struct {
	Filename string `json:"filename"`
	Name     string `json:"name"`
	Alt      string `json:"alt"`
}

// ReorderRequest represents the full desired ordering of the collection.
type ReorderRequest struct {
	IDs []int64 `json:"ids"`
}

// ListPublic godoc
// @Summary List active images
// @Description Active images of the collection, ordered for display
// @Tags images
// @Produce json
// @Success 200 {array} service.ImageView
// @Router /api/gallery-images [get]
func (h *ImagesHandler) ListPublic(c *gin.Context) {
	images, err := h.service.ListActive(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.log, err, "Image not found", "Failed to fetch "+h.plural)
		return
	}
	c.JSON(http.StatusOK, images)
}

// ListAdmin godoc
// @Summary List all images
// @Description Every image of the collection, active or not
// @Tags images
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Image
// @Router /api/admin/gallery [get]
func (h *ImagesHandler) ListAdmin(c *gin.Context) {
	images, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.log, err, "Image not found", "Failed to fetch "+h.plural)
		return
	}
	c.JSON(http.StatusOK, images)
}

// Update godoc
// @Summary Update image fields
// @Tags images
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body UpdateImageRequest true "Image fields"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /api/admin/gallery [put]
func (h *ImagesHandler) Update(c *gin.Context) {
	var req UpdateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == 0 {
		respondError(c, http.StatusBadRequest, "Image ID is required")
		return
	}

	fields := repository.ImageUpdate{
		Name:     req.Name,
		AltText:  req.AltText,
		IsActive: req.IsActive,
	}
	if h.allowOrder {
		fields.Description = req.Description
		fields.DisplayOrder = req.DisplayOrder
	}

	if err := h.service.Update(c.Request.Context(), req.ID, fields); err != nil {
		respondServiceError(c, h.log, err, "Image not found", "Failed to update "+h.noun)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": h.label + " updated successfully",
		"id":      req.ID,
	})
}

// Delete godoc
// @Summary Delete an image
// @Description Removes the row, then best-effort removes the backing file
// @Tags images
// @Security BearerAuth
// @Produce json
// @Param id query int true "Image ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /api/admin/gallery [delete]
func (h *ImagesHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, http.StatusBadRequest, "Image ID is required")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, h.log, err, "Image not found", "Failed to delete "+h.noun)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   h.label + " deleted successfully",
		"deletedId": id,
	})
}

// Upload godoc
// @Summary Upload an image
// @Description Stores the file under the public directory and upserts its row by filename
// @Tags images
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Success 200 {object} service.UploadResult
// @Failure 400 {object} map[string]string
// @Router /api/admin/gallery/upload-image [post]
func (h *ImagesHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	name := c.PostForm("name")
	alt := c.PostForm("alt")
	if err != nil || name == "" || alt == "" {
		respondError(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.log.WithError(err).Error("failed to open uploaded file")
		respondError(c, http.StatusInternalServerError, "Failed to upload "+h.noun)
		return
	}
	defer file.Close()

	in := service.UploadInput{
		File:         file,
		OriginalName: fileHeader.Filename,
		ContentType:  fileHeader.Header.Get("Content-Type"),
		Size:         fileHeader.Size,
		Name:         name,
		Alt:          alt,
	}

	if id := c.PostForm("imageId"); id != "" {
		replaceID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid image ID")
			return
		}
		in.ReplaceID = replaceID
	}
	in.ReplaceFilename = c.PostForm("originalFilename")

	if h.allowOrder {
		if order := c.PostForm("order"); order != "" {
			if n, err := strconv.Atoi(order); err == nil && n > 0 {
				in.DisplayOrder = &n
			}
		}
		if description := c.PostForm("description"); description != "" {
			in.Description = &description
		}
	}

	result, err := h.service.Upload(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, h.log, err, "Image not found", "Failed to upload "+h.noun)
		return
	}

	message := h.label + " uploaded successfully"
	if result.IsUpdate {
		message = h.label + " updated successfully"
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  message,
		"imageId":  result.ImageID,
		"filename": result.Filename,
		"url":      result.URL,
		"isUpdate": result.IsUpdate,
	})
}

// DeleteFile godoc
// @Summary Delete an image file by filename
// @Tags images
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/admin/gallery/delete-image [delete]
func (h *ImagesHandler) DeleteFile(c *gin.Context) {
	filename := c.PostForm("filename")
	if filename == "" {
		respondError(c, http.StatusBadRequest, "Filename is required")
		return
	}

	if err := h.service.DeleteFile(c.Request.Context(), filename); err != nil {
		respondServiceError(c, h.log, err, "Image file not found", "Failed to delete "+h.noun)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Image deleted successfully",
		"filename": filename,
	})
}

// UpdateMetadata godoc
// @Summary Update image name and alt text by filename
// @Tags images
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body UpdateMetadataRequest true "Metadata"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/admin/hero-slider/update-metadata [put]
func (h *ImagesHandler) UpdateMetadata(c *gin.Context) {
	var req UpdateMetadataRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Filename == "" || req.Name == "" || req.Alt == "" {
		respondError(c, http.StatusBadRequest, "Filename, name, and alt text are required")
		return
	}

	if err := h.service.UpdateMetadata(c.Request.Context(), req.Filename, req.Name, req.Alt); err != nil {
		respondServiceError(c, h.log, err, "Image not found", "Failed to update "+h.noun+" metadata")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  h.label + " metadata updated successfully",
		"filename": req.Filename,
		"name":     req.Name,
		"alt":      req.Alt,
	})
}

// Reorder godoc
// @Summary Resequence the collection
// @Description Rewrites display_order to match the submitted id order
// @Tags images
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body ReorderRequest true "Ordered image IDs"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/admin/hero-slider/reorder [put]
func (h *ImagesHandler) Reorder(c *gin.Context) {
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.IDs) == 0 {
		respondError(c, http.StatusBadRequest, "Image IDs are required")
		return
	}

	if err := h.service.Reorder(c.Request.Context(), req.IDs); err != nil {
		respondServiceError(c, h.log, err, "Image not found", "Failed to reorder images")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Images reordered successfully"})
}

// CleanupDuplicates godoc
// @Summary Remove duplicate rows sharing a filename
// @Tags images
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/gallery/cleanup-duplicates [post]
func (h *ImagesHandler) CleanupDuplicates(c *gin.Context) {
	cleaned, err := h.service.CleanupDuplicates(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.log, err, "Image not found", "Failed to clean up duplicates")
		return
	}

	message := "No duplicate images found"
	if cleaned > 0 {
		message = "Cleaned up " + strconv.FormatInt(cleaned, 10) + " duplicate images"
	}
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"cleaned": cleaned,
	})
}
