package userprofile

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clubhubdev/clubhub-backend/config"
	"github.com/clubhubdev/clubhub-backend/middleware"
)

var allowedImageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true,
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetProfile godoc
// @Summary      Get own profile with role-specific stats
// @Tags         profile
// @Produce      json
// @Success      200  {object}  ProfileResponse
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /profile [get]
func (h *Handler) GetProfile(c *gin.Context) {
	ac, _ := middleware.GetAccessContext(c)

	profile, err := h.service.GetProfile(ac.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetUserByEmail godoc
// @Summary      Look up a participant profile by email (leader only)
// @Tags         profile
// @Produce      json
// @Param        email  query     string  true  "Participant email"
// @Success      200    {object}  PublicProfile
// @Failure      400    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Security     BearerAuth
// @Router       /profile/user-by-email [get]
func (h *Handler) GetUserByEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email parameter required"})
		return
	}

	profile, err := h.service.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateProfile godoc
// @Summary      Update own name and bio
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        request  body      UpdateProfileRequest  true  "Fields"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  map[string]string
// @Security     BearerAuth
// @Router       /profile [put]
func (h *Handler) UpdateProfile(c *gin.Context) {
	ac, _ := middleware.GetAccessContext(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	profile, err := h.service.UpdateProfile(ac.UserID, req)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "user": profile})
}

// UploadImage godoc
// @Summary      Upload own profile image
// @Tags         profile
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Image"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Security     BearerAuth
// @Router       /profile/upload-image [post]
func (h *Handler) UploadImage(c *gin.Context) {
	ac, _ := middleware.GetAccessContext(c)

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file provided"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file type, allowed: PNG, JPG, JPEG, GIF, WEBP"})
		return
	}

	filename := fmt.Sprintf("profile_%d_%s%s", ac.UserID, uuid.NewString(), ext)
	dst := filepath.Join(config.UploadPath, "profile_images", filename)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}

	imageURL := "/api/v1/profile/images/" + filename
	user, err := h.service.SetProfileImage(ac.UserID, imageURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save profile image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile image uploaded successfully",
		"url":     imageURL,
		"user":    gin.H{"id": user.ID, "name": user.Name, "profile_image": user.ProfileImage},
	})
}

// RegistrationHistory godoc
// @Summary      Get own RSVP history
// @Tags         profile
// @Produce      json
// @Success      200  {array}  RegistrationHistoryEntry
// @Security     BearerAuth
// @Router       /profile/registrations [get]
func (h *Handler) RegistrationHistory(c *gin.Context) {
	ac, _ := middleware.GetAccessContext(c)

	history, err := h.service.RegistrationHistory(ac.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch registration history"})
		return
	}

	c.JSON(http.StatusOK, history)
}
