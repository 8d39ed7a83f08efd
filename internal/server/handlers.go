package server

import (
	"errors"
	"fmt"
	"image"
	"net/http"
	"strconv"

	// Uploaded leaf photos arrive as JPEG or PNG.
	_ "image/jpeg"
	_ "image/png"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jejakkarbon/plantid/internal/history"
	"github.com/jejakkarbon/plantid/internal/identity"
	"github.com/jejakkarbon/plantid/internal/models"
	"github.com/jejakkarbon/plantid/internal/store"
)

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// handleRegister creates a user with the identity provider. No local state
// is touched.
func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": "invalid request body"})
		return
	}

	if err := s.identity.Register(c.Request.Context(), req.Email, req.Password, req.DisplayName); err != nil {
		s.logger.Warn("registration failed", zap.String("email", req.Email), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": fmt.Sprintf("Registration failed: %v", err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"error": false, "message": "Registration successful"})
}

// handlePredict classifies the uploaded image and appends the result to the
// caller's history, creating the record on first use.
func (s *Server) handlePredict(c *gin.Context) {
	ident := identityFrom(c)

	fileHeader, err := c.FormFile("file")
	if err != nil || fileHeader.Filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": "No file"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": "failed to read uploaded file"})
		return
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": "failed to decode image"})
		return
	}

	label, err := s.classifier.Classify(img)
	if err != nil {
		s.logger.Error("classification failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": err.Error()})
		return
	}

	ctx := c.Request.Context()
	rec, err := s.store.FindByUserID(ctx, ident.UserID)
	switch {
	case err == nil:
		rec.Plants = history.Append(rec.Plants, label)
		if err := s.store.UpdatePlants(ctx, rec.UUID, rec.Plants); err != nil {
			s.logger.Error("failed to update history", zap.String("uuid", rec.UUID), zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": err.Error()})
			return
		}
		// Response carries the caller's current claims, not the ones
		// denormalized at the last write.
		rec.Email = ident.Email
		rec.Name = ident.DisplayName

	case errors.Is(err, store.ErrNotFound):
		rec = &models.UserHistory{
			UUID:   uuid.NewString(),
			UserID: ident.UserID,
			Email:  ident.Email,
			Name:   ident.DisplayName,
			Plants: history.Append(nil, label),
		}
		if err := s.store.Create(ctx, rec); err != nil {
			s.logger.Error("failed to create history", zap.String("uuid", rec.UUID), zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": err.Error()})
			return
		}

	default:
		s.logger.Error("history lookup failed", zap.String("user_id", ident.UserID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rec, "message": "Success", "error": false})
}

// handleGetUser returns the caller's record with a renumbered plant list.
func (s *Server) handleGetUser(c *gin.Context) {
	ident, ok := s.authorizeOwner(c)
	if !ok {
		return
	}

	rec, ok := s.lookupHistory(c, ident.UserID)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User retrieved successfully",
		"error":   false,
		"data": gin.H{
			"user_id": ident.UserID,
			"email":   ident.Email,
			"name":    ident.DisplayName,
			"plant":   rec.Plants,
		},
	})
}

// handleDeletePlant removes exactly one entry by index and writes the
// renumbered remainder back. The record itself is never deleted, even when
// the list becomes empty.
func (s *Server) handleDeletePlant(c *gin.Context) {
	ident, ok := s.authorizeOwner(c)
	if !ok {
		return
	}

	plantIndex, err := strconv.Atoi(c.Param("plant_index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": "Invalid plant index"})
		return
	}

	rec, ok := s.lookupHistory(c, ident.UserID)
	if !ok {
		return
	}

	removed, remaining, err := history.RemoveAt(rec.Plants, plantIndex)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": "Invalid plant index"})
		return
	}

	if err := s.store.UpdatePlants(c.Request.Context(), rec.UUID, remaining); err != nil {
		s.logger.Error("failed to update history", zap.String("uuid", rec.UUID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Plant deleted", "error": false, "data": removed})
}

// handleGetPlants returns only the plant list. An existing record with zero
// plants is 200 with an empty list; a missing record is 404.
func (s *Server) handleGetPlants(c *gin.Context) {
	ident, ok := s.authorizeOwner(c)
	if !ok {
		return
	}

	rec, ok := s.lookupHistory(c, ident.UserID)
	if !ok {
		return
	}

	if len(rec.Plants) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "No plants found", "error": false, "data": models.PlantList{}})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Plants retrieved successfully", "error": false, "data": rec.Plants})
}

// authorizeOwner rejects any request whose path user_id differs from the
// authenticated identity.
func (s *Server) authorizeOwner(c *gin.Context) (identity.Identity, bool) {
	ident := identityFrom(c)
	if c.Param("user_id") != ident.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": true, "message": "Unauthorized"})
		return ident, false
	}
	return ident, true
}

// lookupHistory fetches the caller's record and renumbers its plant list,
// answering 404 when no record exists.
func (s *Server) lookupHistory(c *gin.Context, userID string) (*models.UserHistory, bool) {
	rec, err := s.store.FindByUserID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": true, "message": "User not found"})
			return nil, false
		}
		s.logger.Error("history lookup failed", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": err.Error()})
		return nil, false
	}

	rec.Plants = history.Renumber(rec.Plants)
	return rec, true
}
