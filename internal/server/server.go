// Package server wires the HTTP endpoints: user registration, leaf
// prediction and the plant-history reads and deletes.
package server

import (
	"image"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jejakkarbon/plantid/internal/identity"
	"github.com/jejakkarbon/plantid/internal/store"
)

// Classifier is the single-image inference contract the predict endpoint
// depends on.
type Classifier interface {
	Classify(img image.Image) (string, error)
}

// Server holds the collaborators every handler needs. All of them are
// injected at startup; handlers keep no other state.
type Server struct {
	logger     *zap.Logger
	identity   identity.Provider
	store      store.Store
	classifier Classifier
}

// New creates a Server with its collaborators.
func New(logger *zap.Logger, provider identity.Provider, st store.Store, cls Classifier) *Server {
	return &Server{
		logger:     logger,
		identity:   provider,
		store:      st,
		classifier: cls,
	}
}

// Router builds the gin engine with all routes attached.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/register", s.handleRegister)

	authed := r.Group("/", s.requireAuth)
	{
		authed.POST("/predict", s.handlePredict)
		authed.GET("/user/:user_id", s.handleGetUser)
		authed.DELETE("/user/:user_id/plant/:plant_index", s.handleDeletePlant)
		authed.GET("/user/:user_id/plants", s.handleGetPlants)
	}

	return r
}
