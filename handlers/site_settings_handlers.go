package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gmbtravels/gmb-backend/database"
	"github.com/gmbtravels/gmb-backend/models"
)

// SiteSettingsHandler serves the settings singleton. There are no
// identifier-keyed operations: the document lives under a fixed key and is
// created with defaults the first time anyone reads it.
type SiteSettingsHandler struct {
	DB *database.Database
}

func NewSiteSettingsHandler(db *database.Database) *SiteSettingsHandler {
	return &SiteSettingsHandler{DB: db}
}

// Get returns the singleton, upserting the system defaults when no admin
// has written settings yet. A fresh store therefore never 404s here.
func (h *SiteSettingsHandler) Get(c *gin.Context) {
	coll := h.DB.Collection(database.CollSiteSettings)
	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	defaults := models.DefaultSiteSettings()
	filter := bson.M{"_id": models.SiteSettingsKey}
	update := bson.M{
		"$setOnInsert": bson.M{
			"company_name": defaults.CompanyName,
			"tagline":      defaults.Tagline,
			"logo_url":     defaults.LogoURL,
			"updated_at":   time.Now().UTC(),
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var settings models.SiteSettings
	if err := coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&settings); err != nil {
		log.Error().Err(err).Msg("error loading site settings")
		fail(c, http.StatusInternalServerError, "store_error", "failed to load site settings")
		return
	}

	okData(c, http.StatusOK, settings)
}

// Update replaces the entire singleton, inserting it if absent.
func (h *SiteSettingsHandler) Update(c *gin.Context) {
	var payload models.UpdateSiteSettingsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		fail(c, http.StatusBadRequest, "validation_error", "invalid input: "+err.Error())
		return
	}

	coll := h.DB.Collection(database.CollSiteSettings)
	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	filter := bson.M{"_id": models.SiteSettingsKey}
	update := bson.M{
		"$set": bson.M{
			"company_name": payload.CompanyName,
			"tagline":      payload.Tagline,
			"logo_url":     payload.LogoURL,
			"updated_at":   time.Now().UTC(),
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var settings models.SiteSettings
	if err := coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&settings); err != nil {
		log.Error().Err(err).Msg("error updating site settings")
		fail(c, http.StatusInternalServerError, "store_error", "failed to update site settings")
		return
	}

	okData(c, http.StatusOK, settings)
}
