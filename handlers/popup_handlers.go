package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gmbtravels/gmb-backend/database"
	"github.com/gmbtravels/gmb-backend/models"
)

// PopupHandler implements create/list/delete for popups. Popups have no
// update path: the admin UI replaces one by deleting and recreating it.
type PopupHandler struct {
	DB *database.Database
}

func NewPopupHandler(db *database.Database) *PopupHandler {
	return &PopupHandler{DB: db}
}

func (h *PopupHandler) listPopups(c *gin.Context, filter bson.M) {
	coll := h.DB.Collection(database.CollPopups)
	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		log.Error().Err(err).Msg("error finding popups")
		fail(c, http.StatusInternalServerError, "store_error", "failed to retrieve popups")
		return
	}
	defer cursor.Close(ctx)

	popups := []models.Popup{}
	if err := cursor.All(ctx, &popups); err != nil {
		log.Error().Err(err).Msg("error decoding popups")
		fail(c, http.StatusInternalServerError, "store_error", "failed to decode popups")
		return
	}

	okList(c, http.StatusOK, popups)
}

// ListPublic returns active popups for the public site.
func (h *PopupHandler) ListPublic(c *gin.Context) {
	h.listPopups(c, bson.M{"is_active": true})
}

// ListAdmin returns all popups.
func (h *PopupHandler) ListAdmin(c *gin.Context) {
	h.listPopups(c, bson.M{})
}

func (h *PopupHandler) Create(c *gin.Context) {
	var payload models.CreatePopupPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		fail(c, http.StatusBadRequest, "validation_error", "invalid input: "+err.Error())
		return
	}

	coll := h.DB.Collection(database.CollPopups)
	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	popup := payload.NewPopup(time.Now().UTC())
	result, err := coll.InsertOne(ctx, popup)
	if err != nil {
		log.Error().Err(err).Str("title", popup.Title).Msg("error inserting popup")
		fail(c, http.StatusInternalServerError, "store_error", "failed to create popup")
		return
	}
	popup.ID = result.InsertedID.(primitive.ObjectID)

	okData(c, http.StatusOK, popup)
}

func (h *PopupHandler) Delete(c *gin.Context) {
	id, err := parseObjectID(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid_id", "malformed popup id")
		return
	}

	coll := h.DB.Collection(database.CollPopups)
	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	result, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		log.Error().Err(err).Str("id", id.Hex()).Msg("error deleting popup")
		fail(c, http.StatusInternalServerError, "store_error", "failed to delete popup")
		return
	}
	if result.DeletedCount == 0 {
		fail(c, http.StatusNotFound, "not_found", "popup not found")
		return
	}

	okMessage(c, http.StatusOK, "popup deleted")
}
