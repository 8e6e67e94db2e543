package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gmbtravels/gmb-backend/database"
	"github.com/gmbtravels/gmb-backend/models"
)

// VehicleHandler implements the vehicle fleet CRUD. The public list shows
// active vehicles only; admin routes see everything.
type VehicleHandler struct {
	DB *database.Database
}

func NewVehicleHandler(db *database.Database) *VehicleHandler {
	return &VehicleHandler{DB: db}
}

func (h *VehicleHandler) listVehicles(c *gin.Context, filter bson.M) {
	coll := h.DB.Collection(database.CollVehicles)
	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		log.Error().Err(err).Msg("error finding vehicles")
		fail(c, http.StatusInternalServerError, "store_error", "failed to retrieve vehicles")
		return
	}
	defer cursor.Close(ctx)

	vehicles := []models.Vehicle{}
	if err := cursor.All(ctx, &vehicles); err != nil {
		log.Error().Err(err).Msg("error decoding vehicles")
		fail(c, http.StatusInternalServerError, "store_error", "failed to decode vehicles")
		return
	}

	okList(c, http.StatusOK, vehicles)
}

// ListPublic returns active vehicles for the public site.
func (h *VehicleHandler) ListPublic(c *gin.Context) {
	h.listVehicles(c, bson.M{"is_active": true})
}

// ListAdmin returns every vehicle, inactive ones included.
func (h *VehicleHandler) ListAdmin(c *gin.Context) {
	h.listVehicles(c, bson.M{})
}

// Get returns one vehicle by id.
func (h *VehicleHandler) Get(c *gin.Context) {
	id, err := parseObjectID(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid_id", "malformed vehicle id")
		return
	}

	coll := h.DB.Collection(database.CollVehicles)
	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	var vehicle models.Vehicle
	err = coll.FindOne(ctx, bson.M{"_id": id}).Decode(&vehicle)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			fail(c, http.StatusNotFound, "not_found", "vehicle not found")
			return
		}
		log.Error().Err(err).Str("id", id.Hex()).Msg("error finding vehicle")
		fail(c, http.StatusInternalServerError, "store_error", "database error retrieving vehicle")
		return
	}

	okData(c, http.StatusOK, vehicle)
}

// Create validates the payload, stamps timestamps and persists the vehicle,
// returning the stored document with its assigned id.
func (h *VehicleHandler) Create(c *gin.Context) {
	var payload models.CreateVehiclePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		fail(c, http.StatusBadRequest, "validation_error", "invalid input: "+err.Error())
		return
	}

	coll := h.DB.Collection(database.CollVehicles)
	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	vehicle := payload.NewVehicle(time.Now().UTC())
	result, err := coll.InsertOne(ctx, vehicle)
	if err != nil {
		log.Error().Err(err).Str("name", vehicle.Name).Msg("error inserting vehicle")
		fail(c, http.StatusInternalServerError, "store_error", "failed to create vehicle")
		return
	}
	vehicle.ID = result.InsertedID.(primitive.ObjectID)

	okData(c, http.StatusOK, vehicle)
}

// Update merges the fields present in the patch and returns the post-update
// document, so the caller never observes a stale read after a write.
func (h *VehicleHandler) Update(c *gin.Context) {
	id, err := parseObjectID(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid_id", "malformed vehicle id")
		return
	}

	var payload models.UpdateVehiclePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		fail(c, http.StatusBadRequest, "validation_error", "invalid input: "+err.Error())
		return
	}

	set := payload.SetFields()
	set["updated_at"] = time.Now().UTC()

	coll := h.DB.Collection(database.CollVehicles)
	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var vehicle models.Vehicle
	err = coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&vehicle)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			fail(c, http.StatusNotFound, "not_found", "vehicle not found")
			return
		}
		log.Error().Err(err).Str("id", id.Hex()).Msg("error updating vehicle")
		fail(c, http.StatusInternalServerError, "store_error", "failed to update vehicle")
		return
	}

	okData(c, http.StatusOK, vehicle)
}

// Delete removes one vehicle; deleting an already-deleted id yields 404.
func (h *VehicleHandler) Delete(c *gin.Context) {
	id, err := parseObjectID(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid_id", "malformed vehicle id")
		return
	}

	coll := h.DB.Collection(database.CollVehicles)
	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	result, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		log.Error().Err(err).Str("id", id.Hex()).Msg("error deleting vehicle")
		fail(c, http.StatusInternalServerError, "store_error", "failed to delete vehicle")
		return
	}
	if result.DeletedCount == 0 {
		fail(c, http.StatusNotFound, "not_found", "vehicle not found")
		return
	}

	okMessage(c, http.StatusOK, "vehicle deleted")
}
