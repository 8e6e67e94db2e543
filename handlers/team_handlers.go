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

// TeamHandler implements CRUD for team members.
type TeamHandler struct {
	DB *database.Database
}

func NewTeamHandler(db *database.Database) *TeamHandler {
	return &TeamHandler{DB: db}
}

// List returns all team members, newest first.
func (h *TeamHandler) List(c *gin.Context) {
	coll := h.DB.Collection(database.CollTeamMembers)
	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Error().Err(err).Msg("error finding team members")
		fail(c, http.StatusInternalServerError, "store_error", "failed to retrieve team members")
		return
	}
	defer cursor.Close(ctx)

	members := []models.TeamMember{}
	if err := cursor.All(ctx, &members); err != nil {
		log.Error().Err(err).Msg("error decoding team members")
		fail(c, http.StatusInternalServerError, "store_error", "failed to decode team members")
		return
	}

	okList(c, http.StatusOK, members)
}

func (h *TeamHandler) Get(c *gin.Context) {
	id, err := parseObjectID(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid_id", "malformed team member id")
		return
	}

	coll := h.DB.Collection(database.CollTeamMembers)
	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	var member models.TeamMember
	err = coll.FindOne(ctx, bson.M{"_id": id}).Decode(&member)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			fail(c, http.StatusNotFound, "not_found", "team member not found")
			return
		}
		log.Error().Err(err).Str("id", id.Hex()).Msg("error finding team member")
		fail(c, http.StatusInternalServerError, "store_error", "database error retrieving team member")
		return
	}

	okData(c, http.StatusOK, member)
}

func (h *TeamHandler) Create(c *gin.Context) {
	var payload models.CreateTeamMemberPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		fail(c, http.StatusBadRequest, "validation_error", "invalid input: "+err.Error())
		return
	}

	coll := h.DB.Collection(database.CollTeamMembers)
	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	member := payload.NewTeamMember(time.Now().UTC())
	result, err := coll.InsertOne(ctx, member)
	if err != nil {
		log.Error().Err(err).Str("name", member.Name).Msg("error inserting team member")
		fail(c, http.StatusInternalServerError, "store_error", "failed to create team member")
		return
	}
	member.ID = result.InsertedID.(primitive.ObjectID)

	okData(c, http.StatusOK, member)
}

func (h *TeamHandler) Update(c *gin.Context) {
	id, err := parseObjectID(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid_id", "malformed team member id")
		return
	}

	var payload models.UpdateTeamMemberPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		fail(c, http.StatusBadRequest, "validation_error", "invalid input: "+err.Error())
		return
	}

	set := payload.SetFields()
	set["updated_at"] = time.Now().UTC()

	coll := h.DB.Collection(database.CollTeamMembers)
	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var member models.TeamMember
	err = coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&member)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			fail(c, http.StatusNotFound, "not_found", "team member not found")
			return
		}
		log.Error().Err(err).Str("id", id.Hex()).Msg("error updating team member")
		fail(c, http.StatusInternalServerError, "store_error", "failed to update team member")
		return
	}

	okData(c, http.StatusOK, member)
}

func (h *TeamHandler) Delete(c *gin.Context) {
	id, err := parseObjectID(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid_id", "malformed team member id")
		return
	}

	coll := h.DB.Collection(database.CollTeamMembers)
	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	result, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		log.Error().Err(err).Str("id", id.Hex()).Msg("error deleting team member")
		fail(c, http.StatusInternalServerError, "store_error", "failed to delete team member")
		return
	}
	if result.DeletedCount == 0 {
		fail(c, http.StatusNotFound, "not_found", "team member not found")
		return
	}

	okMessage(c, http.StatusOK, "team member deleted")
}
