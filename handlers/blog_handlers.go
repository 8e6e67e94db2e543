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

// BlogHandler implements CRUD for blog articles.
type BlogHandler struct {
	DB *database.Database
}

func NewBlogHandler(db *database.Database) *BlogHandler {
	return &BlogHandler{DB: db}
}

// List returns all blogs, newest first.
func (h *BlogHandler) List(c *gin.Context) {
	coll := h.DB.Collection(database.CollBlogs)
	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Error().Err(err).Msg("error finding blogs")
		fail(c, http.StatusInternalServerError, "store_error", "failed to retrieve blogs")
		return
	}
	defer cursor.Close(ctx)

	blogs := []models.Blog{}
	if err := cursor.All(ctx, &blogs); err != nil {
		log.Error().Err(err).Msg("error decoding blogs")
		fail(c, http.StatusInternalServerError, "store_error", "failed to decode blogs")
		return
	}

	okList(c, http.StatusOK, blogs)
}

func (h *BlogHandler) Get(c *gin.Context) {
	id, err := parseObjectID(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid_id", "malformed blog id")
		return
	}

	coll := h.DB.Collection(database.CollBlogs)
	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	var blog models.Blog
	err = coll.FindOne(ctx, bson.M{"_id": id}).Decode(&blog)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			fail(c, http.StatusNotFound, "not_found", "blog not found")
			return
		}
		log.Error().Err(err).Str("id", id.Hex()).Msg("error finding blog")
		fail(c, http.StatusInternalServerError, "store_error", "database error retrieving blog")
		return
	}

	okData(c, http.StatusOK, blog)
}

func (h *BlogHandler) Create(c *gin.Context) {
	var payload models.CreateBlogPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		fail(c, http.StatusBadRequest, "validation_error", "invalid input: "+err.Error())
		return
	}

	coll := h.DB.Collection(database.CollBlogs)
	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	blog := payload.NewBlog(time.Now().UTC())
	result, err := coll.InsertOne(ctx, blog)
	if err != nil {
		log.Error().Err(err).Str("title", blog.Title).Msg("error inserting blog")
		fail(c, http.StatusInternalServerError, "store_error", "failed to create blog")
		return
	}
	blog.ID = result.InsertedID.(primitive.ObjectID)

	okData(c, http.StatusOK, blog)
}

func (h *BlogHandler) Update(c *gin.Context) {
	id, err := parseObjectID(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid_id", "malformed blog id")
		return
	}

	var payload models.UpdateBlogPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		fail(c, http.StatusBadRequest, "validation_error", "invalid input: "+err.Error())
		return
	}

	set := payload.SetFields()
	set["updated_at"] = time.Now().UTC()

	coll := h.DB.Collection(database.CollBlogs)
	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var blog models.Blog
	err = coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&blog)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			fail(c, http.StatusNotFound, "not_found", "blog not found")
			return
		}
		log.Error().Err(err).Str("id", id.Hex()).Msg("error updating blog")
		fail(c, http.StatusInternalServerError, "store_error", "failed to update blog")
		return
	}

	okData(c, http.StatusOK, blog)
}

func (h *BlogHandler) Delete(c *gin.Context) {
	id, err := parseObjectID(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid_id", "malformed blog id")
		return
	}

	coll := h.DB.Collection(database.CollBlogs)
	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	result, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		log.Error().Err(err).Str("id", id.Hex()).Msg("error deleting blog")
		fail(c, http.StatusInternalServerError, "store_error", "failed to delete blog")
		return
	}
	if result.DeletedCount == 0 {
		fail(c, http.StatusNotFound, "not_found", "blog not found")
		return
	}

	okMessage(c, http.StatusOK, "blog deleted")
}
