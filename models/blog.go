package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Blog is a travel article on the public site.
type Blog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Content   string             `bson:"content" json:"content"`
	Author    string             `bson:"author" json:"author"`
	ImageURL  string             `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

type CreateBlogPayload struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Author   string `json:"author" binding:"required"`
	ImageURL string `json:"imageUrl"`
}

func (p *CreateBlogPayload) NewBlog(now time.Time) Blog {
	return Blog{
		Title:     p.Title,
		Content:   p.Content,
		Author:    p.Author,
		ImageURL:  p.ImageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

type UpdateBlogPayload struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Author   *string `json:"author"`
	ImageURL *string `json:"imageUrl"`
}

// SetFields builds the $set document from the fields present in the patch.
func (p *UpdateBlogPayload) SetFields() bson.M {
	set := bson.M{}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Content != nil {
		set["content"] = *p.Content
	}
	if p.Author != nil {
		set["author"] = *p.Author
	}
	if p.ImageURL != nil {
		set["image_url"] = *p.ImageURL
	}
	return set
}
