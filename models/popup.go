package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Popup is a site-wide announcement. Popups are created and deleted but
// never edited; replace by delete-and-create.
type Popup struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Message   string             `bson:"message" json:"message"`
	IsActive  bool               `bson:"is_active" json:"isActive"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

type CreatePopupPayload struct {
	Title    string `json:"title" binding:"required"`
	Message  string `json:"message" binding:"required"`
	IsActive *bool  `json:"isActive"`
}

func (p *CreatePopupPayload) NewPopup(now time.Time) Popup {
	active := true
	if p.IsActive != nil {
		active = *p.IsActive
	}
	return Popup{
		Title:     p.Title,
		Message:   p.Message,
		IsActive:  active,
		CreatedAt: now,
	}
}
