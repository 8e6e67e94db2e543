package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TeamMember represents one person on the public team page.
// JSON uses the UI's camelCase names; BSON stores snake_case.
type TeamMember struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Role        string             `bson:"role" json:"role"`
	PhotoURL    string             `bson:"photo_url" json:"photoUrl"`
	Email       string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone       string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Username    string             `bson:"username,omitempty" json:"username,omitempty"`
	Department  string             `bson:"department,omitempty" json:"department,omitempty"`
	JoiningDate string             `bson:"joining_date,omitempty" json:"joiningDate,omitempty"`
	IsActive    bool               `bson:"is_active" json:"isActive"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

type CreateTeamMemberPayload struct {
	Name        string `json:"name" binding:"required"`
	Role        string `json:"role" binding:"required"`
	PhotoURL    string `json:"photoUrl" binding:"required"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Username    string `json:"username"`
	Department  string `json:"department"`
	JoiningDate string `json:"joiningDate"`
	IsActive    *bool  `json:"isActive"`
}

// NewTeamMember builds the stored document from a validated payload.
// Timestamps are always assigned here, never taken from the client.
func (p *CreateTeamMemberPayload) NewTeamMember(now time.Time) TeamMember {
	active := true
	if p.IsActive != nil {
		active = *p.IsActive
	}
	return TeamMember{
		Name:        p.Name,
		Role:        p.Role,
		PhotoURL:    p.PhotoURL,
		Email:       p.Email,
		Phone:       p.Phone,
		Username:    p.Username,
		Department:  p.Department,
		JoiningDate: p.JoiningDate,
		IsActive:    active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// UpdateTeamMemberPayload uses pointer fields so an absent field is left
// untouched while an explicitly sent empty string clears the stored value.
type UpdateTeamMemberPayload struct {
	Name        *string `json:"name"`
	Role        *string `json:"role"`
	PhotoURL    *string `json:"photoUrl"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Username    *string `json:"username"`
	Department  *string `json:"department"`
	JoiningDate *string `json:"joiningDate"`
	IsActive    *bool   `json:"isActive"`
}

// SetFields builds the $set document from the fields present in the patch.
func (p *UpdateTeamMemberPayload) SetFields() bson.M {
	set := bson.M{}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Role != nil {
		set["role"] = *p.Role
	}
	if p.PhotoURL != nil {
		set["photo_url"] = *p.PhotoURL
	}
	if p.Email != nil {
		set["email"] = *p.Email
	}
	if p.Phone != nil {
		set["phone"] = *p.Phone
	}
	if p.Username != nil {
		set["username"] = *p.Username
	}
	if p.Department != nil {
		set["department"] = *p.Department
	}
	if p.JoiningDate != nil {
		set["joining_date"] = *p.JoiningDate
	}
	if p.IsActive != nil {
		set["is_active"] = *p.IsActive
	}
	return set
}
