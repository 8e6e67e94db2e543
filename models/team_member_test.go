package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestNewTeamMemberDefaultsToActive(t *testing.T) {
	payload := CreateTeamMemberPayload{Name: "Asif", Role: "Driver", PhotoURL: "/uploads/asif.jpg"}
	now := time.Now().UTC()

	m := payload.NewTeamMember(now)
	assert.True(t, m.IsActive)
	assert.Equal(t, now, m.CreatedAt)
	assert.Equal(t, now, m.UpdatedAt)
}

func TestUpdateTeamMemberSetFieldsTranslatesNames(t *testing.T) {
	var p UpdateTeamMemberPayload
	require.NoError(t, json.Unmarshal([]byte(`{"photoUrl":"/uploads/new.jpg","joiningDate":"2024-03-01"}`), &p))

	assert.Equal(t, bson.M{
		"photo_url":    "/uploads/new.jpg",
		"joining_date": "2024-03-01",
	}, p.SetFields())
}

func TestUpdateTeamMemberClearsExplicitlyEmptiedField(t *testing.T) {
	// "email": "" means clear the email; an absent key means leave it alone.
	var p UpdateTeamMemberPayload
	require.NoError(t, json.Unmarshal([]byte(`{"email":""}`), &p))

	set := p.SetFields()
	assert.Equal(t, "", set["email"])
	assert.Len(t, set, 1)
}

func TestSiteSettingsDefaults(t *testing.T) {
	s := DefaultSiteSettings()
	assert.Equal(t, SiteSettingsKey, s.ID)
	assert.NotEmpty(t, s.CompanyName)
	assert.NotEmpty(t, s.Tagline)
	assert.NotEmpty(t, s.LogoURL)
}
