package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestNewVehicleAppliesDefaults(t *testing.T) {
	price := 12.0
	payload := CreateVehiclePayload{Name: "CI Test Sedan Vehicle", Price: &price}
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	v := payload.NewVehicle(now)
	assert.Equal(t, "CI Test Sedan Vehicle", v.Name)
	assert.Equal(t, 12.0, v.Price)
	assert.Equal(t, "per km", v.PriceUnit)
	assert.True(t, v.IsActive)
	assert.False(t, v.IsPopular)
	assert.Equal(t, 0, v.SortOrder)
	assert.NotNil(t, v.Features)
	assert.Equal(t, now, v.CreatedAt)
	assert.Equal(t, now, v.UpdatedAt)
}

func TestNewVehicleHonorsExplicitFlags(t *testing.T) {
	price := 30.0
	inactive := false
	popular := true
	order := 7
	payload := CreateVehiclePayload{
		Name:      "Tempo Traveller",
		Price:     &price,
		PriceUnit: "per day",
		IsActive:  &inactive,
		IsPopular: &popular,
		SortOrder: &order,
	}

	v := payload.NewVehicle(time.Now())
	assert.False(t, v.IsActive)
	assert.True(t, v.IsPopular)
	assert.Equal(t, 7, v.SortOrder)
	assert.Equal(t, "per day", v.PriceUnit)
}

func TestUpdateVehicleSetFieldsEmptyPatch(t *testing.T) {
	var p UpdateVehiclePayload
	assert.Empty(t, p.SetFields())
}

func TestUpdateVehicleSetFieldsPartial(t *testing.T) {
	// Matches the checker's partial update: only price and name change.
	var p UpdateVehiclePayload
	require.NoError(t, json.Unmarshal([]byte(`{"price": 18.0, "name": "CI Updated"}`), &p))

	set := p.SetFields()
	assert.Equal(t, bson.M{"price": 18.0, "name": "CI Updated"}, set)
	assert.NotContains(t, set, "price_unit")
	assert.NotContains(t, set, "is_active")
}

func TestUpdateVehicleSetFieldsDistinguishesAbsentFromZero(t *testing.T) {
	var p UpdateVehiclePayload
	require.NoError(t, json.Unmarshal([]byte(`{"isActive": false, "sortOrder": 0}`), &p))

	set := p.SetFields()
	assert.Equal(t, false, set["is_active"])
	assert.Equal(t, 0, set["sort_order"])
	assert.NotContains(t, set, "name")
}

func TestUpdateVehicleSetFieldsNeverTrustsTimestamps(t *testing.T) {
	// Unknown fields like createdAt are dropped by the decoder; the service
	// alone stamps updated_at.
	var p UpdateVehiclePayload
	require.NoError(t, json.Unmarshal([]byte(`{"createdAt":"1999-01-01T00:00:00Z","price":9.5}`), &p))

	set := p.SetFields()
	assert.Equal(t, bson.M{"price": 9.5}, set)
}

func TestVehicleJSONUsesCamelCase(t *testing.T) {
	v := Vehicle{Name: "Sedan", Price: 12, PriceUnit: "per km", IsActive: true, SortOrder: 3}
	data, err := json.Marshal(v)
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `"priceUnit"`)
	assert.Contains(t, s, `"isActive"`)
	assert.Contains(t, s, `"sortOrder"`)
	assert.Contains(t, s, `"createdAt"`)
	assert.NotContains(t, s, `"price_unit"`)
}
