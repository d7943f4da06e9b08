package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"voyago/internal/schemas"
)

func TestSortTripDestinationsByDayThenOrder(t *testing.T) {
	destinations := []schemas.TripDestinationDTO{
		{DestinationID: "c", DayNumber: 2, Order: 0},
		{DestinationID: "b", DayNumber: 1, Order: 5},
		{DestinationID: "a", DayNumber: 1, Order: 0},
	}

	sortTripDestinations(destinations)

	assert.Equal(t, "a", destinations[0].DestinationID)
	assert.Equal(t, "b", destinations[1].DestinationID)
	assert.Equal(t, "c", destinations[2].DestinationID)
}

func TestSortTripDestinationsIsStable(t *testing.T) {
	// duplicate day/order pairs keep their original relative order
	destinations := []schemas.TripDestinationDTO{
		{DestinationID: "first", DayNumber: 1, Order: 1},
		{DestinationID: "second", DayNumber: 1, Order: 1},
		{DestinationID: "third", DayNumber: 1, Order: 1},
	}

	sortTripDestinations(destinations)

	assert.Equal(t, "first", destinations[0].DestinationID)
	assert.Equal(t, "second", destinations[1].DestinationID)
	assert.Equal(t, "third", destinations[2].DestinationID)
}

func TestAttachmentDTOs(t *testing.T) {
	duration := 90
	attachments := []schemas.TripDestinationRequest{
		{DestinationID: "later", DayNumber: 3, Order: 0},
		{DestinationID: "early", DayNumber: 1, Order: 2, Notes: "breakfast", StartTime: "09:30", DurationMinutes: &duration},
	}

	dtos := attachmentDTOs(attachments)

	assert.Len(t, dtos, 2)
	assert.Equal(t, "early", dtos[0].DestinationID)
	assert.Equal(t, "breakfast", dtos[0].Notes)
	if assert.NotNil(t, dtos[0].StartTime) {
		assert.Equal(t, "09:30", *dtos[0].StartTime)
	}
	assert.Equal(t, &duration, dtos[0].DurationMinutes)
	assert.Equal(t, "later", dtos[1].DestinationID)
	assert.Nil(t, dtos[1].StartTime)
}
