package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckboxUnmarshalParam(t *testing.T) {
	// A checkbox is checked only for an explicitly truthy value. The
	// presence of the field alone must not read as true.
	tests := []struct {
		src  string
		want bool
	}{
		{"y", true},
		{"Y", true},
		{"yes", true},
		{"true", true},
		{"on", true},
		{"1", true},
		{"", false},
		{"n", false},
		{"false", false},
		{"0", false},
		{"checked", false},
	}
	for _, tt := range tests {
		var b Checkbox
		require.NoError(t, b.UnmarshalParam(tt.src))
		assert.Equal(t, tt.want, bool(b), "src=%q", tt.src)
	}
}

func TestCheckboxUnmarshalJSON(t *testing.T) {
	var got struct {
		Seeking Checkbox `json:"seeking_talent"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"seeking_talent":true}`), &got))
	assert.True(t, bool(got.Seeking))

	require.NoError(t, json.Unmarshal([]byte(`{"seeking_talent":"y"}`), &got))
	assert.True(t, bool(got.Seeking))

	require.NoError(t, json.Unmarshal([]byte(`{"seeking_talent":false}`), &got))
	assert.False(t, bool(got.Seeking))

	require.NoError(t, json.Unmarshal([]byte(`{"seeking_talent":null}`), &got))
	assert.False(t, bool(got.Seeking))
}

func TestCheckFormRequiredName(t *testing.T) {
	err := checkForm(&VenueForm{})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "name", ve.Field)
	assert.Equal(t, "is required", ve.Reason)
}

func TestCheckFormBadURL(t *testing.T) {
	err := checkForm(&ArtistForm{Name: "Guns N Petals", ImageLink: "not a url"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "image_link", ve.Field)
	assert.Equal(t, "must be a valid URL", ve.Reason)
}

func TestCheckFormValid(t *testing.T) {
	assert.NoError(t, checkForm(&VenueForm{
		Name:      "The Musical Hop",
		City:      "San Francisco",
		State:     "CA",
		ImageLink: "https://example.com/hop.jpg",
	}))
}

func TestShowFormParseStartTime(t *testing.T) {
	for _, src := range []string{
		"2026-09-01T20:00:00Z",
		"2026-09-01 20:00:00",
		"2026-09-01 20:00",
	} {
		f := ShowForm{StartTime: src}
		got, err := f.ParseStartTime()
		require.NoError(t, err, "src=%q", src)
		assert.Equal(t, time.September, got.Month())
		assert.Equal(t, 20, got.Hour())
	}

	f := ShowForm{StartTime: "next tuesday"}
	_, err := f.ParseStartTime()
	assert.Error(t, err)
}

func TestVenueFormRoundTrip(t *testing.T) {
	form := VenueForm{
		Name:               "Park Square Live Music & Coffee",
		City:               "San Francisco",
		State:              "CA",
		Address:            "34 Whiskey Moore Ave",
		Phone:              "415-000-1234",
		Genres:             []string{"Rock n Roll", "Jazz"},
		ImageLink:          "https://example.com/park.jpg",
		FacebookLink:       "https://facebook.com/parksquare",
		WebsiteLink:        "https://parksquare.example.com",
		SeekingTalent:      true,
		SeekingDescription: "Looking for jazz trios",
	}
	back := VenueFormOf(form.Venue())
	assert.Equal(t, form, back)
}
