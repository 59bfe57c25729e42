package service

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/showbill/showbill/internal/model"
)

// Checkbox decodes an HTML checkbox field into a bool. A checkbox is
// checked only when the field is present with an explicitly truthy value;
// an absent field, an empty value or anything unrecognized decodes to
// false. Decoding never errors, matching how browsers simply omit
// unchecked boxes from the submission.
type Checkbox bool

var checkboxTruthy = map[string]bool{
	"y": true, "yes": true, "true": true, "on": true, "1": true,
}

// UnmarshalParam implements echo.BindUnmarshaler for form and query
// parameters.
func (b *Checkbox) UnmarshalParam(src string) error {
	*b = Checkbox(checkboxTruthy[strings.ToLower(strings.TrimSpace(src))])
	return nil
}

// UnmarshalJSON accepts a JSON bool or a checkbox-style string so that
// API clients are not forced through the form encoding.
func (b *Checkbox) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("true")):
		*b = true
	case len(data) >= 2 && data[0] == '"':
		return b.UnmarshalParam(string(data[1 : len(data)-1]))
	default:
		*b = false
	}
	return nil
}

// VenueForm is the field-by-field submission for creating or editing a
// venue. The same shape serves both operations: an edit is a full-record
// overwrite, never a partial patch.
type VenueForm struct {
	Name               string   `form:"name" json:"name" validate:"required"`
	City               string   `form:"city" json:"city"`
	State              string   `form:"state" json:"state"`
	Address            string   `form:"address" json:"address"`
	Phone              string   `form:"phone" json:"phone"`
	Genres             []string `form:"genres" json:"genres"`
	ImageLink          string   `form:"image_link" json:"image_link" validate:"omitempty,url"`
	FacebookLink       string   `form:"facebook_link" json:"facebook_link" validate:"omitempty,url"`
	WebsiteLink        string   `form:"website_link" json:"website_link" validate:"omitempty,url"`
	SeekingTalent      Checkbox `form:"seeking_talent" json:"seeking_talent"`
	SeekingDescription string   `form:"seeking_description" json:"seeking_description"`
}

// Venue builds the entity the form describes. The id is zero; create
// assigns one and edit fills in the existing id.
func (f *VenueForm) Venue() *model.Venue {
	return &model.Venue{
		Name:               strings.TrimSpace(f.Name),
		City:               f.City,
		State:              f.State,
		Address:            f.Address,
		Phone:              f.Phone,
		Genres:             model.Genres(f.Genres),
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		Website:            f.WebsiteLink,
		SeekingTalent:      bool(f.SeekingTalent),
		SeekingDescription: f.SeekingDescription,
	}
}

// VenueFormOf pre-fills a form from an existing venue for the edit page.
func VenueFormOf(v *model.Venue) VenueForm {
	return VenueForm{
		Name:               v.Name,
		City:               v.City,
		State:              v.State,
		Address:            v.Address,
		Phone:              v.Phone,
		Genres:             v.Genres,
		ImageLink:          v.ImageLink,
		FacebookLink:       v.FacebookLink,
		WebsiteLink:        v.Website,
		SeekingTalent:      Checkbox(v.SeekingTalent),
		SeekingDescription: v.SeekingDescription,
	}
}

// ArtistForm mirrors VenueForm for artists.
type ArtistForm struct {
	Name               string   `form:"name" json:"name" validate:"required"`
	City               string   `form:"city" json:"city"`
	State              string   `form:"state" json:"state"`
	Phone              string   `form:"phone" json:"phone"`
	Genres             []string `form:"genres" json:"genres"`
	ImageLink          string   `form:"image_link" json:"image_link" validate:"omitempty,url"`
	FacebookLink       string   `form:"facebook_link" json:"facebook_link" validate:"omitempty,url"`
	WebsiteLink        string   `form:"website_link" json:"website_link" validate:"omitempty,url"`
	SeekingVenue       Checkbox `form:"seeking_venue" json:"seeking_venue"`
	SeekingDescription string   `form:"seeking_description" json:"seeking_description"`
}

// Artist builds the entity the form describes.
func (f *ArtistForm) Artist() *model.Artist {
	return &model.Artist{
		Name:               strings.TrimSpace(f.Name),
		City:               f.City,
		State:              f.State,
		Phone:              f.Phone,
		Genres:             model.Genres(f.Genres),
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		WebsiteLink:        f.WebsiteLink,
		SeekingVenue:       bool(f.SeekingVenue),
		SeekingDescription: f.SeekingDescription,
	}
}

// ArtistFormOf pre-fills a form from an existing artist for the edit page.
func ArtistFormOf(a *model.Artist) ArtistForm {
	return ArtistForm{
		Name:               a.Name,
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		Genres:             a.Genres,
		ImageLink:          a.ImageLink,
		FacebookLink:       a.FacebookLink,
		WebsiteLink:        a.WebsiteLink,
		SeekingVenue:       Checkbox(a.SeekingVenue),
		SeekingDescription: a.SeekingDescription,
	}
}

// ShowForm is the submission for booking a show. StartTime stays a string
// through binding; ParseStartTime owns the accepted layouts.
type ShowForm struct {
	VenueID   int64  `form:"venue_id" json:"venue_id" validate:"required"`
	ArtistID  int64  `form:"artist_id" json:"artist_id" validate:"required"`
	StartTime string `form:"start_time" json:"start_time" validate:"required"`
}

// showTimeLayouts are the accepted start_time encodings: RFC3339 from API
// clients and the plain datetime strings a booking form posts.
var showTimeLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02 15:04"}

// ParseStartTime parses the submitted start time, trying each accepted
// layout in order.
func (f *ShowForm) ParseStartTime() (time.Time, error) {
	s := strings.TrimSpace(f.StartTime)
	for _, layout := range showTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("unrecognized start_time format")
}

// validate is the shared validator instance. Field names in violations
// are taken from the form tag so errors read like the submitted fields.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// checkForm validates a form struct and converts the first violation into
// a *ValidationError.
func checkForm(f any) error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &ValidationError{Field: verrs[0].Field(), Reason: reasonFor(verrs[0])}
	}
	return err
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be a valid URL"
	default:
		return "is invalid"
	}
}
