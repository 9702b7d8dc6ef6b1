// Package forms parses and validates the booking site's HTML form
// submissions.
package forms

import (
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fullstacklab/appsuite/internal/encore/domain/artist"
	"github.com/fullstacklab/appsuite/internal/encore/domain/show"
	"github.com/fullstacklab/appsuite/internal/encore/domain/venue"
)

var states = map[string]bool{
	"AL": true, "AK": true, "AZ": true, "AR": true, "CA": true, "CO": true,
	"CT": true, "DE": true, "DC": true, "FL": true, "GA": true, "HI": true,
	"ID": true, "IL": true, "IN": true, "IA": true, "KS": true, "KY": true,
	"LA": true, "ME": true, "MT": true, "NE": true, "NV": true, "NH": true,
	"NJ": true, "NM": true, "NY": true, "NC": true, "ND": true, "OH": true,
	"OK": true, "OR": true, "MD": true, "MA": true, "MI": true, "MN": true,
	"MS": true, "MO": true, "PA": true, "RI": true, "SC": true, "SD": true,
	"TN": true, "TX": true, "UT": true, "VT": true, "VA": true, "WA": true,
	"WV": true, "WI": true, "WY": true,
}

var phoneRe = regexp.MustCompile(`^\d{3}-?\d{3}-?\d{4}$`)

// start times are submitted as "2006-01-02 15:04:05" by the datetime picker
const startTimeLayout = "2006-01-02 15:04:05"

// Errors maps a field name to its validation message.
type Errors map[string]string

// splitGenres accepts both repeated genre fields (multi-select) and a single
// comma-separated value.
func splitGenres(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}

// VenueForm holds a parsed venue submission.
type VenueForm struct {
	Name               string
	City               string
	State              string
	Address            string
	Phone              string
	Genres             []string
	WebsiteLink        string
	FacebookLink       string
	ImageLink          string
	SeekingTalent      bool
	SeekingDescription string
}

// ParseVenue builds a VenueForm from form values.
func ParseVenue(values url.Values) VenueForm {
	return VenueForm{
		Name:               values.Get("name"),
		City:               values.Get("city"),
		State:              values.Get("state"),
		Address:            values.Get("address"),
		Phone:              values.Get("phone"),
		Genres:             splitGenres(values["genres"]),
		WebsiteLink:        values.Get("website_link"),
		FacebookLink:       values.Get("facebook_link"),
		ImageLink:          values.Get("image_link"),
		SeekingTalent:      values.Has("seeking_talent"),
		SeekingDescription: values.Get("seeking_description"),
	}
}

// Validate returns the field errors for the form.
func (f VenueForm) Validate() Errors {
	errs := Errors{}
	if f.Name == "" {
		errs["name"] = "Name is required."
	}
	if !states[f.State] {
		errs["state"] = "State must be a valid US state code."
	}
	if f.Phone != "" && !phoneRe.MatchString(f.Phone) {
		errs["phone"] = "Phone must look like 123-456-7890."
	}
	if len(f.Genres) == 0 {
		errs["genres"] = "Pick at least one genre."
	}
	return errs
}

// Venue converts the form to a domain record.
func (f VenueForm) Venue() venue.Venue {
	return venue.Venue{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Address:            f.Address,
		Phone:              f.Phone,
		Genres:             f.Genres,
		WebsiteLink:        f.WebsiteLink,
		FacebookLink:       f.FacebookLink,
		ImageLink:          f.ImageLink,
		SeekingTalent:      f.SeekingTalent,
		SeekingDescription: f.SeekingDescription,
	}
}

// FromVenue pre-fills the form from an existing record, for edit pages.
func FromVenue(v venue.Venue) VenueForm {
	return VenueForm{
		Name:               v.Name,
		City:               v.City,
		State:              v.State,
		Address:            v.Address,
		Phone:              v.Phone,
		Genres:             v.Genres,
		WebsiteLink:        v.WebsiteLink,
		FacebookLink:       v.FacebookLink,
		ImageLink:          v.ImageLink,
		SeekingTalent:      v.SeekingTalent,
		SeekingDescription: v.SeekingDescription,
	}
}

// ArtistForm holds a parsed artist submission.
type ArtistForm struct {
	Name               string
	City               string
	State              string
	Phone              string
	Genres             []string
	WebsiteLink        string
	FacebookLink       string
	ImageLink          string
	SeekingVenue       bool
	SeekingDescription string
}

// ParseArtist builds an ArtistForm from form values.
func ParseArtist(values url.Values) ArtistForm {
	return ArtistForm{
		Name:               values.Get("name"),
		City:               values.Get("city"),
		State:              values.Get("state"),
		Phone:              values.Get("phone"),
		Genres:             splitGenres(values["genres"]),
		WebsiteLink:        values.Get("website_link"),
		FacebookLink:       values.Get("facebook_link"),
		ImageLink:          values.Get("image_link"),
		SeekingVenue:       values.Has("seeking_venue"),
		SeekingDescription: values.Get("seeking_description"),
	}
}

// Validate returns the field errors for the form.
func (f ArtistForm) Validate() Errors {
	errs := Errors{}
	if f.Name == "" {
		errs["name"] = "Name is required."
	}
	if !states[f.State] {
		errs["state"] = "State must be a valid US state code."
	}
	if f.Phone != "" && !phoneRe.MatchString(f.Phone) {
		errs["phone"] = "Phone must look like 123-456-7890."
	}
	if len(f.Genres) == 0 {
		errs["genres"] = "Pick at least one genre."
	}
	return errs
}

// Artist converts the form to a domain record.
func (f ArtistForm) Artist() artist.Artist {
	return artist.Artist{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Phone:              f.Phone,
		Genres:             f.Genres,
		WebsiteLink:        f.WebsiteLink,
		FacebookLink:       f.FacebookLink,
		ImageLink:          f.ImageLink,
		SeekingVenue:       f.SeekingVenue,
		SeekingDescription: f.SeekingDescription,
	}
}

// FromArtist pre-fills the form from an existing record, for edit pages.
func FromArtist(a artist.Artist) ArtistForm {
	return ArtistForm{
		Name:               a.Name,
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		Genres:             a.Genres,
		WebsiteLink:        a.WebsiteLink,
		FacebookLink:       a.FacebookLink,
		ImageLink:          a.ImageLink,
		SeekingVenue:       a.SeekingVenue,
		SeekingDescription: a.SeekingDescription,
	}
}

// ShowForm holds a parsed show submission.
type ShowForm struct {
	ArtistID  string
	VenueID   string
	StartTime string
}

// ParseShow builds a ShowForm from form values.
func ParseShow(values url.Values) ShowForm {
	return ShowForm{
		ArtistID:  values.Get("artist_id"),
		VenueID:   values.Get("venue_id"),
		StartTime: values.Get("start_time"),
	}
}

// Validate returns the field errors for the form.
func (f ShowForm) Validate() Errors {
	errs := Errors{}
	if _, err := strconv.ParseInt(f.ArtistID, 10, 64); err != nil {
		errs["artist_id"] = "Artist ID must be a number."
	}
	if _, err := strconv.ParseInt(f.VenueID, 10, 64); err != nil {
		errs["venue_id"] = "Venue ID must be a number."
	}
	if _, err := time.ParseInLocation(startTimeLayout, f.StartTime, time.UTC); err != nil {
		errs["start_time"] = "Start time must look like 2025-01-02 20:00:00."
	}
	return errs
}

// Show converts a validated form to a domain record.
func (f ShowForm) Show() show.Show {
	artistID, _ := strconv.ParseInt(f.ArtistID, 10, 64)
	venueID, _ := strconv.ParseInt(f.VenueID, 10, 64)
	startTime, _ := time.ParseInLocation(startTimeLayout, f.StartTime, time.UTC)
	return show.Show{ArtistID: artistID, VenueID: venueID, StartTime: startTime}
}

// States returns the state codes for form select boxes, in stable order.
func States() []string {
	out := make([]string, 0, len(states))
	for s := range states {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
