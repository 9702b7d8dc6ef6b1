// Package artist defines the artist records listed on the booking site.
package artist

import "time"

// Artist is a performer who can be booked for shows.
type Artist struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	City               string    `json:"city"`
	State              string    `json:"state"`
	Phone              string    `json:"phone"`
	Genres             []string  `json:"genres"`
	WebsiteLink        string    `json:"website_link"`
	FacebookLink       string    `json:"facebook_link"`
	ImageLink          string    `json:"image_link"`
	SeekingVenue       bool      `json:"seeking_venue"`
	SeekingDescription string    `json:"seeking_description"`
	CreatedAt          time.Time `json:"-"`
}
