// Package venue defines the venue records listed on the booking site.
package venue

import "time"

// Venue is a performance space that hosts shows.
type Venue struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	City               string    `json:"city"`
	State              string    `json:"state"`
	Address            string    `json:"address"`
	Phone              string    `json:"phone"`
	Genres             []string  `json:"genres"`
	WebsiteLink        string    `json:"website_link"`
	FacebookLink       string    `json:"facebook_link"`
	ImageLink          string    `json:"image_link"`
	SeekingTalent      bool      `json:"seeking_talent"`
	SeekingDescription string    `json:"seeking_description"`
	CreatedAt          time.Time `json:"-"`
}

// Area groups venues sharing a city and state.
type Area struct {
	City   string  `json:"city"`
	State  string  `json:"state"`
	Venues []Venue `json:"venues"`
}
