// Package show defines bookings that join an artist to a venue at a time.
package show

import "time"

// Show is a booked performance.
type Show struct {
	ID        int64     `json:"id"`
	ArtistID  int64     `json:"artist_id"`
	VenueID   int64     `json:"venue_id"`
	StartTime time.Time `json:"start_time"`
}

// Detail is a show joined with its venue and artist display fields.
type Detail struct {
	ID              int64     `json:"id"`
	VenueID         int64     `json:"venue_id"`
	VenueName       string    `json:"venue_name"`
	VenueImageLink  string    `json:"venue_image_link"`
	ArtistID        int64     `json:"artist_id"`
	ArtistName      string    `json:"artist_name"`
	ArtistImageLink string    `json:"artist_image_link"`
	StartTime       time.Time `json:"start_time"`
}

// Upcoming reports whether the show starts after now.
func (d Detail) Upcoming(now time.Time) bool {
	return d.StartTime.After(now)
}
