// Package event defines library event models.
package event

import "time"

// FeaturedID is the document id of the event shown on the event page.
const FeaturedID = "featured"

// Event is a library event shown on the event page.
type Event struct {
	ID       string
	Title    string
	StartsAt time.Time
	Venue    string
	City     string
	Host     string
	HostRole string
	Overview string
}

// DateLine returns the long date, e.g. "19 January 2024".
func (e Event) DateLine() string {
	if e.StartsAt.IsZero() {
		return "Date to be announced"
	}
	return e.StartsAt.Format("2 January 2006")
}

// TimeLine returns the weekday and time, e.g. "Friday, 04:00 PM".
func (e Event) TimeLine() string {
	if e.StartsAt.IsZero() {
		return ""
	}
	return e.StartsAt.Format("Monday, 03:04 PM")
}

// Default is the built-in event used when no featured event is published.
func Default() Event {
	return Event{
		ID:       FeaturedID,
		Title:    "Book Reading & Signing Event",
		StartsAt: time.Date(2024, time.January, 19, 16, 0, 0, 0, time.UTC),
		Venue:    "The National Library of India",
		City:     "Kolkata, West Bengal",
		Host:     "J. K. Rowling",
		HostRole: "Author",
		Overview: "Prepare to be transported into the enchanting world of literature as the National Library of India " +
			"proudly presents \"Magical Literary Evening: A Conversation with J.K. Rowling.\" The evening features " +
			"insights into her creative process, a moderated discussion with literary scholars and an audience Q&A.\n\n" +
			"Attendees will also be able to purchase signed copies of her books.",
	}
}
