package models

import (
	"fmt"
	"strings"
)

// Content descriptor id Steam assigns to adult-only sexual content.
const adultContentDescriptorID = 3

// AppDetails is the storefront record for a single app.
type AppDetails struct {
	AppID              string       `json:"appId"`
	Name               string       `json:"name"`
	IsFree             bool         `json:"isFree"`
	RequiredAge        int          `json:"requiredAge"`
	ShortDescription   string       `json:"shortDescription"`
	HeaderImage        string       `json:"headerImage"`
	Website            string       `json:"website"`
	Developers         []string     `json:"developers"`
	Publishers         []string     `json:"publishers"`
	Price              *Price       `json:"price,omitempty"`
	Categories         []Category   `json:"categories"`
	Genres             []Genre      `json:"genres"`
	Screenshots        []Screenshot `json:"screenshots"`
	ReleaseDate        ReleaseDate  `json:"releaseDate"`
	ContentDescriptors []int        `json:"contentDescriptors"`
	Metacritic         *Metacritic  `json:"metacritic,omitempty"`
	Recommendations    int          `json:"recommendations"`
}

// Price is the current storefront price in the smallest currency unit.
type Price struct {
	Currency        string `json:"currency"`
	Initial         int    `json:"initial"`
	Final           int    `json:"final"`
	DiscountPercent int    `json:"discountPercent"`
	FinalFormatted  string `json:"finalFormatted"`
}

// Category is a storefront category tag ("Single-player", "Steam Cloud", ...).
type Category struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

// Genre is a storefront genre tag. Steam serves genre ids as strings.
type Genre struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// Screenshot holds the thumbnail and full-size URLs for one screenshot.
type Screenshot struct {
	ID        int    `json:"id"`
	Thumbnail string `json:"thumbnail"`
	Full      string `json:"full"`
}

// ReleaseDate is the storefront release date, which Steam formats as free text.
type ReleaseDate struct {
	ComingSoon bool   `json:"comingSoon"`
	Date       string `json:"date"`
}

// Metacritic is the aggregated review score, when the storefront carries one.
type Metacritic struct {
	Score int    `json:"score"`
	URL   string `json:"url"`
}

// IsAdultContent reports whether the record is adult-rated: an 18+ age gate,
// the adult-only content descriptor, or an explicit adult category/genre tag.
func (d *AppDetails) IsAdultContent() bool {
	if d == nil {
		return false
	}
	if d.RequiredAge >= 18 {
		return true
	}
	for _, id := range d.ContentDescriptors {
		if id == adultContentDescriptorID {
			return true
		}
	}
	for _, c := range d.Categories {
		if isAdultTag(c.Description) {
			return true
		}
	}
	for _, g := range d.Genres {
		if isAdultTag(g.Description) {
			return true
		}
	}
	return false
}

func isAdultTag(description string) bool {
	s := strings.ToLower(description)
	return strings.Contains(s, "adult only") || strings.Contains(s, "sexual content")
}

// FormattedPrice renders the price for display: "Free" for free-to-play apps,
// the storefront's own formatting when present, and an empty string when the
// app has no price (unreleased or delisted).
func (d *AppDetails) FormattedPrice() string {
	if d.IsFree {
		return "Free"
	}
	if d.Price == nil {
		return ""
	}
	if d.Price.FinalFormatted != "" {
		return d.Price.FinalFormatted
	}
	return fmt.Sprintf("%.2f %s", float64(d.Price.Final)/100, d.Price.Currency)
}
