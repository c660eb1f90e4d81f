package catalog

import (
	"time"
)

// DefaultAvatar is stored for models whose page carries no avatar
// image. Avatar updates never overwrite a real avatar with this
// placeholder.
const DefaultAvatar = "https://raw.githubusercontent.com/konsav/email-templates/master/images/list-item.png"

// UploadTimeLayout is the storage format for resolved upload dates.
const UploadTimeLayout = "01/02/2006"

// Model is a tracked content source. Name is the unique key.
type Model struct {
	Name   string `json:"model"`
	Link   string `json:"link"`
	Avatar string `json:"avatar"`
}

// Video is an item attributed to a model. Identity is the (id, link)
// pair, both fields must match for two records to be the same video.
type Video struct {
	Model      string   `json:"model"`
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Link       string   `json:"link"`
	Image      string   `json:"image"`
	Views      int      `json:"views"`
	Likes      int      `json:"likes"`
	Tags       []string `json:"tags"`
	UploadTime string   `json:"upload_time"`
	Subtitled  bool     `json:"subtitled"`
}

// VideoKey is the compound identity of a video, used as the fragment
// predicate for dedup lookups.
type VideoKey struct {
	ID   string
	Link string
}

func (v Video) Key() VideoKey {
	return VideoKey{ID: v.ID, Link: v.Link}
}

func (k VideoKey) Match(v Video) bool {
	return v.ID == k.ID && v.Link == k.Link
}

// Trigger is the identity of a notification schedule. Comparison is
// structural including day order: ["MON","TUE"] and ["TUE","MON"] are
// distinct schedules.
type Trigger struct {
	Minute     int      `json:"minute"`
	Hour       int      `json:"hour"`
	DaysOfWeek []string `json:"dow"`
}

func (t Trigger) Match(s Schedule) bool {
	if s.Minute != t.Minute || s.Hour != t.Hour {
		return false
	}
	if len(s.DaysOfWeek) != len(t.DaysOfWeek) {
		return false
	}
	for i, day := range t.DaysOfWeek {
		if s.DaysOfWeek[i] != day {
			return false
		}
	}
	return true
}

// Schedule maps one trigger to its recipient list. Emails is an
// insertion-ordered set.
type Schedule struct {
	Trigger
	Emails []string `json:"emails"`
}

const maxNameLen = 30
const truncatedPrefixLen = 27

// FormatName bounds a display name to 30 characters, replacing the
// tail of longer names with an ellipsis. Counted in runes since names
// are frequently CJK. Applied when formatting digest content, stored
// names stay untruncated.
func FormatName(name string) string {
	runes := []rune(name)
	if len(runes) <= maxNameLen {
		return name
	}
	return string(runes[:truncatedPrefixLen]) + "..."
}

// ParseUploadTime parses a stored upload date back into a comparable
// time for sorting.
func ParseUploadTime(s string) (time.Time, error) {
	return time.Parse(UploadTimeLayout, s)
}
