package jable

import (
	"time"

	"modelwatch/services/catalog"
)

// Unit is a relative-time unit token as the site renders it.
type Unit int

const (
	UnitUnknown Unit = iota
	UnitHour
	UnitDay
	UnitWeek
	UnitMonth
	UnitYear
)

// ParseUnit maps the site's localized unit tokens. Anything outside
// the vocabulary is UnitUnknown, not an error.
func ParseUnit(token string) Unit {
	switch token {
	case "小時前":
		return UnitHour
	case "天前":
		return UnitDay
	case "個星期前":
		return UnitWeek
	case "個月前":
		return UnitMonth
	case "年前":
		return UnitYear
	}
	return UnitUnknown
}

// Resolve turns "quantity units ago" into an absolute time. Months
// count as 30 days and years as 365, matching how the site rounds its
// own labels; calendar accuracy is not wanted here. An unknown unit
// resolves to now unchanged.
func Resolve(now time.Time, quantity int, unit Unit) time.Time {
	q := time.Duration(quantity)
	switch unit {
	case UnitHour:
		return now.Add(-q * time.Hour)
	case UnitDay:
		return now.Add(-q * 24 * time.Hour)
	case UnitWeek:
		return now.Add(-q * 7 * 24 * time.Hour)
	case UnitMonth:
		return now.Add(-q * 30 * 24 * time.Hour)
	case UnitYear:
		return now.Add(-q * 365 * 24 * time.Hour)
	}
	return now
}

// FormatDate renders a resolved time in the storage format.
func FormatDate(t time.Time) string {
	return t.Format(catalog.UploadTimeLayout)
}
