// Package grouping partitions a recipe list into presentation sections: a
// favorites section followed by one section per calendar day, newest first.
package grouping

import (
	"fmt"
	"sort"
	"time"

	"github.com/GuotongWu/CookNote/internal/models"
)

// Group is one titled section.
type Group struct {
	Title     string          `json:"title"`
	Items     []models.Recipe `json:"items"`
	IsSpecial bool            `json:"isSpecial,omitempty"`
}

// Labels are the section titles.
type Labels struct {
	Favorites string
	Today     string
	Yesterday string
	// Day formats any other date.
	Day func(t time.Time) string
}

// DefaultLabels returns the journal's standard titles.
func DefaultLabels() Labels {
	return Labels{
		Favorites: "我的收藏",
		Today:     "今天",
		Yesterday: "昨天",
		Day: func(t time.Time) string {
			return fmt.Sprintf("%d月%d日", int(t.Month()), t.Day())
		},
	}
}

type options struct {
	labels Labels
	loc    *time.Location
}

// Option configures Group.
type Option func(*options)

// WithLabels overrides the section titles.
func WithLabels(l Labels) Option {
	return func(o *options) { o.labels = l }
}

// WithLocation sets the time zone that defines calendar days.
// Defaults to the location of the now argument.
func WithLocation(loc *time.Location) Option {
	return func(o *options) { o.loc = loc }
}

// Sections builds the sections for recipes relative to now.
//
// Favorites are emitted first (when any) and also appear in their day section.
// Day sections appear in order of first encounter while walking the list sorted
// newest first, so the most recent day leads. Sections are keyed by title, so
// the same month/day in different years shares one section. A zero CreatedAt
// counts as now.
func Sections(recipes []models.Recipe, now time.Time, opts ...Option) []Group {
	o := options{labels: DefaultLabels(), loc: now.Location()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.labels.Day == nil {
		o.labels.Day = DefaultLabels().Day
	}
	now = now.In(o.loc)
	nowMs := now.UnixMilli()

	created := func(r models.Recipe) int64 {
		if r.CreatedAt == 0 {
			return nowMs
		}
		return r.CreatedAt
	}
	newestFirst := func(list []models.Recipe) {
		sort.SliceStable(list, func(i, j int) bool {
			return created(list[i]) > created(list[j])
		})
	}

	var groups []Group

	var favorites []models.Recipe
	for _, r := range recipes {
		if r.IsFavorite {
			favorites = append(favorites, r)
		}
	}
	if len(favorites) > 0 {
		newestFirst(favorites)
		groups = append(groups, Group{Title: o.labels.Favorites, Items: favorites, IsSpecial: true})
	}

	sorted := append([]models.Recipe(nil), recipes...)
	newestFirst(sorted)

	today := dayOf(now)
	yesterday := dayOf(now.AddDate(0, 0, -1))
	index := make(map[string]int)
	for _, r := range sorted {
		t := time.UnixMilli(created(r)).In(o.loc)

		var title string
		switch dayOf(t) {
		case today:
			title = o.labels.Today
		case yesterday:
			title = o.labels.Yesterday
		default:
			title = o.labels.Day(t)
		}

		i, ok := index[title]
		if !ok {
			i = len(groups)
			index[title] = i
			groups = append(groups, Group{Title: title})
		}
		groups[i].Items = append(groups[i].Items, r)
	}
	return groups
}

type civilDay struct {
	year  int
	month time.Month
	day   int
}

func dayOf(t time.Time) civilDay {
	y, m, d := t.Date()
	return civilDay{y, m, d}
}

// Count returns the number of items across all groups.
func Count(groups []Group) int {
	n := 0
	for _, g := range groups {
		n += len(g.Items)
	}
	return n
}
