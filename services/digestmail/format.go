// Package digestmail turns catalog selections into digest emails and
// delivers them, either on demand or on the stored notification
// schedules.
package digestmail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"modelwatch/services/catalog"

	"github.com/mazen160/go-random"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(
	template.New("digestmail").Funcs(template.FuncMap{
		"commas": groupDigits,
		"join":   strings.Join,
	}).ParseFS(templateFS, "templates/*.html"),
)

// punchlines rotated under suggested models in the daily digest
var punchlines = []string{
	"New uploads landed this week",
	"Still trending with readers like you",
	"A back catalog worth the scroll",
	"Picked up fresh subtitles recently",
}

// groupDigits renders an integer with comma thousand separators.
func groupDigits(n int) string {
	s := fmt.Sprintf("%d", n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}

// Formatter renders digest bodies from the catalog.
type Formatter struct {
	store catalog.Store
}

func NewFormatter(store catalog.Store) Formatter {
	return Formatter{store: store}
}

type suggestion struct {
	Model     catalog.Model
	Punchline string
}

type dailyData struct {
	Video       catalog.Video
	Suggestions []suggestion
}

// Daily renders the daily digest: one random stored video plus two
// distinct random models with rotating punchlines.
func (f Formatter) Daily() (string, error) {
	videos, err := f.store.Videos.All()
	if err != nil {
		return "", err
	}
	if len(videos) == 0 {
		return "", fmt.Errorf("no videos in catalog, run fetch first")
	}
	models, err := f.store.Models.All()
	if err != nil {
		return "", err
	}
	if len(models) < 2 {
		return "", fmt.Errorf("daily digest needs at least 2 models, have %d", len(models))
	}

	idx, err := random.IntRange(0, len(videos))
	if err != nil {
		return "", err
	}
	video := videos[idx]
	video.Name = catalog.FormatName(video.Name)

	first, err := random.IntRange(0, len(models))
	if err != nil {
		return "", err
	}
	offset, err := random.IntRange(1, len(models))
	if err != nil {
		return "", err
	}
	second := (first + offset) % len(models)

	data := dailyData{Video: video}
	for _, m := range []catalog.Model{models[first], models[second]} {
		p, err := random.IntRange(0, len(punchlines))
		if err != nil {
			return "", err
		}
		data.Suggestions = append(data.Suggestions, suggestion{
			Model:     m,
			Punchline: punchlines[p],
		})
	}

	var buf bytes.Buffer
	err = templates.ExecuteTemplate(&buf, "daily.html", data)
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

type weeklySection struct {
	Model string
	Rows  [][]catalog.Video
}

type weeklyData struct {
	Sections []weeklySection
}

// Weekly renders the weekly digest for the wanted models: a headline
// per model over rows of its most recent videos, two per row.
func (f Formatter) Weekly(wanted []string) (string, error) {
	selected, err := f.store.SelectForDigest(wanted)
	if err != nil {
		return "", err
	}

	byModel := map[string][]catalog.Video{}
	for _, v := range selected {
		byModel[v.Model] = append(byModel[v.Model], v)
	}

	var data weeklyData
	for _, model := range wanted {
		videos := byModel[model]
		if len(videos) == 0 {
			continue
		}
		section := weeklySection{Model: model}
		for len(videos) > 0 {
			take := min(2, len(videos))
			section.Rows = append(section.Rows, videos[:take])
			videos = videos[take:]
		}
		data.Sections = append(data.Sections, section)
	}
	if len(data.Sections) == 0 {
		return "", fmt.Errorf("no videos stored for any of %v", wanted)
	}

	var buf bytes.Buffer
	err = templates.ExecuteTemplate(&buf, "weekly.html", data)
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
