package catalog

import (
	"fmt"
	"slices"
)

// how many recent videos each model contributes to a digest
const digestPerModel = 2

// SelectForDigest picks the most recent videos of each wanted model,
// newest first, two per model, concatenated in the order the models
// were asked for. Ties on upload date keep store iteration order,
// which is stable for a given file but otherwise unspecified. Names
// are truncated here as a formatting step, stored rows are untouched.
func (s Store) SelectForDigest(wanted []string) ([]Video, error) {
	var out []Video
	for _, model := range wanted {
		videos, err := s.Videos.Search(VideosOf(model))
		if err != nil {
			return nil, err
		}

		dates := make(map[VideoKey]int64, len(videos))
		for _, v := range videos {
			date, err := ParseUploadTime(v.UploadTime)
			if err != nil {
				return nil, fmt.Errorf("video %s: bad upload time %q: %w", v.ID, v.UploadTime, err)
			}
			dates[v.Key()] = date.Unix()
		}
		slices.SortStableFunc(videos, func(a, b Video) int {
			da := dates[a.Key()]
			db := dates[b.Key()]
			if da > db {
				return -1
			}
			if da < db {
				return 1
			}
			return 0
		})

		take := min(digestPerModel, len(videos))
		for _, v := range videos[:take] {
			v.Name = FormatName(v.Name)
			out = append(out, v)
		}
	}
	return out, nil
}
