package places

import (
	"strings"

	"congestion-server/config"
	"congestion-server/models"
)

// FilterVenues drops venues in an excluded category and keeps only the first venue of each
// normalized name prefix, so "東京ドーム" and "東京ドーム（BIG EGG）" count once.
func FilterVenues(venues []models.Venue, excluded []string) []models.Venue {
	excludedSet := make(map[string]struct{}, len(excluded))
	for _, c := range excluded {
		excludedSet[strings.ToLower(c)] = struct{}{}
	}

	seen := make(map[string]struct{}, len(venues))
	out := make([]models.Venue, 0, len(venues))
	for _, v := range venues {
		if _, skip := excludedSet[strings.ToLower(v.Category)]; skip {
			continue
		}
		key := models.VenueNamePrefix(v.Name, config.VENUE_NAME_PREFIX_RUNES)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}
