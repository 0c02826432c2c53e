package dedupe

import (
	"strings"

	"github.com/TSCosta20/housing-project/internal/models"
)

// ChooseExisting resolves an incoming listing against stored candidates.
// The primary key is an exact (source, external_id) match; the fallback is
// a case- and whitespace-insensitive url match. Nil means the listing is
// new and the caller assigns a fresh identity on insert. When several
// candidates match, the first by this priority order wins.
func ChooseExisting(candidates []models.Listing, source string, externalID, url *string) *models.Listing {
	if externalID != nil && *externalID != "" {
		for i := range candidates {
			row := &candidates[i]
			if row.Source != source || row.ExternalID == nil {
				continue
			}
			if *row.ExternalID == *externalID {
				return row
			}
		}
	}
	if url != nil {
		needle := normalizeURL(*url)
		if needle == "" {
			return nil
		}
		for i := range candidates {
			row := &candidates[i]
			if row.URL == nil {
				continue
			}
			if stored := normalizeURL(*row.URL); stored != "" && stored == needle {
				return row
			}
		}
	}
	return nil
}

func normalizeURL(url string) string {
	return strings.ToLower(strings.TrimSpace(url))
}
