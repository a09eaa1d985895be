package igdb

import "time"

const (
	providerName = "igdb"

	defaultProxyURL    = "https://igdb-api.nunogois.com"
	defaultAPIURL      = "https://api.igdb.com/v4/games"
	defaultHTTPTimeout = 10 * time.Second
	maxBodyBytes       = 8 << 20
	maxErrorBodyBytes  = 512

	thumbSize = "t_thumb"
	coverSize = "t_cover_big_2x"
)

// popularQuery is the fixed IGDB query used for the popular-games listing.
const popularQuery = `fields name, first_release_date, platforms.abbreviation, cover.url, total_rating;
where rating > 69 &
aggregated_rating_count > 0 &
total_rating_count > 1 &
version_parent = null;
sort first_release_date desc;`
