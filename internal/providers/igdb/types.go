package igdb

// Raw upstream shapes. Pointer and slice fields stay nil when the field is absent or null,
// which is how the mapper tells "missing" from "empty".

type rawGame struct {
	ID                *uint64              `json:"id"`
	Name              *string              `json:"name"`
	Cover             *rawImage            `json:"cover"`
	FirstReleaseDate  *int64               `json:"first_release_date"`
	Platforms         []rawPlatform        `json:"platforms"`
	TotalRating       *float64             `json:"total_rating"`
	URL               *string              `json:"url"`
	Summary           *string              `json:"summary"`
	Genres            []rawNamed           `json:"genres"`
	Themes            []rawNamed           `json:"themes"`
	GameModes         []rawNamed           `json:"game_modes"`
	InvolvedCompanies []rawInvolvedCompany `json:"involved_companies"`
	Screenshots       []rawImage           `json:"screenshots"`
	SimilarGames      []rawSimilarGame     `json:"similar_games"`
}

type rawImage struct {
	URL *string `json:"url"`
}

type rawPlatform struct {
	Abbreviation *string   `json:"abbreviation"`
	Name         *string   `json:"name"`
	PlatformLogo *rawImage `json:"platform_logo"`
}

type rawNamed struct {
	Name *string `json:"name"`
}

type rawInvolvedCompany struct {
	Company *rawNamed `json:"company"`
}

type rawSimilarGame struct {
	ID    *uint64   `json:"id"`
	Name  *string   `json:"name"`
	Cover *rawImage `json:"cover"`
}
