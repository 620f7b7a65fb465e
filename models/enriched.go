package models

// EnrichRequest identifies the game to enrich: a known Steam app id, or a
// free-text title to resolve when the id is empty.
type EnrichRequest struct {
	AppID string `json:"appId,omitempty"`
	Title string `json:"title,omitempty"`
}

// EnrichedGame is a flattened presentation view of AppDetails, ready for
// display pipelines. Adult content is reported here, never filtered.
type EnrichedGame struct {
	AppID           string   `json:"appId"`
	Name            string   `json:"name"`
	MatchScore      float64  `json:"matchScore"`
	Price           string   `json:"price"`
	ReleaseDate     string   `json:"releaseDate"`
	Categories      []string `json:"categories"`
	Screenshots     []string `json:"screenshots"`
	MetacriticScore int      `json:"metacriticScore,omitempty"`
	Recommendations int      `json:"recommendations"`
	IsAdult         bool     `json:"isAdult"`
}

// NewEnrichedGame projects details into the flat view. Categories and genres
// are merged into a single deduplicated tag list, keeping storefront order.
func NewEnrichedGame(details *AppDetails, matchScore float64) *EnrichedGame {
	game := &EnrichedGame{
		AppID:           details.AppID,
		Name:            details.Name,
		MatchScore:      matchScore,
		Price:           details.FormattedPrice(),
		ReleaseDate:     details.ReleaseDate.Date,
		Recommendations: details.Recommendations,
		IsAdult:         details.IsAdultContent(),
	}
	if details.Metacritic != nil {
		game.MetacriticScore = details.Metacritic.Score
	}

	seen := make(map[string]struct{}, len(details.Categories)+len(details.Genres))
	addTag := func(tag string) {
		if tag == "" {
			return
		}
		if _, ok := seen[tag]; ok {
			return
		}
		seen[tag] = struct{}{}
		game.Categories = append(game.Categories, tag)
	}
	for _, c := range details.Categories {
		addTag(c.Description)
	}
	for _, g := range details.Genres {
		addTag(g.Description)
	}

	for _, s := range details.Screenshots {
		if s.Full != "" {
			game.Screenshots = append(game.Screenshots, s.Full)
		}
	}
	return game
}
