package steamapi

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/Xmerr/steam-client/models"
)

// rawAppList mirrors ISteamApps/GetAppList/v2.
type rawAppList struct {
	AppList struct {
		Apps []struct {
			AppID int64  `json:"appid"`
			Name  string `json:"name"`
		} `json:"apps"`
	} `json:"applist"`
}

func decodeAppList(body []byte) ([]models.App, error) {
	var raw rawAppList
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	apps := make([]models.App, 0, len(raw.AppList.Apps))
	for _, a := range raw.AppList.Apps {
		apps = append(apps, models.App{
			ID:   strconv.FormatInt(a.AppID, 10),
			Name: a.Name,
		})
	}
	return apps, nil
}

// flexInt absorbs Steam's habit of serving numeric fields either as numbers or
// as quoted strings; required_age in particular arrives as both `18` and
// `"18"` (and occasionally `"18+"`).
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	s = strings.TrimSuffix(strings.TrimSpace(s), "+")
	if s == "" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("parsing %s as number: %w", string(data), err)
	}
	*f = flexInt(int(n))
	return nil
}

// appDetailsEnvelope is the per-app wrapper of the storefront appdetails
// response: `{"<appid>": {"success": bool, "data": {...}}}`.
type appDetailsEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// rawAppDetails mirrors the storefront appdetails data payload, limited to the
// fields this library surfaces.
type rawAppDetails struct {
	Name             string   `json:"name"`
	SteamAppID       int64    `json:"steam_appid"`
	IsFree           bool     `json:"is_free"`
	RequiredAge      flexInt  `json:"required_age"`
	ShortDescription string   `json:"short_description"`
	HeaderImage      string   `json:"header_image"`
	Website          string   `json:"website"`
	Developers       []string `json:"developers"`
	Publishers       []string `json:"publishers"`
	PriceOverview    *struct {
		Currency        string `json:"currency"`
		Initial         int    `json:"initial"`
		Final           int    `json:"final"`
		DiscountPercent int    `json:"discount_percent"`
		FinalFormatted  string `json:"final_formatted"`
	} `json:"price_overview"`
	Categories []struct {
		ID          int    `json:"id"`
		Description string `json:"description"`
	} `json:"categories"`
	Genres []struct {
		ID          string `json:"id"`
		Description string `json:"description"`
	} `json:"genres"`
	Screenshots []struct {
		ID            int    `json:"id"`
		PathThumbnail string `json:"path_thumbnail"`
		PathFull      string `json:"path_full"`
	} `json:"screenshots"`
	ReleaseDate struct {
		ComingSoon bool   `json:"coming_soon"`
		Date       string `json:"date"`
	} `json:"release_date"`
	ContentDescriptors struct {
		IDs   []int  `json:"ids"`
		Notes string `json:"notes"`
	} `json:"content_descriptors"`
	Metacritic *struct {
		Score int    `json:"score"`
		URL   string `json:"url"`
	} `json:"metacritic"`
	Recommendations struct {
		Total int `json:"total"`
	} `json:"recommendations"`
}

// decodeAppDetails unwraps the appdetails envelope for appID and transforms
// the payload. A missing envelope or success:false means the app does not
// exist on the storefront.
func decodeAppDetails(body []byte, appID string) (*models.AppDetails, error) {
	var envelopes map[string]appDetailsEnvelope
	if err := json.Unmarshal(body, &envelopes); err != nil {
		return nil, err
	}
	envelope, ok := envelopes[appID]
	if !ok || !envelope.Success || len(envelope.Data) == 0 {
		return nil, NotFound("app " + appID)
	}
	var raw rawAppDetails
	if err := json.Unmarshal(envelope.Data, &raw); err != nil {
		return nil, err
	}
	return raw.toModel(appID), nil
}

func (r *rawAppDetails) toModel(requestedID string) *models.AppDetails {
	id := requestedID
	if r.SteamAppID != 0 {
		id = strconv.FormatInt(r.SteamAppID, 10)
	}
	details := &models.AppDetails{
		AppID:              id,
		Name:               r.Name,
		IsFree:             r.IsFree,
		RequiredAge:        int(r.RequiredAge),
		ShortDescription:   r.ShortDescription,
		HeaderImage:        r.HeaderImage,
		Website:            r.Website,
		Developers:         r.Developers,
		Publishers:         r.Publishers,
		ContentDescriptors: r.ContentDescriptors.IDs,
		ReleaseDate: models.ReleaseDate{
			ComingSoon: r.ReleaseDate.ComingSoon,
			Date:       r.ReleaseDate.Date,
		},
		Recommendations: r.Recommendations.Total,
	}
	if r.PriceOverview != nil {
		details.Price = &models.Price{
			Currency:        r.PriceOverview.Currency,
			Initial:         r.PriceOverview.Initial,
			Final:           r.PriceOverview.Final,
			DiscountPercent: r.PriceOverview.DiscountPercent,
			FinalFormatted:  r.PriceOverview.FinalFormatted,
		}
	}
	for _, c := range r.Categories {
		details.Categories = append(details.Categories, models.Category{ID: c.ID, Description: c.Description})
	}
	for _, g := range r.Genres {
		details.Genres = append(details.Genres, models.Genre{ID: g.ID, Description: g.Description})
	}
	for _, s := range r.Screenshots {
		details.Screenshots = append(details.Screenshots, models.Screenshot{
			ID:        s.ID,
			Thumbnail: s.PathThumbnail,
			Full:      s.PathFull,
		})
	}
	if r.Metacritic != nil {
		details.Metacritic = &models.Metacritic{Score: r.Metacritic.Score, URL: r.Metacritic.URL}
	}
	return details
}
