package render

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"wanderbot/internal/stats"
	"wanderbot/internal/travel"
)

var cardFuncs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
	"join": func(items []string) string {
		return strings.Join(items, ", ")
	},
	"hour": HourLabel,
}

// HourLabel formats an hour of day for display. A negative hour means no
// hourly data was ever recorded for the user.
func HourLabel(hour int) string {
	if hour < 0 {
		return "n/a"
	}
	return fmt.Sprintf("%02d:00", hour)
}

var cardTemplates = template.Must(template.New("cards").Funcs(cardFuncs).Parse(`
{{define "head"}}
<meta charset="utf-8">
<style>
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body {
    font-family: "Noto Sans", "Noto Sans CJK SC", sans-serif;
    width: 100%; height: 100vh; color: #1a202c; background: #f7fafc;
  }
  .card { width: 100%; height: 100%; padding: 32px; display: flex; flex-direction: column; }
  .title { font-size: 28px; font-weight: 700; margin-bottom: 16px; }
  .muted { color: #718096; font-size: 14px; }
  table { width: 100%; border-collapse: collapse; font-size: 16px; }
  th { text-align: left; color: #718096; font-weight: 600; padding: 6px 10px; border-bottom: 2px solid #e2e8f0; }
  td { padding: 6px 10px; border-bottom: 1px solid #edf2f7; }
  .rank { width: 42px; color: #2b6cb0; font-weight: 700; }
</style>
{{end}}

{{define "footprint"}}
<!doctype html><html><head>{{template "head"}}
<style>
  body {
    background-image: url("{{.Background}}");
    background-size: cover; background-position: center; color: #fff;
  }
  .overlay {
    width: 100%; height: 100%; padding: 36px;
    display: flex; flex-direction: column; justify-content: flex-end;
    background: linear-gradient(transparent 40%, rgba(0,0,0,.72));
  }
  .landmark { font-size: 40px; font-weight: 700; text-shadow: 0 2px 6px rgba(0,0,0,.6); }
  .place { font-size: 20px; margin-top: 6px; opacity: .92; }
  .meta { font-size: 14px; margin-top: 14px; opacity: .8; }
</style>
</head><body><div class="overlay">
  <div class="landmark">{{.Landmark}}</div>
  <div class="place">{{.City}}{{if .City}} · {{end}}{{.Country}}</div>
  <div class="meta">{{.UserName}} · {{.TripDate}} · {{.Timezone}}</div>
</div></body></html>
{{end}}

{{define "monthly"}}
<!doctype html><html><head>{{template "head"}}</head><body><div class="card">
  <div class="title">{{.Title}}</div>
  <div class="muted">{{.TotalTrips}} trips · {{.DistinctCountries}} countries · {{.DistinctLocations}} places</div>
  <table><tr><th></th><th>Traveler</th><th>Trips</th><th>Countries</th><th>Places</th></tr>
  {{range $i, $u := .Users}}
    <tr><td class="rank">{{inc $i}}</td><td>{{$u.UserName}}</td><td>{{$u.Trips}}</td>
        <td>{{join $u.Countries}}</td><td>{{join $u.Locations}}</td></tr>
  {{end}}
  </table>
</div></body></html>
{{end}}

{{define "leaderboard"}}
<!doctype html><html><head>{{template "head"}}</head><body><div class="card">
  <div class="title">{{.Title}}</div>
  <table><tr><th></th><th>Traveler</th><th>Trips</th><th>Countries</th><th>Score</th></tr>
  {{range $i, $e := .Entries}}
    <tr><td class="rank">{{inc $i}}</td><td>{{$e.UserName}}</td><td>{{$e.Trips}}</td>
        <td>{{$e.Countries}}</td><td>{{$e.Score}}</td></tr>
  {{end}}
  </table>
</div></body></html>
{{end}}

{{define "nightowl"}}
<!doctype html><html><head>{{template "head"}}</head><body><div class="card">
  <div class="title">{{.Title}}</div>
  <table><tr><th></th><th>User</th><th>Late nights</th><th>Busiest hour</th></tr>
  {{range $i, $e := .Entries}}
    <tr><td class="rank">{{inc $i}}</td><td>{{$e.Label}}</td><td>{{$e.Count}}</td>
        <td>{{hour $e.PeakHour}}</td></tr>
  {{end}}
  </table>
</div></body></html>
{{end}}

{{define "worldmap"}}
<!doctype html><html><head>{{template "head"}}
<style>
  .mapwrap { position: relative; flex: 1; }
  .basemap {
    position: absolute; inset: 0; width: 100%; height: 100%;
    object-fit: cover; opacity: .35;
  }
  .mapwrap svg { position: relative; width: 100%; height: 100%; }
</style>
</head><body><div class="card">
  <div class="title">{{.Title}}</div>
  <div class="mapwrap">
    {{if .Basemap}}<img class="basemap" src="{{.Basemap}}">{{end}}
    {{.SVG}}
  </div>
</div></body></html>
{{end}}
`))

func (r *Renderer) compose(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := cardTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to compose %s card: %w", name, err)
	}
	return buf.String(), nil
}

func cardFilename(kind string, at time.Time) string {
	return fmt.Sprintf("%s_%s.png", kind, at.UTC().Format("20060102_150405"))
}

// RenderFootprint renders the single-trip card.
func (r *Renderer) RenderFootprint(ctx context.Context, data travel.FootprintData) ([]byte, string, error) {
	page := struct {
		Background template.URL
		Landmark   string
		City       string
		Country    string
		UserName   string
		TripDate   string
		Timezone   string
	}{
		Background: template.URL(r.bg.resolve(ctx, data.BackgroundURL, data.BackgroundBytes)),
		Landmark:   data.Location.LandmarkLocalized,
		City:       data.Location.City,
		Country:    data.Location.CountryLocalized,
		UserName:   data.UserName,
		TripDate:   data.TripAt.UTC().Format("2006-01-02"),
		Timezone:   data.Location.Timezone,
	}

	html, err := r.compose("footprint", page)
	if err != nil {
		return nil, "", err
	}
	img, err := r.snapshot(ctx, html, cardWidth, cardHeight)
	if err != nil {
		return nil, "", err
	}
	return img, cardFilename("footprint", data.TripAt), nil
}

// RenderMonthly renders a month's grouped trips.
func (r *Renderer) RenderMonthly(ctx context.Context, title string, summary stats.MonthlySummary) ([]byte, string, error) {
	page := struct {
		Title string
		stats.MonthlySummary
	}{Title: title, MonthlySummary: summary}

	html, err := r.compose("monthly", page)
	if err != nil {
		return nil, "", err
	}
	img, err := r.snapshot(ctx, html, cardWidth, cardHeight)
	if err != nil {
		return nil, "", err
	}
	return img, cardFilename("monthly", time.Now()), nil
}

// RenderLeaderboard renders the trip leaderboard.
func (r *Renderer) RenderLeaderboard(ctx context.Context, title string, entries []stats.LeaderboardEntry) ([]byte, string, error) {
	page := struct {
		Title   string
		Entries []stats.LeaderboardEntry
	}{Title: title, Entries: entries}

	html, err := r.compose("leaderboard", page)
	if err != nil {
		return nil, "", err
	}
	img, err := r.snapshot(ctx, html, cardWidth, cardHeight)
	if err != nil {
		return nil, "", err
	}
	return img, cardFilename("leaderboard", time.Now()), nil
}

// NightOwlRow pairs a ranking entry with a display label, since the stats
// layer only knows user IDs.
type NightOwlRow struct {
	Label    string
	Count    int
	PeakHour int
}

// RenderNightOwls renders the night-owl leaderboard.
func (r *Renderer) RenderNightOwls(ctx context.Context, title string, rows []NightOwlRow) ([]byte, string, error) {
	page := struct {
		Title   string
		Entries []NightOwlRow
	}{Title: title, Entries: rows}

	html, err := r.compose("nightowl", page)
	if err != nil {
		return nil, "", err
	}
	img, err := r.snapshot(ctx, html, cardWidth, cardHeight)
	if err != nil {
		return nil, "", err
	}
	return img, cardFilename("nightowl", time.Now()), nil
}

// RenderWorldMap renders the highlighted map. When the basemap overlay is
// enabled a raster basemap is fetched and placed behind the SVG; a fetch
// failure degrades to the plain map.
func (r *Renderer) RenderWorldMap(ctx context.Context, title, svg string) ([]byte, string, error) {
	page := struct {
		Title   string
		Basemap template.URL
		SVG     template.HTML
	}{Title: title, SVG: template.HTML(svg)}

	if r.cfg.Map.BasemapOverlay && r.cfg.Map.BasemapToken != "" {
		fetchCtx, cancel := context.WithTimeout(ctx, r.cfg.Map.BasemapTimeout)
		basemapURL := fmt.Sprintf(
			"https://api.maptiler.com/maps/basic-v2/static/0,20,0.4/%dx%d.png?key=%s",
			mapWidth, mapHeight-80, r.cfg.Map.BasemapToken)
		if body, err := r.bg.fetch(fetchCtx, basemapURL); err != nil {
			r.log.WarnContext(ctx, "Basemap fetch failed, rendering plain map", "error", err)
		} else if body != nil {
			page.Basemap = template.URL(dataURI(body))
		}
		cancel()
	}

	html, err := r.compose("worldmap", page)
	if err != nil {
		return nil, "", err
	}
	img, err := r.snapshot(ctx, html, mapWidth, mapHeight)
	if err != nil {
		return nil, "", err
	}
	return img, cardFilename("worldmap", time.Now()), nil
}
