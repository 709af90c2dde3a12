package game

import (
	"fmt"
	"html/template"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/gamecenter/internal/app/system/htmlsanitize"
	"github.com/dalemusser/gamecenter/internal/domain/models"
	"github.com/dustin/go-humanize"
)

// PlaceholderImage is shown when a game has neither a header nor any
// detail images.
const PlaceholderImage = "/static/placeholder.svg"

const notAvailable = "N/A"

// infoCard is one labeled fact in the game page's summary grid.
type infoCard struct {
	Label string
	Value string
}

// downloadButton is one direct-download link.
type downloadButton struct {
	Href    string
	Label   string
	Size    string
	Icon    string
	Channel string
}

// heroImage picks the banner: header image, else the first detail image,
// else the placeholder.
func heroImage(g *models.GameDetails) string {
	if g.HeaderImage != "" {
		return g.HeaderImage
	}
	for _, img := range g.DetailImages {
		if img != "" {
			return img
		}
	}
	return PlaceholderImage
}

func gallery(g *models.GameDetails) []string {
	out := make([]string, 0, len(g.DetailImages))
	for _, img := range g.DetailImages {
		if img != "" {
			out = append(out, img)
		}
	}
	return out
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// formatDate renders catalog timestamps as YYYY-MM-DD. Unix seconds and
// milliseconds are accepted too; anything else shows as N/A.
func formatDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return notAvailable
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil && n > 0 {
		if n > 1e12 {
			return time.UnixMilli(n).UTC().Format("2006-01-02")
		}
		return time.Unix(n, 0).UTC().Format("2006-01-02")
	}
	return notAvailable
}

func formatRating(star float64) string {
	return strconv.FormatFloat(star, 'f', -1, 64) + "/5"
}

func formatBytes(size float64) string {
	if size <= 0 {
		return ""
	}
	return humanize.Bytes(uint64(size))
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func infoCards(g *models.GameDetails) []infoCard {
	size := notAvailable
	if g.FileSize != nil {
		size = orDefault(formatBytes(*g.FileSize), notAvailable)
	}
	return []infoCard{
		{"Rating", formatRating(g.Star)},
		{"Downloads", orDefault(g.DownloadCountShow, notAvailable)},
		{"Age rating", orDefault(g.LimitAge, "Unrated")},
		{"Released", formatDate(g.ReleaseAt)},
		{"Updated", formatDate(g.LatestAt)},
		{"Developer", orDefault(g.Developer, "Unknown")},
		{"Size", size},
	}
}

func downloadButtons(g *models.GameDetails) []downloadButton {
	out := make([]downloadButton, 0, len(g.Resource))
	for _, res := range g.Resource {
		label := "Download"
		if res.Channel.Name != "" {
			label += " from " + res.Channel.Name
		}
		if res.Version != "" {
			label += " v" + strings.TrimPrefix(res.Version, "v")
		}
		out = append(out, downloadButton{
			Href:    res.Href(),
			Label:   label,
			Size:    formatBytes(res.Size),
			Icon:    res.Channel.Icon,
			Channel: res.Channel.Type,
		})
	}
	return out
}

// feedbackMailto builds the mail link offered when a game has no downloads.
func feedbackMailto(email string, g *models.GameDetails) string {
	subject := fmt.Sprintf("Feedback for %s (ID: %s)", g.Name, g.ID)
	return "mailto:" + email + "?subject=" + strings.ReplaceAll(url.QueryEscape(subject), "+", "%20")
}

// detailVM is everything the game page renders besides BaseVM.
type detailVM struct {
	Game          *models.GameDetails
	HeroImage     string
	Gallery       []string
	Cards         []infoCard
	Downloads     []downloadButton
	MailtoURL     string
	Description   template.HTML
	LatestContent template.HTML
}

func buildDetail(g *models.GameDetails, feedbackEmail string) detailVM {
	desc := g.Description
	if strings.TrimSpace(desc) == "" {
		desc = g.Summary
	}
	var downloads []downloadButton
	if g.HasResources() {
		downloads = downloadButtons(g)
	}
	return detailVM{
		Game:          g,
		HeroImage:     heroImage(g),
		Gallery:       gallery(g),
		Cards:         infoCards(g),
		Downloads:     downloads,
		MailtoURL:     feedbackMailto(feedbackEmail, g),
		Description:   htmlsanitize.FormatDescription(desc),
		LatestContent: htmlsanitize.FormatDescription(g.LatestContent),
	}
}
