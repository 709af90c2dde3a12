// internal/app/catalog/raw.go
package catalog

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/dalemusser/gamecenter/internal/domain/models"
	"github.com/go-viper/mapstructure/v2"
)

// rawList is the body of the listing and search endpoints. List is a pointer
// so an absent field can be told apart from an empty one.
type rawList struct {
	List *[]rawSummary `json:"list"`
}

// rawSummary is one entry of a listing or search response.
type rawSummary struct {
	ID      string   `json:"_id"`
	Name    string   `json:"name"`
	Icon    string   `json:"icon"`
	Summary string   `json:"summary"`
	Tags    []string `json:"tags"`
}

var errMissingID = errors.New("entry has no _id")

func (s rawSummary) validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return errMissingID
	}
	return nil
}

// toGame maps a validated summary to the list view-model.
func (s rawSummary) toGame() models.Game {
	tags := make([]string, len(s.Tags))
	copy(tags, s.Tags)

	return models.Game{
		ID:          s.ID,
		Name:        s.Name,
		IconURL:     s.Icon,
		IconHint:    IconHint(tags),
		Description: s.Summary,
		Tags:        tags,
		DownloadURL: models.PlaceholderDownloadURL,
		Rating:      models.PlaceholderRating,
		Size:        models.PlaceholderSize,
		Downloads:   models.PlaceholderDownloads,
	}
}

// IconHint joins the first two tags with a space, or returns
// models.DefaultIconHint when that yields nothing.
func IconHint(tags []string) string {
	n := len(tags)
	if n > 2 {
		n = 2
	}
	if hint := strings.Join(tags[:n], " "); hint != "" {
		return hint
	}
	return models.DefaultIconHint
}

// rawDetailEnvelope is the body of the info endpoint. FieldErr collects the
// data fields that had the wrong type and were left empty.
type rawDetailEnvelope struct {
	Data     *rawDetail
	Message  string
	FieldErr error
}

// rawDetail is the nested data object: the game fields plus the
// application-level status.
type rawDetail struct {
	models.GameDetails
	Code    *float64 `json:"code"`
	Message string   `json:"message"`
}

// decodeDetailEnvelope parses an info response. Only a body that is not a
// JSON object is an error. The data object is decoded loosely: numbers and
// numeric strings convert into each other, and a field that still does not
// fit is skipped without losing the rest of the game.
func decodeDetailEnvelope(body []byte) (rawDetailEnvelope, error) {
	var top map[string]any
	if err := json.Unmarshal(body, &top); err != nil {
		return rawDetailEnvelope{}, err
	}

	env := rawDetailEnvelope{Message: looseString(top["message"])}
	data, ok := top["data"].(map[string]any)
	if !ok {
		return env, nil
	}

	d := &rawDetail{}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Squash:           true,
		TagName:          "json",
		Result:           d,
	})
	if err != nil {
		return rawDetailEnvelope{}, err
	}
	env.FieldErr = dec.Decode(data)
	env.Data = d
	return env, nil
}

// looseString renders a scalar JSON value as text.
func looseString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func (d *rawDetail) succeeded() bool {
	return d != nil && d.Code != nil && *d.Code == 200
}

// usable reports whether the data carries enough to render a partial page.
func (d *rawDetail) usable() bool {
	return d != nil && d.Name != ""
}

// errorMessage picks the most specific failure message in the envelope.
func (e rawDetailEnvelope) errorMessage() string {
	if e.Data != nil && e.Data.Message != "" {
		return e.Data.Message
	}
	if e.Message != "" {
		return e.Message
	}
	return "Unknown API error"
}
