package registry

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/plugmanager/plugmanager/internal/httpclient"
	"github.com/plugmanager/plugmanager/internal/plugin"
)

const (
	// DefaultSpigetURL is the public Spiget API
	DefaultSpigetURL = "https://api.spiget.org/v2"

	spigotResourcePage = "https://www.spigotmc.org/resources/"
	spigotHost         = "spigotmc.org"
	spigotLinkMarker   = "spigotmc.org/resources/"
)

var (
	numericID = regexp.MustCompile(`^[0-9]+$`)

	errMalformed = errors.New("malformed response payload")
)

// Spiget is the marketplace client backed by the Spiget API
type Spiget struct {
	http    httpclient.Client
	baseURL string
}

// NewSpiget creates a Spiget client. An empty baseURL uses DefaultSpigetURL.
func NewSpiget(client httpclient.Client, baseURL string) *Spiget {
	if baseURL == "" {
		baseURL = DefaultSpigetURL
	}
	return &Spiget{http: client, baseURL: strings.TrimRight(baseURL, "/")}
}

// Kind implements Client
func (*Spiget) Kind() Kind { return KindSpiget }

// Search implements Client
func (s *Spiget) Search(ctx context.Context, name string) []Hit {
	endpoint := fmt.Sprintf("%s/search/resources/%s?fields=id,name", s.baseURL, url.PathEscape(name))
	data, ok := s.get(ctx, endpoint)
	if !ok {
		return nil
	}

	results := gjson.ParseBytes(data)
	if !results.IsArray() {
		logLookupFailure(ctx, KindSpiget, endpoint, errMalformed)
		return nil
	}

	var hits []Hit
	results.ForEach(func(_, r gjson.Result) bool {
		id := r.Get("id")
		title := r.Get("name").String()
		if !id.Exists() || title == "" {
			return true
		}
		hits = append(hits, Hit{ID: id.String(), Title: title})
		return true
	})
	return hits
}

// LatestVersion implements Client
func (s *Spiget) LatestVersion(ctx context.Context, id string) string {
	if id == "" {
		return ""
	}
	data, ok := s.get(ctx, fmt.Sprintf("%s/resources/%s/versions/latest", s.baseURL, url.PathEscape(id)))
	if !ok {
		return ""
	}
	return gjson.GetBytes(data, "name").String()
}

// SupportedVersion implements Client. It returns the last entry of the
// resource's testedVersions list.
func (s *Spiget) SupportedVersion(ctx context.Context, id string) string {
	if id == "" {
		return ""
	}
	data, ok := s.get(ctx, s.resourceURL(id))
	if !ok {
		return ""
	}
	return gjson.GetBytes(data, "testedVersions|@reverse|0").String()
}

// ProjectURL implements Client
func (*Spiget) ProjectURL(id string) string {
	return spigotResourcePage + id + "/"
}

// Owns implements Client
func (*Spiget) Owns(repositoryURL string) bool {
	return strings.Contains(repositoryURL, spigotHost)
}

// LinkID implements Client. SpigotMC resource pages end in "<slug>.<id>",
// e.g. https://www.spigotmc.org/resources/worldedit-for-bukkit.13932/
func (s *Spiget) LinkID(ctx context.Context, link string) (string, bool) {
	if !strings.Contains(link, spigotLinkMarker) {
		return "", false
	}
	segment := lastPathSegment(link)
	id := segment[strings.LastIndex(segment, ".")+1:]
	if !numericID.MatchString(id) {
		return id, false
	}

	data, ok := s.get(ctx, s.resourceURL(id))
	if !ok || !gjson.GetBytes(data, "id").Exists() {
		return id, false
	}
	return id, true
}

// Artifact implements Client. Spiget serves every resource from a fixed
// download endpoint; the local file name is derived from the record.
func (s *Spiget) Artifact(_ context.Context, rec plugin.Record) (Artifact, bool) {
	if rec.RegistryID == nil || *rec.RegistryID == "" {
		return Artifact{}, false
	}
	version := "latest"
	if rec.LatestVersion != nil && *rec.LatestVersion != "" {
		version = *rec.LatestVersion
	}
	return Artifact{
		URL:      fmt.Sprintf("%s/resources/%s/download", s.baseURL, url.PathEscape(*rec.RegistryID)),
		FileName: plugin.FirstWord(rec.Name) + "_" + version + ".jar",
	}, true
}

func (s *Spiget) resourceURL(id string) string {
	return fmt.Sprintf("%s/resources/%s", s.baseURL, url.PathEscape(id))
}

func (s *Spiget) get(ctx context.Context, endpoint string) ([]byte, bool) {
	data, err := s.http.Get(ctx, endpoint)
	if err != nil {
		logLookupFailure(ctx, KindSpiget, endpoint, err)
		return nil, false
	}
	if !gjson.ValidBytes(data) {
		logLookupFailure(ctx, KindSpiget, endpoint, errMalformed)
		return nil, false
	}
	return data, true
}

// lastPathSegment returns the final non-empty path segment of a URL,
// ignoring any query string or fragment.
func lastPathSegment(link string) string {
	if i := strings.IndexAny(link, "?#"); i >= 0 {
		link = link[:i]
	}
	link = strings.TrimRight(link, "/")
	return link[strings.LastIndex(link, "/")+1:]
}
