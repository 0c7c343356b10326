package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/plugmanager/plugmanager/internal/httpclient"
	"github.com/plugmanager/plugmanager/internal/plugin"
)

const (
	// DefaultModrinthURL is the public Modrinth API
	DefaultModrinthURL = "https://api.modrinth.com/v2"

	// SearchLimit caps the number of Modrinth search hits considered
	SearchLimit = 5

	modrinthProjectPage = "https://modrinth.com/plugin/"
	modrinthHost        = "modrinth.com"
	modrinthLinkMarker  = "modrinth.com/"
	serverSideRequired  = "required"
)

type modrinthSearch struct {
	Hits []modrinthHit `json:"hits"`
}

type modrinthHit struct {
	ProjectID  string   `json:"project_id"`
	Title      string   `json:"title"`
	ServerSide string   `json:"server_side"`
	Categories []string `json:"categories"`
}

type modrinthProject struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
}

type modrinthVersion struct {
	VersionNumber string         `json:"version_number"`
	Loaders       []string       `json:"loaders"`
	GameVersions  []string       `json:"game_versions"`
	Files         []modrinthFile `json:"files"`
}

type modrinthFile struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Primary  bool   `json:"primary"`
}

// Modrinth is the package registry client backed by the Modrinth API
type Modrinth struct {
	http    httpclient.Client
	baseURL string
}

// NewModrinth creates a Modrinth client. An empty baseURL uses DefaultModrinthURL.
func NewModrinth(client httpclient.Client, baseURL string) *Modrinth {
	if baseURL == "" {
		baseURL = DefaultModrinthURL
	}
	return &Modrinth{http: client, baseURL: strings.TrimRight(baseURL, "/")}
}

// Kind implements Client
func (*Modrinth) Kind() Kind { return KindModrinth }

// Search implements Client. Only hits that must run on the server and
// target an accepted loader are returned.
func (m *Modrinth) Search(ctx context.Context, name string) []Hit {
	endpoint := fmt.Sprintf("%s/search?query=%s&limit=%d", m.baseURL, url.QueryEscape(name), SearchLimit)

	var result modrinthSearch
	if !m.getJSON(ctx, endpoint, &result) {
		return nil
	}

	var hits []Hit
	for _, h := range result.Hits {
		if h.ServerSide != serverSideRequired || !hasAcceptedLoader(h.Categories) {
			continue
		}
		if h.ProjectID == "" || h.Title == "" {
			continue
		}
		hits = append(hits, Hit{ID: h.ProjectID, Title: h.Title})
	}
	return hits
}

// LatestVersion implements Client. The first version in registry order that
// targets an accepted loader wins.
func (m *Modrinth) LatestVersion(ctx context.Context, id string) string {
	v, ok := m.compatibleVersion(ctx, id)
	if !ok {
		return ""
	}
	return v.VersionNumber
}

// SupportedVersion implements Client
func (m *Modrinth) SupportedVersion(ctx context.Context, id string) string {
	v, ok := m.compatibleVersion(ctx, id)
	if !ok || len(v.GameVersions) == 0 {
		return ""
	}
	return v.GameVersions[len(v.GameVersions)-1]
}

// ProjectURL implements Client
func (*Modrinth) ProjectURL(id string) string {
	return modrinthProjectPage + id
}

// Owns implements Client
func (*Modrinth) Owns(repositoryURL string) bool {
	return strings.Contains(repositoryURL, modrinthHost)
}

// LinkID implements Client. The final path segment is treated as a slug and
// resolved to the canonical project id.
func (m *Modrinth) LinkID(ctx context.Context, link string) (string, bool) {
	if !strings.Contains(link, modrinthLinkMarker) {
		return "", false
	}
	slug := lastPathSegment(link)
	if slug == "" {
		return "", false
	}

	var project modrinthProject
	if !m.getJSON(ctx, fmt.Sprintf("%s/project/%s", m.baseURL, url.PathEscape(slug)), &project) || project.ID == "" {
		return slug, false
	}
	return project.ID, true
}

// Artifact implements Client. The file comes from the same version entry
// LatestVersion reports, preferring the file flagged as primary.
func (m *Modrinth) Artifact(ctx context.Context, rec plugin.Record) (Artifact, bool) {
	if rec.RegistryID == nil {
		return Artifact{}, false
	}
	v, ok := m.compatibleVersion(ctx, *rec.RegistryID)
	if !ok || len(v.Files) == 0 {
		return Artifact{}, false
	}

	file := v.Files[0]
	for _, f := range v.Files {
		if f.Primary {
			file = f
			break
		}
	}
	if file.URL == "" || file.Filename == "" {
		return Artifact{}, false
	}
	return Artifact{URL: file.URL, FileName: file.Filename}, true
}

func (m *Modrinth) compatibleVersion(ctx context.Context, id string) (modrinthVersion, bool) {
	if id == "" {
		return modrinthVersion{}, false
	}
	var list []modrinthVersion
	if !m.getJSON(ctx, fmt.Sprintf("%s/project/%s/version", m.baseURL, url.PathEscape(id)), &list) {
		return modrinthVersion{}, false
	}
	for _, v := range list {
		if hasAcceptedLoader(v.Loaders) {
			return v, true
		}
	}
	return modrinthVersion{}, false
}

func (m *Modrinth) getJSON(ctx context.Context, endpoint string, out any) bool {
	data, err := m.http.Get(ctx, endpoint)
	if err != nil {
		logLookupFailure(ctx, KindModrinth, endpoint, err)
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		logLookupFailure(ctx, KindModrinth, endpoint, fmt.Errorf("%w: %w", errMalformed, err))
		return false
	}
	return true
}
