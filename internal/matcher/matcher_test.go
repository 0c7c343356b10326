package matcher

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/aws/smithy-go/ptr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/plugmanager/plugmanager/internal/plugin"
	"github.com/plugmanager/plugmanager/internal/prompt"
	"github.com/plugmanager/plugmanager/internal/registry"
	"github.com/plugmanager/plugmanager/internal/registry/mocks"
	"github.com/plugmanager/plugmanager/internal/storage"
)

const (
	spigotPage   = "https://www.spigotmc.org/resources/"
	modrinthPage = "https://modrinth.com/plugin/"
)

// scriptedPrompter answers prompts from a fixed script
type scriptedPrompter struct {
	answers []string
	asked   []string
}

func (p *scriptedPrompter) Prompt(_ context.Context, message string) (string, error) {
	p.asked = append(p.asked, message)
	if len(p.answers) == 0 {
		return "", prompt.ErrNoInput
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a, nil
}

type fixture struct {
	spigot   *mocks.MockClient
	modrinth *mocks.MockClient
	links    *storage.FileLinkStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		spigot:   mocks.NewMockClient(ctrl),
		modrinth: mocks.NewMockClient(ctrl),
		links:    storage.NewFileLinkStore(filepath.Join(t.TempDir(), storage.LinksFileName)),
	}

	f.spigot.EXPECT().Kind().Return(registry.KindSpiget).AnyTimes()
	f.modrinth.EXPECT().Kind().Return(registry.KindModrinth).AnyTimes()
	f.spigot.EXPECT().ProjectURL(gomock.Any()).DoAndReturn(func(id string) string {
		return spigotPage + id + "/"
	}).AnyTimes()
	f.modrinth.EXPECT().ProjectURL(gomock.Any()).DoAndReturn(func(id string) string {
		return modrinthPage + id
	}).AnyTimes()
	f.spigot.EXPECT().Owns(gomock.Any()).DoAndReturn(func(u string) bool {
		return len(u) >= len(spigotPage) && u[:len(spigotPage)] == spigotPage
	}).AnyTimes()
	f.modrinth.EXPECT().Owns(gomock.Any()).DoAndReturn(func(u string) bool {
		return len(u) >= len(modrinthPage) && u[:len(modrinthPage)] == modrinthPage
	}).AnyTimes()

	return f
}

func (f *fixture) matcher(opts ...Option) *Matcher {
	return New(registry.Set{f.spigot, f.modrinth}, f.links, opts...)
}

func TestAccepts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		candidate string
		title     string
		expected  bool
	}{
		{candidate: "essentials", title: "EssentialsX Chat", expected: false},
		{candidate: "EssentialsX", title: "EssentialsX Chat", expected: true},
		{candidate: "WorldEdit", title: "WorldEdit for Bukkit", expected: true},
		{candidate: "Multi Verse", title: "Multiverse-Core", expected: false},
		{candidate: "Multi Verse", title: "Multi-Verse", expected: true},
		{candidate: "luckperms", title: "LuckPerms", expected: true},
		{candidate: "", title: "", expected: false},
		{candidate: "[x]", title: "[y]", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.candidate+"/"+tt.title, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, Accepts(tt.candidate, tt.title))
		})
	}
}

func TestResolve_MarketplaceFirst(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	f.spigot.EXPECT().Search(gomock.Any(), "WorldEdit").Return([]registry.Hit{
		{ID: "99", Title: "FastAsyncWorldEdit"},
		{ID: "13932", Title: "WorldEdit for Bukkit"},
	})
	f.spigot.EXPECT().LatestVersion(gomock.Any(), "13932").Return("7.3.9")
	f.spigot.EXPECT().SupportedVersion(gomock.Any(), "13932").Return("1.21")

	rec, err := f.matcher().Resolve(ctx, plugin.Extract("WorldEdit-7.2.15.jar"), false)
	require.NoError(t, err)

	assert.Equal(t, "WorldEdit for Bukkit", rec.Name)
	assert.Equal(t, "WorldEdit-7.2.15.jar", rec.FileName)
	assert.Equal(t, "7.2.15", rec.InstalledVersion)
	assert.Equal(t, ptr.String("13932"), rec.RegistryID)
	assert.Equal(t, ptr.String(spigotPage+"13932/"), rec.RepositoryURL)
	assert.Equal(t, ptr.String("7.3.9"), rec.LatestVersion)
	assert.Equal(t, ptr.String("1.21"), rec.SupportedVersion)
	assert.Equal(t, ptr.Bool(true), rec.IsOutdated)
}

func TestResolve_PackageRegistryFallback(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	f.spigot.EXPECT().Search(gomock.Any(), "essentials").Return([]registry.Hit{
		{ID: "1", Title: "EssentialsX Chat"},
	})
	f.modrinth.EXPECT().Search(gomock.Any(), "essentials").Return([]registry.Hit{
		{ID: "chat", Title: "EssentialsX Chat"},
		{ID: "ess", Title: "Essentials"},
	})
	f.modrinth.EXPECT().LatestVersion(gomock.Any(), "ess").Return("2.20.1")
	f.modrinth.EXPECT().SupportedVersion(gomock.Any(), "ess").Return("1.21.4")

	rec, err := f.matcher().Resolve(ctx, plugin.Extract("essentials-2.20.1.jar"), false)
	require.NoError(t, err)

	assert.Equal(t, "Essentials", rec.Name)
	assert.Equal(t, ptr.String("ess"), rec.RegistryID)
	assert.Equal(t, ptr.String(modrinthPage+"ess"), rec.RepositoryURL)
	assert.Equal(t, ptr.Bool(false), rec.IsOutdated)
}

func TestResolve_UnresolvedWithoutLinking(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.spigot.EXPECT().Search(gomock.Any(), gomock.Any()).Return(nil)
	f.modrinth.EXPECT().Search(gomock.Any(), gomock.Any()).Return(nil)

	p := &scriptedPrompter{answers: []string{"https://example.com"}}
	rec, err := f.matcher(WithPrompter(p)).Resolve(context.Background(), plugin.Extract("Mystery-2.0.jar"), false)
	require.NoError(t, err)

	assert.Empty(t, p.asked, "linking disabled for this run")
	assert.Equal(t, plugin.Unresolved(plugin.Extract("Mystery-2.0.jar")), rec)
	assert.Nil(t, rec.IsOutdated)
	assert.Nil(t, rec.RepositoryURL)
}

func TestResolve_UserLinkStore(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.links.Put(ctx, plugin.Link{
		Name:          "Geyser Spigot",
		RegistryID:    ptr.String("wKkoqHrH"),
		RepositoryURL: modrinthPage + "wKkoqHrH",
	}))

	f.spigot.EXPECT().Search(gomock.Any(), "Geyser Spigot").Return(nil)
	f.modrinth.EXPECT().Search(gomock.Any(), "Geyser Spigot").Return(nil)
	f.modrinth.EXPECT().LatestVersion(gomock.Any(), "wKkoqHrH").Return("2.6.0")
	f.modrinth.EXPECT().SupportedVersion(gomock.Any(), "wKkoqHrH").Return("1.21.4")

	p := &scriptedPrompter{}
	rec, err := f.matcher(WithPrompter(p)).Resolve(ctx, plugin.Extract("Geyser-Spigot.jar"), true)
	require.NoError(t, err)

	assert.Empty(t, p.asked, "stored link avoids the prompt")
	assert.Equal(t, ptr.String("wKkoqHrH"), rec.RegistryID)
	assert.Equal(t, ptr.String("2.6.0"), rec.LatestVersion)
	assert.Equal(t, ptr.Bool(true), rec.IsOutdated)
}

func TestResolve_UserLinkWithoutRegistry(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.links.Put(ctx, plugin.Link{
		Name:          "Custom",
		RepositoryURL: "https://ci.example.com/job/custom",
	}))
	f.spigot.EXPECT().Search(gomock.Any(), "Custom").Return(nil)
	f.modrinth.EXPECT().Search(gomock.Any(), "Custom").Return(nil)

	rec, err := f.matcher().Resolve(ctx, plugin.Extract("Custom-1.0.jar"), false)
	require.NoError(t, err)

	assert.Equal(t, ptr.String("https://ci.example.com/job/custom"), rec.RepositoryURL)
	assert.Nil(t, rec.RegistryID)
	assert.Nil(t, rec.LatestVersion)
	assert.Nil(t, rec.IsOutdated)
}

func TestResolve_InteractiveLinking(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		answers []string
		setup   func(f *fixture)
		check   func(t *testing.T, rec plugin.Record, p *scriptedPrompter, links *storage.FileLinkStore)
	}{
		{
			name:    "skip abandons linking",
			answers: []string{"skip"},
			check: func(t *testing.T, rec plugin.Record, p *scriptedPrompter, _ *storage.FileLinkStore) {
				t.Helper()
				assert.Nil(t, rec.RepositoryURL)
				assert.Len(t, p.asked, 1)
			},
		},
		{
			name:    "empty answer abandons linking",
			answers: []string{""},
			check: func(t *testing.T, rec plugin.Record, _ *scriptedPrompter, _ *storage.FileLinkStore) {
				t.Helper()
				assert.Nil(t, rec.RepositoryURL)
			},
		},
		{
			name:    "closed input abandons linking",
			answers: nil,
			check: func(t *testing.T, rec plugin.Record, _ *scriptedPrompter, _ *storage.FileLinkStore) {
				t.Helper()
				assert.Nil(t, rec.RepositoryURL)
			},
		},
		{
			name:    "invalid links re-prompt",
			answers: []string{"not a url", "ftp://example.com/x", "https://bad url", "skip"},
			check: func(t *testing.T, rec plugin.Record, p *scriptedPrompter, _ *storage.FileLinkStore) {
				t.Helper()
				assert.Nil(t, rec.RepositoryURL)
				require.Len(t, p.asked, 4)
				assert.Contains(t, p.asked[1], "Invalid link")
			},
		},
		{
			name:    "marketplace link is verified and stored",
			answers: []string{"https://www.spigotmc.org/resources/my-plugin.4242/"},
			setup: func(f *fixture) {
				f.spigot.EXPECT().LinkID(gomock.Any(), gomock.Any()).Return("4242", true)
				f.spigot.EXPECT().LatestVersion(gomock.Any(), "4242").Return("1.0.0")
				f.spigot.EXPECT().SupportedVersion(gomock.Any(), "4242").Return("1.20")
			},
			check: func(t *testing.T, rec plugin.Record, _ *scriptedPrompter, links *storage.FileLinkStore) {
				t.Helper()
				assert.Equal(t, ptr.String("4242"), rec.RegistryID)
				assert.Equal(t, ptr.String(spigotPage+"4242/"), rec.RepositoryURL)
				assert.Equal(t, ptr.Bool(false), rec.IsOutdated)

				link, found, err := links.Get(context.Background(), "Mystery")
				require.NoError(t, err)
				require.True(t, found)
				assert.Equal(t, spigotPage+"4242/", link.RepositoryURL)
			},
		},
		{
			name:    "package registry slug resolves to id",
			answers: []string{"https://modrinth.com/plugin/mystery"},
			setup: func(f *fixture) {
				f.spigot.EXPECT().LinkID(gomock.Any(), gomock.Any()).Return("", false)
				f.modrinth.EXPECT().LinkID(gomock.Any(), "https://modrinth.com/plugin/mystery").Return("AbCd1234", true)
				f.modrinth.EXPECT().LatestVersion(gomock.Any(), "AbCd1234").Return("3.0")
				f.modrinth.EXPECT().SupportedVersion(gomock.Any(), "AbCd1234").Return("")
			},
			check: func(t *testing.T, rec plugin.Record, _ *scriptedPrompter, links *storage.FileLinkStore) {
				t.Helper()
				assert.Equal(t, ptr.String("AbCd1234"), rec.RegistryID)
				assert.Equal(t, ptr.String(modrinthPage+"AbCd1234"), rec.RepositoryURL)
				assert.Nil(t, rec.SupportedVersion)
				assert.Equal(t, ptr.Bool(true), rec.IsOutdated)

				link, found, err := links.Get(context.Background(), "Mystery")
				require.NoError(t, err)
				require.True(t, found)
				assert.Equal(t, ptr.String("AbCd1234"), link.RegistryID)
			},
		},
		{
			name:    "unverified registry link keeps url without freshness",
			answers: []string{"https://www.spigotmc.org/resources/gone.1/"},
			setup: func(f *fixture) {
				f.spigot.EXPECT().LinkID(gomock.Any(), gomock.Any()).Return("1", false)
			},
			check: func(t *testing.T, rec plugin.Record, _ *scriptedPrompter, links *storage.FileLinkStore) {
				t.Helper()
				assert.Equal(t, ptr.String("1"), rec.RegistryID)
				assert.Equal(t, ptr.String("https://www.spigotmc.org/resources/gone.1/"), rec.RepositoryURL)
				assert.Nil(t, rec.LatestVersion)
				assert.Nil(t, rec.IsOutdated)

				_, found, err := links.Get(context.Background(), "Mystery")
				require.NoError(t, err)
				assert.False(t, found)
			},
		},
		{
			name:    "github link is not stored",
			answers: []string{"https://github.com/acme/MysteryPlugin"},
			setup: func(f *fixture) {
				f.spigot.EXPECT().LinkID(gomock.Any(), gomock.Any()).Return("", false)
				f.modrinth.EXPECT().LinkID(gomock.Any(), gomock.Any()).Return("", false)
			},
			check: func(t *testing.T, rec plugin.Record, _ *scriptedPrompter, links *storage.FileLinkStore) {
				t.Helper()
				assert.Equal(t, ptr.String("MysteryPlugin"), rec.RegistryID)
				assert.Equal(t, ptr.String("https://github.com/acme/MysteryPlugin"), rec.RepositoryURL)
				assert.Nil(t, rec.LatestVersion)
				assert.Nil(t, rec.IsOutdated)

				_, found, err := links.Get(context.Background(), "Mystery")
				require.NoError(t, err)
				assert.False(t, found)
			},
		},
		{
			name:    "other link is stored without id",
			answers: []string{"https://ci.example.com/job/mystery"},
			setup: func(f *fixture) {
				f.spigot.EXPECT().LinkID(gomock.Any(), gomock.Any()).Return("", false)
				f.modrinth.EXPECT().LinkID(gomock.Any(), gomock.Any()).Return("", false)
			},
			check: func(t *testing.T, rec plugin.Record, _ *scriptedPrompter, links *storage.FileLinkStore) {
				t.Helper()
				assert.Nil(t, rec.RegistryID)
				assert.Equal(t, ptr.String("https://ci.example.com/job/mystery"), rec.RepositoryURL)
				assert.Nil(t, rec.IsOutdated)

				link, found, err := links.Get(context.Background(), "Mystery")
				require.NoError(t, err)
				require.True(t, found)
				assert.Nil(t, link.RegistryID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t)
			f.spigot.EXPECT().Search(gomock.Any(), "Mystery").Return(nil)
			f.modrinth.EXPECT().Search(gomock.Any(), "Mystery").Return(nil)
			if tt.setup != nil {
				tt.setup(f)
			}

			p := &scriptedPrompter{answers: tt.answers}
			rec, err := f.matcher(WithPrompter(p)).Resolve(context.Background(), plugin.Extract("Mystery-2.0.jar"), true)
			require.NoError(t, err)
			assert.Equal(t, "Mystery-2.0.jar", rec.FileName)
			assert.Equal(t, "2.0", rec.InstalledVersion)
			tt.check(t, rec, p, f.links)
		})
	}
}

type failingPrompter struct{}

func (failingPrompter) Prompt(context.Context, string) (string, error) {
	return "", errors.New("terminal gone")
}

func TestResolve_PromptFailure(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.spigot.EXPECT().Search(gomock.Any(), gomock.Any()).Return(nil)
	f.modrinth.EXPECT().Search(gomock.Any(), gomock.Any()).Return(nil)

	_, err := f.matcher(WithPrompter(failingPrompter{})).Resolve(context.Background(), plugin.Extract("Mystery-2.0.jar"), true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "terminal gone")
}

func TestResolveOne(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.spigot.EXPECT().Search(gomock.Any(), "Chunky").Return(nil)
	f.modrinth.EXPECT().Search(gomock.Any(), "Chunky").Return([]registry.Hit{{ID: "fALzjamp", Title: "Chunky"}})
	f.modrinth.EXPECT().LatestVersion(gomock.Any(), "fALzjamp").Return("1.4.28")
	f.modrinth.EXPECT().SupportedVersion(gomock.Any(), "fALzjamp").Return("1.21.4")

	rec, err := f.matcher().ResolveOne(context.Background(), "  Chunky ", "", false)
	require.NoError(t, err)

	assert.Equal(t, "Chunky", rec.Name)
	assert.Equal(t, AddedFileName, rec.FileName)
	assert.Equal(t, plugin.UnknownVersion, rec.InstalledVersion)
	assert.Equal(t, ptr.String("fALzjamp"), rec.RegistryID)
}

func TestResolveOne_ScopedToRegistry(t *testing.T) {
	t.Parallel()

	t.Run("only the chosen registry is searched", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.modrinth.EXPECT().Search(gomock.Any(), "Chunky").Return([]registry.Hit{{ID: "fALzjamp", Title: "Chunky"}})
		f.modrinth.EXPECT().LatestVersion(gomock.Any(), "fALzjamp").Return("1.4.28")
		f.modrinth.EXPECT().SupportedVersion(gomock.Any(), "fALzjamp").Return("1.21.4")

		rec, err := f.matcher().ResolveOne(context.Background(), "Chunky", registry.KindModrinth, false)
		require.NoError(t, err)
		assert.Equal(t, ptr.String(modrinthPage+"fALzjamp"), rec.RepositoryURL)
	})

	t.Run("no hit in the chosen registry", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.spigot.EXPECT().Search(gomock.Any(), "Chunky").Return(nil)

		rec, err := f.matcher().ResolveOne(context.Background(), "Chunky", registry.KindSpiget, false)
		require.NoError(t, err)
		assert.False(t, rec.Resolved())
	})

	t.Run("registry not configured", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		m := New(registry.Set{f.spigot}, f.links)

		_, err := m.ResolveOne(context.Background(), "Chunky", registry.KindModrinth, false)
		assert.ErrorIs(t, err, registry.ErrUnknownRegistry)
	})
}
