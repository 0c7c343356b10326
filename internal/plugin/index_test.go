package plugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleIndex() *Index {
	return &Index{Plugins: []Record{
		NewBuilder("WorldEdit", "WorldEdit-7.2.0.jar", "7.2.0").
			Identity("13932", "https://www.spigotmc.org/resources/13932/").
			Freshness("7.3.0", "1.21").Build(),
		NewBuilder("LuckPerms", "LuckPerms-5.4.0.jar", "5.4.0").
			Identity("Vebnzrzj", "https://modrinth.com/plugin/Vebnzrzj").
			Freshness("5.4.1", "1.21.4").Build(),
		NewBuilder("Vault", "Vault.jar", "1.7.3").
			Identity("34315", "https://www.spigotmc.org/resources/34315/").
			Freshness("1.7.3", "1.13").Build(),
		Unresolved(Extract("Mystery-2.0.jar")),
	}}
}

func names(records []Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Name)
	}
	return out
}

func TestIndex_Select(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		selector Selector
		expected []string
	}{
		{name: "update selects outdated only", selector: SelectOutdated, expected: []string{"WorldEdit", "LuckPerms"}},
		{name: "all selects resolved only", selector: SelectAll, expected: []string{"WorldEdit", "LuckPerms", "Vault"}},
		{name: "literal name", selector: "Vault", expected: []string{"Vault"}},
		{name: "literal unresolved name", selector: "Mystery", expected: []string{"Mystery"}},
		{name: "literal name is case sensitive", selector: "vault", expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, names(sampleIndex().Select(tt.selector)))
		})
	}
}

func TestParseSelector(t *testing.T) {
	t.Parallel()

	assert.Equal(t, SelectAll, ParseSelector(" ALL "))
	assert.Equal(t, SelectOutdated, ParseSelector("update"))
	assert.Equal(t, Selector("WorldEdit"), ParseSelector("WorldEdit"))
	assert.True(t, SelectAll.Bulk())
	assert.False(t, Selector("all-the-things").Bulk())
}

func TestIndex_Upsert(t *testing.T) {
	t.Parallel()

	idx := sampleIndex()

	_, appended := idx.Upsert(NewBuilder("WorldEdit", "N/A", "").
		Identity("13932", "https://www.spigotmc.org/resources/13932/").
		Freshness("7.2.0", "1.21.4").Build())
	assert.False(t, appended)
	require.Len(t, idx.Plugins, 4)

	rec, ok := idx.FindByID("13932")
	require.True(t, ok)
	assert.Equal(t, "WorldEdit-7.2.0.jar", rec.FileName, "file name is kept")
	assert.Equal(t, "7.2.0", *rec.LatestVersion)
	assert.False(t, rec.Outdated(), "verdict uses the installed version")
	assert.Equal(t, "1.21.4", *rec.SupportedVersion)

	_, appended = idx.Upsert(NewBuilder("Chunky", "N/A", "").
		Identity("fALzjamp", "https://modrinth.com/plugin/fALzjamp").
		Freshness("1.4.28", "1.21.4").Build())
	assert.True(t, appended)
	assert.Len(t, idx.Plugins, 5)

	_, ok = idx.Find("Chunky")
	assert.True(t, ok)
	_, ok = idx.FindByID("")
	assert.False(t, ok)
}

func TestIndex_UpsertForeignLink(t *testing.T) {
	t.Parallel()

	idx := &Index{}
	link := NewBuilder("CustomPerms", "N/A", "").
		Identity("", "https://example.com/customperms").
		Build()

	stored, appended := idx.Upsert(link)
	require.True(t, appended)
	assert.Equal(t, "CustomPerms", stored.Name)

	stored, appended = idx.Upsert(link)
	assert.False(t, appended)
	assert.Equal(t, "CustomPerms", stored.Name)
	assert.Len(t, idx.Plugins, 1)

	_, appended = idx.Upsert(NewBuilder("OtherPerms", "N/A", "").
		Identity("", "https://example.com/otherperms").
		Build())
	assert.True(t, appended)
	assert.Len(t, idx.Plugins, 2)
}
