package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Len(t, c.Lessons, 6)
	assert.Len(t, c.Scenarios, 5)
	assert.Equal(t, "coffee", c.Activities.FillBlank.Answer)
	assert.Equal(t, 0, c.Activities.Quiz.CorrectIndex)
	assert.Equal(t, "Friends - The One with the Coffee", c.Featured().Title)
}

func TestGreetings(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	g := c.Greetings()
	for _, id := range []string{"casual", "travel", "work", "interview", "restaurant"} {
		assert.NotEmpty(t, g[id], "missing greeting for %s", id)
	}
	assert.Contains(t, g["travel"], "Welcome to the airport")
}

func TestContinueWatching(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	got := c.ContinueWatching()
	require.Len(t, got, 2)
	for _, l := range got {
		assert.Positive(t, l.Progress)
	}
}

func TestByCategory(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	total := 0
	for _, cat := range Categories() {
		lessons := c.ByCategory(cat)
		for _, l := range lessons {
			assert.Equal(t, cat, l.Category)
		}
		total += len(lessons)
	}
	assert.Equal(t, len(c.Lessons), total)
	assert.Len(t, c.ByCategory(CategoryAdvanced), 1)
}

func TestScenarioName(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "Viagem", c.ScenarioName("travel"))
	assert.Equal(t, "unknown", c.ScenarioName("unknown"))
}

// mutate decodes the embedded catalog into a generic map, applies fn and
// re-encodes it.
func mutate(t *testing.T, fn func(m map[string]any)) []byte {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(defaultCatalog, &m))
	fn(m)
	out, err := json.Marshal(m)
	require.NoError(t, err)
	return out
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		fn   func(m map[string]any)
	}{
		{"missing lessons", func(m map[string]any) { delete(m, "lessons") }},
		{"bad version", func(m map[string]any) { m["version"] = "one" }},
		{"future major", func(m map[string]any) { m["version"] = "v2.0.0" }},
		{"featured lesson missing", func(m map[string]any) { m["featured_lesson"] = 99 }},
		{"unknown scenario", func(m map[string]any) {
			sc := m["scenarios"].([]any)
			sc[0].(map[string]any)["id"] = "space"
		}},
		{"quiz index out of range", func(m map[string]any) {
			acts := m["activities"].(map[string]any)
			acts["quiz"].(map[string]any)["correct_index"] = 9
		}},
		{"progress above 100", func(m map[string]any) {
			ls := m["lessons"].([]any)
			ls[0].(map[string]any)["progress"] = 150
		}},
		{"duplicate lesson id", func(m map[string]any) {
			ls := m["lessons"].([]any)
			ls[1].(map[string]any)["id"] = 1
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(mutate(t, tt.fn))
			assert.ErrorIs(t, err, ErrInvalidCatalog)
		})
	}
}

func TestParse_InvalidJSON(t *testing.T) {
	_, err := Parse([]byte("{not json"))
	assert.ErrorIs(t, err, ErrInvalidCatalog)
}

func TestLoad_File(t *testing.T) {
	data := mutate(t, func(m map[string]any) {
		m["quick_phrases"] = []any{"Where is the station?"}
	})
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Where is the station?"}, c.QuickPhrases)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoad_EmptyPathUsesEmbedded(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "v1.0.0", c.Version)
}
