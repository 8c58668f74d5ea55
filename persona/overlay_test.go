package persona_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petasbytes/personachat/persona"
)

func writeOverlay(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "personas.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadOverlay_MissingFileKeepsBuiltins(t *testing.T) {
	reg, err := persona.LoadOverlay(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 3, reg.Len())
}

func TestLoadOverlay_AddsAndReplaces(t *testing.T) {
	path := writeOverlay(t, `
personas:
  - name: PirateBot
    system: "You are PirateBot. Answer like a weathered sea captain."
    label: "PirateBot ☠️"
  - name: RoastBot
    system: "You are RoastBot, but gentler."
`)

	reg, err := persona.LoadOverlay(path)
	require.NoError(t, err)

	got := reg.List()
	require.Len(t, got, 4)
	// Replaced built-in keeps its slot, new persona appends.
	assert.Equal(t, "RoastBot", got[0].Name)
	assert.Equal(t, "You are RoastBot, but gentler.", got[0].SystemPrompt)
	assert.Equal(t, "PirateBot", got[3].Name)

	p, err := reg.Get("PirateBot")
	require.NoError(t, err)
	assert.Equal(t, "PirateBot ☠️", p.DisplayLabel)
}

func TestLoadOverlay_RejectsDuplicates(t *testing.T) {
	path := writeOverlay(t, `
personas:
  - name: PirateBot
    system: "a"
  - name: PirateBot
    system: "b"
`)

	_, err := persona.LoadOverlay(path)
	require.ErrorContains(t, err, "duplicate persona")
}

func TestLoadOverlay_RejectsMissingFields(t *testing.T) {
	for name, content := range map[string]string{
		"no name":   "personas:\n  - system: \"x\"\n",
		"no prompt": "personas:\n  - name: Quiet\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := persona.LoadOverlay(writeOverlay(t, content))
			assert.Error(t, err)
		})
	}
}

func TestLoadOverlay_BadYAML(t *testing.T) {
	_, err := persona.LoadOverlay(writeOverlay(t, "personas: [oops"))
	require.Error(t, err)
}
