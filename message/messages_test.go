package message

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCataloguesHaveSameKeys(t *testing.T) {
	zh := catalogues["zh_CN"]
	en := catalogues["en_US"]
	require.Equal(t, len(zh), len(en))
	for k := range zh {
		_, ok := en[k]
		assert.True(t, ok, "en_US missing %s", k)
	}
}

func TestLoadMessagesFrom_Builtin(t *testing.T) {
	m, err := LoadMessagesFrom(t.TempDir(), "en_US")
	require.NoError(t, err)
	assert.Equal(t, "🏠 Residences found: 3", m.Format("residences_found", 3))
	assert.Equal(t, "no_such_key", m.Get("no_such_key"))
}

func TestLoadMessagesFrom_UnknownLanguageFallsBack(t *testing.T) {
	m, err := LoadMessagesFrom(t.TempDir(), "fr_FR")
	require.NoError(t, err)
	assert.Equal(t, "fr_FR", m.LangCode)
	assert.Equal(t, catalogues[DefaultLanguage]["success"], m.Get("success"))
}

func TestLoadMessagesFrom_FileOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en_US.json"), []byte(`{"success":"done!"}`), 0o644))

	m, err := LoadMessagesFrom(dir, "en_US")
	require.NoError(t, err)
	assert.Equal(t, "done!", m.Get("success"))
	assert.Equal(t, catalogues["en_US"]["failed"], m.Get("failed"))

	// 内置表不受影响
	assert.Equal(t, "✅ Success", catalogues["en_US"]["success"])
}

func TestLoadMessagesFrom_BadFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "zh_CN.json"), []byte(`{`), 0o644))

	m, err := LoadMessagesFrom(dir, "zh_CN")
	assert.Error(t, err)
	require.NotNil(t, m)
	assert.Equal(t, catalogues["zh_CN"]["title"], m.Get("title"))
}
