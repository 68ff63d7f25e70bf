package world

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Learting/leartools/nbt"
)

func mkdirs(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		require.NoError(t, os.MkdirAll(filepath.Join(root, filepath.FromSlash(p)), 0o755))
	}
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		dirs []string
		want DirectoryType
	}{
		{"overworld", []string{"region"}, Overworld},
		{"nether", []string{"DIM-1/region"}, Nether},
		{"end", []string{"DIM1/region"}, End},
		{"overworld wins", []string{"DIM1/region", "region"}, Overworld},
		{"nether before end", []string{"DIM1/region", "DIM-1/region"}, Nether},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			mkdirs(t, root, tt.dirs...)

			got, err := Classify(root)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassify_NoRegions(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "region"))
	mkdirs(t, root, "DIM-1")

	_, err := Classify(root)
	var pnf *PathNotFoundError
	require.True(t, errors.As(err, &pnf))
	assert.Equal(t, []string{root}, pnf.Paths)
}

func TestDirectoryType_SubPath(t *testing.T) {
	assert.Equal(t, "region", Overworld.SubPath())
	assert.Equal(t, filepath.Join("DIM-1", "region"), Nether.SubPath())
	assert.Equal(t, filepath.Join("DIM1", "region"), End.SubPath())
	assert.Equal(t, "nether", Nether.String())
	assert.Equal(t, filepath.Join("w", "DIM1", "region"), RegionDir("w", End))
}

func TestCheckInputs(t *testing.T) {
	root := t.TempDir()
	worldDir := filepath.Join(root, "world")
	resFile := filepath.Join(root, "res.yml")

	err := CheckInputs(resFile, worldDir)
	var pnf *PathNotFoundError
	require.True(t, errors.As(err, &pnf))
	assert.Equal(t, []string{worldDir, filepath.Join(worldDir, LevelFile), resFile}, pnf.Paths)

	touch(t, filepath.Join(worldDir, LevelFile))
	touch(t, resFile)
	assert.NoError(t, CheckInputs(resFile, worldDir))
}

func TestCheckInputs_LevelDatIsDirectory(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, LevelFile)
	resFile := filepath.Join(root, "res.yml")
	touch(t, resFile)

	err := CheckInputs(resFile, root)
	var pnf *PathNotFoundError
	require.True(t, errors.As(err, &pnf))
	assert.Equal(t, []string{filepath.Join(root, LevelFile)}, pnf.Paths)
}

func TestContains(t *testing.T) {
	root := t.TempDir()
	tests := []struct {
		path string
		want bool
	}{
		{root, true},
		{filepath.Join(root, "copy"), true},
		{filepath.Join(root, "a", "b"), true},
		{filepath.Join(root, "..", "sibling"), false},
		{root + "-trimmed", false},
		{filepath.Join(root, "..", filepath.Base(root)+"..x"), false},
	}
	for _, tt := range tests {
		got, err := Contains(root, tt.path)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.path)
	}
}

func TestExists(t *testing.T) {
	root := t.TempDir()
	ok, err := Exists(root)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Exists(filepath.Join(root, "nope"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReadLevelInfo(t *testing.T) {
	root := t.TempDir()
	f, err := os.Create(filepath.Join(root, LevelFile))
	require.NoError(t, err)
	require.NoError(t, nbt.WriteGzip(f, "", nbt.Compound{
		"Data": nbt.Compound{
			"LevelName":   "Residence Server",
			"DataVersion": int32(2586),
		},
	}))
	require.NoError(t, f.Close())

	info, err := ReadLevelInfo(root)
	require.NoError(t, err)
	assert.Equal(t, LevelInfo{Name: "Residence Server", DataVersion: 2586}, info)
}

func TestReadLevelInfo_Unreadable(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, LevelFile), []byte("not nbt"), 0o644))

	_, err := ReadLevelInfo(root)
	assert.Error(t, err)

	_, err = ReadLevelInfo(t.TempDir())
	assert.Error(t, err)
}
