package transfer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Learting/leartools/region"
	"github.com/Learting/leartools/world"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func coverage(names ...region.Coord) region.Coverage {
	cov := make(region.Coverage)
	for _, c := range names {
		cov.Add(c)
	}
	return cov
}

func TestReadListing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "r.0.0.mca"), "abcd")
	writeFile(t, filepath.Join(dir, "notes.txt"), "x")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "r.9.9.mca"), 0o755))

	listing, err := ReadListing(dir)
	require.NoError(t, err)
	assert.Equal(t, Listing{"r.0.0.mca": 4, "notes.txt": 1}, listing)

	_, err = ReadListing(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestReadListing_FollowsSymlinks(t *testing.T) {
	dir := t.TempDir()
	store := t.TempDir()
	writeFile(t, filepath.Join(store, "r.1.0.mca"), "linked")
	require.NoError(t, os.Symlink(filepath.Join(store, "r.1.0.mca"), filepath.Join(dir, "r.1.0.mca")))
	require.NoError(t, os.Symlink(store, filepath.Join(dir, "r.2.0.mca")))
	require.NoError(t, os.Symlink(filepath.Join(store, "gone"), filepath.Join(dir, "r.3.0.mca")))

	listing, err := ReadListing(dir)
	require.NoError(t, err)
	assert.Equal(t, Listing{"r.1.0.mca": 6}, listing)

	plan := NewPlan(coverage(region.Coord{X: 1, Z: 0}), listing)
	assert.Equal(t, []string{"r.1.0.mca"}, plan.Available)
	assert.Empty(t, plan.Missing)
}

func TestExecute_CopiesSymlinkedRegionContent(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "world")
	dst := filepath.Join(root, "out")
	store := filepath.Join(root, "store")
	writeFile(t, filepath.Join(src, world.LevelFile), "level")
	writeFile(t, filepath.Join(store, "r.1.0.mca"), "linked")
	require.NoError(t, os.MkdirAll(filepath.Join(src, "region"), 0o755))
	require.NoError(t, os.Symlink(filepath.Join(store, "r.1.0.mca"), filepath.Join(src, "region", "r.1.0.mca")))
	require.NoError(t, Prepare(dst, "region", nil))

	listing, err := ReadListing(filepath.Join(src, "region"))
	require.NoError(t, err)
	res, err := Execute(Job{
		SourceWorld: src,
		DestWorld:   dst,
		SubPath:     "region",
		Plan:        NewPlan(coverage(region.Coord{X: 1, Z: 0}), listing),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Regions)

	info, err := os.Lstat(filepath.Join(dst, "region", "r.1.0.mca"))
	require.NoError(t, err)
	assert.True(t, info.Mode().IsRegular())
	got, err := os.ReadFile(filepath.Join(dst, "region", "r.1.0.mca"))
	require.NoError(t, err)
	assert.Equal(t, "linked", string(got))
}

func TestNewPlan_PartitionsCoverage(t *testing.T) {
	cov := coverage(region.Coord{X: 0, Z: 0}, region.Coord{X: 1, Z: 0}, region.Coord{X: -1, Z: 3})
	listing := Listing{
		"r.0.0.mca":    100,
		"r.-1.3.mca":   50,
		"r.7.7.mca":    1000,
		"session.lock": 3,
	}

	p := NewPlan(cov, listing)
	assert.Equal(t, []string{"r.-1.3.mca", "r.0.0.mca"}, p.Available)
	assert.Equal(t, []string{"r.1.0.mca"}, p.Missing)
	assert.Equal(t, 3, p.SourceRegions)
	assert.Equal(t, int64(1150), p.SourceBytes)
	assert.Equal(t, int64(150), p.CopyBytes)
}

func TestNewPlan_AllMissing(t *testing.T) {
	p := NewPlan(coverage(region.Coord{X: 5, Z: 5}), Listing{})
	assert.Empty(t, p.Available)
	assert.Equal(t, []string{"r.5.5.mca"}, p.Missing)
}

func TestPrepare_CreatesTree(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "a", "new_world")

	require.NoError(t, Prepare(dest, world.Nether.SubPath(), nil))
	info, err := os.Stat(filepath.Join(dest, "DIM-1", "region"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestPrepare_DeclinedLeavesDestinationUntouched(t *testing.T) {
	dest := t.TempDir()
	keep := filepath.Join(dest, "keep.txt")
	writeFile(t, keep, "precious")

	var asked string
	err := Prepare(dest, "region", func(path string) (bool, error) {
		asked = path
		return false, nil
	})
	assert.ErrorIs(t, err, ErrOverwriteDeclined)
	assert.Equal(t, dest, asked)

	data, err := os.ReadFile(keep)
	require.NoError(t, err)
	assert.Equal(t, "precious", string(data))
	_, err = os.Stat(filepath.Join(dest, "region"))
	assert.True(t, os.IsNotExist(err))
}

func TestPrepare_NoConfirmCapabilityDeclines(t *testing.T) {
	dest := t.TempDir()
	assert.ErrorIs(t, Prepare(dest, "region", nil), ErrOverwriteDeclined)
}

func TestPrepare_ConfirmError(t *testing.T) {
	dest := t.TempDir()
	boom := errors.New("stdin closed")
	err := Prepare(dest, "region", func(string) (bool, error) { return false, boom })
	assert.ErrorIs(t, err, boom)
}

func TestPrepare_ConfirmedReplacesDirectory(t *testing.T) {
	dest := t.TempDir()
	writeFile(t, filepath.Join(dest, "old", "stale.mca"), "x")

	err := Prepare(dest, "region", func(string) (bool, error) { return true, nil })
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dest, "old"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dest, "region"))
	assert.NoError(t, err)
}

func TestPrepare_ConfirmedReplacesFile(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "world_out")
	writeFile(t, dest, "i am a file")

	err := Prepare(dest, "region", func(string) (bool, error) { return true, nil })
	require.NoError(t, err)

	info, err := os.Stat(dest)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestPrepare_PermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	parent := filepath.Join(t.TempDir(), "locked")
	require.NoError(t, os.Mkdir(parent, 0o555))
	t.Cleanup(func() { os.Chmod(parent, 0o755) })

	err := Prepare(filepath.Join(parent, "world"), "region", nil)
	var pe *PermissionError
	assert.True(t, errors.As(err, &pe))
}

func TestExecute_CopiesRegionsAndLevelDat(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "world")
	dst := filepath.Join(root, "world_small")
	writeFile(t, filepath.Join(src, world.LevelFile), "level-bytes")
	writeFile(t, filepath.Join(src, "region", "r.0.0.mca"), "region-00")
	writeFile(t, filepath.Join(src, "region", "r.1.0.mca"), "region-10")
	writeFile(t, filepath.Join(src, "region", "r.5.5.mca"), "not-covered")
	require.NoError(t, Prepare(dst, "region", nil))

	listing, err := ReadListing(filepath.Join(src, "region"))
	require.NoError(t, err)
	plan := NewPlan(coverage(region.Coord{X: 0, Z: 0}, region.Coord{X: 1, Z: 0}, region.Coord{X: 2, Z: 0}), listing)

	var calls []int
	res, err := Execute(Job{
		SourceWorld: src,
		DestWorld:   dst,
		SubPath:     "region",
		Plan:        plan,
		Progress: func(current, total int, _ string) {
			calls = append(calls, current)
			assert.Equal(t, 3, total)
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Regions)
	assert.Equal(t, int64(len("level-bytes")+2*len("region-00")), res.Bytes)
	assert.Equal(t, []int{1, 2, 3}, calls)

	for name, want := range map[string]string{
		world.LevelFile:                      "level-bytes",
		filepath.Join("region", "r.0.0.mca"): "region-00",
		filepath.Join("region", "r.1.0.mca"): "region-10",
	} {
		got, err := os.ReadFile(filepath.Join(dst, name))
		require.NoError(t, err)
		assert.Equal(t, want, string(got))
	}

	_, err = os.Stat(filepath.Join(dst, "region", "r.5.5.mca"))
	assert.True(t, os.IsNotExist(err))

	entries, err := os.ReadDir(filepath.Join(dst, "region"))
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no temp files left behind")
}

func TestExecute_MissingSourceFails(t *testing.T) {
	root := t.TempDir()
	dst := filepath.Join(root, "out")
	require.NoError(t, Prepare(dst, "region", nil))

	_, err := Execute(Job{SourceWorld: filepath.Join(root, "nope"), DestWorld: dst, SubPath: "region"})
	assert.Error(t, err)

	_, err = os.Stat(filepath.Join(dst, world.LevelFile))
	assert.True(t, os.IsNotExist(err))
}
