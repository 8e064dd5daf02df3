package debugcheck

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	toolexec "github.com/isseis/go-debuginfo-check/internal/toolexec"
	toolexectesting "github.com/isseis/go-debuginfo-check/internal/toolexec/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	visited  []string
	excluded map[string]string
	scanned  []ScanResult
	sizes    []int64
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{excluded: make(map[string]string)}
}

func (o *recordingObserver) Visited(path string) { o.visited = append(o.visited, path) }

func (o *recordingObserver) Excluded(path, pattern string) { o.excluded[path] = pattern }

func (o *recordingObserver) Scanned(result ScanResult, size int64) {
	o.scanned = append(o.scanned, result)
	o.sizes = append(o.sizes, size)
}

func TestWalker_Scan_DirectoryWithUnstrippedObject(t *testing.T) {
	dir := t.TempDir()
	lib := writeFile(t, dir, "libgood.so", "elf")
	runner := toolexectesting.NewFakeRunner()
	register(runner, lib, unstrippedBinary)

	results, err := newTestWalker(runner).Scan(context.Background(), dir)

	require.NoError(t, err)
	assert.Equal(t, []ScanResult{
		{FileName: lib, DebugInfo: true, DebugAbbrev: true, FileSymbols: true},
	}, results)
}

func TestWalker_Scan_RecursesInLexicalOrder(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a/liba.so", "elf")
	b := writeFile(t, dir, "b/c/libc.so", "elf")
	notes := writeFile(t, dir, "b/notes.txt", "text")
	z := writeFile(t, dir, "z.so", "elf")

	runner := toolexectesting.NewFakeRunner()
	register(runner, a, unstrippedBinary)
	register(runner, b, strippedBinary)
	register(runner, notes, textFile)
	register(runner, z, debugLinkBinary)

	results, err := newTestWalker(runner).Scan(context.Background(), dir)

	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, a, results[0].FileName)
	assert.Equal(t, b, results[1].FileName)
	assert.Equal(t, z, results[2].FileName)
	assert.False(t, results[1].DebugInfo)
	assert.True(t, results[2].GNUDebugLink)
	assert.Equal(t, 4, runner.CallCount(DefaultFileTypeTool))
	assert.Equal(t, 6, runner.CallCount(DefaultReadelfTool))
}

func TestWalker_Scan_OnlyNonELFFiles(t *testing.T) {
	dir := t.TempDir()
	readme := writeFile(t, dir, "README", "text")
	script := writeFile(t, dir, "bin/run.sh", "#!/bin/sh\n")

	runner := toolexectesting.NewFakeRunner()
	register(runner, readme, textFile)
	register(runner, script, binary{description: descScript})

	results, err := newTestWalker(runner).Scan(context.Background(), dir)

	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Zero(t, runner.CallCount(DefaultReadelfTool))
}

func TestWalker_Scan_SingleFile(t *testing.T) {
	dir := t.TempDir()
	lib := writeFile(t, dir, "libone.so", "elf")
	runner := toolexectesting.NewFakeRunner()
	register(runner, lib, strippedBinary)

	results, err := newTestWalker(runner).Scan(context.Background(), lib)

	require.NoError(t, err)
	assert.Equal(t, []ScanResult{{FileName: lib}}, results)
}

func TestWalker_Scan_SingleNonELFFile(t *testing.T) {
	dir := t.TempDir()
	readme := writeFile(t, dir, "README", "text")
	runner := toolexectesting.NewFakeRunner()
	register(runner, readme, textFile)

	results, err := newTestWalker(runner).Scan(context.Background(), readme)

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestWalker_Scan_RelativePathIsResolved(t *testing.T) {
	dir := t.TempDir()
	lib := writeFile(t, dir, "librel.so", "elf")
	testChdir(t, dir)

	runner := toolexectesting.NewFakeRunner()
	register(runner, lib, unstrippedBinary)

	results, err := newTestWalker(runner).Scan(context.Background(), "librel.so")

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, filepath.IsAbs(results[0].FileName))
	assert.Equal(t, lib, results[0].FileName)
}

func TestWalker_Scan_PathNotFound(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")
	runner := toolexectesting.NewFakeRunner()

	results, err := newTestWalker(runner).Scan(context.Background(), missing)

	assert.Nil(t, results)
	require.ErrorIs(t, err, ErrPathNotFound)

	var pathErr *PathError
	require.ErrorAs(t, err, &pathErr)
	assert.Equal(t, missing, pathErr.Path)
	assert.Empty(t, runner.Calls())
}

func TestWalker_Scan_UnsupportedPathType(t *testing.T) {
	if _, err := os.Stat(os.DevNull); err != nil {
		t.Skip("no null device")
	}
	runner := toolexectesting.NewFakeRunner()

	_, err := newTestWalker(runner).Scan(context.Background(), os.DevNull)

	assert.ErrorIs(t, err, ErrUnsupportedPathType)
	assert.Empty(t, runner.Calls())
}

func TestWalker_Scan_SubprocessFailureAborts(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "a.so", "elf")
	writeFile(t, dir, "b.so", "elf")

	runner := toolexectesting.NewFakeRunner()
	runner.On(toolexectesting.Response{Stdout: descPIESharedObject}, DefaultFileTypeTool, first)
	runner.On(toolexectesting.Response{ExitCode: 1, Stderr: "invalid ELF"}, DefaultReadelfTool, "-S", first)

	results, err := newTestWalker(runner).Scan(context.Background(), dir)

	assert.Nil(t, results)
	require.ErrorIs(t, err, toolexec.ErrSubprocessFailure)
	assert.Contains(t, err.Error(), first)
	assert.Equal(t, 1, runner.CallCount(DefaultFileTypeTool), "walk stops at the first failure")
}

func TestWalker_Scan_ExcludedPathsAreNotClassified(t *testing.T) {
	dir := t.TempDir()
	kept := writeFile(t, dir, "lib/libkeep.so", "elf")
	debugFile := writeFile(t, dir, "lib/libkeep.so.debug", "elf")
	vendored := writeFile(t, dir, "vendor/x/libvendored.so", "elf")

	runner := toolexectesting.NewFakeRunner()
	register(runner, kept, unstrippedBinary)

	excluder, err := NewExcluder([]string{"**.debug", "**/vendor"})
	require.NoError(t, err)
	observer := newRecordingObserver()

	results, err := newTestWalker(runner, WithExcluder(excluder), WithObserver(observer)).
		Scan(context.Background(), dir)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, kept, results[0].FileName)
	assert.Equal(t, []string{"file " + kept}, runner.Calls()[:1])
	assert.Equal(t, "**.debug", observer.excluded[debugFile])
	assert.Equal(t, "**/vendor", observer.excluded[filepath.Join(dir, "vendor")])
	assert.NotContains(t, observer.visited, vendored)
}

func TestWalker_Scan_ExplicitFileIgnoresExcludes(t *testing.T) {
	dir := t.TempDir()
	lib := writeFile(t, dir, "libx.so.debug", "elf")
	runner := toolexectesting.NewFakeRunner()
	register(runner, lib, unstrippedBinary)

	excluder, err := NewExcluder([]string{"**.debug"})
	require.NoError(t, err)

	results, err := newTestWalker(runner, WithExcluder(excluder)).Scan(context.Background(), lib)

	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestWalker_Scan_ObserverSeesEveryFile(t *testing.T) {
	dir := t.TempDir()
	lib := writeFile(t, dir, "libobs.so", "0123456789")
	readme := writeFile(t, dir, "README", "text")

	runner := toolexectesting.NewFakeRunner()
	register(runner, lib, unstrippedBinary)
	register(runner, readme, textFile)
	observer := newRecordingObserver()

	_, err := newTestWalker(runner, WithObserver(observer)).Scan(context.Background(), dir)

	require.NoError(t, err)
	assert.Equal(t, []string{readme, lib}, observer.visited)
	require.Len(t, observer.scanned, 1)
	assert.Equal(t, lib, observer.scanned[0].FileName)
	assert.Equal(t, []int64{10}, observer.sizes)
}

func TestWalker_Scan_FollowsSymlinkedRoot(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "real/libreal.so", "elf")
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(filepath.Join(dir, "real"), link))

	viaLink := filepath.Join(link, "libreal.so")
	runner := toolexectesting.NewFakeRunner()
	register(runner, viaLink, unstrippedBinary)

	results, err := newTestWalker(runner).Scan(context.Background(), link)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, viaLink, results[0].FileName)
}

func TestWalker_Scan_SymlinksBelowRootAreClassifiedNotFollowed(t *testing.T) {
	dir := t.TempDir()
	target := writeFile(t, dir, "libz.so.1.3", "elf")
	link := filepath.Join(dir, "libz.so.1")
	require.NoError(t, os.Symlink(target, link))

	runner := toolexectesting.NewFakeRunner()
	register(runner, target, unstrippedBinary)
	register(runner, link, binary{description: "symbolic link to libz.so.1.3\n"})

	results, err := newTestWalker(runner).Scan(context.Background(), dir)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, target, results[0].FileName)
}

func TestWalker_Scan_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.so", "elf")
	runner := toolexectesting.NewFakeRunner()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestWalker(runner).Scan(ctx, dir)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, runner.Calls())
}

func TestWalker_Scan_Idempotent(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.so", "elf")
	b := writeFile(t, dir, "b.so", "elf")
	runner := toolexectesting.NewFakeRunner()
	register(runner, a, unstrippedBinary)
	register(runner, b, strippedBinary)
	w := newTestWalker(runner)

	first, err := w.Scan(context.Background(), dir)
	require.NoError(t, err)
	second, err := w.Scan(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPathError(t *testing.T) {
	err := &PathError{Path: "/nope", Err: ErrPathNotFound}
	assert.Equal(t, "/nope: path not found", err.Error())
	assert.ErrorIs(t, err, ErrPathNotFound)
}
