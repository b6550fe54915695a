package cli

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the command line in an isolated directory and returns stdout.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("QRFRAME_DETECT_SETTLE_DELAY", "0s")
	t.Setenv("QRFRAME_LOG_LEVEL", "error")

	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestHelp(t *testing.T) {
	out, err := run(t, t.TempDir(), "--help")
	require.NoError(t, err)
	for _, sub := range []string{"serve", "render", "detect", "templates", "contrast"} {
		assert.Contains(t, out, sub)
	}
}

func TestTemplates(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "templates")
	require.NoError(t, err)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "StandardBox")

	out, err = run(t, dir, "templates", "--format", "json")
	require.NoError(t, err)
	var defs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &defs))
	assert.Len(t, defs, 4)

	out, err = run(t, dir, "templates", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "- id: default")

	_, err = run(t, dir, "templates", "--format", "xml")
	assert.Error(t, err)
}

func TestContrast(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "contrast", "000", "#fff")
	require.NoError(t, err)
	assert.Equal(t, "21.00:1 AAA - Excellent contrast\n", out)

	out, err = run(t, dir, "contrast", "777", "888", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"level": "Fail"`)

	_, err = run(t, dir, "contrast", "zzz", "fff")
	assert.Error(t, err)
}

func TestRenderThenDetect(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "code.png")

	_, err := run(t, dir, "render", "example.com", "-o", file, "--size", "800", "--margin", "4")
	require.NoError(t, err)
	f, err := os.Open(file)
	require.NoError(t, err)
	img, err := png.Decode(f)
	f.Close()
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())

	out, err := run(t, dir, "detect", file)
	require.NoError(t, err)
	assert.Equal(t, "example.com?qr=1\n", out)

	overlay := filepath.Join(dir, "boxed.png")
	out, err = run(t, dir, "detect", file, "--json", "--overlay", overlay)
	require.NoError(t, err)
	var resp map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "example.com?qr=1", resp["data"])
	assert.Len(t, resp["boundingBox"], 4)
	assert.FileExists(t, overlay)
}

func TestRenderRaw(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "raw.png")

	_, err := run(t, dir, "render", "--raw", "HELLO-42", "-o", file, "--size", "600", "--margin", "4", "--style", "squares")
	require.NoError(t, err)

	out, err := run(t, dir, "detect", file)
	require.NoError(t, err)
	assert.Equal(t, "HELLO-42\n", out)
}

func TestRenderFramedThenDetect(t *testing.T) {
	dir := t.TempDir()
	for _, id := range []string{"SquareBorder", "StandardBox"} {
		file := filepath.Join(dir, id+".jpg")
		_, err := run(t, dir, "render", "example.com", "-o", file, "--size", "900", "--margin", "4", "--template", id)
		require.NoError(t, err)

		out, err := run(t, dir, "detect", file)
		require.NoError(t, err, id)
		assert.Equal(t, "example.com?qr=1\n", out, id)
	}
}

func TestRenderSVGToStdout(t *testing.T) {
	out, err := run(t, t.TempDir(), "render", "example.com", "--template", "Caption", "--text", "MENU")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<svg"))
	assert.Contains(t, out, "MENU")

	out, err = run(t, t.TempDir(), "render", "example.com", "-f", "datauri", "--as", "svg")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "data:image/svg+xml,"))
}

func TestRenderRejectsBadInput(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, dir, "render", "example.com", "--fg", "nope")
	assert.Error(t, err)
	_, err = run(t, dir, "render", "example.com", "--level", "X")
	assert.Error(t, err)
	_, err = run(t, dir, "render", "example.com", "-f", "gif")
	assert.Error(t, err)
}

func TestDetectNoQR(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "blank.png")
	_, err := run(t, dir, "render", "--raw", "x", "-o", file, "--fg", "#FFFFFF", "--size", "200")
	require.NoError(t, err)

	out, err := run(t, dir, "detect", file)
	require.NoError(t, err)
	assert.Equal(t, "NO_QR\n", out)

	out, err = run(t, dir, "detect", file, "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"result":"NO_QR"}`, out)
}

func TestBadConfigFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "qrframe.yaml"), []byte("render:\n  encoder: nope\n"), 0o644))
	_, err := run(t, dir, "templates")
	assert.Error(t, err)
}
