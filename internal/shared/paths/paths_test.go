package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCanonicalizes(t *testing.T) {
	base := t.TempDir()
	real := filepath.Join(base, "real")
	require.NoError(t, os.Mkdir(real, 0755))
	link := filepath.Join(base, "link")
	require.NoError(t, os.Symlink(real, link))

	root, err := NewRoot(link)
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(real)
	require.NoError(t, err)
	assert.Equal(t, want, root.Dir())
}

func TestResolveRejectsBadNames(t *testing.T) {
	root, err := NewRoot(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"", ".", "..", "../../etc", "a/b", `a\b`, "/etc/passwd", "x\x00y"} {
		t.Run(name, func(t *testing.T) {
			_, err := root.Resolve(name)
			assert.ErrorIs(t, err, ErrInvalidName)
		})
	}
}

func TestResolveInsideRoot(t *testing.T) {
	root, err := NewRoot(t.TempDir())
	require.NoError(t, err)

	path, err := root.Resolve("demo.project")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root.Dir(), "demo.project"), path)
}

func TestResolveRejectsEscapingSymlink(t *testing.T) {
	outside := t.TempDir()
	target := filepath.Join(outside, "secret.project")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0644))

	root, err := NewRoot(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.Symlink(target, filepath.Join(root.Dir(), "evil.project")))

	_, err = root.Resolve("evil.project")
	assert.ErrorIs(t, err, ErrOutsideRoot)
}

func TestContains(t *testing.T) {
	root, err := NewRoot(t.TempDir())
	require.NoError(t, err)

	assert.True(t, root.Contains(filepath.Join(root.Dir(), "a.project")))
	assert.False(t, root.Contains(root.Dir()))
	assert.False(t, root.Contains(filepath.Dir(root.Dir())))
	assert.False(t, root.Contains(root.Dir()+"-sibling/a.project"))
}
