// pkg/appimage/installer_test.go
// TEST TYPE: Installer Tests
// DEPENDENCIES: In-memory filesystem with a fake extractor, real filesystem for links
// PURPOSE: Verify the AppImage install pipeline end to end

package appimage_test

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/deskit/pkg/appimage"
	"github.com/arthur-debert/deskit/pkg/config"
	"github.com/arthur-debert/deskit/pkg/errors"
	"github.com/arthur-debert/deskit/pkg/filesystem"
	"github.com/arthur-debert/deskit/pkg/paths"
	"github.com/arthur-debert/deskit/pkg/store"
	"github.com/arthur-debert/deskit/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bundleBytes = "fake appimage payload"

// fakeExtractor materializes a fixed tree instead of running the bundle.
type fakeExtractor struct {
	fs       types.FS
	files    map[string]string
	links    map[string]string
	err      error
	calls    int
	lastExec string
}

func (f *fakeExtractor) Extract(ctx context.Context, executable, dir string) (string, error) {
	f.calls++
	f.lastExec = executable
	if f.err != nil {
		return "", f.err
	}

	root := filepath.Join(dir, "squashfs-root")
	if err := f.fs.MkdirAll(root, 0755); err != nil {
		return "", err
	}
	for name, content := range f.files {
		path := filepath.Join(root, name)
		if err := f.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return "", err
		}
		if err := f.fs.WriteFile(path, []byte(content), 0644); err != nil {
			return "", err
		}
	}
	for name, target := range f.links {
		if err := f.fs.Symlink(target, filepath.Join(root, name)); err != nil {
			return "", err
		}
	}
	return root, nil
}

type testEnv struct {
	fs        types.FS
	paths     paths.Paths
	store     *store.Store
	extractor *fakeExtractor
	installer *appimage.Installer
	bundle    string
	id        string
}

func md5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

func newTestEnv(t *testing.T, fs types.FS, root string) *testEnv {
	t.Helper()

	p, err := paths.New(paths.Options{
		DataRoot: filepath.Join(root, "data"),
		CacheDir: filepath.Join(root, "cache"),
	})
	require.NoError(t, err)

	bundle := filepath.Join(root, "downloads", "Foo.AppImage")
	require.NoError(t, fs.MkdirAll(filepath.Dir(bundle), 0755))
	require.NoError(t, fs.WriteFile(bundle, []byte(bundleBytes), 0644))

	st := store.New(fs, p, "")
	extractor := &fakeExtractor{fs: fs}
	return &testEnv{
		fs:        fs,
		paths:     p,
		store:     st,
		extractor: extractor,
		installer: appimage.NewInstaller(fs, st, config.Default().AppImage, extractor),
		bundle:    bundle,
		id:        md5Hex(bundleBytes),
	}
}

func newMemEnv(t *testing.T) *testEnv {
	return newTestEnv(t, filesystem.NewMemFS(), "/home/user")
}

func readShortcut(t *testing.T, env *testEnv, path string) string {
	t.Helper()
	content, err := env.fs.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func TestInstall_FooScenario(t *testing.T) {
	env := newMemEnv(t)
	env.extractor.files = map[string]string{
		"Foo.desktop": "[Desktop Entry]\nName=FooApp\nX-AppImage-Version=2.1\nExec=AppRun %U\nMimeType=text/plain\n",
		"AppRun":      "#!/bin/sh\n",
	}

	result, err := env.installer.Install(context.Background(), env.bundle)
	require.NoError(t, err)

	execPath := filepath.Join(env.paths.StaticDir(), env.id)
	assert.Equal(t, env.id, result.ID)
	assert.Equal(t, types.AppTypeAppImage, result.Type)
	assert.Equal(t, "FooApp", result.Name)
	assert.Equal(t, "2.1", result.Version)
	assert.Equal(t, execPath, result.ExecPath)
	assert.Empty(t, result.IconPath)
	assert.Equal(t, filepath.Join(env.paths.ShortcutsDir(), env.id+".desktop"), result.ShortcutPath)
	assert.Equal(t, execPath, env.extractor.lastExec, "extraction must run the placed copy")

	assert.Equal(t, strings.Join([]string{
		"[Desktop Entry]",
		"Name=FooApp",
		"Icon=",
		"X-Version=2.1",
		"X-Type=AppImage",
		"Exec=" + execPath,
		"X-AppImage-Version=2.1",
		"MimeType=text/plain",
		"Terminal=false",
		"Type=Application",
	}, "\n"), readShortcut(t, env, result.ShortcutPath))

	placed, err := env.fs.ReadFile(execPath)
	require.NoError(t, err)
	assert.Equal(t, bundleBytes, string(placed))

	info, err := env.fs.Stat(execPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())

	info, err = env.fs.Stat(result.ShortcutPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())

	_, err = env.fs.Stat(filepath.Join(env.paths.TempDir(), env.id))
	assert.True(t, os.IsNotExist(err), "scratch directory must be removed")
}

func TestInstall_Idempotent(t *testing.T) {
	env := newMemEnv(t)
	env.extractor.files = map[string]string{
		"Foo.desktop": "[Desktop Entry]\nName=FooApp\nCategories=Utility;\n",
		".DirIcon":    "icon bytes",
	}

	first, err := env.installer.Install(context.Background(), env.bundle)
	require.NoError(t, err)
	firstContent := readShortcut(t, env, first.ShortcutPath)

	second, err := env.installer.Install(context.Background(), env.bundle)
	require.NoError(t, err)
	secondContent := readShortcut(t, env, second.ShortcutPath)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.ShortcutPath, second.ShortcutPath)
	assert.Equal(t, firstContent, secondContent)
	assert.Equal(t, 2, env.extractor.calls)

	ids, err := env.store.IDs()
	require.NoError(t, err)
	assert.Equal(t, []string{env.id}, ids)
}

func TestInstall_Fallbacks(t *testing.T) {
	tests := []struct {
		name         string
		files        map[string]string
		wantName     string
		wantVersion  string
		wantIcon     bool
		validateFunc func(t *testing.T, env *testEnv, shortcut string)
	}{
		{
			name:        "no_desktop_entry",
			files:       map[string]string{"AppRun": "#!/bin/sh\n"},
			wantName:    "Foo.AppImage",
			wantVersion: "0.0.0",
			validateFunc: func(t *testing.T, env *testEnv, shortcut string) {
				assert.Contains(t, shortcut, "\nType=Application")
				assert.Contains(t, shortcut, "\nTerminal=false")
			},
		},
		{
			name: "entry_without_name_or_version",
			files: map[string]string{
				"foo.desktop": "[Desktop Entry]\nName=\nComment=A tool\n",
			},
			wantName:    "Foo.AppImage",
			wantVersion: "0.0.0",
			validateFunc: func(t *testing.T, env *testEnv, shortcut string) {
				assert.Contains(t, shortcut, "\nComment=A tool")
			},
		},
		{
			name: "version_from_metainfo",
			files: map[string]string{
				"foo.desktop": "[Desktop Entry]\nName=Foo\n",
				"usr/share/metainfo/org.example.foo.appdata.xml": `<?xml version="1.0" encoding="UTF-8"?>
<component type="desktop-application">
  <id>org.example.foo</id>
  <releases>
    <release version="3.4.1" date="2024-05-01"/>
    <release version="3.4.0" date="2024-03-01"/>
  </releases>
</component>`,
			},
			wantName:    "Foo",
			wantVersion: "3.4.1",
		},
		{
			name: "entry_version_wins_over_metainfo",
			files: map[string]string{
				"foo.desktop": "[Desktop Entry]\nName=Foo\nX-AppImage-Version=1.0\n",
				"usr/share/metainfo/foo.xml": `<component><releases><release version="9.9"/></releases></component>`,
			},
			wantName:    "Foo",
			wantVersion: "1.0",
		},
		{
			name: "broken_metainfo_ignored",
			files: map[string]string{
				"foo.desktop":                "[Desktop Entry]\nName=Foo\n",
				"usr/share/appdata/foo.xml": "<component><releases>",
			},
			wantName:    "Foo",
			wantVersion: "0.0.0",
		},
		{
			name: "dir_icon",
			files: map[string]string{
				"foo.desktop": "[Desktop Entry]\nName=Foo\nIcon=foo\n",
				".DirIcon":    "dir icon",
			},
			wantName:    "Foo",
			wantVersion: "0.0.0",
			wantIcon:    true,
			validateFunc: func(t *testing.T, env *testEnv, shortcut string) {
				content, err := env.fs.ReadFile(env.store.IconPath(env.id))
				require.NoError(t, err)
				assert.Equal(t, "dir icon", string(content))
				assert.NotContains(t, shortcut, "Icon=foo")
			},
		},
		{
			name: "icon_named_by_entry",
			files: map[string]string{
				"foo.desktop": "[Desktop Entry]\nName=Foo\nIcon=foo\n",
				"foo.svg":     "<svg/>",
			},
			wantName:    "Foo",
			wantVersion: "0.0.0",
			wantIcon:    true,
			validateFunc: func(t *testing.T, env *testEnv, shortcut string) {
				content, err := env.fs.ReadFile(env.store.IconPath(env.id))
				require.NoError(t, err)
				assert.Equal(t, "<svg/>", string(content))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newMemEnv(t)
			env.extractor.files = tt.files

			result, err := env.installer.Install(context.Background(), env.bundle)
			require.NoError(t, err)

			shortcut := readShortcut(t, env, result.ShortcutPath)
			assert.Equal(t, tt.wantName, result.Name)
			assert.Equal(t, tt.wantVersion, result.Version)
			assert.Contains(t, shortcut, "\nName="+tt.wantName+"\n")
			assert.Contains(t, shortcut, "\nX-Version="+tt.wantVersion+"\n")

			if tt.wantIcon {
				assert.Equal(t, env.store.IconPath(env.id), result.IconPath)
				assert.Contains(t, shortcut, "\nIcon="+result.IconPath+"\n")
			} else {
				assert.Empty(t, result.IconPath)
				assert.Contains(t, shortcut, "\nIcon=\n")
			}

			if tt.validateFunc != nil {
				tt.validateFunc(t, env, shortcut)
			}
		})
	}
}

func TestInstall_SymlinkedIcon(t *testing.T) {
	t.Run("resolved_to_real_file", func(t *testing.T) {
		env := newTestEnv(t, filesystem.NewOS(), t.TempDir())
		env.extractor.files = map[string]string{
			"foo.desktop":                                "[Desktop Entry]\nName=Foo\n",
			"usr/share/icons/hicolor/256x256/apps/foo.png": "png bytes",
		}
		env.extractor.links = map[string]string{
			".DirIcon": "usr/share/icons/hicolor/256x256/apps/foo.png",
		}

		result, err := env.installer.Install(context.Background(), env.bundle)
		require.NoError(t, err)
		require.NotEmpty(t, result.IconPath)

		info, err := env.fs.Lstat(result.IconPath)
		require.NoError(t, err)
		assert.True(t, info.Mode().IsRegular())

		content, err := env.fs.ReadFile(result.IconPath)
		require.NoError(t, err)
		assert.Equal(t, "png bytes", string(content))
	})

	t.Run("dangling_link_leaves_icon_empty", func(t *testing.T) {
		env := newTestEnv(t, filesystem.NewOS(), t.TempDir())
		env.extractor.files = map[string]string{
			"foo.desktop": "[Desktop Entry]\nName=Foo\n",
		}
		env.extractor.links = map[string]string{
			".DirIcon": "usr/share/missing.png",
		}

		result, err := env.installer.Install(context.Background(), env.bundle)
		require.NoError(t, err)
		assert.Empty(t, result.IconPath)
		assert.Contains(t, readShortcut(t, env, result.ShortcutPath), "\nIcon=\n")
	})
}

func TestInstall_Errors(t *testing.T) {
	t.Run("missing_bundle_writes_nothing", func(t *testing.T) {
		env := newMemEnv(t)

		_, err := env.installer.Install(context.Background(), "/home/user/downloads/Missing.AppImage")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInput))
		assert.Equal(t, 0, env.extractor.calls)

		_, statErr := env.fs.Stat(env.paths.StaticDir())
		assert.True(t, os.IsNotExist(statErr))
		_, statErr = env.fs.Stat(env.paths.ShortcutsDir())
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("directory_rejected", func(t *testing.T) {
		env := newMemEnv(t)

		_, err := env.installer.Install(context.Background(), "/home/user/downloads")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInput))
	})

	t.Run("extraction_failure_cleans_scratch", func(t *testing.T) {
		env := newMemEnv(t)
		env.extractor.err = errors.New(errors.ErrExtraction, "bundle exited with status 1")

		_, err := env.installer.Install(context.Background(), env.bundle)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrExtraction))

		_, statErr := env.fs.Stat(filepath.Join(env.paths.TempDir(), env.id))
		assert.True(t, os.IsNotExist(statErr), "scratch directory must be removed on failure")

		_, statErr = env.fs.Stat(env.store.ShortcutPath(env.id))
		assert.True(t, os.IsNotExist(statErr), "no shortcut is written on failure")
	})
}
