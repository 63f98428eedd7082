package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

const testCSV = `path,type,content
docs,dir,
docs/readme.txt,file,SGVsbG8sIFdvcmxkIQ==
bin,dir,
`

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"CSV", "PROMPT", "EXPAND_ENV", "LOG_LEVEL", "LOG_DEV"} {
		for _, name := range []string{"VFS_" + key, key} {
			t.Setenv(name, "")
			os.Unsetenv(name)
		}
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func runApp(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := newApp(strings.NewReader(stdin), &stdout, &stderr)
	err := app.Run(append([]string{"vfsshell"}, args...))
	return stdout.String(), err
}

func TestRunInteractive(t *testing.T) {
	clearEnv(t)
	csvPath := writeFile(t, "vfs.csv", testCSV)

	out, err := runApp(t, "ls\ncd docs\nls\nexit\n", "--vfs-csv", csvPath)
	require.NoError(t, err)
	assert.Equal(t, "VFS:/> bin\ndocs\nVFS:/> VFS:/docs> readme.txt\nVFS:/docs> ", out)
}

func TestRunScript(t *testing.T) {
	clearEnv(t)
	csvPath := writeFile(t, "vfs.csv", testCSV)
	script := writeFile(t, "session.txt", "cd bin\nls\ncd nowhere\n")

	out, err := runApp(t, "", "--vfs-csv", csvPath, "--script", script)
	require.NoError(t, err)
	assert.Equal(t, "VFS:/> cd bin\nVFS:/bin> ls\nVFS:/bin> cd nowhere\nerror: cd nowhere: path not found\nVFS:/bin> ", out)
}

func TestRunUsesEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("VFS_CSV", writeFile(t, "vfs.csv", testCSV))
	t.Setenv("VFS_PROMPT", "demo")

	out, err := runApp(t, "exit\n")
	require.NoError(t, err)
	assert.Equal(t, "demo:/> ", out)
}

func TestRunKeepsDollarInNames(t *testing.T) {
	clearEnv(t)
	csvPath := writeFile(t, "vfs.csv", "path,type,content\nprice$list,dir,\n")

	out, err := runApp(t, "cd price$list\n", "--vfs-csv", csvPath)
	require.NoError(t, err)
	assert.Equal(t, "VFS:/> VFS:/price$list> ", out)
}

func TestLoadFailuresAreFatal(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name    string
		args    []string
		message string
	}{
		{
			name:    "missing flag",
			args:    nil,
			message: "--vfs-csv is required",
		},
		{
			name:    "missing file",
			args:    []string{"--vfs-csv", filepath.Join(t.TempDir(), "missing.csv")},
			message: "snapshot source not found",
		},
		{
			name:    "bad header",
			args:    []string{"--vfs-csv", writeFile(t, "bad.csv", "path,kind,content\n")},
			message: "invalid snapshot format",
		},
		{
			name:    "unknown type",
			args:    []string{"--vfs-csv", writeFile(t, "type.csv", "path,type,content\nx,link,\n")},
			message: "unknown node type",
		},
		{
			name:    "bad content",
			args:    []string{"--vfs-csv", writeFile(t, "b64.csv", "path,type,content\nx,file,@@@\n")},
			message: "cannot decode content",
		},
		{
			name:    "kind conflict",
			args:    []string{"--vfs-csv", writeFile(t, "conflict.csv", "path,type,content\nx,file,\nx,dir,\n")},
			message: "both file and directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runApp(t, "ls\n", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
			assert.Equal(t, 1, exitCode(err))
			assert.Empty(t, out, "no session starts after a failed load")
		})
	}
}

func TestMountRequiresMountpoint(t *testing.T) {
	clearEnv(t)
	csvPath := writeFile(t, "vfs.csv", testCSV)

	_, err := runApp(t, "", "--vfs-csv", csvPath, "mount")
	require.Error(t, err)
	assert.Contains(t, err.Error(), flagMountpoint)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 1, exitCode(errors.New("boom")))
	assert.Equal(t, 3, exitCode(cli.Exit("boom", 3)))
	assert.Equal(t, 1, exitCode(cli.Exit("boom", 0)))
}
