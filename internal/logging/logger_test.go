package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitDiscardsWithoutDebugOrDir(t *testing.T) {
	Init(Config{})
	defer Shutdown()

	require.NotNil(t, Logger())
	ForComponent(CompState).Info("should_not_panic")
}

func TestInitWritesJSONLogFile(t *testing.T) {
	dir := t.TempDir()
	Init(Config{LogDir: dir, Debug: true, Level: "debug"})
	defer Shutdown()

	log := ForComponent(CompPersist)
	log.Info("catalog_saved", "repo_count", 2)
	Shutdown()

	data, err := os.ReadFile(filepath.Join(dir, "jefe.log"))
	require.NoError(t, err)
	require.NotEmpty(t, data)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(firstLine(data), &rec))
	require.Equal(t, "catalog_saved", rec["msg"])
	require.Equal(t, CompPersist, rec["component"])
}

func TestForComponentBeforeInit(t *testing.T) {
	// A component logger created before Init() must not crash and must
	// pick up the real handler once Init() runs.
	log := ForComponent(CompDispatch)

	dir := t.TempDir()
	Init(Config{LogDir: dir, Debug: true})
	defer Shutdown()

	log.Info("late_bound")
	Shutdown()

	data, err := os.ReadFile(filepath.Join(dir, "jefe.log"))
	require.NoError(t, err)
	require.Contains(t, string(data), "late_bound")
}

func firstLine(data []byte) []byte {
	for i, b := range data {
		if b == '\n' {
			return data[:i]
		}
	}
	return data
}
