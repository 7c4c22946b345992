package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadConfigDefaultsOnly(t *testing.T) {
	t.Parallel()

	workDir := t.TempDir()
	env := map[string]string{"XDG_CONFIG_HOME": filepath.Join(workDir, "no-such-dir")}

	cfg, sources, err := LoadConfig(workDir, "", env)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if sources.Global != "" || sources.Project != "" {
		t.Errorf("unexpected sources: %+v", sources)
	}

	want := DefaultConfig()
	if cfg != want {
		t.Errorf("cfg = %+v, want defaults %+v", cfg, want)
	}
}

func TestLoadConfigProjectOverridesWithComments(t *testing.T) {
	t.Parallel()

	workDir := t.TempDir()
	env := map[string]string{"XDG_CONFIG_HOME": filepath.Join(workDir, "no-such-dir")}

	writeFile(t, filepath.Join(workDir, ConfigFileName), `{
		// roster settings
		"author_file": "team.txt",
		"num_queue": 0, // no queue posts this semester
		"max_trials": 50,
	}`)

	cfg, sources, err := LoadConfig(workDir, "", env)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if sources.Project == "" {
		t.Error("project source not recorded")
	}

	if cfg.AuthorFile != "team.txt" {
		t.Errorf("AuthorFile = %q, want team.txt", cfg.AuthorFile)
	}

	if cfg.NumQueue != 0 {
		t.Errorf("NumQueue = %d, want explicit 0", cfg.NumQueue)
	}

	if cfg.MaxTrials != 50 {
		t.Errorf("MaxTrials = %d, want 50", cfg.MaxTrials)
	}

	// Untouched fields keep their defaults.
	if cfg.NumWrites != DefaultConfig().NumWrites {
		t.Errorf("NumWrites = %d, want default", cfg.NumWrites)
	}
}

func TestLoadConfigGlobalThenProjectPrecedence(t *testing.T) {
	t.Parallel()

	workDir := t.TempDir()
	xdg := filepath.Join(workDir, "xdg")
	env := map[string]string{"XDG_CONFIG_HOME": xdg}

	if err := os.MkdirAll(filepath.Join(xdg, "abs"), 0o750); err != nil {
		t.Fatal(err)
	}

	writeFile(t, filepath.Join(xdg, "abs", "config.json"),
		`{"num_writes": 4, "first_day": "Monday"}`)
	writeFile(t, filepath.Join(workDir, ConfigFileName),
		`{"num_writes": 2}`)

	cfg, sources, err := LoadConfig(workDir, "", env)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if sources.Global == "" || sources.Project == "" {
		t.Errorf("sources = %+v, want both recorded", sources)
	}

	// Project wins over global; global wins over defaults.
	if cfg.NumWrites != 2 {
		t.Errorf("NumWrites = %d, want 2", cfg.NumWrites)
	}

	if cfg.FirstDay != "Monday" {
		t.Errorf("FirstDay = %q, want Monday", cfg.FirstDay)
	}
}

func TestLoadConfigExplicitFileMustExist(t *testing.T) {
	t.Parallel()

	workDir := t.TempDir()
	env := map[string]string{"XDG_CONFIG_HOME": filepath.Join(workDir, "no-such-dir")}

	_, _, err := LoadConfig(workDir, "missing.json", env)
	if !errors.Is(err, errConfigFileNotFound) {
		t.Errorf("err = %v, want errConfigFileNotFound", err)
	}
}

func TestLoadConfigRejectsBadFiles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{name: "malformed json", content: `{"author_file": `},
		{name: "empty author_file", content: `{"author_file": ""}`},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			workDir := t.TempDir()
			env := map[string]string{"XDG_CONFIG_HOME": filepath.Join(workDir, "no-such-dir")}

			writeFile(t, filepath.Join(workDir, ConfigFileName), testCase.content)

			_, _, err := LoadConfig(workDir, "", env)
			if !errors.Is(err, errConfigInvalid) {
				t.Errorf("err = %v, want errConfigInvalid", err)
			}
		})
	}
}
