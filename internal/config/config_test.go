package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wemark.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		yaml string
		want Config
	}{
		{
			name: "all fields",
			yaml: "listenAddr: \":9090\"\ndataDir: /var/lib/wemark\napiKeysFile: /etc/wemark/keys\nkeyReloadInterval: 30s\nworkers: 4\n",
			want: Config{
				ListenAddr:        ":9090",
				DataDir:           "/var/lib/wemark",
				APIKeysFile:       "/etc/wemark/keys",
				KeyReloadInterval: "30s",
				Workers:           4,
			},
		},
		{
			name: "absent fields get defaults",
			yaml: "workers: 2\n",
			want: Config{
				ListenAddr:        DefaultListenAddr,
				DataDir:           DefaultDataDir,
				KeyReloadInterval: DefaultKeyReloadInterval.String(),
				Workers:           2,
			},
		},
		{
			name: "empty file is all defaults",
			yaml: "",
			want: Default(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Load(writeConfig(t, tt.yaml))
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Load() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	got, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != Default() {
		t.Errorf("Load() = %+v, want defaults for missing file", got)
	}
}

func TestLoad_ParseError(t *testing.T) {
	t.Parallel()

	_, err := Load(writeConfig(t, "listenAddr: [unclosed\n"))
	if !errors.Is(err, ErrConfigParse) {
		t.Errorf("Load() error = %v, want ErrConfigParse", err)
	}
}

func TestConfig_ReloadInterval(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{name: "valid duration", value: "45s", want: 45 * time.Second},
		{name: "empty falls back", value: "", want: DefaultKeyReloadInterval},
		{name: "garbage falls back", value: "soon", want: DefaultKeyReloadInterval},
		{name: "non-positive falls back", value: "-1m", want: DefaultKeyReloadInterval},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := Config{KeyReloadInterval: tt.value}
			if got := cfg.ReloadInterval(); got != tt.want {
				t.Errorf("ReloadInterval() = %v, want %v", got, tt.want)
			}
		})
	}
}
