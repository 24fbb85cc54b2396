package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
			CORS: CORSConfig{
				AllowedOrigins: []string{"http://localhost:3000"},
			},
			ShutdownTimeoutSeconds: 10,
		},
		Database: DatabaseConfig{
			Driver:         DriverMySQL,
			Host:           "localhost",
			Port:           3306,
			Database:       "diary",
			Username:       "user",
			Path:           filepath.Join("data", "diary.db"),
			ConnectRetries: 5,
		},
		Upload: UploadConfig{
			Directory:    "uploads",
			MaxSizeBytes: 5 * 1024 * 1024,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name              string
		configContent     string
		useExplicitPath   bool
		wantErr           bool
		want              func() *Config
		wantErrorContains []string
	}{
		{
			name: "valid config file with custom values",
			configContent: `server:
  port: 9090
  cors:
    allowed_origins:
      - https://diary.example.com
database:
  driver: sqlite
  path: custom/diary.db
upload:
  directory: custom/uploads
  max_size_bytes: 1024
log:
  level: debug
  format: json
`,
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Server.Port = 9090
				cfg.Server.CORS.AllowedOrigins = []string{"https://diary.example.com"}
				cfg.Database.Driver = DriverSQLite
				cfg.Database.Path = "custom/diary.db"
				cfg.Upload.Directory = "custom/uploads"
				cfg.Upload.MaxSizeBytes = 1024
				cfg.Log.Level = "debug"
				cfg.Log.Format = "json"
				return cfg
			},
		},
		{
			name: "invalid YAML format",
			configContent: `server:
  port: 9090
  invalid yaml format here [[[
`,
			wantErr: true,
			wantErrorContains: []string{
				"configuration file found but could not be read",
				"Please check the file format and permissions",
			},
		},
		{
			name: "unknown keys use defaults",
			configContent: `wrong_key:
  some_value: test
`,
			want: defaultConfig,
		},
		{
			name:    "no config file uses defaults",
			want:    defaultConfig,
			wantErr: false,
		},
		{
			name: "explicit config file path",
			configContent: `database:
  host: db.internal
  port: 3307
  params:
    charset: utf8mb4
`,
			useExplicitPath: true,
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Database.Host = "db.internal"
				cfg.Database.Port = 3307
				cfg.Database.Params = map[string]string{"charset": "utf8mb4"}
				return cfg
			},
		},
		{
			name: "unsupported driver",
			configContent: `database:
  driver: postgres
`,
			wantErr:           true,
			wantErrorContains: []string{"invalid configuration", "driver must be one of [mysql sqlite]"},
		},
		{
			name: "unknown log level",
			configContent: `log:
  level: loud
`,
			wantErr:           true,
			wantErrorContains: []string{"log.level must be one of trace, debug, info, warn, error"},
		},
		{
			name: "sqlite driver without path",
			configContent: `database:
  driver: sqlite
  path: ""
`,
			wantErr:           true,
			wantErrorContains: []string{"invalid configuration", "path"},
		},
		{
			name: "port out of range",
			configContent: `server:
  port: 70000
`,
			wantErr:           true,
			wantErrorContains: []string{"port must be 65,535 or less"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()

			var configPath string
			if tt.useExplicitPath {
				configPath = filepath.Join(tempDir, "custom.yml")
				err := os.WriteFile(configPath, []byte(tt.configContent), 0644)
				require.NoError(t, err)
			} else {
				if tt.configContent != "" {
					err := os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(tt.configContent), 0644)
					require.NoError(t, err)
				}
				t.Chdir(tempDir)
			}

			got, err := Load(configPath)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				for _, wantMsg := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), wantMsg)
				}
				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want(), got)
		})
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_HOST", "mysql.internal")
	t.Setenv("PORT", "9191")

	got, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "secret", got.Database.Password)
	assert.Equal(t, "mysql.internal", got.Database.Host)
	assert.Equal(t, 9191, got.Server.Port)
}
