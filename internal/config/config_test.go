package config

import (
	"os"
	"testing"
)

func TestConfigLoad_Defaults(t *testing.T) {
	for _, k := range []string{"AVATIMES_DB_DRIVER", "AVATIMES_HTTP_PORT", "AVATIMES_REPLY_DELAY_MS", "AVATIMES_SEED_DEMO_DATA"} {
		_ = os.Unsetenv(k)
	}

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.DBDriver != "sqlite" || cfg.HTTPPort != 8080 || cfg.ReplyDelayMS != 2000 || !cfg.SeedDemoData {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestConfigLoad_EnvOverride(t *testing.T) {
	_ = os.Setenv("AVATIMES_DB_DRIVER", "memory")
	_ = os.Setenv("AVATIMES_HTTP_PORT", "9191")
	defer func() {
		_ = os.Unsetenv("AVATIMES_DB_DRIVER")
		_ = os.Unsetenv("AVATIMES_HTTP_PORT")
	}()

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.DBDriver != "memory" || cfg.HTTPPort != 9191 {
		t.Fatalf("env override failed: %+v", cfg)
	}
}

func TestValidate_DriverSettings(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"sqlite needs path", Config{DBDriver: "sqlite", HTTPPort: 8080}, true},
		{"postgres needs dsn", Config{DBDriver: "postgres", HTTPPort: 8080}, true},
		{"memory ok", Config{DBDriver: "memory", HTTPPort: 8080}, false},
		{"unknown driver", Config{DBDriver: "spanner", HTTPPort: 8080}, true},
		{"bad port", Config{DBDriver: "memory", HTTPPort: 0}, true},
		{"negative delay", Config{DBDriver: "memory", HTTPPort: 8080, ReplyDelayMS: -1}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("err=%v wantErr=%v", err, tc.wantErr)
			}
		})
	}
}
