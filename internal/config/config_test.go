package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	txkit "github.com/etherspot/transaction-kit-go"
)

const (
	testFactory = "0x7f6d8F107fE8551160BD5351d5F1514A6aD5d40E"
	testHash    = "0x1f2c7d3b0e0b8b8e3e5d4c5b6a7988776655443322110ffeeddccbbaa9988776"
)

var allEnv = []string{
	EnvPrivateKey, EnvMnemonic, EnvDataAPIKey, EnvDataAPIURL, EnvAccountFactory,
	EnvAccountInitCodeHash, EnvSessionFile, EnvRedisURL, EnvChainIDs, EnvDebug,
	EnvAuthSecret, EnvKeystore, EnvKeystorePassword,
}

// clearEnv unsets every TXKIT_* variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allEnv {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("", "")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(cfg.ChainIDs) != 1 || cfg.ChainIDs[0] != txkit.DefaultChainID {
		t.Errorf("Expected default chain ids, got %v", cfg.ChainIDs)
	}
	if cfg.TimeoutConfig() != txkit.DefaultTimeouts {
		t.Errorf("Expected default timeouts, got %+v", cfg.TimeoutConfig())
	}
	if !errors.Is(cfg.RequireSigner(), ErrNoSigner) {
		t.Error("Expected ErrNoSigner without key or mnemonic")
	}
}

func TestLoad_YAML(t *testing.T) {
	clearEnv(t)

	path := writeFile(t, "config.yaml", `
private_key: "0xabc"
data_api_key: "yaml-key"
data_api_url: "https://data.example.com"
account_factory: "`+testFactory+`"
account_init_code_hash: "`+testHash+`"
session_file: "/tmp/sessions.json"
chain_ids: [1, 137]
rpc_urls:
  137: "https://polygon-rpc.example.com"
debug: true
timeouts:
  request: 5s
  fetch: 15s
`)

	cfg, err := Load("", path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.PrivateKey != "0xabc" || cfg.DataAPIKey != "yaml-key" {
		t.Errorf("Unexpected credentials %+v", cfg)
	}
	if len(cfg.ChainIDs) != 2 || cfg.ChainIDs[1] != 137 {
		t.Errorf("Expected chain ids [1 137], got %v", cfg.ChainIDs)
	}
	if cfg.RPCURLs[137] != "https://polygon-rpc.example.com" {
		t.Errorf("Unexpected rpc urls %v", cfg.RPCURLs)
	}
	if !cfg.Debug {
		t.Error("Expected debug to be true")
	}
	if cfg.Timeouts.Request != 5*time.Second || cfg.Timeouts.Fetch != 15*time.Second {
		t.Errorf("Unexpected timeouts %+v", cfg.Timeouts)
	}
	if err := cfg.RequireSigner(); err != nil {
		t.Errorf("Expected signer to be configured, got %v", err)
	}
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	clearEnv(t)

	path := writeFile(t, "config.yaml", "data_api_key: yaml-key\nchain_ids: [1]\ndebug: true\n")
	t.Setenv(EnvDataAPIKey, "env-key")
	t.Setenv(EnvChainIDs, "polygon, 10 ,base")
	t.Setenv(EnvDebug, "false")

	cfg, err := Load("", path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.DataAPIKey != "env-key" {
		t.Errorf("Expected env-key, got %s", cfg.DataAPIKey)
	}
	want := []int64{137, 10, 8453}
	if len(cfg.ChainIDs) != len(want) {
		t.Fatalf("Expected %v, got %v", want, cfg.ChainIDs)
	}
	for i := range want {
		if cfg.ChainIDs[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, cfg.ChainIDs)
		}
	}
	if cfg.Debug {
		t.Error("Expected env to turn debug off")
	}
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)

	envPath := writeFile(t, ".env", EnvMnemonic+"=\"test test test test test test test test test test test junk\"\n"+EnvRedisURL+"=redis://localhost:6379/0\n")

	cfg, err := Load(envPath, "")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !strings.HasPrefix(cfg.Mnemonic, "test test") {
		t.Errorf("Expected mnemonic from .env, got %q", cfg.Mnemonic)
	}
	if cfg.RedisURL != "redis://localhost:6379/0" {
		t.Errorf("Expected redis url from .env, got %q", cfg.RedisURL)
	}
}

func TestLoad_MissingEnvFileIgnored(t *testing.T) {
	clearEnv(t)

	if _, err := Load(filepath.Join(t.TempDir(), ".env"), ""); err != nil {
		t.Errorf("Expected missing .env to be ignored, got %v", err)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name        string
		yaml        string
		env         map[string]string
		errContains string
	}{
		{
			name:        "invalid yaml",
			yaml:        "chain_ids: [1,",
			errContains: "parsing YAML",
		},
		{
			name:        "key and mnemonic",
			env:         map[string]string{EnvPrivateKey: "0xabc", EnvMnemonic: "a b c"},
			errContains: "only one of private key, mnemonic and keystore",
		},
		{
			name:        "mnemonic and keystore",
			env:         map[string]string{EnvMnemonic: "a b c", EnvKeystore: "ks.json"},
			errContains: "only one of private key, mnemonic and keystore",
		},
		{
			name:        "missing keystore file",
			env:         map[string]string{EnvKeystore: "/nonexistent/keystore.json"},
			errContains: "keystore",
		},
		{
			name:        "bad data api url",
			env:         map[string]string{EnvDataAPIURL: "ftp://data"},
			errContains: "data api url",
		},
		{
			name:        "factory without hash",
			env:         map[string]string{EnvAccountFactory: testFactory},
			errContains: "set together",
		},
		{
			name:        "bad factory",
			env:         map[string]string{EnvAccountFactory: "0x12", EnvAccountInitCodeHash: testHash},
			errContains: "account factory",
		},
		{
			name:        "file and redis",
			env:         map[string]string{EnvSessionFile: "s.json", EnvRedisURL: "redis://localhost"},
			errContains: "only one of session file and redis url",
		},
		{
			name:        "unknown chain",
			env:         map[string]string{EnvChainIDs: "1,atlantis"},
			errContains: EnvChainIDs,
		},
		{
			name:        "short auth secret",
			env:         map[string]string{EnvAuthSecret: "too-short"},
			errContains: "auth secret",
		},
		{
			name:        "bad debug flag",
			env:         map[string]string{EnvDebug: "sometimes"},
			errContains: EnvDebug,
		},
		{
			name:        "fetch shorter than request",
			yaml:        "timeouts:\n  request: 30s\n  fetch: 1s\n",
			errContains: "fetch timeout",
		},
		{
			name:        "bad rpc url",
			yaml:        "rpc_urls:\n  1: not-a-url\n",
			errContains: "rpc url for chain 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.yaml != "" {
				path = writeFile(t, "config.yaml", tt.yaml)
			}

			_, err := Load("", path)
			if err == nil {
				t.Fatal("Expected error")
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("Expected error containing %q, got %v", tt.errContains, err)
			}
		})
	}
}

func TestLoad_Keystore(t *testing.T) {
	clearEnv(t)
	ksPath := writeFile(t, "owner.json", "{}")
	t.Setenv(EnvKeystore, ksPath)
	t.Setenv(EnvKeystorePassword, " pass with spaces ")

	cfg, err := Load("", "")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Keystore != ksPath {
		t.Errorf("Expected keystore %s, got %s", ksPath, cfg.Keystore)
	}
	if cfg.KeystorePassword != " pass with spaces " {
		t.Errorf("Expected password kept verbatim, got %q", cfg.KeystorePassword)
	}
	if err := cfg.RequireSigner(); err != nil {
		t.Errorf("Expected keystore to satisfy RequireSigner, got %v", err)
	}

	yamlPath := writeFile(t, "config.yaml", "keystore: "+ksPath+"\nkeystore_password: secret\n")
	clearEnv(t)
	cfg, err = Load("", yamlPath)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Keystore != ksPath || cfg.KeystorePassword != "secret" {
		t.Errorf("Expected keystore settings from YAML, got %q / %q", cfg.Keystore, cfg.KeystorePassword)
	}
}

func TestParseChainIDs(t *testing.T) {
	ids, err := ParseChainIDs("1, ,sepolia,")
	if err != nil {
		t.Fatalf("ParseChainIDs error: %v", err)
	}
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 11155111 {
		t.Errorf("Unexpected ids %v", ids)
	}

	if _, err := ParseChainIDs("0"); !errors.Is(err, txkit.ErrInvalidChainID) {
		t.Errorf("Expected ErrInvalidChainID, got %v", err)
	}
}
