// Package config loads the settings of the example app from an optional
// .env file, an optional YAML file and TXKIT_* environment variables, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	txkit "github.com/etherspot/transaction-kit-go"
	"github.com/etherspot/transaction-kit-go/validation"
)

// Environment variables
const (
	EnvPrivateKey          = "TXKIT_PRIVATE_KEY"
	EnvMnemonic            = "TXKIT_MNEMONIC"
	EnvKeystore            = "TXKIT_KEYSTORE"
	EnvKeystorePassword    = "TXKIT_KEYSTORE_PASSWORD"
	EnvDataAPIKey          = "TXKIT_DATA_API_KEY"
	EnvDataAPIURL          = "TXKIT_DATA_API_URL"
	EnvAccountFactory      = "TXKIT_ACCOUNT_FACTORY"
	EnvAccountInitCodeHash = "TXKIT_ACCOUNT_INIT_CODE_HASH"
	EnvSessionFile         = "TXKIT_SESSION_FILE"
	EnvRedisURL            = "TXKIT_REDIS_URL"
	EnvChainIDs            = "TXKIT_CHAIN_IDS"
	EnvDebug               = "TXKIT_DEBUG"
	EnvAuthSecret          = "TXKIT_AUTH_SECRET"
)

// ErrNoSigner is returned by RequireSigner when no owner key source is configured.
var ErrNoSigner = errors.New("config: one of TXKIT_PRIVATE_KEY, TXKIT_MNEMONIC or TXKIT_KEYSTORE is required")

// Config holds the example app settings.
type Config struct {
	PrivateKey          string           `yaml:"private_key"`
	Mnemonic            string           `yaml:"mnemonic"`
	Keystore            string           `yaml:"keystore"`
	KeystorePassword    string           `yaml:"keystore_password"`
	DataAPIKey          string           `yaml:"data_api_key"`
	DataAPIURL          string           `yaml:"data_api_url"`
	AccountFactory      string           `yaml:"account_factory"`
	AccountInitCodeHash string           `yaml:"account_init_code_hash"`
	SessionFile         string           `yaml:"session_file"`
	RedisURL            string           `yaml:"redis_url"`
	AuthSecret          string           `yaml:"auth_secret"`
	ChainIDs            []int64          `yaml:"chain_ids"`
	RPCURLs             map[int64]string `yaml:"rpc_urls"`
	Debug               bool             `yaml:"debug"`

	Timeouts struct {
		Request time.Duration `yaml:"request"`
		Fetch   time.Duration `yaml:"fetch"`
	} `yaml:"timeouts"`
}

// Load reads envFile and yamlFile, then applies environment overrides and
// validates the result. Either path may be empty. A missing envFile is
// ignored; a missing yamlFile is an error.
func Load(envFile, yamlFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("error loading env file: %w", err)
		}
	}

	cfg := &Config{}
	if yamlFile != "" {
		data, err := os.ReadFile(yamlFile)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing YAML: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		EnvPrivateKey:          &c.PrivateKey,
		EnvMnemonic:            &c.Mnemonic,
		EnvKeystore:            &c.Keystore,
		EnvDataAPIKey:          &c.DataAPIKey,
		EnvDataAPIURL:          &c.DataAPIURL,
		EnvAccountFactory:      &c.AccountFactory,
		EnvAccountInitCodeHash: &c.AccountInitCodeHash,
		EnvSessionFile:         &c.SessionFile,
		EnvRedisURL:            &c.RedisURL,
		EnvAuthSecret:          &c.AuthSecret,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(key); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	// Passwords are taken verbatim.
	if v, ok := os.LookupEnv(EnvKeystorePassword); ok {
		c.KeystorePassword = v
	}

	if v, ok := os.LookupEnv(EnvChainIDs); ok {
		ids, err := ParseChainIDs(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvChainIDs, err)
		}
		c.ChainIDs = ids
	}

	if v, ok := os.LookupEnv(EnvDebug); ok && v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: invalid boolean %q", EnvDebug, v)
		}
		c.Debug = debug
	}
	return nil
}

func (c *Config) applyDefaults() {
	if len(c.ChainIDs) == 0 {
		c.ChainIDs = []int64{txkit.DefaultChainID}
	}
	if c.Timeouts.Request == 0 {
		c.Timeouts.Request = txkit.DefaultTimeouts.RequestTimeout
	}
	if c.Timeouts.Fetch == 0 {
		c.Timeouts.Fetch = txkit.DefaultTimeouts.FetchTimeout
	}
}

// Validate checks the format of every configured value.
func (c *Config) Validate() error {
	signers := 0
	for _, v := range []string{c.PrivateKey, c.Mnemonic, c.Keystore} {
		if v != "" {
			signers++
		}
	}
	if signers > 1 {
		return errors.New("config: set only one of private key, mnemonic and keystore")
	}
	if c.Keystore != "" {
		if _, err := os.Stat(c.Keystore); err != nil {
			return fmt.Errorf("config: keystore: %w", err)
		}
	}
	if c.DataAPIURL != "" {
		if err := validation.ValidateBaseURL(c.DataAPIURL); err != nil {
			return fmt.Errorf("config: data api url: %w", err)
		}
	}
	if (c.AccountFactory == "") != (c.AccountInitCodeHash == "") {
		return errors.New("config: account factory and init code hash must be set together")
	}
	if c.AccountFactory != "" {
		if err := validation.ValidateAddress(c.AccountFactory); err != nil {
			return fmt.Errorf("config: account factory: %w", err)
		}
		if err := validation.ValidateHash(c.AccountInitCodeHash); err != nil {
			return fmt.Errorf("config: account init code hash: %w", err)
		}
	}
	if c.SessionFile != "" && c.RedisURL != "" {
		return errors.New("config: set only one of session file and redis url")
	}
	if c.AuthSecret != "" && len(c.AuthSecret) < 32 {
		return errors.New("config: auth secret must be at least 32 bytes")
	}
	for _, id := range c.ChainIDs {
		if err := validation.ValidateChainID(id); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	for id, rpc := range c.RPCURLs {
		if err := validation.ValidateBaseURL(rpc); err != nil {
			return fmt.Errorf("config: rpc url for chain %d: %w", id, err)
		}
	}
	if err := c.TimeoutConfig().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// RequireSigner returns ErrNoSigner unless a private key, mnemonic or keystore is set.
func (c *Config) RequireSigner() error {
	if c.PrivateKey == "" && c.Mnemonic == "" && c.Keystore == "" {
		return ErrNoSigner
	}
	return nil
}

// TimeoutConfig returns the configured timeouts.
func (c *Config) TimeoutConfig() txkit.TimeoutConfig {
	return txkit.TimeoutConfig{
		RequestTimeout: c.Timeouts.Request,
		FetchTimeout:   c.Timeouts.Fetch,
	}
}

// ParseChainIDs parses a comma-separated list of chain ids or names.
func ParseChainIDs(s string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := txkit.ParseChainID(part)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
