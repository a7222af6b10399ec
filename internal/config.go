package internal

import (
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App    ApplicationConfig `yaml:"app"`
	Vault  VaultConfig       `yaml:"vault"`
	SQLite SQLiteConfig      `yaml:"sqlite"`
	Auth   AuthConfig        `yaml:"auth"`
	Quotes QuotesConfig      `yaml:"quotes"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Vault.Validate(); err != nil {
		return err
	}
	if err := c.SQLite.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	return c.Quotes.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// VaultConfig holds the path to the Markdown vault directory.
type VaultConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the vault configuration.
func (c *VaultConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// SQLiteConfig holds SQLite database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	// Normalise empty mode to "disabled" for backward compatibility.
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// QuotesConfig holds the quote-engine configuration.
type QuotesConfig struct {
	// Tag marks the notes scanned for quote listings.
	Tag string `yaml:"tag"`
	// MinimalQuoteLength drops quotes shorter than this many characters.
	MinimalQuoteLength int `yaml:"minimal_quote_length"`
	// DefaultReloadInterval is the refresh interval, in seconds, for
	// blocks that do not declare their own.
	DefaultReloadInterval int64 `yaml:"default_reload_interval"`
	// BlockFormat is the render template; {{content}} and {{author}}
	// are substituted.
	BlockFormat string `yaml:"block_format"`
	// InheritListingStyle renders the author with the styling used in
	// the listing header.
	InheritListingStyle bool `yaml:"inherit_listing_style"`
	// ScanOnBlockRender rescans the vault before every block render.
	ScanOnBlockRender bool `yaml:"scan_on_block_render"`
	// AutoIDLength is the length of generated block ids.
	AutoIDLength int `yaml:"auto_id_length"`
	// TemplateFolder exempts its notes from one-time block freezing.
	TemplateFolder string `yaml:"template_folder"`
}

// Validate validates the quotes configuration.
func (c *QuotesConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Tag, validation.Required),
		validation.Field(&c.MinimalQuoteLength, validation.Min(0)),
		validation.Field(&c.DefaultReloadInterval, validation.Min(0)),
		validation.Field(&c.BlockFormat, validation.Required),
		validation.Field(&c.AutoIDLength, validation.Min(1)),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Vault: VaultConfig{
			Path: "./vault",
		},
		SQLite: SQLiteConfig{
			Path: "./ansuz.db",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
		Quotes: QuotesConfig{
			Tag:                   "quotes",
			MinimalQuoteLength:    5,
			DefaultReloadInterval: 86400,
			BlockFormat:           "{{content}}\n— {{author}}",
			AutoIDLength:          5,
		},
	}
}
