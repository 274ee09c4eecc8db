package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/hengadev/errsx"
	"gopkg.in/yaml.v3"

	"github.com/unixdj/spayd"
	"github.com/unixdj/spayd/money"
	"github.com/unixdj/spayd/qrcode"
)

// Config holds defaults for the payee and the image.  Flags override
// the environment, which overrides the config file.
type Config struct {
	Account   string `yaml:"account"`   // IBAN[+BIC]
	Currency  string `yaml:"currency"`  // ISO 4217 code
	Recipient string `yaml:"recipient"` // RN field
	Size      int    `yaml:"size"`      // code size in pixels
	Margin    int    `yaml:"margin"`    // margin in pixels
	Level     string `yaml:"level"`     // l, m, q or h
	Backend   string `yaml:"backend"`   // go-qrcode or rsc
	Checksum  bool   `yaml:"checksum"`  // emit CRC32
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Currency: "CZK",
		Size:     qrcode.DefaultSize,
		Margin:   qrcode.DefaultMargin,
		Level:    "l",
		Backend:  "go-qrcode",
		Checksum: true,
	}
}

// LoadConfig reads a YAML file over the defaults.  An empty path
// returns the defaults.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	if path == "" {
		return c, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Environment variables, also read from .env.
const (
	envAccount   = "SPAYD_ACCOUNT"
	envCurrency  = "SPAYD_CURRENCY"
	envRecipient = "SPAYD_RECIPIENT"
	envSize      = "SPAYD_SIZE"
	envMargin    = "SPAYD_MARGIN"
)

// applyEnv overrides c with the environment variables that are set.
func (c *Config) applyEnv(getenv func(string) string) error {
	errs := errsx.Map{}
	if v := getenv(envAccount); v != "" {
		c.Account = v
	}
	if v := getenv(envCurrency); v != "" {
		c.Currency = v
	}
	if v := getenv(envRecipient); v != "" {
		c.Recipient = v
	}
	for _, e := range []struct {
		name string
		p    *int
	}{
		{envSize, &c.Size},
		{envMargin, &c.Margin},
	} {
		v := getenv(e.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			errs.Set(e.name, err)
			continue
		}
		*e.p = n
	}
	return errs.AsError()
}

// Validate checks every field and reports all problems at once.
func (c Config) Validate() error {
	errs := errsx.Map{}
	if c.Account == "" {
		errs.Set("account", fmt.Errorf("no account; use -a or %s", envAccount))
	} else if _, err := spayd.ParseAccount(c.Account); err != nil {
		errs.Set("account", err)
	}
	if _, err := money.NewFromMinor(0, c.Currency); err != nil {
		errs.Set("currency", err)
	}
	if c.Size <= 0 {
		errs.Set("size", fmt.Errorf("size must be positive, got %d", c.Size))
	}
	if c.Margin < 0 {
		errs.Set("margin", fmt.Errorf("margin must not be negative, got %d", c.Margin))
	}
	if _, err := parseLevel(c.Level); err != nil {
		errs.Set("level", err)
	}
	if _, ok := backends[c.Backend]; !ok {
		errs.Set("backend", fmt.Errorf("unknown backend %q", c.Backend))
	}
	return errs.AsError()
}

var backends = map[string]qrcode.MatrixFunc{
	"go-qrcode": qrcode.GoQRCode,
	"rsc":       qrcode.RSC,
}

var levels = []string{"l", "m", "q", "h", "L", "M", "Q", "H"}

func parseLevel(s string) (qrcode.Level, error) {
	for i, v := range levels {
		if s == v {
			return qrcode.Level(i & 3), nil
		}
	}
	return 0, fmt.Errorf("unknown error correction level %q", s)
}
