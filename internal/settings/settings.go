// Package settings loads and validates theme settings.
//
// Settings come from a YAML file and are validated against an embedded CUE
// schema before the runtime sees them, so every component can assume the
// configuration is well-formed.
package settings

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// Settings is the theme configuration consumed by the runtime.
type Settings struct {
	CartType               string `yaml:"cart_type" json:"cart_type"`
	Locale                 string `yaml:"locale" json:"locale"`
	Currency               string `yaml:"currency" json:"currency"`
	BaseURL                string `yaml:"base_url" json:"base_url"`
	NewsletterDelaySeconds int    `yaml:"newsletter_delay_seconds" json:"newsletter_delay_seconds"`
	NewsletterDismissDays  int    `yaml:"newsletter_dismiss_days" json:"newsletter_dismiss_days"`
	StoragePath            string `yaml:"storage_path" json:"storage_path"`
}

// CartTypeDrawer opens the cart drawer after add-to-cart;
// CartTypePage leaves navigation to the cart page.
const (
	CartTypeDrawer = "drawer"
	CartTypePage   = "page"
)

// Default returns the settings a theme ships with before merchant
// customization.
func Default() Settings {
	return Settings{
		CartType:               CartTypeDrawer,
		Locale:                 "en",
		Currency:               "USD",
		BaseURL:                "http://localhost:9292",
		NewsletterDelaySeconds: 5,
		NewsletterDismissDays:  30,
		StoragePath:            ":memory:",
	}
}

// Load reads settings from a YAML file, overlaying the defaults, and
// validates the result.
func Load(path string) (Settings, error) {
	s := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse settings: %w", err)
	}

	if err := Validate(s); err != nil {
		return s, err
	}
	return s, nil
}

// Validate unifies the settings with the embedded CUE schema.
func Validate(s Settings) error {
	ctx := cuecontext.New()

	schemaVal := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schemaVal.Err(); err != nil {
		return fmt.Errorf("compile settings schema: %w", err)
	}

	schema := schemaVal.LookupPath(cue.ParsePath("#Settings"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("lookup settings schema: %w", err)
	}

	unified := schema.Unify(ctx.Encode(s))
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}
