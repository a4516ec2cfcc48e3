package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is a scripted storefront interaction.
type Scenario struct {
	// Name uniquely identifies the scenario; it is also the golden file
	// basename.
	Name string `yaml:"name"`

	// Description explains what the scenario demonstrates.
	Description string `yaml:"description,omitempty"`

	// CartType selects drawer or page cart behavior. Defaults to drawer.
	CartType string `yaml:"cart_type,omitempty"`

	// Backend seeds the fake cart resource.
	Backend BackendConfig `yaml:"backend,omitempty"`

	// Steps are executed in order.
	Steps []Step `yaml:"steps"`
}

// BackendConfig seeds the fake cart backend.
type BackendConfig struct {
	// Products the add endpoint recognizes, keyed by id.
	Products []Product `yaml:"products,omitempty"`

	// Lines pre-populate the server cart.
	Lines []SeedLine `yaml:"lines,omitempty"`
}

// Product is a purchasable entry in the fake catalog.
type Product struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
	Price int64  `yaml:"price"` // minor units
}

// SeedLine pre-populates one cart line.
type SeedLine struct {
	Key      string `yaml:"key"`
	Title    string `yaml:"title"`
	Price    int64  `yaml:"price"`
	Quantity int    `yaml:"quantity"`
}

// Step is one scenario action. Exactly one field should be set.
type Step struct {
	// User actions.
	OpenSurface    string            `yaml:"open_surface,omitempty"`
	CloseSurface   string            `yaml:"close_surface,omitempty"`
	Click          string            `yaml:"click,omitempty"` // selector
	Key            string            `yaml:"key,omitempty"`   // "Escape", "Tab", "Shift+Tab"
	AddToCart      map[string]string `yaml:"add_to_cart,omitempty"`
	ChangeQuantity *QuantityStep     `yaml:"change_quantity,omitempty"`

	// Network and time control.
	Deliver    int        `yaml:"deliver,omitempty"`     // release n held responses (oldest first)
	DeliverAt  int        `yaml:"deliver_at,omitempty"`  // release the nth-oldest held response (1-based)
	FailNext   *FailStep  `yaml:"fail_next,omitempty"`   // program the next matching call to fail
	AdvanceMS  int        `yaml:"advance_ms,omitempty"`  // advance the manual scheduler
}

// QuantityStep is a quantity-change intent.
type QuantityStep struct {
	LineKey  string `yaml:"key"`
	Quantity int    `yaml:"quantity"`
}

// FailStep programs a failure for the next call of the given operation.
type FailStep struct {
	Op          string `yaml:"op"` // "fetch", "add", "change"
	Status      int    `yaml:"status,omitempty"`
	Description string `yaml:"description,omitempty"` // add rejections only
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if s.Name == "" {
		return nil, fmt.Errorf("scenario %s: name is required", path)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q: at least one step is required", s.Name)
	}
	return &s, nil
}
