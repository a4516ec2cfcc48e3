// Package harness executes scripted storefront interaction scenarios.
//
// A scenario is a YAML file describing user actions (open a surface, type a
// quantity, press Escape) interleaved with explicit network-response
// delivery and manual time advancement. The fake cart backend holds every
// request until the scenario releases it, which makes response reordering -
// the behavior the cart controller exists to survive - a first-class
// scripting primitive.
//
// Each step appends observable state changes (open surfaces, cart totals,
// live-region announcements) to a trace; the trace plus the final drawer
// markup is compared against a golden file.
package harness
