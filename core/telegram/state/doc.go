// Package state tracks per-user conversation state. The storefront has a
// single multi-step flow, the phone capture after a product pick, but the
// manager is kept generic so new flows only need a state constant and a
// registered handler.
package state
