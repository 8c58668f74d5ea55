package telemetry

import "os"

var observeEnabled bool

func init() {
	// Read once at process start. Mid-run environment changes have no effect
	// except the explicit test override in ObserveEnabled.
	observeEnabled = os.Getenv("PCHAT_OBSERVE_JSON") == "1"
}

// ObserveEnabled reports whether JSONL emission is on.
func ObserveEnabled() bool {
	// Preserve the startup value, but allow tests to enable mid-run via env.
	if os.Getenv("PCHAT_OBSERVE_JSON") == "1" {
		return true
	}
	return observeEnabled
}
