// Package log provides leveled logging for frontdoor-ipgroup-updater.
//
// The package keeps a small global API on top of charmbracelet/log so every
// component can log without carrying a logger around. Two flavours are
// available:
//
//   - Printf-style: Debugf, Infof, Warnf, Errorf, Fatalf
//   - Structured: Debug, Info, Warn, Error taking a message and key/value pairs
//
// # Example Usage
//
//	log.Infof("Fetching prefix list from %s", url)
//	log.Warn("Unknown network detected", "network", value)
//
// Enabling verbose mode for debug output:
//
//	log.SetVerbose(true)
//
// Switching to machine-readable output:
//
//	if err := log.SetFormat("json"); err != nil {
//	    log.Fatalf("%v", err)
//	}
//
// Error-level messages go to stderr, everything else to stdout, unless
// SetForceStdErr(true) is used.
package log
