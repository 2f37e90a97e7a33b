// Package version reports the API identity and the build information injected
// at link time.
package version

import "runtime"

const (
	// API is the public API version advertised by the service.
	API  = "2.0"
	Name = "Universal WSD Sentiment Analyzer"
)

// Build information, injected via ldflags at build time
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Features lists the capabilities advertised on the version endpoint.
var Features = []string{
	"WSD-based sentiment",
	"Product review analysis",
	"Social media analysis",
	"Batch processing",
	"Modern slang support",
	"Emoji processing",
	"URL-based article analysis",
}

// Info holds complete build information
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
}

// Get returns the current build information
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
	}
}
