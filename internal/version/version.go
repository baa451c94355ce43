// Package version exposes build metadata, reported by the health
// endpoint. Commit and BuildTime are meant to be set via -ldflags.
package version

var (
	Version   = "0.1.0"
	Commit    = "unknown"
	BuildTime = "unknown"
)

type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
}

func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
	}
}
