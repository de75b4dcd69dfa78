package version

import "fmt"

// Set at build time via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info holds build information
type Info struct {
	Version string
	Commit  string
	Date    string
}

// Get returns the build information of this binary
func Get() Info {
	return Info{
		Version: Version,
		Commit:  Commit,
		Date:    Date,
	}
}

func (i Info) String() string {
	return fmt.Sprintf("fbxbatch %s (commit %s, built %s)", i.Version, i.Commit, i.Date)
}
