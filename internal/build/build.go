// Package build provides build information that is linked into the application. Other
// packages within this project can use this information in logs etc..
package build

var (
	// Version is the build version of the application. It is set with -ldflags at build time.
	Version = "dev"

	// Commit is the commit hash the binary was built from.
	Commit = "none"

	// Date is the date this binary was built.
	Date = "unknown"

	// ProjectName is used as the namespace for metrics and the name of the tracer.
	ProjectName = "linkedstack"
)
