package main

import "fmt"

// CollisionPolicy decides what happens when a computed destination already exists.
type CollisionPolicy string

const (
	CollisionOverwrite CollisionPolicy = "overwrite"
	CollisionSkip      CollisionPolicy = "skip"
	CollisionError     CollisionPolicy = "error"
	CollisionSuffix    CollisionPolicy = "suffix"
)

// parseCollisionPolicy validates a policy name coming from a flag, env var or config file.
func parseCollisionPolicy(s string) (CollisionPolicy, error) {
	switch p := CollisionPolicy(s); p {
	case CollisionOverwrite, CollisionSkip, CollisionError, CollisionSuffix:
		return p, nil
	case "":
		return CollisionOverwrite, nil
	default:
		return "", fmt.Errorf("unknown collision policy %q (want overwrite, skip, error or suffix)", s)
	}
}

// Options is the resolved configuration for a single run.
type Options struct {
	ResetTime   bool
	DestDir     string // empty means "next to each source file"
	ToJPEG      bool
	ExifTool    string
	OnCollision CollisionPolicy
	MaxDepth    int
	NoIgnore    bool
	Verify      bool
}

// RunStats holds counters reported in the closing summary line.
type RunStats struct {
	Collected      int
	Scrubbed       int
	ScrubFailed    int
	TimesReset     int
	TimesFailed    int
	Converted      int
	Renamed        int
	OutputFailed   int
	Skipped        int
	VerifyFailures int
}
