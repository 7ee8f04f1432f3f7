// Package version stamps reporter events with the capability set of the
// dispatcher build that produced them, so a caller comparing logs from two
// builds can tell whether a behavioural difference follows from a version
// change rather than input data (spec §9, "diagnostic/report events").
package version

import "github.com/blang/semver/v4"

// Current is this module's capability version. It is bumped whenever a
// strategy is added to the congruence dispatcher or an engine's default
// configuration changes in a way that could alter which strategy wins a
// race.
var Current = semver.MustParse("0.1.0")

// String renders Current for inclusion in a report.Reporter event field.
func String() string { return Current.String() }
