// Orca generates executable pipeline definitions.
//
// A pipeline template supplies default notifications, parameters, triggers and
// variable declarations. A configuration overrides or excludes them, and an
// execution request adds identity, concurrency fallbacks and the trigger payload.
package main

import (
	"github.com/sadanandam5592/orca/cmd/orca"
)

func main() {
	orca.Execute()
}
