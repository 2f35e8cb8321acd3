// Command fighter-timeline serves and inspects career timelines parsed from
// fighter biographies.
//
// Architecture overview:
//   - Parsing: internal/timeline turns a biography into dated events, dropping
//     blocks whose header is malformed.
//   - Presentation: internal/highlights applies the minimum-event policy and
//     drives internal/scroll, which paces one scroll run per container.
//   - Telemetry: parse and run milestones flow through the progress Hub to the
//     zap and Prometheus sinks.
//   - Storage: fighters come from an in-memory seed file or a Postgres table.
//
// Run locally: go run . serve --config config.yaml (or rely on TIMELINE_* env
// overrides).
package main

import (
	"github.com/JakeFAU/fighter-timeline/cmd"
)

func main() {
	cmd.Execute()
}
