// gridres analyses the structural resilience of a power transmission
// network snapshot: hubs, centrality, percolation robustness, bottlenecks
// and communities.
package main

import "github.com/dd0wney/cluso-gridres/cmd/gridres/commands"

func main() {
	commands.Execute()
}
