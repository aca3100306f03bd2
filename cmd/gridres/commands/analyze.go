package commands

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-gridres/pkg/attrs"
	"github.com/dd0wney/cluso-gridres/pkg/engine"
	"github.com/dd0wney/cluso-gridres/pkg/graphml"
	"github.com/dd0wney/cluso-gridres/pkg/metrics"
)

const (
	topCentralityRows = 15
	topCommunityRows  = 15
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <topology.graphml>",
	Short: "Run the full batch analysis and print the report",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	graph, err := graphml.ParseFile(args[0])
	if err != nil {
		return err
	}

	eng, err := engine.New(graph, cfg, logger, metrics.NewRegistry())
	if err != nil {
		return err
	}

	report, err := eng.RunBatch(cmd.Context())
	if err != nil {
		return err
	}

	printReport(report, cfg.TopHubs)
	return nil
}

func printReport(report *engine.BatchReport, topHubs int) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	fmt.Fprintf(w, "\n== Top hubs ==\n")
	fmt.Fprintf(w, "#\tSubstation\tLines\n")
	hubs := report.DegreeRanking
	if len(hubs) > topHubs {
		hubs = hubs[:topHubs]
	}
	for i, h := range hubs {
		fmt.Fprintf(w, "%d\t%s\t%d\n", i+1, h.ID, h.Degree)
	}

	fmt.Fprintf(w, "\n== Dead ends ==\n")
	fmt.Fprintf(w, "Degree-1 substations:\t%d\n", len(report.Leaves))

	fmt.Fprintf(w, "\n== Degree distribution ==\n")
	fmt.Fprintf(w, "Degree\tNodes\n")
	degrees := make([]int, 0, len(report.Histogram))
	for d := range report.Histogram {
		degrees = append(degrees, d)
	}
	sort.Ints(degrees)
	for _, d := range degrees {
		fmt.Fprintf(w, "%d\t%d\n", d, report.Histogram[d])
	}

	fmt.Fprintf(w, "\n== Betweenness centrality (topological) ==\n")
	fmt.Fprintf(w, "#\tSubstation\tScore\n")
	for i, s := range report.TopCentrality(topCentralityRows) {
		fmt.Fprintf(w, "%d\t%s\t%.6f\n", i+1, s.ID, s.Score)
	}

	fmt.Fprintf(w, "\n== Betweenness centrality (length-weighted) ==\n")
	fmt.Fprintf(w, "#\tSubstation\tScore\n")
	top := report.WeightedCentrality
	if len(top) > topCentralityRows {
		top = top[:topCentralityRows]
	}
	for i, s := range top {
		fmt.Fprintf(w, "%d\t%s\t%.6f\n", i+1, s.ID, s.Score)
	}

	fmt.Fprintf(w, "\n== Robustness (giant component, %% of initial) ==\n")
	fmt.Fprintf(w, "Step\tTargeted\tRandom\n")
	for i := range report.TargetedRobustness {
		random := ""
		if i < len(report.RandomRobustness) {
			random = fmt.Sprintf("%.1f%%", report.RandomRobustness[i].Alive*100)
		}
		fmt.Fprintf(w, "%d\t%.1f%%\t%s\n", i, report.TargetedRobustness[i].Alive*100, random)
	}

	fmt.Fprintf(w, "\n== Communities ==\n")
	fmt.Fprintf(w, "Detected:\t%d\tmodularity %.4f\n", len(report.Communities.Communities), report.Communities.Modularity)
	fmt.Fprintf(w, "Community\tSize\n")
	for i, members := range report.TopCommunities(topCommunityRows) {
		fmt.Fprintf(w, "#%d\t%d nodes\n", i+1, len(members))
	}

	fmt.Fprintf(w, "\n== Voltage classification (located nodes) ==\n")
	tierCounts := make(map[attrs.Tier]int)
	for _, row := range report.GeoRows {
		tierCounts[row.Tier]++
	}
	fmt.Fprintf(w, "Tier\tNodes\n")
	for _, tier := range attrs.Tiers() {
		fmt.Fprintf(w, "%s\t%d\n", tier, tierCounts[tier])
	}

	fmt.Fprintf(w, "\n== Top hub line composition ==\n")
	fmt.Fprintf(w, "Substation\tLines\t380kV+\t220kV\t110kV\tother\n")
	for _, hub := range report.HubComposition {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\n",
			hub.ID, hub.Degree,
			hub.Lines[attrs.Tier380Plus], hub.Lines[attrs.Tier220],
			hub.Lines[attrs.Tier110], hub.Lines[attrs.TierOther],
		)
	}

	w.Flush()
}
