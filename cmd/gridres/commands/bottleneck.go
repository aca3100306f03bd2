package commands

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-gridres/pkg/engine"
	"github.com/dd0wney/cluso-gridres/pkg/graphml"
	"github.com/dd0wney/cluso-gridres/pkg/grid"
	"github.com/dd0wney/cluso-gridres/pkg/metrics"
)

var (
	bottleneckSource string
	bottleneckSink   string
)

var bottleneckCmd = &cobra.Command{
	Use:   "bottleneck <topology.graphml>",
	Short: "Compute the min-cut bottleneck between two substations",
	Args:  cobra.ExactArgs(1),
	RunE:  runBottleneck,
}

func init() {
	bottleneckCmd.Flags().StringVar(&bottleneckSource, "source", "", "source substation id")
	bottleneckCmd.Flags().StringVar(&bottleneckSink, "sink", "", "sink substation id")
	bottleneckCmd.MarkFlagRequired("source")
	bottleneckCmd.MarkFlagRequired("sink")
}

func runBottleneck(cmd *cobra.Command, args []string) error {
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

	cut, err := eng.Bottleneck(bottleneckSource, bottleneckSink)
	switch {
	case errors.Is(err, grid.ErrNodeNotFound):
		return fmt.Errorf("unknown substation: %v", err)
	case errors.Is(err, grid.ErrSameNode):
		return errors.New("source and sink must be different substations")
	case errors.Is(err, grid.ErrNoPath):
		return errors.New("the two substations are not connected")
	case err != nil:
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "\n== Bottleneck %s -> %s ==\n", cut.Source, cut.Sink)
	fmt.Fprintf(w, "Cut value:\t%.6f\n", cut.CutValue)
	fmt.Fprintf(w, "Lines in cut:\t%d\n", len(cut.BoundaryEdges))
	if cut.MinVoltageOnCut > 0 {
		fmt.Fprintf(w, "Weakest link:\t%.0f kV\n", float64(cut.MinVoltageOnCut)/1000)
	} else {
		fmt.Fprintf(w, "Weakest link:\tunknown\n")
	}

	fmt.Fprintf(w, "\nLine\tVoltage (V)\tLength (m)\n")
	for _, e := range cut.BoundaryEdges {
		voltage := e.Voltage
		if voltage == "" {
			voltage = "-"
		}
		fmt.Fprintf(w, "%s - %s\t%s\t%.1f\n", e.From, e.To, voltage, e.LengthM)
	}
	w.Flush()

	return nil
}
