package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvroute/filter"
	"github.com/katalvlaran/lvroute/instance"
	"github.com/katalvlaran/lvroute/interval"
	"github.com/katalvlaran/lvroute/pathstate"
	"github.com/katalvlaran/lvroute/search"
)

type rootFlags struct {
	instance string
	verbose  bool
	logger   *zap.Logger
}

func newRootCmd() *cobra.Command {
	var f rootFlags
	root := &cobra.Command{
		Use:           "routecheck",
		Short:         "Check and improve vehicle routes with incremental feasibility checkers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			if f.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			if f.logger, err = config.Build(); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if f.logger != nil {
				_ = f.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVarP(&f.instance, "instance", "i", "", "instance YAML file")
	root.PersistentFlags().BoolVarP(&f.verbose, "verbose", "v", false, "log every filtered candidate")
	_ = root.MarkPersistentFlagRequired("instance")

	root.AddCommand(newValidateCmd(&f), newCheckCmd(&f), newSolveCmd(&f))
	return root
}

func newValidateCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Parse the instance and build its checkers",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := instance.Load(f.instance)
			if err != nil {
				return err
			}
			if _, err = in.Build(filter.WithLogger(f.logger)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "instance %q: %d nodes, %d vehicles, %d classes\n",
				in.Name, len(in.Nodes), len(in.Vehicles), in.Classes)
			return nil
		},
	}
}

// routesFile is the YAML layout read by check: one route per vehicle,
// terminals included.
type routesFile struct {
	Routes [][]int `yaml:"routes"`
}

func newCheckCmd(f *rootFlags) *cobra.Command {
	var routesPath string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check routes read from a YAML file and print their cost",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := instance.Load(f.instance)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(routesPath)
			if err != nil {
				return err
			}
			var rf routesFile
			if err = yaml.Unmarshal(data, &rf); err != nil {
				return fmt.Errorf("routes %s: %w", routesPath, err)
			}
			m, err := in.Build(filter.WithLogger(f.logger))
			if err != nil {
				return err
			}
			if err = describe(m.PathState, rf.Routes); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !m.Manager.Propose(nil) {
				stats := m.Manager.Stats()
				for name := range stats.RejectedBy {
					fmt.Fprintf(out, "infeasible: rejected by %s\n", name)
				}
				return fmt.Errorf("routes %s are infeasible", routesPath)
			}
			printSolution(out, m.Routes(), m.Energy.CommittedCost(), m.Penalty())
			return nil
		},
	}
	cmd.Flags().StringVarP(&routesPath, "routes", "r", "", "routes YAML file")
	_ = cmd.MarkFlagRequired("routes")
	return cmd
}

// describe turns explicit routes into a pending change of ps. Nodes left
// out of every route stay loops.
func describe(ps *pathstate.PathState, routes [][]int) error {
	if len(routes) != ps.NumPaths() {
		return fmt.Errorf("%d routes for %d vehicles", len(routes), ps.NumPaths())
	}
	seen := make([]bool, ps.NumNodes())
	for v, route := range routes {
		if len(route) < 2 || route[0] != ps.Start(v) || route[len(route)-1] != ps.End(v) {
			return fmt.Errorf("route %d must run from node %d to node %d", v, ps.Start(v), ps.End(v))
		}
		var chains []pathstate.ChainBounds
		for _, node := range route {
			if node < 0 || node >= ps.NumNodes() || seen[node] {
				return fmt.Errorf("route %d: node %d out of range or repeated", v, node)
			}
			seen[node] = true
			idx := ps.CommittedIndex(node)
			if n := len(chains); n > 0 && chains[n-1].End == idx {
				chains[n-1].End++
				continue
			}
			chains = append(chains, pathstate.ChainBounds{Begin: idx, End: idx + 1})
		}
		ps.ChangePath(v, chains...)
	}
	return nil
}

func newSolveCmd(f *rootFlags) *cobra.Command {
	var (
		seed       int64
		iterations int
		workers    int
		timeLimit  time.Duration
	)
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Improve routes by filtered local search",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := instance.Load(f.instance)
			if err != nil {
				return err
			}
			res, err := search.RunParallel(cmd.Context(), in,
				search.WithSeed(seed),
				search.WithIterations(iterations),
				search.WithWorkers(workers),
				search.WithTimeLimit(timeLimit),
				search.WithLogger(f.logger),
			)
			if err != nil {
				return err
			}
			printSolution(cmd.OutOrStdout(), res.Routes, res.EnergyCost, res.Penalty)
			return nil
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed, 0 for the fixed default")
	cmd.Flags().IntVar(&iterations, "iterations", search.DefaultIterations, "moves proposed per worker")
	cmd.Flags().IntVar(&workers, "workers", 1, "independent parallel searches")
	cmd.Flags().DurationVar(&timeLimit, "time-limit", 0, "soft time limit per worker, 0 for none")
	return cmd
}

func printSolution(w io.Writer, routes [][]int, energyCost, penalty int64) {
	for v, route := range routes {
		fmt.Fprintf(w, "vehicle %d: %v\n", v, route)
	}
	fmt.Fprintf(w, "energy %d\npenalty %d\nobjective %d\n", energyCost, penalty, interval.CapAdd(energyCost, penalty))
}
