package main

import (
	"fmt"
	"io"
	"runtime"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/junctree/discrete"
	"github.com/katalvlaran/junctree/gaussian"
	"github.com/katalvlaran/junctree/inference"
	"github.com/katalvlaran/junctree/internal/problem"
	"github.com/katalvlaran/junctree/junction"
	"github.com/katalvlaran/junctree/metrics"
)

// flags shared by every subcommand.
type flags struct {
	file        string
	verbose     bool
	workers     int
	granularity string
	metrics     bool
}

func newRootCommand() *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:          "junctree",
		Short:        "Build and eliminate junction trees of factor graphs",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if f.verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}
	root.PersistentFlags().StringVarP(&f.file, "file", "f", "problem.yaml", "path to the YAML problem")
	root.PersistentFlags().BoolVarP(&f.verbose, "verbose", "v", false, "verbose output")
	root.PersistentFlags().IntVarP(&f.workers, "workers", "w", runtime.GOMAXPROCS(0), "cliques eliminated concurrently (1 = sequential)")

	tree := &cobra.Command{
		Use:   "tree",
		Short: "Print the junction tree and factor counts per clique",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(cmd.OutOrStdout(), f)
		},
	}

	elim := &cobra.Command{
		Use:   "eliminate",
		Short: "Eliminate the junction tree and print the Bayes tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEliminate(cmd, f)
		},
	}
	elim.Flags().StringVarP(&f.granularity, "granularity", "g", "clique", "conditionals per clique: clique|variable")
	elim.Flags().BoolVar(&f.metrics, "metrics", false, "print Prometheus metrics after elimination")

	root.AddCommand(tree, elim)

	return root
}

func loadProblem(f *flags) (*problem.Problem, error) {
	log.Debugf("reading problem from %s", f.file)
	p, err := problem.Load(f.file)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", f.file)
	}

	return p, nil
}

func treeOptions(f *flags, obs junction.Observer) []junction.Option {
	opts := []junction.Option{
		junction.WithWorkers(f.workers),
		junction.WithLogger(log.StandardLogger()),
	}
	if obs != nil {
		opts = append(opts, junction.WithObserver(obs))
	}

	return opts
}

func runTree(out io.Writer, f *flags) error {
	p, err := loadProblem(f)
	if err != nil {
		return err
	}
	switch p.Family {
	case problem.FamilyGaussian:
		fg, err := p.Gaussian()
		if err != nil {
			return errors.Wrap(err, "build gaussian graph")
		}
		jt, err := junction.New(fg, p.Keys(), treeOptions(f, nil)...)
		if err != nil {
			return errors.Wrap(err, "build junction tree")
		}
		fmt.Fprint(out, jt.String())
	default:
		fg, err := p.Discrete()
		if err != nil {
			return errors.Wrap(err, "build discrete graph")
		}
		jt, err := junction.New(fg, p.Keys(), treeOptions(f, nil)...)
		if err != nil {
			return errors.Wrap(err, "build junction tree")
		}
		fmt.Fprint(out, jt.String())
	}

	return nil
}

func runEliminate(cmd *cobra.Command, f *flags) error {
	out := cmd.OutOrStdout()
	p, err := loadProblem(f)
	if err != nil {
		return err
	}
	g, err := inference.ParseGranularity(f.granularity)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	var obs junction.Observer
	if f.metrics {
		obs = metrics.NewCollector(reg)
	}

	switch p.Family {
	case problem.FamilyGaussian:
		fg, err := p.Gaussian()
		if err != nil {
			return errors.Wrap(err, "build gaussian graph")
		}
		jt, err := junction.New(fg, p.Keys(), treeOptions(f, obs)...)
		if err != nil {
			return errors.Wrap(err, "build junction tree")
		}
		fmt.Fprint(out, jt.String())
		bt, err := gaussian.Eliminate(cmd.Context(), jt, gaussian.WithGranularity(g))
		if err != nil {
			return errors.Wrap(err, "eliminate")
		}
		fmt.Fprint(out, bt.String())
		values, err := gaussian.Optimize(bt)
		if err != nil {
			return errors.Wrap(err, "optimize")
		}
		fmt.Fprint(out, values.String())
	default:
		fg, err := p.Discrete()
		if err != nil {
			return errors.Wrap(err, "build discrete graph")
		}
		jt, err := junction.New(fg, p.Keys(), treeOptions(f, obs)...)
		if err != nil {
			return errors.Wrap(err, "build junction tree")
		}
		fmt.Fprint(out, jt.String())
		bt, err := discrete.Eliminate(cmd.Context(), jt, discrete.WithGranularity(g))
		if err != nil {
			return errors.Wrap(err, "eliminate")
		}
		fmt.Fprint(out, bt.String())
	}

	if f.metrics {
		return dumpMetrics(out, reg)
	}

	return nil
}

func dumpMetrics(out io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return errors.Wrap(err, "gather metrics")
	}
	for _, mf := range families {
		if _, err = expfmt.MetricFamilyToText(out, mf); err != nil {
			return errors.Wrap(err, "write metrics")
		}
	}

	return nil
}
