package main

import (
	"fmt"
	"math/rand"
	"os"

	kitlog "github.com/go-kit/kit/log"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	astro "github.com/yusif-razzaq/AstroPPO-YR"
)

var (
	confPath string
	seed     int64
	maxSteps int
)

func sessionConfig() astro.Config {
	cfg := astro.DefaultConfig()
	if confPath != "" {
		var err error
		cfg, err = astro.LoadConfig(confPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	return cfg
}

// rollout plays one episode with a uniform random policy and returns the
// cumulative reward and the number of steps taken.
func rollout(env *astro.SpacecraftEnv, rng *rand.Rand) (float64, int) {
	env.Reset()
	total := 0.0
	for step := 0; step < maxSteps; step++ {
		_, reward, done, _, err := env.Step(rng.Intn(env.NumActions()))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		total += reward
		if done {
			return total, step + 1
		}
	}
	return total, maxSteps
}

func runCommand() *cobra.Command {
	var episodes int
	var csvOut string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run random policy episodes against the transfer environment",
		Run: func(cmd *cobra.Command, args []string) {
			logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
			env := astro.NewSpacecraftEnv(sessionConfig())
			rng := rand.New(rand.NewSource(seed))
			for ep := 0; ep < episodes; ep++ {
				total, steps := rollout(env, rng)
				logger.Log("level", "info", "subsys", "cli", "episode", ep, "steps", steps, "reward", total, "done", env.Done())
			}
			if csvOut != "" {
				conf := astro.ExportConfig{Filename: csvOut, OutputDir: "."}
				if err := astro.ExportTrajectory(conf, env.History()); err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(1)
				}
			}
		},
	}
	cmd.Flags().IntVar(&episodes, "episodes", 1, "number of episodes to run")
	cmd.Flags().StringVar(&csvOut, "csv", "", "export the last trajectory history to <csv>.csv")
	return cmd
}

func plotCommand() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Run one episode and plot its trajectory with the orbit outlines",
		Run: func(cmd *cobra.Command, args []string) {
			env := astro.NewSpacecraftEnv(sessionConfig())
			rng := rand.New(rand.NewSource(seed))
			rollout(env, rng)

			p := plot.New()
			p.Title.Text = "Spacecraft Trajectory"
			p.X.Label.Text = "X (km)"
			p.Y.Label.Text = "Y (km)"

			traces := []struct {
				name  string
				state astro.State
			}{
				{"initial orbit", env.InitialOrbit()},
				{"final orbit", env.Current()},
				{"target orbit", env.TargetOrbit()},
			}
			for i, tr := range traces {
				samples, err := env.OrbitTrace(tr.state)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(1)
				}
				line, err := plotter.NewLine(statePoints(samples))
				if err != nil {
					continue
				}
				line.Color = plotutil.Color(i)
				p.Add(line)
				p.Legend.Add(tr.name, line)
			}
			if hist := env.History(); len(hist) > 0 {
				line, err := plotter.NewLine(statePoints(hist))
				if err == nil {
					line.Color = plotutil.Color(len(traces))
					p.Add(line)
					p.Legend.Add("trajectory", line)
				}
			}
			if err := p.Save(8*vg.Inch, 8*vg.Inch, out); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		},
	}
	cmd.Flags().StringVar(&out, "out", "trajectory.png", "output image path")
	return cmd
}

func statePoints(samples []astro.State) plotter.XYs {
	points := make(plotter.XYs, len(samples))
	for i, s := range samples {
		points[i] = plotter.XY{X: s.R[0], Y: s.R[1]}
	}
	return points
}

func main() {
	root := &cobra.Command{Use: "astroppo", Short: "Two-body orbital transfer environment"}
	root.PersistentFlags().StringVar(&confPath, "config", "", "directory holding conf.toml")
	root.PersistentFlags().Int64Var(&seed, "seed", 42, "random policy seed")
	root.PersistentFlags().IntVar(&maxSteps, "max-steps", 50, "step cap per episode")
	root.AddCommand(runCommand(), plotCommand())
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
