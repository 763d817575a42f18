package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"gridworks/internal/computer"
	"gridworks/internal/config"
	"gridworks/internal/fileio"
	"gridworks/internal/grid"
	"gridworks/internal/logger"
	"gridworks/internal/maze"
	"gridworks/internal/robots"
	"gridworks/internal/warehouse"
)

const defaultInput = "input.txt"

// runContext carries what every subcommand needs once the root Before hook
// has run.
type runContext struct {
	cfg    config.Config
	out    io.Writer
	errOut io.Writer
}

func newApp(out, errOut io.Writer) *cli.Command {
	rc := &runContext{out: out, errOut: errOut}
	return &cli.Command{
		Name:      "gridworks",
		Usage:     "simulate warehouse robots, walk mazes and run the three-register machine",
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: config.DefaultPath, Usage: "TOML settings file"},
			&cli.StringFlag{Name: "log-level", Usage: "trace, debug, info, warn or error"},
		},
		Before: rc.setup,
		Commands: []*cli.Command{
			{
				Name:      "warehouse",
				Usage:     "run the move list and print the GPS checksum",
				ArgsUsage: "[PATH]",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "wide", Usage: "double every column"},
					&cli.StringFlag{Name: "dump", Usage: "write the room before and after the run to FILE"},
				},
				Action: rc.warehouse,
			},
			{
				Name:      "maze",
				Usage:     "print the cheapest route cost",
				ArgsUsage: "[PATH]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "dump", Usage: "write the maze with the route to FILE"},
				},
				Action: rc.maze,
			},
			{
				Name:      "computer",
				Usage:     "run the program and print its output",
				ArgsUsage: "[PATH]",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "quine", Usage: "print the smallest A that makes the program print itself"},
				},
				Action: rc.computer,
			},
			{
				Name:      "robots",
				Usage:     "print the safety factor",
				ArgsUsage: "[PATH]",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "seconds", Usage: "simulated seconds (default from config)"},
					&cli.BoolFlag{Name: "show", Usage: "also print the room occupancy"},
				},
				Action: rc.robots,
			},
		},
	}
}

func (rc *runContext) setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return ctx, err
	}
	if cmd.IsSet("log-level") {
		cfg.LogLevel = cmd.String("log-level")
	}
	if err := logger.Init(cfg.LogLevel, rc.errOut); err != nil {
		return ctx, err
	}
	rc.cfg = cfg
	log.Debug().Str("config", cmd.String("config")).Str("level", cfg.LogLevel).Msg("configured")
	return ctx, nil
}

func inputLines(cmd *cli.Command) ([]string, error) {
	path := defaultInput
	if cmd.Args().Present() {
		path = cmd.Args().First()
	}
	return fileio.ReadLines(path)
}

func (rc *runContext) warehouse(_ context.Context, cmd *cli.Command) error {
	lines, err := inputLines(cmd)
	if err != nil {
		return err
	}
	opts := rc.cfg.Warehouse
	if cmd.IsSet("wide") {
		opts.Wide = cmd.Bool("wide")
	}
	if cmd.IsSet("dump") {
		opts.Dump = cmd.String("dump")
	}

	parse := warehouse.Parse
	if opts.Wide {
		parse = warehouse.ParseWide
	}
	w, err := parse(lines)
	if err != nil {
		return err
	}

	dumper := &warehouse.Dumper{Path: opts.Dump}
	if err := dumper.Dump(w); err != nil {
		return err
	}
	w.Run()
	if err := dumper.Dump(w); err != nil {
		return err
	}
	if err := warehouse.Validate(w.Grid); err != nil {
		return err
	}

	sum := w.GPSSum()
	log.Debug().Bool("wide", w.Wide()).Int("gps", sum).Msg("warehouse done")
	fmt.Fprintln(rc.out, sum)
	return nil
}

func (rc *runContext) maze(_ context.Context, cmd *cli.Command) error {
	lines, err := inputLines(cmd)
	if err != nil {
		return err
	}
	m, err := maze.Parse(lines)
	if err != nil {
		return err
	}

	costs := maze.Costs{Straight: rc.cfg.Maze.StepCost, Turn: rc.cfg.Maze.TurnCost}
	res, err := maze.Search(m, costs, grid.Right)
	if errors.Is(err, maze.ErrNoPath) {
		fmt.Fprintln(rc.out, "no path found")
		return nil
	}
	if err != nil {
		return err
	}

	dump := rc.cfg.Maze.Dump
	if cmd.IsSet("dump") {
		dump = cmd.String("dump")
	}
	if dump != "" {
		if err := fileio.WriteText(dump, m.Render(res)); err != nil {
			return err
		}
	}
	fmt.Fprintln(rc.out, res.Cost)
	return nil
}

func (rc *runContext) computer(_ context.Context, cmd *cli.Command) error {
	lines, err := inputLines(cmd)
	if err != nil {
		return err
	}
	l, err := computer.ParseListing(lines)
	if err != nil {
		return err
	}
	if rc.cfg.Computer.Trace {
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	}

	if cmd.Bool("quine") {
		a, err := computer.FindQuine(l)
		if err != nil {
			return err
		}
		fmt.Fprintln(rc.out, a)
		return nil
	}

	m := computer.New(l)
	if err := m.Run(); err != nil {
		log.Debug().Msgf("machine state:\n%s", m)
		return err
	}
	fmt.Fprintln(rc.out, m.OutputString())
	return nil
}

func (rc *runContext) robots(_ context.Context, cmd *cli.Command) error {
	lines, err := inputLines(cmd)
	if err != nil {
		return err
	}
	rs, err := robots.Parse(lines)
	if err != nil {
		return err
	}

	opts := rc.cfg.Robots
	if cmd.IsSet("seconds") {
		opts.Seconds = int(cmd.Int("seconds"))
	}
	if opts.Seconds < 0 {
		return fmt.Errorf("seconds must be non-negative, got %d", opts.Seconds)
	}

	if cmd.Bool("show") {
		fmt.Fprint(rc.out, robots.RenderOccupancy(robots.Occupancy(rs, opts.Width, opts.Height, opts.Seconds)))
	}
	fmt.Fprintln(rc.out, robots.SafetyFactor(rs, opts.Width, opts.Height, opts.Seconds))
	return nil
}
