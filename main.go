package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/fukurin00/grid_routing_provider/config"
	"github.com/fukurin00/grid_routing_provider/msg"
	"github.com/fukurin00/grid_routing_provider/routing"
	"github.com/fukurin00/grid_routing_provider/server"
	"github.com/labstack/gommon/log"
)

var (
	gridFile   = flag.String("grid", "", "grid file (Start:/Goal: directives and rows of 0/1)")
	mapYaml    = flag.String("map", "", "ROS map yaml; used instead of -grid")
	startFlag  = flag.String("start", "", "start cell row,col (overrides the file)")
	goalFlag   = flag.String("goal", "", "goal cell row,col (overrides the file)")
	plannerArg = flag.String("planner", "", "planner: astar or reference")
	format     = flag.String("format", "text", "output format: text, json or proto")
	dump       = flag.Bool("dump", false, "print the grid with the route")
	serveAddr  = flag.String("serve", "", "serve the planner over http on this address")
	configFile = flag.String("config", "", "yaml config file")
	envFile    = flag.String("env", ".env", "env file")
	logLevel   = flag.String("log", "", "log level: debug, info, warn, error, off")
)

type Mode int

const (
	FIND  Mode = iota // plan once and print
	SERVE             // http provider
)

func (m Mode) String() string {
	s := [2]string{"Find", "Serve"}
	return s[m]
}

// LoggingSettings tees the logger into a dated file under logDir.
func LoggingSettings(logger *log.Logger, logDir string) (io.Closer, error) {
	if logDir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, err
	}
	logFile := filepath.Join(logDir, time.Now().Format("2006-01-02-15")+".log")
	file, err := os.OpenFile(logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, err
	}
	logger.SetOutput(io.MultiWriter(os.Stderr, file))
	return file, nil
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configFile, *envFile)
	if err != nil {
		return err
	}
	if *plannerArg != "" {
		cfg.Planner = *plannerArg
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *serveAddr != "" {
		cfg.ListenAddr = *serveAddr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := config.NewLogger("grid-routing", cfg.LogLevel, os.Stderr)
	closer, err := LoggingSettings(logger, cfg.LogDir)
	if err != nil {
		logger.Warnf("log file disabled: %v", err)
	} else if closer != nil {
		defer closer.Close()
	}

	planner, err := routing.NewPlanner(cfg.Planner,
		routing.WithLogger(logger),
		routing.WithMaxExpansions(cfg.MaxExpansions),
	)
	if err != nil {
		return err
	}

	mode := FIND
	if *serveAddr != "" {
		mode = SERVE
	}
	logger.Infof("start grid routing mode:%s, planner:%s", mode, planner.Name())

	if mode == SERVE {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return server.New(cfg, planner, logger).ListenAndServe(ctx)
	}
	return find(cfg, planner, logger, os.Stdout)
}

func loadGrid(cfg config.Config) (*routing.Grid, routing.Coord, routing.Coord, error) {
	switch {
	case *mapYaml != "":
		meta, err := routing.ReadMapImage(*mapYaml)
		if err != nil {
			return nil, routing.Coord{}, routing.Coord{}, err
		}
		g, err := meta.Grid()
		if err != nil {
			return nil, routing.Coord{}, routing.Coord{}, err
		}
		return g, routing.Coord{}, routing.Coord{Row: g.Rows() - 1, Col: g.Cols() - 1}, nil
	case *gridFile != "":
		return routing.Load(*gridFile)
	}
	g := routing.NewGrid(cfg.DefaultSize)
	return g, routing.Coord{}, routing.Coord{Row: g.Rows() - 1, Col: g.Cols() - 1}, nil
}

func find(cfg config.Config, planner routing.Planner, logger *log.Logger, out io.Writer) error {
	g, start, goal, err := loadGrid(cfg)
	if err != nil {
		return err
	}
	if *startFlag != "" {
		if start, err = routing.ParseCoord(*startFlag); err != nil {
			return err
		}
	}
	if *goalFlag != "" {
		if goal, err = routing.ParseCoord(*goalFlag); err != nil {
			return err
		}
	}

	res, err := planner.Plan(context.Background(), g, start, goal)
	if err != nil {
		return err
	}
	if !res.Found {
		logger.Infof("no path found from %s to %s", start, goal)
	}

	switch *format {
	case "json":
		payload, err := msg.MakePathMsg(start, goal, res.Path)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(payload))
	case "proto":
		payload, err := msg.MakePathProto(start, goal, res.Path)
		if err != nil {
			return err
		}
		if _, err := out.Write(payload); err != nil {
			return err
		}
	default:
		if res.Found {
			parts := make([]string, len(res.Path))
			for i, c := range res.Path {
				parts[i] = "(" + c.String() + ")"
			}
			fmt.Fprintf(out, "cost %d: %s\n", res.Cost, strings.Join(parts, ","))
		} else {
			fmt.Fprintln(out, color.YellowString("no path found"))
		}
	}
	if *dump {
		printDump(out, g.Dump(res.Path))
	}
	return nil
}

func printDump(out io.Writer, text string) {
	blocked := color.New(color.FgHiBlack)
	route := color.New(color.FgGreen, color.Bold)
	start := color.New(color.FgBlue, color.Bold)
	goal := color.New(color.FgRed, color.Bold)
	for _, r := range text {
		switch r {
		case '#':
			blocked.Fprint(out, "#")
		case '*':
			route.Fprint(out, "*")
		case 'S':
			start.Fprint(out, "S")
		case 'G':
			goal.Fprint(out, "G")
		default:
			fmt.Fprint(out, string(r))
		}
	}
}
