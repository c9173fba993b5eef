package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tdewolff/argp"
	"github.com/tdewolff/frechet"
	"github.com/tdewolff/frechet/render"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gonum.org/v1/plot/vg"
)

type Compute struct {
	Verbose     bool   `short:"v" desc:"Verbose logging"`
	Timeout     int    `short:"t" default:"60" desc:"Timeout in seconds"`
	NoTraversal bool   `desc:"Skip the traversal synthesis"`
	Describe    bool   `short:"d" desc:"Describe the traversals"`
	Input       string `index:"0" desc:"CSV file with two rows of x;y cells, stdin when empty"`
}

type Serve struct {
	Verbose bool   `short:"v" desc:"Verbose logging"`
	Timeout int    `short:"t" default:"60" desc:"Timeout per request in seconds"`
	Addr    string `short:"a" default:":5000" desc:"Listen address"`
	Levels  int    `short:"n" default:"10" desc:"Number of free-space levels"`
	Heatmap int    `default:"100" desc:"Heat map columns"`
}

type Plot struct {
	Verbose bool    `short:"v" desc:"Verbose logging"`
	Timeout int     `short:"t" default:"60" desc:"Timeout in seconds"`
	Levels  int     `short:"n" default:"7" desc:"Number of free-space levels"`
	Epsilon string  `short:"l" desc:"Comma-separated free-space levels, overrides the number of levels"`
	Samples int     `short:"s" default:"50" desc:"Points per ellipse"`
	Width   float64 `default:"16" desc:"Width in cm"`
	Height  float64 `default:"12" desc:"Height in cm"`
	Profile string  `short:"p" desc:"Output file for the epsilon profile of the traversal"`
	Output  string  `short:"o" default:"frechet.png" desc:"Output file, the extension selects the format"`
	Input   string  `index:"0" desc:"CSV file with two rows of x;y cells, stdin when empty"`
}

func main() {
	root := argp.NewCmd(&Compute{}, "Continuous Fréchet distance of two polygonal curves")
	root.AddCmd(&Serve{}, "serve", "Serve diagrams over HTTP")
	root.AddCmd(&Plot{}, "plot", "Plot the free-space diagram")
	root.Parse()
	root.PrintHelp()
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

// build reads the input paths and builds their diagram.
func build(input string, log *zap.Logger, timeout int, traverse bool) (*frechet.CellMatrix, error) {
	p, q, err := openInput(input)
	if err != nil {
		return nil, err
	}
	p = frechet.RemoveConsecutiveDuplicates(p)
	q = frechet.RemoveConsecutiveDuplicates(q)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancel()

	opts := frechet.DefaultOptions
	opts.Logger = log
	opts.ComputeTraversal = traverse
	return frechet.Build(ctx, p, q, &opts)
}

type result struct {
	Epsilon    float64           `json:"epsilon"`
	BoundsL    [2]float64        `json:"bounds_l"`
	Events     int               `json:"critical_events"`
	Traversals []resultTraversal `json:"traversals,omitempty"`
}

type resultTraversal struct {
	Epsilon  float64      `json:"epsilon"`
	Points   [][2]float64 `json:"points"`
	Epsilons []float64    `json:"epsilons"`
}

func (cmd *Compute) Run() error {
	log, err := newLogger(cmd.Verbose)
	if err != nil {
		return err
	}
	defer log.Sync()

	m, err := build(cmd.Input, log, cmd.Timeout, !cmd.NoTraversal)
	if err != nil {
		return err
	}

	res := result{
		Epsilon: m.MinimalEpsilon(),
		BoundsL: [2]float64{m.L.Start, m.L.End},
		Events:  len(m.Events.List()),
	}
	for _, t := range m.Traversals() {
		rt := resultTraversal{Epsilon: t.Epsilon, Epsilons: t.Epsilons}
		for _, p := range t.Points {
			rt.Points = append(rt.Points, [2]float64{p.X, p.Y})
		}
		res.Traversals = append(res.Traversals, rt)
		if cmd.Describe {
			fmt.Fprintln(os.Stderr, frechet.Describe(m, t))
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func (cmd *Serve) Run() error {
	log, err := newLogger(cmd.Verbose)
	if err != nil {
		return err
	}
	defer log.Sync()

	if !cmd.Verbose {
		gin.SetMode(gin.ReleaseMode)
	}
	s := newServer(log, time.Duration(cmd.Timeout)*time.Second)
	s.levels = cmd.Levels
	s.heatmap = cmd.Heatmap

	log.Info("listening", zap.String("addr", cmd.Addr))
	return s.router().Run(cmd.Addr)
}

func (cmd *Plot) Run() error {
	log, err := newLogger(cmd.Verbose)
	if err != nil {
		return err
	}
	defer log.Sync()

	m, err := build(cmd.Input, log, cmd.Timeout, true)
	if err != nil {
		return err
	}

	levels := m.SampleLevels(cmd.Levels)
	if cmd.Epsilon != "" {
		if levels, err = parseLevels(cmd.Epsilon); err != nil {
			return err
		}
	}
	opts := frechet.DefaultSampleOptions
	opts.EllipsePoints = cmd.Samples
	opts.CrossSectionPoints = 0
	sample := m.Sample(levels, opts)

	ropts := render.DefaultOptions
	ropts.Title = fmt.Sprintf("ε = %.6g", m.MinimalEpsilon())
	p, err := render.Diagram(sample, ropts)
	if err != nil {
		return err
	}
	width, height := vg.Length(cmd.Width)*vg.Centimeter, vg.Length(cmd.Height)*vg.Centimeter
	if err := render.Save(p, width, height, cmd.Output); err != nil {
		return err
	}
	log.Info("written", zap.String("file", cmd.Output))

	if cmd.Profile != "" && 0 < len(sample.Traversals) {
		title := "stdin"
		if cmd.Input != "" && cmd.Input != "-" {
			title = strings.TrimSuffix(filepath.Base(cmd.Input), filepath.Ext(cmd.Input))
		}
		pp, err := render.Profile(sample.Traversals[0], title)
		if err != nil {
			return err
		}
		if err := render.Save(pp, width, height/2, cmd.Profile); err != nil {
			return err
		}
		log.Info("written", zap.String("file", cmd.Profile))
	}
	return nil
}
