package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/ccp4map"
	"github.com/arloliu/ccp4map/endian"
)

type skewSummary struct {
	Rotation    [9]float32 `json:"rotation" yaml:"rotation,flow"`
	Translation [3]float32 `json:"translation" yaml:"translation,flow"`
}

type mapSummary struct {
	File        string       `json:"file" yaml:"file"`
	ByteOrder   string       `json:"byte_order" yaml:"byte_order"`
	Dims        [3]int32     `json:"dims" yaml:"dims,flow"`
	Mode        int          `json:"mode" yaml:"mode"`
	ModeName    string       `json:"mode_name" yaml:"mode_name"`
	Origin      [3]int32     `json:"origin" yaml:"origin,flow"`
	Grid        [3]int32     `json:"grid" yaml:"grid,flow"`
	Cell        [6]float32   `json:"cell" yaml:"cell,flow"`
	AxesOrder   [3]int32     `json:"axes_order" yaml:"axes_order,flow"`
	Spacegroup  int32        `json:"spacegroup" yaml:"spacegroup"`
	Contents    string       `json:"contents" yaml:"contents"`
	Min         float32      `json:"min" yaml:"min"`
	Max         float32      `json:"max" yaml:"max"`
	Mean        float64      `json:"mean" yaml:"mean"`
	RMS         float64      `json:"rms" yaml:"rms"`
	Sections    int64        `json:"sections" yaml:"sections"`
	LocalHeader int64        `json:"local_header" yaml:"local_header"`
	Labels      []string     `json:"labels" yaml:"labels"`
	Symops      []string     `json:"symops,omitempty" yaml:"symops,omitempty"`
	Skew        *skewSummary `json:"skew,omitempty" yaml:"skew,omitempty"`
}

func inspectCmd(st *state) *cli.Command {
	var (
		mapPath     string
		outFormat   string
		localHeader int64
		showSymops  bool
	)

	return &cli.Command{
		Name:  "inspect",
		Usage: "Print the header of a map file",
		Flags: []cli.Flag{
			mapFlag(&mapPath),
			localHeaderFlag(&localHeader),
			&cli.StringFlag{
				Name:        "format",
				Aliases:     []string{"f"},
				Usage:       "output format (text, json, yaml)",
				Value:       "text",
				Destination: &outFormat,
			},
			&cli.BoolFlag{Name: "symops", Usage: "list symmetry operators", Destination: &showSymops},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			applyMapConfig(c, st.cfg, &localHeader)
			applyFormatConfig(c, st.cfg, &outFormat)

			summary, err := summarize(mapPath, st, localHeader, showSymops)
			if err != nil {
				return err
			}

			return printSummary(outWriter(c), summary, outFormat)
		},
	}
}

func summarize(path string, st *state, localHeader int64, withSymops bool) (*mapSummary, error) {
	rd, err := ccp4map.Open(path, readerOptions(st, localHeader)...)
	if err != nil {
		return nil, err
	}
	defer rd.Close()

	minVal, maxVal, mean, rms := rd.MapStats()
	byteOrder := "little"
	if endian.IsBigEndian(rd.ByteOrder()) {
		byteOrder = "big"
	}

	summary := &mapSummary{
		File:        path,
		ByteOrder:   byteOrder,
		Dims:        rd.Dims(),
		Mode:        int(rd.DataMode()),
		ModeName:    rd.DataMode().String(),
		Origin:      rd.Origin(),
		Grid:        rd.Grid(),
		Cell:        rd.Cell(),
		AxesOrder:   rd.AxesOrder(),
		Spacegroup:  rd.Spacegroup(),
		Contents:    rd.Contents().String(),
		Min:         minVal,
		Max:         maxVal,
		Mean:        mean,
		RMS:         rms,
		Sections:    rd.SectionCount(),
		LocalHeader: rd.LocalHeaderSize(),
		Labels:      rd.Labels(),
	}
	if rotation, translation, ok := rd.Mask(); ok {
		summary.Skew = &skewSummary{Rotation: rotation, Translation: translation}
	}

	if withSymops {
		symops, err := rd.Symops()
		if err != nil {
			return nil, err
		}
		for _, op := range symops {
			summary.Symops = append(summary.Symops, strings.TrimRight(op, " \x00"))
		}
	}

	return summary, nil
}

func printSummary(w io.Writer, s *mapSummary, outFormat string) error {
	switch strings.ToLower(outFormat) {
	case "json":
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))

		return err
	case "yaml", "yml":
		data, err := yaml.Marshal(s)
		if err != nil {
			return err
		}
		_, err = w.Write(data)

		return err
	case "text", "":
		return printText(w, s)
	default:
		return fmt.Errorf("unknown output format %q", outFormat)
	}
}

func printText(w io.Writer, s *mapSummary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "File:\t%s\n", s.File)
	fmt.Fprintf(tw, "Byte order:\t%s\n", s.ByteOrder)
	fmt.Fprintf(tw, "Dimensions:\t%d x %d x %d\n", s.Dims[0], s.Dims[1], s.Dims[2])
	fmt.Fprintf(tw, "Mode:\t%d (%s)\n", s.Mode, s.ModeName)
	fmt.Fprintf(tw, "Origin:\t%v\n", s.Origin)
	fmt.Fprintf(tw, "Grid:\t%v\n", s.Grid)
	fmt.Fprintf(tw, "Cell:\t%v\n", s.Cell)
	fmt.Fprintf(tw, "Axes order:\t%v\n", s.AxesOrder)
	fmt.Fprintf(tw, "Spacegroup:\t%d\n", s.Spacegroup)
	fmt.Fprintf(tw, "Contents:\t%s\n", s.Contents)
	fmt.Fprintf(tw, "Min / max:\t%g / %g\n", s.Min, s.Max)
	fmt.Fprintf(tw, "Mean / rms:\t%g / %g\n", s.Mean, s.RMS)
	fmt.Fprintf(tw, "Sections:\t%d\n", s.Sections)
	if s.LocalHeader > 0 {
		fmt.Fprintf(tw, "Local header:\t%d bytes\n", s.LocalHeader)
	}
	if s.Skew != nil {
		fmt.Fprintf(tw, "Skew rotation:\t%v\n", s.Skew.Rotation)
		fmt.Fprintf(tw, "Skew translation:\t%v\n", s.Skew.Translation)
	}
	for i, label := range s.Labels {
		fmt.Fprintf(tw, "Label %d:\t%s\n", i, label)
	}
	for i, op := range s.Symops {
		fmt.Fprintf(tw, "Symop %d:\t%s\n", i, op)
	}

	return tw.Flush()
}
