package report

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"text/tabwriter"

	"github.com/mbsabath/popmodel/pkg/popmodel"
)

type Format string

const (
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
)

var ErrUnknownFormat = errors.New("unknown report format")

func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatTable, FormatCSV, FormatJSON:
		return Format(name), nil
	default:
		return "", fmt.Errorf("%w: %s (want table|csv|json)", ErrUnknownFormat, name)
	}
}

// Row is the rendered form of one trajectory point.
type Row struct {
	Generation int     `json:"generation"`
	ShareX     float64 `json:"share_x"`
	ShareY     float64 `json:"share_y"`
}

func Rows(points []popmodel.Point) []Row {
	rows := make([]Row, 0, len(points))
	for _, p := range points {
		rows = append(rows, Row{
			Generation: p.Generation,
			ShareX:     p.Share,
			ShareY:     popmodel.Round5(1 - p.Share),
		})
	}
	return rows
}

func Write(w io.Writer, format Format, points []popmodel.Point) error {
	rows := Rows(points)
	switch format {
	case FormatTable:
		return writeTable(w, rows)
	case FormatCSV:
		return writeCSV(w, rows)
	case FormatJSON:
		return writeJSON(w, rows)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

func writeTable(w io.Writer, rows []Row) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "generation\tshare_x\tshare_y"); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintf(tw, "%d\t%s\t%s\n", row.Generation, formatShare(row.ShareX), formatShare(row.ShareY)); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func writeCSV(w io.Writer, rows []Row) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"generation", "share_x", "share_y"}); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write([]string{
			strconv.Itoa(row.Generation),
			formatShare(row.ShareX),
			formatShare(row.ShareY),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeJSON(w io.Writer, rows []Row) error {
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// Summary describes the shape of a finished trajectory.
type Summary struct {
	Generations int     `json:"generations"`
	FinalShare  float64 `json:"final_share"`

	// LargestStep is the generation whose update moved the share the most;
	// 0 when the trajectory has a single point.
	LargestStep   int     `json:"largest_step"`
	LargestChange float64 `json:"largest_change"`

	// FixedPoint reports that the last update left the share unchanged.
	FixedPoint bool `json:"fixed_point"`
}

func Summarize(points []popmodel.Point) (Summary, error) {
	if len(points) == 0 {
		return Summary{}, errors.New("trajectory is empty")
	}
	last := points[len(points)-1]
	out := Summary{
		Generations: last.Generation,
		FinalShare:  last.Share,
	}
	largest := 0.0
	for i := 1; i < len(points); i++ {
		change := math.Abs(points[i].Share - points[i-1].Share)
		if change > largest {
			largest = change
			out.LargestStep = points[i].Generation
		}
	}
	out.LargestChange = popmodel.Round5(largest)
	if len(points) > 1 {
		out.FixedPoint = points[len(points)-2].Share == last.Share
	}
	return out, nil
}

func WriteSummary(w io.Writer, s Summary) error {
	_, err := fmt.Fprintf(w, "generations=%d final_share=%s largest_change=%s at_generation=%d fixed_point=%t\n",
		s.Generations, formatShare(s.FinalShare), formatShare(s.LargestChange), s.LargestStep, s.FixedPoint)
	return err
}

func formatShare(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
