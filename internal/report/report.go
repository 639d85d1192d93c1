package report

import (
	"fmt"
	"io"
	"os"

	"github.com/username/holiday-stats/internal/stats"
)

// Reporter prints holiday statistics in a fixed text layout
type Reporter struct {
	w io.Writer
}

// New creates a Reporter writing to w (stdout when nil)
func New(w io.Writer) *Reporter {
	if w == nil {
		w = os.Stdout
	}
	return &Reporter{w: w}
}

// Print writes one country block
func (r *Reporter) Print(s stats.Report) {
	r.printf("===== ===== country: %s ===== =====\n", s.Country)
	r.printf(" public holidays: %d\n", s.Public)
	r.printf("weekday holidays: %d\n", s.Weekday)
	r.printf("weekend holidays: %d\n", s.Weekend)
	r.printf("  prime holidays: %d\n", s.Prime)
	r.println("===== ===== ===== ===== ===== =====")
	r.println(" ")
}

// FetchFailed writes the failure line for one country code
func (r *Reporter) FetchFailed(code string, err error) {
	r.printf("Fetch failed (%s), error: %v\n", code, err)
}

// Line writes a plain message line
func (r *Reporter) Line(msg string) {
	r.println(msg)
}

func (r *Reporter) printf(format string, a ...interface{}) {
	fmt.Fprintf(r.w, format, a...)
}

func (r *Reporter) println(a ...interface{}) {
	fmt.Fprintln(r.w, a...)
}
