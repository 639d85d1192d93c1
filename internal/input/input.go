package input

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// DefaultMaxCountries is how many country codes one run handles
const DefaultMaxCountries = 3

// Error wraps failures reading the country codes
type Error struct {
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to read country codes: %v", e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Result holds the accepted codes and the ones dropped by the cap
type Result struct {
	Codes   []string
	Dropped []string
}

// Collector reads whitespace separated country codes
type Collector struct {
	max int
}

// NewCollector creates a Collector keeping at most max codes
func NewCollector(max int) *Collector {
	if max <= 0 {
		max = DefaultMaxCountries
	}
	return &Collector{max: max}
}

// Max returns the cap
func (c *Collector) Max() int {
	return c.max
}

// Prompt returns the message shown before reading stdin
func (c *Collector) Prompt() string {
	return fmt.Sprintf("Enter country codes separated by spaces. A maximum of %d country codes are supported at this time", c.max)
}

// CapWarning returns the message printed when codes were dropped
func (c *Collector) CapWarning() string {
	return fmt.Sprintf("Only %s countries are supported at this time", numberWord(c.max))
}

// Read reads a single line from r and collects the codes in it
func (c *Collector) Read(r io.Reader) (Result, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return Result{}, &Error{Err: err}
	}
	return c.Collect(strings.Fields(line)), nil
}

// Collect normalizes tokens and applies the cap, preserving input order
func (c *Collector) Collect(tokens []string) Result {
	var res Result
	for _, token := range tokens {
		code := strings.ToUpper(strings.TrimSpace(token))
		if code == "" {
			continue
		}
		if len(res.Codes) < c.max {
			res.Codes = append(res.Codes, code)
		} else {
			res.Dropped = append(res.Dropped, code)
		}
	}
	return res
}

func numberWord(n int) string {
	words := []string{"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine", "ten"}
	if n >= 0 && n < len(words) {
		return words[n]
	}
	return fmt.Sprintf("%d", n)
}
