// Package progressbar implements functionality of printing a progress
// bar to the terminal window
package progressbar

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// ManualProgressBar implement progress bar functionality that must
// be manually managed. That is, the Display() function must be called
// whenever an updated progress bar should be printed.
//
// ManualProgressBar does not use concurrency.
type ManualProgressBar struct {
	out             io.Writer
	width           int
	maxProgress     int
	currentProgress int
	bar             strings.Builder
	startTime       time.Time
}

// NewManualProgressBar returns a new ManualProgressBar, width
// characters wide, which reaches 100% at max progress
func NewManualProgressBar(out io.Writer, width, max int) *ManualProgressBar {
	if max < 1 {
		max = 1
	}
	return &ManualProgressBar{
		out:         out,
		width:       width,
		maxProgress: max,
		startTime:   time.Now(),
	}
}

// Increment increments the internal progress counter. Each time an
// iteration is performed, Increment should be called.
func (p *ManualProgressBar) Increment() {
	p.Set(p.currentProgress + 1)
}

// Set sets the progress counter, clipped to [0, max]
func (p *ManualProgressBar) Set(progress int) {
	switch {
	case progress < 0:
		p.currentProgress = 0
	case progress > p.maxProgress:
		p.currentProgress = p.maxProgress
	default:
		p.currentProgress = progress
	}
}

// Progress returns the current progress
func (p *ManualProgressBar) Progress() int {
	return p.currentProgress
}

// String returns the progress bar without the elapsed time
func (p *ManualProgressBar) String() string {
	p.bar.Reset()
	p.bar.WriteString("|")

	filled := p.currentProgress * p.width / p.maxProgress
	p.bar.WriteString(strings.Repeat("█", filled))
	p.bar.WriteString(strings.Repeat(" ", p.width-filled))

	fraction := float64(p.currentProgress) / float64(p.maxProgress)
	fmt.Fprintf(&p.bar, "| [%.2f%%]", fraction*100)
	return p.bar.String()
}

// Display prints the progress bar over the previous one
func (p *ManualProgressBar) Display() {
	elapsed := time.Since(p.startTime).Truncate(time.Second)
	fmt.Fprintf(p.out, "\n\033[1A\033[K%v elapsed: %v", p, elapsed)
}
