package parallax

import (
	"fmt"
	"os"
)

// debugf prints a tagged line to stderr when debug mode is on.
func (p *Presentation) debugf(format string, args ...any) {
	if !p.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[parallax] "+format+"\n", args...)
}

// reportRequest logs the outcome of a trigger in debug mode.
func (p *Presentation) reportRequest(source string, accepted bool, err error) {
	switch {
	case err != nil:
		p.debugf("%s: %v", source, err)
	case !accepted:
		p.debugf("%s: dropped, transition in flight", source)
	}
}
