package ffmpeg

import (
	"fmt"
	"slices"
	"strings"
)

// Section orders the parts of an output directive. Arguments are emitted
// grouped by section in ascending order; within a section they keep the
// order in which they were added.
type Section int

const (
	SectionVideoMap Section = iota
	SectionAudioMap
	SectionSubtitle
	SectionFilter
	SectionPixFmt
	SectionVideoCodec
	SectionAudioCodec
	SectionContainer
)

var sectionNames = [...]string{
	SectionVideoMap:   "video-map",
	SectionAudioMap:   "audio-map",
	SectionSubtitle:   "subtitle",
	SectionFilter:     "filter",
	SectionPixFmt:     "pix-fmt",
	SectionVideoCodec: "video-codec",
	SectionAudioCodec: "audio-codec",
	SectionContainer:  "container",
}

func (s Section) String() string {
	if int(s) < 0 || int(s) >= len(sectionNames) {
		return fmt.Sprintf("section(%d)", int(s))
	}
	return sectionNames[s]
}

// Arg is one typed output option: a flag with an optional value.
type Arg struct {
	Section Section
	Flag    string
	Value   string
}

func (a Arg) tokens() []string {
	if a.Value == "" {
		return []string{a.Flag}
	}
	return []string{a.Flag, a.Value}
}

// Directive is the structured output-side ffmpeg argument list for one file.
// It is built up by the planner and serialized only at the boundary, via
// Args (argv form) or Preset (the ", <output args>" host string form).
type Directive struct {
	args []Arg
}

// Add appends flag (with an optional value) to section.
func (d *Directive) Add(section Section, flag string, value ...string) {
	a := Arg{Section: section, Flag: flag}
	if len(value) > 0 {
		a.Value = value[0]
	}
	d.args = append(d.args, a)
}

// Addf appends flag with a printf-formatted value.
func (d *Directive) Addf(section Section, flag, format string, v ...any) {
	d.Add(section, flag, fmt.Sprintf(format, v...))
}

// Ordered returns the typed arguments in emission order.
func (d *Directive) Ordered() []Arg {
	out := slices.Clone(d.args)
	slices.SortStableFunc(out, func(a, b Arg) int { return int(a.Section) - int(b.Section) })
	return out
}

// Section returns the arguments of one section in insertion order.
func (d *Directive) Section(s Section) []Arg {
	var out []Arg
	for _, a := range d.args {
		if a.Section == s {
			out = append(out, a)
		}
	}
	return out
}

// Lookup returns the value of the first argument whose flag equals flag.
func (d *Directive) Lookup(flag string) (string, bool) {
	for _, a := range d.Ordered() {
		if a.Flag == flag {
			return a.Value, true
		}
	}
	return "", false
}

// Args serializes the directive into an argv slice.
func (d *Directive) Args() []string {
	out := make([]string, 0, len(d.args)*2)
	for _, a := range d.Ordered() {
		out = append(out, a.tokens()...)
	}
	return out
}

// String joins Args with single spaces.
func (d *Directive) String() string {
	return strings.Join(d.Args(), " ")
}

// Preset renders the directive in the "<input args>, <output args>" form
// accepted by transcode hosts that split a preset on the first comma. Input
// arguments are always empty.
func (d *Directive) Preset() string {
	return ", " + d.String()
}

// Len returns the number of typed arguments.
func (d *Directive) Len() int { return len(d.args) }
