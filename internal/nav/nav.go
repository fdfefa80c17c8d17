// Package nav resolves in-page links to scroll offsets and produces the
// frames of a smooth scroll toward them.
package nav

import (
	"math"
	"strings"
)

// Section is a named anchor in the page with its first line in the viewport.
type Section struct {
	ID    string
	Title string
	Top   int
}

// Scroller maps fragment ids to viewport offsets, keeping the section a fixed
// number of lines below the top so the sticky header does not cover it.
type Scroller struct {
	headerOffset int
	sections     []Section
}

func NewScroller(headerOffset int) *Scroller {
	if headerOffset < 0 {
		headerOffset = 0
	}
	return &Scroller{headerOffset: headerOffset}
}

// SetSections replaces the known anchors. Called after every page render
// since section positions move as content grows.
func (s *Scroller) SetSections(sections []Section) {
	s.sections = append(s.sections[:0], sections...)
}

func (s *Scroller) Sections() []Section {
	out := make([]Section, len(s.sections))
	copy(out, s.sections)
	return out
}

func (s *Scroller) HeaderOffset() int {
	return s.headerOffset
}

// Target returns the offset to scroll to for fragment ("#todo" or "todo").
// ok is false when no section has that id.
func (s *Scroller) Target(fragment string) (int, bool) {
	id := strings.TrimPrefix(strings.TrimSpace(fragment), "#")
	if id == "" {
		return 0, false
	}
	for _, sec := range s.sections {
		if sec.ID == id {
			return max(0, sec.Top-s.headerOffset), true
		}
	}
	return 0, false
}

// Current returns the id of the last section whose top is at or above the
// line just below the header.
func (s *Scroller) Current(offset int) string {
	id := ""
	for _, sec := range s.sections {
		if sec.Top <= offset+s.headerOffset {
			id = sec.ID
		}
	}
	if id == "" && len(s.sections) > 0 {
		id = s.sections[0].ID
	}
	return id
}

// DefaultFrames is the number of steps in a smooth scroll.
const DefaultFrames = 8

// Animation eases from one offset to another over a fixed number of frames.
type Animation struct {
	from, to int
	frames   int
	frame    int
}

func NewAnimation(from, to, frames int) *Animation {
	if frames < 1 {
		frames = 1
	}
	return &Animation{from: from, to: to, frames: frames}
}

func (a *Animation) Target() int {
	return a.to
}

func (a *Animation) Done() bool {
	return a.frame >= a.frames
}

// Step advances one frame and returns the offset to show. The last frame
// lands exactly on the target.
func (a *Animation) Step() int {
	if a.Done() {
		return a.to
	}
	a.frame++
	if a.frame == a.frames {
		return a.to
	}
	p := easeInOutCubic(float64(a.frame) / float64(a.frames))
	return a.from + int(math.Round(float64(a.to-a.from)*p))
}

func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}
