package view

import (
	"log"
	"sync"

	"timed-quiz-service/internal/app"
	"timed-quiz-service/internal/domain"
)

// Region names a part of the quiz page.
type Region string

const (
	RegionStart  Region = "start-button"
	RegionQuiz   Region = "quiz-container"
	RegionForm   Region = "quiz-form"
	RegionTimer  Region = "timer"
	RegionResult Region = "result"
)

// AllRegions is the full quiz page.
var AllRegions = []Region{RegionStart, RegionQuiz, RegionForm, RegionTimer, RegionResult}

// Patch is the complete new state of one region.
type Patch struct {
	Region  Region `json:"region"`
	Visible bool   `json:"visible"`
	Text    string `json:"text,omitempty"`
	HTML    string `json:"html,omitempty"`
}

// Page tracks region state for a session and forwards every change to sink.
// Operations on regions the page does not have are silently skipped, so a
// page without a timer still runs the quiz.
type Page struct {
	mu      sync.Mutex
	regions map[Region]*Patch
	sink    func(Patch)
}

var _ app.View = (*Page)(nil)

// NewPage builds a page with the given regions, or all of them when none are
// given. Initially only the start control is visible.
func NewPage(sink func(Patch), regions ...Region) *Page {
	if len(regions) == 0 {
		regions = AllRegions
	}
	if sink == nil {
		sink = func(Patch) {}
	}
	p := &Page{regions: make(map[Region]*Patch, len(regions)), sink: sink}
	for _, r := range regions {
		p.regions[r] = &Patch{Region: r, Visible: r == RegionStart || r == RegionForm || r == RegionTimer}
	}
	return p
}

func (p *Page) update(region Region, apply func(*Patch)) {
	p.mu.Lock()
	state, ok := p.regions[region]
	if !ok {
		p.mu.Unlock()
		return
	}
	apply(state)
	patch := *state
	p.mu.Unlock()

	p.sink(patch)
}

func (p *Page) HideStart() {
	p.update(RegionStart, func(s *Patch) { s.Visible = false })
}

func (p *Page) ShowQuiz() {
	p.update(RegionQuiz, func(s *Patch) { s.Visible = true })
}

func (p *Page) HideQuiz() {
	p.update(RegionQuiz, func(s *Patch) { s.Visible = false })
}

// RenderForm replaces the form region's markup.
func (p *Page) RenderForm(form app.Form) {
	html, err := FormHTML(form)
	if err != nil {
		log.Printf("render form: %v", err)
		return
	}
	p.update(RegionForm, func(s *Patch) { s.HTML = html })
}

func (p *Page) SetTimer(clock string) {
	p.update(RegionTimer, func(s *Patch) { s.Text = TimerText(clock) })
}

func (p *Page) ShowResult(result domain.Result, home app.HomeLink) {
	html, err := ResultHTML(result, home)
	if err != nil {
		log.Printf("render result: %v", err)
		return
	}
	p.update(RegionResult, func(s *Patch) {
		s.Visible = true
		s.Text = result.String()
		s.HTML = html
	})
}

// Region returns the current state of a region.
func (p *Page) Region(region Region) (Patch, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	state, ok := p.regions[region]
	if !ok {
		return Patch{}, false
	}
	return *state, true
}

// Snapshot returns every region's state in page order.
func (p *Page) Snapshot() []Patch {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Patch, 0, len(p.regions))
	for _, r := range AllRegions {
		if state, ok := p.regions[r]; ok {
			out = append(out, *state)
		}
	}
	return out
}

// TimerText is the timer display text for a MM:SS clock.
func TimerText(clock string) string {
	return "Time Left: " + clock
}
