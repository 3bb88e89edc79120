package wizard

import (
	"fmt"

	"github.com/uvzlabs/launchpad/course"
)

// Step is the wizard's position. Steps only move forward; the sole way
// back to StepKeywords is an explicit Reset.
type Step int

const (
	StepKeywords Step = iota + 1
	StepConcepts
	StepContent
	StepPublish
	StepLaunch
)

var stepNames = []string{"Keywords", "Concepts", "Content", "Publish", "Launch"}

func (s Step) String() string {
	if s < StepKeywords || s > StepLaunch {
		return fmt.Sprintf("step(%d)", int(s))
	}
	return stepNames[s-1]
}

// StepNames lists the five wizard steps in order, for step indicators.
func StepNames() []string {
	return append([]string(nil), stepNames...)
}

// Session is the root aggregate for one course-creation attempt. It is
// owned by the machine; snapshots handed out are read-only copies.
type Session struct {
	Step            Step
	Input           course.Descriptor
	Concepts        []course.Concept
	SelectedConcept *int
	Content         *course.Content
	Published       *course.PublishedBundle
	Assets          *course.LaunchAssets
	Err             error
}

func newSession() Session {
	return Session{Step: StepKeywords}
}
