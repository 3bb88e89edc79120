package wizard

import (
	"fmt"
	"strings"

	"github.com/uvzlabs/launchpad/course"
)

// Validate checks the candidate input against the session's current
// step. Pure; no session mutation, no external calls. Steps past the
// selection have nothing left to validate.
func Validate(s *Session, in Input) error {
	switch s.Step {
	case StepKeywords:
		return validateDescriptor(in.Descriptor)
	case StepConcepts:
		return validateSelection(in.SelectedConcept, len(s.Concepts))
	default:
		return nil
	}
}

func validateDescriptor(d course.Descriptor) error {
	if uvz := d.UVZ; uvz != nil {
		if strings.TrimSpace(uvz.Skills) == "" ||
			strings.TrimSpace(uvz.Passions) == "" ||
			strings.TrimSpace(uvz.Results) == "" {
			return &ValidationError{Reason: "Please fill in your skills, passions, and results"}
		}
		return nil
	}
	if strings.TrimSpace(d.Keywords) == "" {
		return &ValidationError{Reason: "Please enter at least 1-2 keywords"}
	}
	return nil
}

func validateSelection(selected *int, conceptCount int) error {
	if selected == nil {
		return &ValidationError{Reason: "Please select a course concept"}
	}
	if *selected < 0 || *selected >= conceptCount {
		return &ValidationError{Reason: fmt.Sprintf("selected concept %d is out of range", *selected)}
	}
	return nil
}
