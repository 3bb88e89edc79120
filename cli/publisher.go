package cli

import (
	"fmt"

	"github.com/uvzlabs/launchpad/logger"
)

// stepEvent is one completed publication sub-step, numbered so the
// progress view can render n-of-total without keeping its own count.
type stepEvent struct {
	name  string
	index int
}

// channelStepPublisher feeds publication progress into the TUI.
type channelStepPublisher struct {
	stepChan  chan stepEvent
	errorChan chan error
	completed int
	logger    logger.Logger
}

func newChannelStepPublisher(log logger.Logger) *channelStepPublisher {
	if log == nil {
		log = logger.NewNullLogger()
	}
	return &channelStepPublisher{
		stepChan:  make(chan stepEvent, 100), // Buffer size of 100
		errorChan: make(chan error, 10),      // Buffer size of 10
		logger:    log,
	}
}

func (p *channelStepPublisher) PublishStep(name string) {
	p.completed++
	select {
	case p.stepChan <- stepEvent{name: name, index: p.completed}:
		p.logger.Debug(fmt.Sprintf("Successfully published step: %v", name))
	default:
		p.logger.Warn(fmt.Sprintf("Failed to publish step: %v. Channel full.", name))
	}
}

func (p *channelStepPublisher) Error(name string, err error) {
	select {
	case p.errorChan <- err:
		p.logger.Debug(fmt.Sprintf("Successfully published error for step: %v", name))
	default:
		p.logger.Warn(fmt.Sprintf("Failed to publish error for step: %v. Channel full.", name))
	}
}

// rewind restarts the step count and discards any events left over
// from an earlier publish attempt. Call before starting a publish, not
// while one is running.
func (p *channelStepPublisher) rewind() {
	p.completed = 0
	for {
		select {
		case <-p.stepChan:
		case <-p.errorChan:
		default:
			return
		}
	}
}
