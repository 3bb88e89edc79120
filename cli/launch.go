package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/list"

	"github.com/uvzlabs/launchpad/bundle"
	"github.com/uvzlabs/launchpad/config"
	"github.com/uvzlabs/launchpad/course"
	"github.com/uvzlabs/launchpad/logger"
	"github.com/uvzlabs/launchpad/publish"
	"github.com/uvzlabs/launchpad/wizard"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	currentStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("202"))
	checkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFBA08"))
	faintStyle    = lipgloss.NewStyle().Faint(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
)

type advanceDoneMsg struct {
	err error
}

type publishStepMsg stepEvent

type publishErrMsg struct {
	err error
}

type launchModel struct {
	machine *wizard.Machine
	mode    course.InputMode
	logger  logger.Logger
	events  *channelStepPublisher

	textInput textinput.Model
	uvzInputs []textinput.Model
	uvzFocus  int
	spinner   spinner.Model

	cursor       int
	busy         bool
	busyLabel    string
	publishing   bool
	publishDone  []string
	publishIndex int
	publishTotal int
	exported     string
}

func newLaunchModel(cfg *config.Config) (launchModel, error) {
	logger.InitLogger()
	log := logger.GetLogger()
	log.Debug("Initializing Launchpad wizard")

	events := newChannelStepPublisher(log)
	machine, err := buildMachine(cfg, events, log)
	if err != nil {
		return launchModel{}, err
	}

	ti := textinput.New()
	ti.Placeholder = "e.g., fitness, productivity, marketing"
	ti.Focus()
	ti.CharLimit = 156
	ti.Width = 80

	uvzPlaceholders := []string{
		"Your skills (what are you good at?)",
		"Your passions (what do you care about?)",
		"Your results (what have you achieved for others?)",
	}
	uvzInputs := make([]textinput.Model, len(uvzPlaceholders))
	for i, placeholder := range uvzPlaceholders {
		input := textinput.New()
		input.Placeholder = placeholder
		input.CharLimit = 156
		input.Width = 80
		uvzInputs[i] = input
	}
	if len(uvzInputs) > 0 {
		uvzInputs[0].Focus()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("202"))

	return launchModel{
		machine:   machine,
		mode:      cfg.Mode(),
		logger:    log,
		events:    events,
		textInput: ti,
		uvzInputs: uvzInputs,
		spinner:   s,
	}, nil
}

func (m launchModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m launchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		model, cmd, handled := m.handleKeyPress(msg)
		if handled {
			return model, cmd
		}
	case advanceDoneMsg:
		m.busy = false
		m.busyLabel = ""
		if m.publishing {
			// Discard buffered progress so a failed publish cannot
			// bleed steps into the next attempt.
			m.publishing = false
			m.events.rewind()
		}
		return m, nil
	case publishStepMsg:
		if !m.publishing {
			return m, nil
		}
		m.publishDone = append(m.publishDone, msg.name)
		m.publishIndex = msg.index
		return m, tea.Batch(m.spinner.Tick, m.listenForPublishStep)
	case publishErrMsg:
		// The failure itself arrives via advanceDoneMsg; stop listening.
		return m, nil
	default:
		if m.busy {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m.updateInputs(msg)
}

func (m launchModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
		m.logger.Debug("User exited the application")
		return m, tea.Quit, true
	}
	if m.busy {
		return m, nil, true
	}

	snap := m.machine.Snapshot()

	// The keywords step owns free typing, so "e" only dismisses
	// errors on the later steps.
	if msg.String() == "e" && snap.Err != nil && snap.Step != wizard.StepKeywords {
		m.machine.DismissError()
		return m, nil, true
	}

	switch snap.Step {
	case wizard.StepKeywords:
		return m.handleInputStep(msg)
	case wizard.StepConcepts:
		return m.handleConceptStep(msg, snap)
	case wizard.StepContent:
		if msg.Type == tea.KeyEnter {
			m.busy = true
			m.publishing = true
			m.busyLabel = "Publishing to Whop"
			m.publishDone = nil
			m.publishIndex = 0
			m.publishTotal = publish.StepCount(snap.Content)
			m.events.rewind()
			return m, tea.Batch(m.spinner.Tick, m.advanceCmd(wizard.Input{}), m.listenForPublishStep), true
		}
	case wizard.StepPublish:
		if msg.Type == tea.KeyEnter {
			m.busy = true
			m.busyLabel = "Assembling launch assets"
			return m, tea.Batch(m.spinner.Tick, m.advanceCmd(wizard.Input{})), true
		}
	case wizard.StepLaunch:
		return m.handleLaunchStep(msg, snap)
	}
	return m, nil, true
}

func (m launchModel) handleInputStep(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.Type {
	case tea.KeyEnter:
		if m.mode == course.ModeUVZ {
			if m.uvzFocus < len(m.uvzInputs)-1 {
				m.uvzInputs[m.uvzFocus].Blur()
				m.uvzFocus++
				m.uvzInputs[m.uvzFocus].Focus()
				return m, textinput.Blink, true
			}
			descriptor := course.Descriptor{UVZ: &course.UVZ{
				Skills:   m.uvzInputs[0].Value(),
				Passions: m.uvzInputs[1].Value(),
				Results:  m.uvzInputs[2].Value(),
			}}
			m.busy = true
			m.busyLabel = "Generating course concepts"
			return m, tea.Batch(m.spinner.Tick, m.advanceCmd(wizard.Input{Descriptor: descriptor})), true
		}
		descriptor := course.Descriptor{Keywords: m.textInput.Value()}
		m.busy = true
		m.busyLabel = "Generating course concepts"
		return m, tea.Batch(m.spinner.Tick, m.advanceCmd(wizard.Input{Descriptor: descriptor})), true
	case tea.KeyTab:
		if m.mode == course.ModeUVZ {
			m.uvzInputs[m.uvzFocus].Blur()
			m.uvzFocus = (m.uvzFocus + 1) % len(m.uvzInputs)
			m.uvzInputs[m.uvzFocus].Focus()
			return m, textinput.Blink, true
		}
	}
	return m, nil, false
}

func (m launchModel) handleConceptStep(msg tea.KeyMsg, snap wizard.Session) (tea.Model, tea.Cmd, bool) {
	switch {
	case msg.Type == tea.KeyUp || msg.String() == "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil, true
	case msg.Type == tea.KeyDown || msg.String() == "j":
		if m.cursor < len(snap.Concepts)-1 {
			m.cursor++
		}
		return m, nil, true
	case msg.Type == tea.KeyEnter:
		selected := m.cursor
		m.busy = true
		m.busyLabel = "Generating course content"
		return m, tea.Batch(m.spinner.Tick, m.advanceCmd(wizard.Input{SelectedConcept: &selected})), true
	}
	return m, nil, true
}

func (m launchModel) handleLaunchStep(msg tea.KeyMsg, snap wizard.Session) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "d":
		path, err := exportBundle(snap)
		if err != nil {
			m.logger.Error(fmt.Sprintf("Failed to export launch bundle: %v", err))
			return m, nil, true
		}
		m.exported = path
		return m, nil, true
	case "r":
		m.machine.Reset()
		m.cursor = 0
		m.exported = ""
		m.publishDone = nil
		m.publishIndex = 0
		m.textInput.SetValue("")
		for i := range m.uvzInputs {
			m.uvzInputs[i].SetValue("")
			m.uvzInputs[i].Blur()
		}
		m.uvzFocus = 0
		if m.mode == course.ModeUVZ {
			m.uvzInputs[0].Focus()
		} else {
			m.textInput.Focus()
		}
		return m, textinput.Blink, true
	case "q":
		return m, tea.Quit, true
	}
	return m, nil, true
}

func (m launchModel) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.busy || m.machine.Snapshot().Step != wizard.StepKeywords {
		return m, nil
	}
	var cmd tea.Cmd
	if m.mode == course.ModeUVZ {
		m.uvzInputs[m.uvzFocus], cmd = m.uvzInputs[m.uvzFocus].Update(msg)
	} else {
		m.textInput, cmd = m.textInput.Update(msg)
	}
	return m, cmd
}

func (m launchModel) advanceCmd(in wizard.Input) tea.Cmd {
	machine := m.machine
	return func() tea.Msg {
		return advanceDoneMsg{err: machine.Advance(context.Background(), in)}
	}
}

func (m launchModel) listenForPublishStep() tea.Msg {
	select {
	case ev := <-m.events.stepChan:
		return publishStepMsg(ev)
	case err := <-m.events.errorChan:
		m.logger.Error(fmt.Sprintf("Error received during publication: %v", err))
		return publishErrMsg{err: err}
	}
}

func (m launchModel) View() string {
	snap := m.machine.Snapshot()

	var b strings.Builder
	b.WriteString(titleStyle.Render("UVZ Course Launchpad"))
	b.WriteString("\n\n")
	b.WriteString(m.stepIndicator(snap))
	b.WriteString("\n\n")

	if snap.Err != nil {
		b.WriteString(errorStyle.Render("Error: " + snap.Err.Error()))
		b.WriteString("\n")
		b.WriteString(faintStyle.Render("(press e to dismiss and try again)"))
		b.WriteString("\n\n")
	}

	if m.busy {
		b.WriteString(m.busyView(snap))
		return b.String()
	}

	switch snap.Step {
	case wizard.StepKeywords:
		b.WriteString(m.keywordsView())
	case wizard.StepConcepts:
		b.WriteString(m.conceptsView(snap))
	case wizard.StepContent:
		b.WriteString(m.contentView(snap))
	case wizard.StepPublish:
		b.WriteString(m.publishedView(snap))
	case wizard.StepLaunch:
		b.WriteString(m.launchView(snap))
	}
	return b.String()
}

func (m launchModel) stepIndicator(snap wizard.Session) string {
	names := wizard.StepNames()
	parts := make([]string, len(names))
	for i, name := range names {
		step := wizard.Step(i + 1)
		switch {
		case step < snap.Step:
			parts[i] = checkStyle.Render("✓ " + name)
		case step == snap.Step:
			parts[i] = currentStyle.Render("▸ " + name)
		default:
			parts[i] = faintStyle.Render("  " + name)
		}
	}
	return strings.Join(parts, "  ")
}

func (m launchModel) busyView(snap wizard.Session) string {
	if m.publishing {
		enumerator := func(l list.Items, i int) string {
			if i < len(m.publishDone) {
				return checkStyle.Render("✓")
			}
			return m.spinner.View()
		}
		l := list.New().Enumerator(enumerator)
		for _, name := range m.publishDone {
			l.Item(name)
		}
		l.Item(fmt.Sprintf("publishing... (%d/%d)", m.publishIndex, m.publishTotal))
		return fmt.Sprint(l)
	}
	return fmt.Sprintf("%s %s...", m.spinner.View(), m.busyLabel)
}

func (m launchModel) keywordsView() string {
	var b strings.Builder
	if m.mode == course.ModeUVZ {
		b.WriteString("Describe your Unique Value Zone:\n\n")
		for i := range m.uvzInputs {
			b.WriteString(m.uvzInputs[i].View())
			b.WriteString("\n")
		}
		b.WriteString(faintStyle.Render("\n(tab to switch fields, enter on the last field to generate 3 concepts)"))
	} else {
		b.WriteString("Enter 1-2 keywords to generate 10 course concepts:\n\n")
		b.WriteString(m.textInput.View())
		b.WriteString(faintStyle.Render("\n\n(press enter to generate concepts, esc to quit)"))
	}
	return b.String()
}

func (m launchModel) conceptsView(snap wizard.Session) string {
	var b strings.Builder
	b.WriteString("Choose your course concept:\n\n")
	for i, concept := range snap.Concepts {
		line := fmt.Sprintf("%2d. %s — $%d (%s)", i+1, concept.Title, concept.PricePoint, concept.TargetAudience)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString(faintStyle.Render("\n(up/down to choose, enter to generate content)"))
	return b.String()
}

func (m launchModel) contentView(snap wizard.Session) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Course content generated: %s\n\n", snap.Content.Title))
	for _, chapter := range snap.Content.Chapters {
		b.WriteString(fmt.Sprintf("  Chapter %d: %s (%d lessons)\n", chapter.Order, chapter.Title, len(chapter.Lessons)))
	}
	b.WriteString(fmt.Sprintf("\n  Plus sales page copy and a %d-part email sequence.\n", len(snap.Content.EmailSequence)))
	b.WriteString(faintStyle.Render("\n(press enter to publish to Whop)"))
	return b.String()
}

func (m launchModel) publishedView(snap wizard.Session) string {
	var b strings.Builder
	b.WriteString(checkStyle.Render("Course published successfully!"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  Course:  %s\n    %s\n", snap.Published.Course.Title, snap.Published.Course.URL))
	b.WriteString(fmt.Sprintf("  Product: %s ($%d)\n    %s\n", snap.Published.Product.Name, snap.Published.Product.Price, snap.Published.Product.URL))
	b.WriteString(faintStyle.Render("\n(press enter for your launch assets)"))
	return b.String()
}

func (m launchModel) launchView(snap wizard.Session) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Your launch kit is ready"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  Course URL:  %s\n", snap.Assets.CourseURL))
	b.WriteString(fmt.Sprintf("  Product URL: %s\n", snap.Assets.ProductURL))
	b.WriteString(fmt.Sprintf("  Sales script: %d chars of copy\n", len(snap.Assets.SalesScript)))
	b.WriteString("  Email sequence:\n")
	for i, email := range snap.Assets.EmailSequence {
		b.WriteString(fmt.Sprintf("    %d. %s\n", i+1, email.Subject))
	}
	if m.exported != "" {
		b.WriteString(checkStyle.Render(fmt.Sprintf("\nLaunch kit written to %s\n", m.exported)))
	}
	b.WriteString(faintStyle.Render("\n(d to download the launch kit, r to create another course, q to quit)"))
	return b.String()
}

func exportBundle(snap wizard.Session) (string, error) {
	manager := bundle.NewMemoryManager()
	if err := manager.WriteLaunchBundle(*snap.Assets, snap.Content); err != nil {
		return "", err
	}
	name := slugify(snap.Content.Title) + "-launch-kit.zip"
	if err := manager.ExportZip(name); err != nil {
		return "", err
	}
	return name, nil
}

func slugify(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
