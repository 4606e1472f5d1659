// ABOUTME: Interactive TUI form for editing the current user's profile.
// ABOUTME: 3-step bubbletea model collecting full name, bio, and avatar, then saving.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/2389-research/snapgram/internal/models"
)

// MaxBioLength caps the bio input.
const MaxBioLength = 150

// Step represents the current editor step.
type Step int

const (
	StepFullName Step = iota
	StepBio
	StepAvatar
	StepSaving
	StepDone
	StepFailed
)

// saveResultMsg carries the result of an async save attempt.
type saveResultMsg struct {
	err error
}

// SaveFn persists the edited profile fields.
type SaveFn func(ctx context.Context, patch models.UserPatch) error

// cancelHolder shares a cancel function across bubbletea model copies.
// It must stay a pointer field so value-receiver methods can publish the cancel func.
type cancelHolder struct {
	cancel context.CancelFunc
}

// ProfileModel is the bubbletea model for the profile editor.
type ProfileModel struct {
	username string
	step     Step
	inputs   [3]textinput.Model
	spinner  spinner.Model
	saveFn   SaveFn
	cancel   *cancelHolder
	saveErr  error
	quitting bool
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	brandStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// NewProfileModel creates an editor pre-filled with user's current values.
func NewProfileModel(user models.User, save SaveFn) ProfileModel {
	nameInput := textinput.New()
	nameInput.Placeholder = "Full name"
	nameInput.Focus()
	nameInput.Width = 50
	nameInput.SetValue(user.FullName)

	bioInput := textinput.New()
	bioInput.Placeholder = "Tell people about yourself"
	bioInput.CharLimit = MaxBioLength
	bioInput.Width = 50
	bioInput.SetValue(strings.ReplaceAll(user.Bio, "\n", " "))

	avatarInput := textinput.New()
	avatarInput.Placeholder = "path/to/avatar.jpg"
	avatarInput.Width = 50
	avatarInput.SetValue(user.Avatar)

	s := spinner.New()
	s.Spinner = spinner.Dot

	return ProfileModel{
		username: user.Username,
		step:     StepFullName,
		inputs:   [3]textinput.Model{nameInput, bioInput, avatarInput},
		spinner:  s,
		saveFn:   save,
		cancel:   &cancelHolder{},
	}
}

// Init implements tea.Model.
func (m ProfileModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m ProfileModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEscape:
			m.quitting = true
			if m.cancel.cancel != nil {
				m.cancel.cancel()
			}
			return m, tea.Quit
		}

		switch m.step {
		case StepFullName, StepBio, StepAvatar:
			return m.updateInput(msg)
		case StepFailed:
			return m.updateFailed(msg)
		}

	case saveResultMsg:
		m.cancel.cancel = nil
		if msg.err == nil {
			m.step = StepDone
			return m, tea.Quit
		}
		m.saveErr = msg.err
		m.step = StepFailed
		return m, nil

	case spinner.TickMsg:
		if m.step == StepSaving {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m ProfileModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	idx := int(m.step)

	switch msg.Type {
	case tea.KeyEnter:
		if m.step == StepFullName && strings.TrimSpace(m.inputs[0].Value()) == "" {
			return m, nil
		}
		m.inputs[idx].Blur()

		switch m.step {
		case StepFullName:
			m.step = StepBio
			m.inputs[1].Focus()
			return m, textinput.Blink
		case StepBio:
			m.step = StepAvatar
			m.inputs[2].Focus()
			return m, textinput.Blink
		case StepAvatar:
			m.step = StepSaving
			return m, tea.Batch(m.startSave(), m.spinner.Tick)
		}

	case tea.KeyShiftTab:
		if m.step > StepFullName {
			m.inputs[idx].Blur()
			m.step--
			m.inputs[int(m.step)].Focus()
			return m, textinput.Blink
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[idx], cmd = m.inputs[idx].Update(msg)
	return m, cmd
}

func (m ProfileModel) updateFailed(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyRunes && len(msg.Runes) > 0 {
		switch msg.Runes[0] {
		case 'r':
			m.step = StepSaving
			m.saveErr = nil
			return m, tea.Batch(m.startSave(), m.spinner.Tick)
		case 'q':
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m ProfileModel) startSave() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel.cancel = cancel
	patch := m.Result()
	fn := m.saveFn
	return func() tea.Msg {
		defer cancel()
		return saveResultMsg{err: fn(ctx, patch)}
	}
}

// View implements tea.Model.
func (m ProfileModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(brandStyle.Render("   SNAPGRAM"))
	b.WriteString(titleStyle.Render(" - Edit profile"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Editing @%s.\n\n", m.username))

	switch m.step {
	case StepFullName:
		b.WriteString(stepStyle.Render("Step 1 of 3: Full name"))
		b.WriteString("\n")
		b.WriteString(m.inputs[0].View())
		b.WriteString("\n")

	case StepBio:
		b.WriteString(fmt.Sprintf("  Name: %s\n\n", m.inputs[0].Value()))
		b.WriteString(stepStyle.Render("Step 2 of 3: Bio"))
		b.WriteString("\n")
		b.WriteString(promptStyle.Render(fmt.Sprintf("(%d/%d)", len([]rune(m.inputs[1].Value())), MaxBioLength)))
		b.WriteString("\n")
		b.WriteString(m.inputs[1].View())
		b.WriteString("\n")

	case StepAvatar:
		b.WriteString(fmt.Sprintf("  Name: %s\n", m.inputs[0].Value()))
		b.WriteString(fmt.Sprintf("  Bio:  %s\n\n", m.inputs[1].Value()))
		b.WriteString(stepStyle.Render("Step 3 of 3: Avatar"))
		b.WriteString("\n")
		b.WriteString(m.inputs[2].View())
		b.WriteString("\n")

	case StepSaving:
		b.WriteString(m.spinner.View())
		b.WriteString(" Saving profile...")
		b.WriteString("\n")

	case StepDone:
		b.WriteString(successStyle.Render("✓ Profile updated!"))
		b.WriteString("\n")

	case StepFailed:
		errMsg := "unknown error"
		if m.saveErr != nil {
			errMsg = m.saveErr.Error()
		}
		b.WriteString(errorStyle.Render(fmt.Sprintf("✗ Save failed: %s", errMsg)))
		b.WriteString("\n\n")
		b.WriteString(promptStyle.Render("[r]etry  [q]uit"))
		b.WriteString("\n")
	}

	if m.step <= StepAvatar {
		b.WriteString("\n")
		b.WriteString(promptStyle.Render("enter next · shift+tab back · esc cancel"))
		b.WriteString("\n")
	}

	return b.String()
}

// Result returns the edited fields as a patch.
func (m ProfileModel) Result() models.UserPatch {
	fullName := strings.TrimSpace(m.inputs[0].Value())
	bio := strings.TrimSpace(m.inputs[1].Value())
	avatar := strings.TrimSpace(m.inputs[2].Value())
	patch := models.UserPatch{FullName: &fullName, Bio: &bio}
	if avatar != "" {
		patch.Avatar = &avatar
	}
	return patch
}

// Saved returns true if the editor finished with a successful save.
func (m ProfileModel) Saved() bool {
	return m.step == StepDone && !m.quitting
}
