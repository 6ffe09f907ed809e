package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/ansa-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/ansa-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/ansa-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ansa-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ansa-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ansa-cli/internal/core/domain"
)

// App is the chat application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keymap holds the keybindings.
	keymap *keymap.KeyMap

	// input is the question input component.
	input *input.QuestionInput

	// statusBar shows corpus state and keybinding hints.
	statusBar *status.Bar

	// viewport scrolls the conversation transcript.
	viewport viewport.Model

	// session is the active conversation, nil until started.
	session *domain.Session

	// transcript holds the messages shown in the viewport.
	transcript []domain.Message

	// lastAnswerID is the assistant message eligible for rating.
	lastAnswerID string

	// thinking is true while a question is being answered.
	thinking bool

	// rebuilding is true while the corpus is being re-indexed.
	rebuilding bool

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new chat application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	vp := viewport.New(80, 20)

	return &App{
		ports:     ports,
		ctx:       context.Background(),
		styles:    s,
		keymap:    km,
		input:     input.NewQuestionInput(s),
		statusBar: status.NewBar(s, km),
		viewport:  vp,
	}, nil
}

// WithContext sets the context used for service calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init starts the session and loads the corpus status.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.input.Init(),
		a.startSessionCmd(),
		a.loadStatusCmd(),
	)
}

// Update handles incoming messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.SessionStarted:
		if msg.Err != nil {
			a.err = msg.Err
			a.statusBar.SetState(status.StateError)
			a.statusBar.SetMessage(msg.Err.Error())
			return a, nil
		}
		a.session = msg.Session
		return a, nil

	case messages.StatusLoaded:
		a.statusBar.SetUnitCount(msg.Status.UnitCount)
		return a, nil

	case messages.AnswerReceived:
		a.thinking = false
		if msg.Err != nil {
			a.err = msg.Err
			a.statusBar.SetState(status.StateError)
			a.statusBar.SetMessage(msg.Err.Error())
			a.refreshViewport()
			return a, nil
		}
		a.err = nil
		a.transcript = append(a.transcript, *msg.Message)
		a.lastAnswerID = msg.Message.ID
		a.statusBar.SetState(status.StateRatable)
		a.statusBar.SetMessage("")
		a.refreshViewport()
		a.viewport.GotoBottom()
		return a, nil

	case messages.RebuildFinished:
		a.rebuilding = false
		if msg.Err != nil {
			a.err = msg.Err
			a.statusBar.SetState(status.StateError)
			a.statusBar.SetMessage(msg.Err.Error())
			return a, nil
		}
		a.err = nil
		a.statusBar.SetState(status.StateReady)
		return a, a.loadStatusCmd()

	case messages.FeedbackRecorded:
		if msg.Err != nil {
			a.err = msg.Err
			a.statusBar.SetState(status.StateError)
			a.statusBar.SetMessage(msg.Err.Error())
			return a, nil
		}
		a.lastAnswerID = ""
		a.statusBar.SetState(status.StateReady)
		return a, nil

	case messages.ConversationCleared:
		if msg.Err != nil {
			a.err = msg.Err
			a.statusBar.SetState(status.StateError)
			a.statusBar.SetMessage(msg.Err.Error())
			return a, nil
		}
		a.transcript = nil
		a.lastAnswerID = ""
		a.statusBar.Clear()
		a.refreshViewport()
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.statusBar.SetState(status.StateError)
		a.statusBar.SetMessage(msg.Err.Error())
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	var cmd tea.Cmd
	a.viewport, cmd = a.viewport.Update(msg)
	return a, cmd
}

// handleKey processes keyboard input.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, a.keymap.Quit):
		return a, tea.Quit

	case keymap.Matches(keyStr, a.keymap.Submit):
		return a.submitQuestion()

	case keymap.Matches(keyStr, a.keymap.Clear):
		if a.session == nil {
			return a, nil
		}
		return a, a.clearCmd()

	case keymap.Matches(keyStr, a.keymap.Rebuild):
		if a.rebuilding || a.thinking {
			return a, nil
		}
		a.rebuilding = true
		a.statusBar.SetState(status.StateRebuilding)
		return a, a.rebuildCmd()

	case keymap.Matches(keyStr, a.keymap.RateUp):
		return a.rate(domain.FeedbackUp)

	case keymap.Matches(keyStr, a.keymap.RateDown):
		return a.rate(domain.FeedbackDown)

	case keymap.Matches(keyStr, a.keymap.ScrollUp),
		keymap.Matches(keyStr, a.keymap.ScrollDown):
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// submitQuestion sends the typed question to the session service.
func (a *App) submitQuestion() (tea.Model, tea.Cmd) {
	if a.thinking || a.session == nil {
		return a, nil
	}

	question := strings.TrimSpace(a.input.Value())
	if question == "" {
		return a, nil
	}

	a.transcript = append(a.transcript, domain.Message{
		SessionID: a.session.ID,
		Role:      domain.MessageRoleUser,
		Content:   question,
	})
	a.input.Reset()
	a.thinking = true
	a.err = nil
	a.lastAnswerID = ""
	a.statusBar.SetState(status.StateThinking)
	a.refreshViewport()
	a.viewport.GotoBottom()

	return a, a.askCmd(question)
}

// rate stores a rating for the most recent answer.
func (a *App) rate(rating domain.FeedbackRating) (tea.Model, tea.Cmd) {
	if a.lastAnswerID == "" {
		return a, nil
	}
	return a, a.rateCmd(a.lastAnswerID, rating)
}

// startSessionCmd creates the conversation session.
func (a *App) startSessionCmd() tea.Cmd {
	return func() tea.Msg {
		session, err := a.ports.Session.Start(a.ctx)
		return messages.SessionStarted{Session: session, Err: err}
	}
}

// loadStatusCmd reads the corpus status snapshot.
func (a *App) loadStatusCmd() tea.Cmd {
	return func() tea.Msg {
		return messages.StatusLoaded{Status: a.ports.Retrieval.Status()}
	}
}

// askCmd answers the question through the session service.
func (a *App) askCmd(question string) tea.Cmd {
	sessionID := a.session.ID
	return func() tea.Msg {
		answer, err := a.ports.Session.Ask(a.ctx, sessionID, question)
		return messages.AnswerReceived{Message: answer, Err: err}
	}
}

// rateCmd stores feedback for an assistant message.
func (a *App) rateCmd(messageID string, rating domain.FeedbackRating) tea.Cmd {
	return func() tea.Msg {
		err := a.ports.Session.Rate(a.ctx, messageID, rating)
		return messages.FeedbackRecorded{MessageID: messageID, Rating: rating, Err: err}
	}
}

// rebuildCmd re-indexes the corpus.
func (a *App) rebuildCmd() tea.Cmd {
	return func() tea.Msg {
		return messages.RebuildFinished{Err: a.ports.Retrieval.Rebuild(a.ctx)}
	}
}

// clearCmd removes the session's messages.
func (a *App) clearCmd() tea.Cmd {
	sessionID := a.session.ID
	return func() tea.Msg {
		err := a.ports.Session.Clear(a.ctx, sessionID)
		return messages.ConversationCleared{Err: err}
	}
}

// View renders the application.
func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(a.styles.Title.Render("ansa"))
	b.WriteString("\n\n")
	b.WriteString(a.viewport.View())
	b.WriteString("\n")
	b.WriteString(a.input.View())
	b.WriteString("\n")
	b.WriteString(a.statusBar.View())
	return b.String()
}

// refreshViewport re-renders the transcript into the viewport.
func (a *App) refreshViewport() {
	a.viewport.SetContent(a.renderTranscript())
}

// renderTranscript formats the conversation for display.
func (a *App) renderTranscript() string {
	if len(a.transcript) == 0 {
		return a.styles.Muted.Render("Ask a question about your documents to get started.")
	}

	width := a.viewport.Width
	if width < 20 {
		width = 20
	}
	body := a.styles.Normal.Width(width)

	var b strings.Builder
	for i, msg := range a.transcript {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch msg.Role {
		case domain.MessageRoleUser:
			b.WriteString(a.styles.UserLabel.Render("You"))
		case domain.MessageRoleAssistant:
			b.WriteString(a.styles.AssistantLabel.Render("ansa"))
		}
		b.WriteString("\n")
		b.WriteString(body.Render(msg.Content))
		if len(msg.Sources) > 0 {
			b.WriteString("\n")
			b.WriteString(a.styles.SourceRef.Render("Sources: " + strings.Join(msg.Sources, ", ")))
		}
	}

	if a.thinking {
		b.WriteString("\n\n")
		b.WriteString(a.styles.AssistantLabel.Render("ansa"))
		b.WriteString("\n")
		b.WriteString(a.styles.Muted.Render("Thinking..."))
	}

	return b.String()
}

// SetDimensions updates the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	a.input.SetWidth(width)
	a.statusBar.SetWidth(width)

	// Title and spacing take 3 lines, input 3, status bar 1.
	vpHeight := height - 7
	if vpHeight < 3 {
		vpHeight = 3
	}
	a.viewport.Width = width
	a.viewport.Height = vpHeight
	a.refreshViewport()
}

// Session returns the active session, nil before SessionStarted.
func (a *App) Session() *domain.Session {
	return a.session
}

// Transcript returns the messages currently displayed.
func (a *App) Transcript() []domain.Message {
	return a.transcript
}

// Thinking reports whether a question is being answered.
func (a *App) Thinking() bool {
	return a.thinking
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}
