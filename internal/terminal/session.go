package terminal

import (
	"errors"
	"fmt"
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rtledit/rtl-decimal/internal/field"
	"github.com/rtledit/rtl-decimal/internal/screen"
)

// inputDoneMsg is sent once the input stream is exhausted.
type inputDoneMsg struct{}

// Session binds a form to a terminal as a Bubble Tea model: key messages
// are applied to the focused field and the form is redrawn. It also serves
// as the form's Notifier.
type Session struct {
	out      io.Writer
	renderer Renderer
	log      field.Logger

	// Echo prints the focused field's text after every input.
	Echo bool

	form     *screen.Form
	status   string
	messages []string
	afterCR  bool
	quitting bool
}

// NewSession creates a session writing to out.
func NewSession(out io.Writer, renderer Renderer, log field.Logger) *Session {
	if log == nil {
		log = field.NopLogger{}
	}
	return &Session{out: out, renderer: renderer, log: log}
}

// Notify shows a submit message. Styled sessions keep it on the status line
// until the next message; plain sessions print it straight away.
func (s *Session) Notify(msg string) {
	s.messages = append(s.messages, msg)
	if s.renderer.Styled {
		s.status = msg
		return
	}
	s.println(msg)
}

// Messages returns every message shown so far.
func (s *Session) Messages() []string {
	return s.messages
}

// Attach sets the form driven by Update and View.
func (s *Session) Attach(form *screen.Form) {
	s.form = form
	s.afterCR = false
	s.quitting = false
}

// Run drives form from in until quit or end of input. Styled sessions take
// over the terminal and redraw after every key; plain sessions read key
// bytes from in without rendering.
func (s *Session) Run(form *screen.Form, in io.Reader) error {
	s.Attach(form)

	opts := []tea.ProgramOption{tea.WithOutput(s.out)}
	src := &endOfInput{r: in}
	if s.renderer.Styled {
		opts = append(opts, tea.WithInput(in), tea.WithAltScreen())
	} else {
		opts = append(opts, tea.WithInput(src), tea.WithoutRenderer())
	}

	p := tea.NewProgram(s, opts...)
	src.done = func() { p.Send(inputDoneMsg{}) }

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run form: %w", err)
	}
	return nil
}

// Init implements tea.Model.
func (s *Session) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (s *Session) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if s.quitting {
		return s, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// A CR LF pair is a single enter.
		skip := s.afterCR && msg.Type == tea.KeyCtrlJ
		s.afterCR = msg.Type == tea.KeyEnter
		if skip {
			return s, nil
		}
		for _, input := range Translate(msg) {
			if input.Kind == InputQuit {
				s.log.Debugf("quit requested")
				s.quitting = true
				return s, tea.Quit
			}
			s.Apply(input)
		}
	case tea.WindowSizeMsg:
		s.renderer.Width = msg.Width
	case inputDoneMsg:
		s.quitting = true
		return s, tea.Quit
	}
	return s, nil
}

// View implements tea.Model.
func (s *Session) View() string {
	if s.form == nil || s.quitting {
		return ""
	}
	return s.renderer.Render(s.form, s.status)
}

// Apply performs a single input on the attached form.
func (s *Session) Apply(input Input) {
	if s.form == nil {
		return
	}
	form := s.form
	fld := form.Focused()
	if fld == nil {
		return
	}

	switch input.Kind {
	case InputKey:
		for _, ev := range field.Press(input.Key) {
			form.HandleKey(ev)
		}
	case InputBackspace:
		start, end := fld.Selection()
		if text := deleteBackward(fld.Text(), start, end); text != fld.Text() {
			fld.SetText(text)
		}
	case InputClear:
		fld.SetText("")
	case InputSelectAll:
		fld.SelectAll()
	case InputCursorLeft:
		start, end := fld.Selection()
		pos := start
		if start == end {
			pos = start - 1
		}
		fld.SetSelection(pos, pos)
	case InputCursorRight:
		start, end := fld.Selection()
		pos := end
		if start == end {
			pos = end + 1
		}
		fld.SetSelection(pos, pos)
	case InputCursorHome:
		fld.SetSelection(0, 0)
	case InputCursorEnd:
		fld.MoveCursorToEnd()
	case InputNextField:
		form.FocusNext()
	case InputSubmit:
		if _, err := form.Submit(); err != nil {
			s.log.Errorf("submit failed: %v", err)
		}
	}
	s.log.Debugf("%s -> %s=%q", input.Kind, fld.Name(), fld.Text())

	if s.Echo {
		s.println(form.Focused().Text())
	}
}

func (s *Session) println(line string) {
	if _, err := fmt.Fprintln(s.out, line); err != nil {
		s.log.Errorf("failed to write output: %v", err)
	}
}

// endOfInput reports when the wrapped reader runs dry, so a program reading
// piped keys can stop once every key has been delivered.
type endOfInput struct {
	r    io.Reader
	done func()
	once sync.Once
}

func (e *endOfInput) Read(p []byte) (int, error) {
	n, err := e.r.Read(p)
	if errors.Is(err, io.EOF) {
		if n > 0 {
			return n, nil
		}
		if e.done != nil {
			e.once.Do(e.done)
		}
	}
	return n, err
}

// deleteBackward removes the selection, or the character before a plain cursor.
func deleteBackward(text string, start, end int) string {
	runes := []rune(text)
	if start < 0 {
		start = 0
	}
	if end > len(runes) {
		end = len(runes)
	}
	if start == end {
		if start == 0 {
			return text
		}
		start--
	}
	if start > end {
		return text
	}
	return string(runes[:start]) + string(runes[end:])
}
