package screen

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rtledit/rtl-decimal/internal/domain"
	"github.com/rtledit/rtl-decimal/internal/field"
	fixed "github.com/rtledit/rtl-decimal/pkg/decimal"
)

// ErrUnknownField is returned when a field name is not on the form.
var ErrUnknownField = errors.New("unknown field")

// Field is a named controller placed on a Form. It can be used as another
// field's focus chain link.
type Field struct {
	*field.Controller

	Spec domain.FieldSpec
	form *Form
}

// Name returns the field name.
func (f *Field) Name() string { return f.Spec.Name }

// Label returns the display label.
func (f *Field) Label() string { return f.Spec.DisplayLabel() }

// RequestFocus moves the form focus to this field.
func (f *Field) RequestFocus() {
	f.form.focus(f)
}

// Form is the host screen: it owns the controllers, keeps track of which one
// has focus, chains focus between them and reports the value on submit.
type Form struct {
	spec     *domain.Form
	fields   []*Field
	byName   map[string]*Field
	focused  *Field
	notifier Notifier
	log      field.Logger

	lastMessage string
	submits     int
}

// Option configures a Form.
type Option func(*Form)

// WithNotifier sets where submit messages go.
func WithNotifier(n Notifier) Option {
	return func(f *Form) {
		if n != nil {
			f.notifier = n
		}
	}
}

// WithLogger sets the logger shared by the form and its controllers.
func WithLogger(l field.Logger) Option {
	return func(f *Form) {
		if l != nil {
			f.log = l
		}
	}
}

// New builds a form from its description. The first field gets focus.
func New(spec *domain.Form, opts ...Option) (*Form, error) {
	if spec == nil || len(spec.Fields) == 0 {
		return nil, fmt.Errorf("form has no fields")
	}

	f := &Form{
		spec:     spec,
		byName:   make(map[string]*Field, len(spec.Fields)),
		notifier: nopNotifier{},
		log:      field.NopLogger{},
	}
	for _, opt := range opts {
		opt(f)
	}

	for _, fs := range spec.Fields {
		c, err := field.New(
			field.WithDecimalPoints(fs.Points()),
			field.WithInitialValue(fs.InitialValue),
			field.WithSeparator(spec.SeparatorRune()),
			field.WithLogger(f.log),
		)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", fs.Name, err)
		}
		fld := &Field{Controller: c, Spec: fs, form: f}
		f.fields = append(f.fields, fld)
		f.byName[fs.Name] = fld
	}

	for _, fld := range f.fields {
		if fld.Spec.Next != "" {
			next, ok := f.byName[fld.Spec.Next]
			if !ok {
				return nil, fmt.Errorf("field %s: %w %q", fld.Name(), ErrUnknownField, fld.Spec.Next)
			}
			fld.SetFocusChainLink(next)
		}
		if fld.Spec.SubmitOnEnter {
			fld.SetEnterListener(func() {
				if _, err := f.Submit(); err != nil {
					f.log.Errorf("submit failed: %v", err)
				}
			})
		}
	}

	if _, ok := f.byName[spec.SubmitField()]; !ok {
		return nil, fmt.Errorf("submit: %w %q", ErrUnknownField, spec.SubmitField())
	}

	f.focus(f.fields[0])
	return f, nil
}

// Title returns the form title.
func (f *Form) Title() string { return f.spec.Title }

// Fields returns the fields in display order.
func (f *Form) Fields() []*Field {
	return f.fields
}

// Field returns the field with the given name.
func (f *Form) Field(name string) (*Field, error) {
	fld, ok := f.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownField, name)
	}
	return fld, nil
}

// Focused returns the field that has focus.
func (f *Form) Focused() *Field {
	return f.focused
}

// Focus gives focus to the named field.
func (f *Form) Focus(name string) error {
	fld, err := f.Field(name)
	if err != nil {
		return err
	}
	f.focus(fld)
	return nil
}

// FocusNext moves focus to the following field in display order, wrapping around.
func (f *Form) FocusNext() {
	for i, fld := range f.fields {
		if fld == f.focused {
			f.focus(f.fields[(i+1)%len(f.fields)])
			return
		}
	}
	f.focus(f.fields[0])
}

func (f *Form) focus(fld *Field) {
	if f.focused == fld {
		return
	}
	if f.focused != nil {
		f.focused.OnFocusChanged(false)
	}
	f.focused = fld
	fld.OnFocusChanged(true)
	f.log.Debugf("focus on %s", fld.Name())
}

// HandleKey routes a key event to the focused field.
func (f *Form) HandleKey(ev field.KeyEvent) bool {
	if f.focused == nil {
		return false
	}
	return f.focused.HandleKey(ev)
}

// Values returns the current value of every field.
func (f *Form) Values() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(f.fields))
	for _, fld := range f.fields {
		out[fld.Name()] = fld.Value()
	}
	return out
}

// Submit builds the submit message from the submit field's value and hands
// it to the notifier.
func (f *Form) Submit() (string, error) {
	fld, err := f.Field(f.spec.SubmitField())
	if err != nil {
		return "", err
	}
	v, err := fld.ParseValue()
	if err != nil {
		return "", fmt.Errorf("submit %s: %w", fld.Name(), err)
	}
	fx, err := fixed.NewFixed(v, fld.DecimalPoints())
	if err != nil {
		return "", fmt.Errorf("submit %s: %w", fld.Name(), err)
	}
	value := fx.Format(fld.Separator())

	msg := f.spec.RenderSubmitMessage(fld.Spec, value)
	f.lastMessage = msg
	f.submits++
	f.log.Infof("submitted %s=%s", fld.Name(), value)
	f.notifier.Notify(msg)
	return msg, nil
}

// LastMessage returns the most recent submit message.
func (f *Form) LastMessage() string {
	return f.lastMessage
}

// Submits returns how many times the form was submitted.
func (f *Form) Submits() int {
	return f.submits
}

// Snapshot captures the current state of every field.
func (f *Form) Snapshot() *domain.Snapshot {
	snap := &domain.Snapshot{
		Title:   f.spec.Title,
		Message: f.lastMessage,
		Submits: f.submits,
	}
	if f.focused != nil {
		snap.Focused = f.focused.Name()
	}
	for _, fld := range f.fields {
		value := fld.Value()
		canonical := value.String()
		if fx, err := fixed.NewFixed(value, fld.DecimalPoints()); err == nil {
			canonical = fx.String()
		}
		snap.Fields = append(snap.Fields, domain.FieldValue{
			Name:          fld.Name(),
			Label:         fld.Label(),
			DecimalPoints: fld.DecimalPoints(),
			Display:       fld.Text(),
			Value:         canonical,
		})
	}
	return snap
}
