package field

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	fixed "github.com/rtledit/rtl-decimal/pkg/decimal"
)

// DefaultDecimalPoints is the number of fractional digits used when none is configured.
const DefaultDecimalPoints = 3

// Focusable is anything that can be asked to take input focus.
type Focusable interface {
	RequestFocus()
}

// EnterListener is notified when the enter key is released.
type EnterListener func()

type options struct {
	points  int
	initial decimal.Decimal
	sep     rune
	logger  Logger
}

// Option configures a Controller at construction.
type Option func(*options)

// WithDecimalPoints sets the number of fractional digits.
func WithDecimalPoints(n int) Option {
	return func(o *options) { o.points = n }
}

// WithInitialValue sets the value displayed after construction.
func WithInitialValue(v decimal.Decimal) Option {
	return func(o *options) { o.initial = v }
}

// WithSeparator sets the decimal separator shown to the user.
func WithSeparator(sep rune) Option {
	return func(o *options) { o.sep = sep }
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Controller is a right-filling fixed-point numeric input. Each digit key
// enters on the right and pushes the existing digits left, the way a
// calculator or POS terminal display does, while the display always keeps
// exactly DecimalPoints fractional digits.
//
// A Controller is not safe for concurrent use; it expects every call to come
// from the goroutine delivering UI events.
type Controller struct {
	text     string
	selStart int
	selEnd   int

	points int
	sep    rune

	focused bool
	next    Focusable
	onEnter EnterListener

	log Logger

	// correcting guards the text-changed hook against its own writes.
	correcting bool
}

// New creates a controller. Without options it shows "0.000".
func New(opts ...Option) (*Controller, error) {
	o := options{
		points:  DefaultDecimalPoints,
		initial: decimal.Zero,
		sep:     fixed.CanonicalSeparator,
		logger:  NopLogger{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if err := validSeparator(o.sep); err != nil {
		return nil, err
	}

	c := &Controller{sep: o.sep, log: o.logger}
	if err := c.Configure(o.points, o.initial); err != nil {
		return nil, err
	}
	return c, nil
}

func validSeparator(sep rune) error {
	if sep == utf8.RuneError || unicode.IsDigit(sep) || unicode.IsSpace(sep) || sep == '-' || sep == '+' {
		return fmt.Errorf("%w: separator %q cannot be used", ErrInvalidConfiguration, sep)
	}
	return nil
}

// Configure sets the number of fractional digits, 1 to 18, and resets the
// display to initialValue. Nothing changes when an error is returned.
func (c *Controller) Configure(decimalPoints int, initialValue decimal.Decimal) error {
	if err := fixed.ValidPoints(decimalPoints); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	f, err := fixed.NewFixed(initialValue, decimalPoints)
	if err != nil {
		return fmt.Errorf("%w: initial value %s", ErrInvalidInput, initialValue.String())
	}

	c.points = decimalPoints
	c.show(f)
	c.log.Debugf("configured decimal points=%d value=%s", decimalPoints, c.text)
	return nil
}

// SetValue replaces the displayed value, rounding half-up to DecimalPoints
// digits. Negative values are rejected and the display is kept.
func (c *Controller) SetValue(value decimal.Decimal) error {
	if value.IsNegative() {
		return fmt.Errorf("%w: negative value %s", ErrInvalidInput, value.String())
	}
	f, err := fixed.NewFixed(value, c.points)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	c.show(f)
	return nil
}

// Value returns the displayed value, or zero when the text cannot be read.
func (c *Controller) Value() decimal.Decimal {
	v, err := c.ParseValue()
	if err != nil {
		c.log.Warnf("returning zero for unreadable text %q: %v", c.text, err)
		return decimal.Zero
	}
	return v
}

// ParseValue parses the displayed text. A blank field reads as zero.
func (c *Controller) ParseValue() (decimal.Decimal, error) {
	if strings.TrimSpace(c.text) == "" {
		return decimal.Zero, nil
	}
	d, err := fixed.ParseDecimal(c.text, c.sep)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrNumericParse, err)
	}
	return d, nil
}

// DecimalPoints returns the number of fractional digits shown.
func (c *Controller) DecimalPoints() int {
	return c.points
}

// Separator returns the decimal separator shown to the user.
func (c *Controller) Separator() rune {
	return c.sep
}

// SetDecimalPoints changes the number of fractional digits. The current
// magnitude is kept and redisplayed at the new width, rounding half-up when
// narrowing. Nothing changes when an error is returned.
func (c *Controller) SetDecimalPoints(n int) error {
	if err := fixed.ValidPoints(n); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	f, err := c.current().WithPoints(n)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	c.points = n
	c.show(f)
	c.log.Debugf("decimal points changed to %d, display %s", n, c.text)
	return nil
}

// SetFocusChainLink sets the control focused after enter. Nil clears it.
func (c *Controller) SetFocusChainLink(target Focusable) {
	c.next = target
}

// SetEnterListener replaces the enter listener. Nil clears it.
func (c *Controller) SetEnterListener(fn EnterListener) {
	c.onEnter = fn
}

// HandleKey processes a key event. Work is done on key release only; every
// event is reported as consumed so the host never applies its own editing.
func (c *Controller) HandleKey(ev KeyEvent) bool {
	if ev.Action != ActionUp {
		return true
	}
	if d, ok := ev.Code.Digit(); ok {
		c.enterDigit(d)
		return true
	}
	switch ev.Code {
	case KeyEnter:
		c.enter()
	default:
		c.log.Debugf("ignoring %s", ev.Code)
	}
	return true
}

func (c *Controller) enterDigit(d int) {
	if c.allSelected() {
		c.show(fixed.Zero(c.points))
	}
	if c.selStart == c.selEnd && c.selEnd != c.length() {
		c.MoveCursorToEnd()
		return
	}
	c.show(c.current().PushDigit(d))
}

func (c *Controller) enter() {
	if c.onEnter != nil {
		c.onEnter()
	}
	if c.next != nil {
		c.next.RequestFocus()
	}
}

// Text returns the displayed text.
func (c *Controller) Text() string {
	return c.text
}

// SetText replaces the displayed text as an outside edit would (deletion,
// paste, hardware keyboard). The cursor goes to the end and the text is
// corrected back to a padded fixed-point form:
//   - empty text becomes the zero default;
//   - a fraction shorter than DecimalPoints means a trailing digit was lost,
//     so the value is divided by ten, moving the digits right;
//   - anything else is reformatted, or reset to zero when unreadable.
func (c *Controller) SetText(s string) {
	c.text = s
	c.MoveCursorToEnd()
	c.textChanged()
}

func (c *Controller) textChanged() {
	if c.correcting {
		return
	}
	c.correcting = true
	defer func() { c.correcting = false }()

	text := strings.TrimSpace(c.text)
	if text == "" {
		c.write(fixed.Zero(c.points).Format(c.sep))
		return
	}

	d, err := fixed.ParseDecimal(text, c.sep)
	if err != nil {
		c.log.Warnf("resetting unreadable text %q: %v", c.text, err)
		c.write(fixed.Zero(c.points).Format(c.sep))
		return
	}
	f, err := fixed.NewFixed(d, c.points)
	if err != nil {
		c.log.Errorf("resetting text %q: %v", c.text, err)
		f = fixed.Zero(c.points)
	}
	if frac, ok := c.fractionDigits(text); ok && frac < c.points {
		f = f.ShiftRight()
	}
	if s := f.Format(c.sep); s != c.text {
		c.write(s)
	}
}

// fractionDigits counts the characters after the separator.
func (c *Controller) fractionDigits(text string) (int, bool) {
	i := strings.IndexFunc(text, func(r rune) bool {
		return r == c.sep || r == fixed.CanonicalSeparator
	})
	if i < 0 {
		return 0, false
	}
	_, size := utf8.DecodeRuneInString(text[i:])
	return utf8.RuneCountInString(text[i+size:]), true
}

// Selection returns the selection bounds in characters. Equal bounds mean a
// plain cursor.
func (c *Controller) Selection() (start, end int) {
	return c.selStart, c.selEnd
}

// SetSelection selects [start, end), clamped to the text.
func (c *Controller) SetSelection(start, end int) {
	n := c.length()
	start = clamp(start, 0, n)
	end = clamp(end, 0, n)
	if start > end {
		start, end = end, start
	}
	c.selStart, c.selEnd = start, end
}

// SelectAll selects the whole text.
func (c *Controller) SelectAll() {
	c.SetSelection(0, c.length())
}

// MoveCursorToEnd collapses the selection to the end of the text.
func (c *Controller) MoveCursorToEnd() {
	n := c.length()
	c.selStart, c.selEnd = n, n
}

// OnFocusChanged tells the controller it gained or lost focus. Gaining
// focus selects the whole text so the next digit replaces the value.
func (c *Controller) OnFocusChanged(gained bool) {
	c.focused = gained
	if gained {
		c.SelectAll()
	}
}

// Focused reports whether the controller has focus.
func (c *Controller) Focused() bool {
	return c.focused
}

func (c *Controller) allSelected() bool {
	n := c.length()
	return n > 0 && c.selStart == 0 && c.selEnd == n
}

// current reads the display as a Fixed, falling back to zero.
func (c *Controller) current() fixed.Fixed {
	f, err := fixed.Parse(c.text, c.sep, c.points)
	if err != nil {
		c.log.Warnf("treating unreadable text %q as zero: %v", c.text, err)
		return fixed.Zero(c.points)
	}
	return f
}

func (c *Controller) show(f fixed.Fixed) {
	c.write(f.Format(c.sep))
}

// write replaces the text, moves the cursor to the end and runs the
// text-changed hook.
func (c *Controller) write(s string) {
	c.text = s
	c.MoveCursorToEnd()
	c.textChanged()
}

func (c *Controller) length() int {
	return utf8.RuneCountInString(c.text)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
