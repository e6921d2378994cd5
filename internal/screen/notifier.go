package screen

// Notifier shows a short-lived message to the user.
type Notifier interface {
	Notify(msg string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(msg string)

// Notify calls f(msg).
func (f NotifierFunc) Notify(msg string) { f(msg) }

// nopNotifier drops messages.
type nopNotifier struct{}

func (nopNotifier) Notify(string) {}
