package trainer

import "github.com/gen2brain/beeep"

// Notifier shows short feedback messages, like the "Correct" toast.
type Notifier interface {
	Notify(title, message string) error
}

// DesktopNotifier sends OS notifications.
type DesktopNotifier struct{}

func (DesktopNotifier) Notify(title, message string) error {
	return beeep.Notify(title, message, "")
}

type nopNotifier struct{}

func (nopNotifier) Notify(string, string) error { return nil }
