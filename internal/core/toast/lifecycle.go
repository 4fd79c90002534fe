package toast

// DismissReason records why a toast started leaving.
type DismissReason string

const (
	ReasonManual   DismissReason = "manual"
	ReasonTimeout  DismissReason = "timeout"
	ReasonKeyboard DismissReason = "keyboard"
	ReasonAll      DismissReason = "all"
)

// Lifecycle holds optional callbacks invoked on the manager's goroutine as
// toasts move through their states. Any field may be nil.
type Lifecycle struct {
	OnShow    func(Toast)
	OnDismiss func(Toast, DismissReason)
	OnRemove  func(Toast)
}

func (l Lifecycle) show(t Toast) {
	if l.OnShow != nil {
		l.OnShow(t)
	}
}

func (l Lifecycle) dismiss(t Toast, reason DismissReason) {
	if l.OnDismiss != nil {
		l.OnDismiss(t, reason)
	}
}

func (l Lifecycle) remove(t Toast) {
	if l.OnRemove != nil {
		l.OnRemove(t)
	}
}

// Merge returns a Lifecycle that calls l then other for every event.
func (l Lifecycle) Merge(other Lifecycle) Lifecycle {
	return Lifecycle{
		OnShow: func(t Toast) {
			l.show(t)
			other.show(t)
		},
		OnDismiss: func(t Toast, r DismissReason) {
			l.dismiss(t, r)
			other.dismiss(t, r)
		},
		OnRemove: func(t Toast) {
			l.remove(t)
			other.remove(t)
		},
	}
}
