package selection

import (
	"context"
	"time"

	"github.com/agentstation/refselect/pkg/lookup"
	"github.com/agentstation/refselect/pkg/references"
)

// Control is the select widget side of the binding. It receives the rows
// that are already selected when the widget starts.
type Control interface {
	AppendSelected(entry SelectedEntry)
}

// ControlFunc adapts a function to Control.
type ControlFunc func(entry SelectedEntry)

// AppendSelected calls f.
func (f ControlFunc) AppendSelected(entry SelectedEntry) { f(entry) }

// InitializeSelection restores an existing value into the control. Every
// reference in the value is recorded in the lookup cache, and on the first
// call its row is appended to the control. done then receives the value.
// With no value done receives nil.
func (r *Reconciler) InitializeSelection(done func(references.Value)) {
	value := r.value.Get()
	if len(value) == 0 {
		if done != nil {
			done(nil)
		}
		return
	}

	for _, ref := range value {
		if id := ref.ID(); id != "" {
			r.cache.Put(id, lookup.Entry{
				PrefLabel: r.DisplayLabel(ref.Labels),
				Labels:    ref.Labels,
				ListID:    ref.ListID,
				URI:       ref.URI,
			})
		}
	}

	r.initMu.Lock()
	first := !r.initComplete
	r.initComplete = true
	r.initMu.Unlock()

	if first && r.opts.control != nil {
		for _, ref := range value {
			r.opts.control.AppendSelected(SelectedEntry{
				ID:   ref.ID(),
				Text: r.DisplayLabel(ref.Labels),
			})
		}
		r.logger.Debug().Int("count", len(value)).Msg("Restored selected rows")
	}

	if done != nil {
		done(value.Clone())
	}
}

// ControlConfig is everything a searchable select widget needs to drive
// a reference node.
type ControlConfig struct {
	Multiple      bool
	Placeholder   string
	AllowClear    bool
	CloseOnSelect bool
	QuietPeriod   time.Duration

	Fetch             func(ctx context.Context, term string) references.OptionPage
	TemplateResult    func(opt references.Option) string
	TemplateSelection func(entry SelectedEntry) string
	InitSelection     func(done func(references.Value))
}

// ControlConfig returns the widget configuration bound to this reconciler.
func (r *Reconciler) ControlConfig() ControlConfig {
	return ControlConfig{
		Multiple:          r.cfg.MultiValue,
		Placeholder:       r.cfg.Placeholder,
		AllowClear:        true,
		CloseOnSelect:     true,
		QuietPeriod:       r.debouncer.Period(),
		Fetch:             r.FetchOptions,
		TemplateResult:    r.RenderOptionLabel,
		TemplateSelection: r.RenderSelectedLabel,
		InitSelection:     r.InitializeSelection,
	}
}
