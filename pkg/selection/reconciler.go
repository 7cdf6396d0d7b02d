// Package selection keeps a reference node's value and the selection of a
// searchable select control consistent.
//
// The value is the canonical list of references owned by the host. The
// selection is the flat list of opaque option ids the control works with.
// A Reconciler translates between the two in both directions and keeps a
// lookup cache from option id to the last record rendered for that id, so a
// selection can be turned back into references without another fetch.
//
// Handlers must be called from one logical owner. The cache is safe for
// concurrent use, so debounced searches may render options from a timer
// goroutine.
package selection

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/refselect/pkg/differ"
	"github.com/agentstation/refselect/pkg/errors"
	"github.com/agentstation/refselect/pkg/logging"
	"github.com/agentstation/refselect/pkg/lookup"
	"github.com/agentstation/refselect/pkg/references"
)

// Searcher queries a controlled list for options matching term.
type Searcher interface {
	Search(ctx context.Context, listID, term string) (*references.OptionPage, error)
}

// Reconciler binds a value slot to a select control.
type Reconciler struct {
	cfg       Config
	opts      *options
	logger    *zerolog.Logger
	value     ValueSlot
	search    Searcher
	cache     *lookup.Cache
	debouncer *Debouncer

	selection *Observable[[]references.SelectionID]

	initMu       sync.Mutex
	initComplete bool

	ctx    context.Context
	cancel context.CancelFunc
	unsubs []func()
}

// New creates a Reconciler for cfg over value. Changes to value update the
// selection and changes to the selection update value until Close is called.
// The selection starts out derived from the current value.
func New(cfg Config, value ValueSlot, searcher Searcher, opts ...Option) (*Reconciler, error) {
	if value == nil {
		return nil, errors.NewValidationError("value", nil, "value slot is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	logger := logging.OrDefault(o.logger).With().
		Str("list_id", cfg.ControlledList).
		Logger()

	ctx, cancel := context.WithCancel(context.Background())
	r := &Reconciler{
		cfg:       cfg,
		opts:      o,
		logger:    &logger,
		value:     value,
		search:    searcher,
		cache:     lookup.New(),
		debouncer: NewDebouncer(o.quietPeriod),
		selection: NewObservable[[]references.SelectionID](nil),
		ctx:       ctx,
		cancel:    cancel,
	}

	if current := value.Get(); len(current) > 0 {
		r.selection.Set(current.IDs())
	}

	r.unsubs = append(r.unsubs,
		value.Subscribe(r.OnValueChanged),
		r.selection.Subscribe(func(ids []references.SelectionID) {
			// Cache misses are logged by the handler and reported to
			// callers that set the selection through Select.
			_ = r.OnSelectionChanged(ids...)
		}),
	)

	return r, nil
}

// Config returns the node configuration.
func (r *Reconciler) Config() Config {
	return r.cfg
}

// Cache returns the lookup cache owned by the reconciler.
func (r *Reconciler) Cache() *lookup.Cache {
	return r.cache
}

// Selection returns the control-side selection state. Setting it drives
// OnSelectionChanged.
func (r *Reconciler) Selection() *Observable[[]references.SelectionID] {
	return r.selection
}

// Value returns the current value.
func (r *Reconciler) Value() references.Value {
	return r.value.Get()
}

// DisplayLabel resolves the label shown for a record in the active language.
func (r *Reconciler) DisplayLabel(labels []references.Label) string {
	return references.DisplayLabel(labels, r.opts.language, r.opts.translations.Unlabeled)
}

// DisplayValue joins the display labels of the current value with ", ".
// It is "" when there is no value.
func (r *Reconciler) DisplayValue() string {
	return references.DisplayValue(r.value.Get(), r.opts.language, r.opts.translations.Unlabeled)
}

// ValuesDiffer reports whether value and ids describe different selections.
// A nil value always differs. Otherwise the ordered ids of value must equal
// ids exactly; the same ids in another order differ.
func ValuesDiffer(value references.Value, ids []references.SelectionID) bool {
	if value == nil {
		return true
	}
	return !slices.Equal(value.IDs(), ids)
}

// Select sets the selection as the control would and returns the result of
// reconciling it into the value. The selection ends up matching the value,
// including any rewrite the host made while the value was being set.
func (r *Reconciler) Select(ids ...references.SelectionID) error {
	if err := r.OnSelectionChanged(ids...); err != nil {
		return err
	}
	r.OnValueChanged(r.value.Get())
	return nil
}

// OnSelectionChanged reconciles a new control selection into the value.
// An empty selection clears the value. Otherwise the value is rebuilt from
// the lookup cache when it differs from ids. If any id has no cache entry
// the value is left untouched and an UnresolvedSelectionError is returned.
func (r *Reconciler) OnSelectionChanged(ids ...references.SelectionID) error {
	if len(ids) == 0 {
		if r.value.Get() != nil {
			r.value.Set(nil)
		}
		return nil
	}

	if !ValuesDiffer(r.value.Get(), ids) {
		return nil
	}

	if missing := r.cache.Missing(ids); len(missing) > 0 {
		err := errors.NewUnresolvedSelectionError(missing...)
		r.logger.Warn().
			Strs("ids", missing).
			Msg("Selection contains ids that were never rendered")
		return err
	}

	next := make(references.Value, 0, len(ids))
	for _, id := range ids {
		entry, _ := r.cache.Get(id)
		next = append(next, entry.Reference())
	}

	if e := r.logger.Debug(); e.Enabled() {
		e.Strs("ids", ids).
			Str("change", differ.Values(r.value.Get(), next).Summary()).
			Msg("Value rebuilt from selection")
	}
	r.value.Set(next)
	return nil
}

// OnValueChanged reconciles a new value into the control selection.
// A non-empty value selects its ids in order; anything else clears the
// selection to nil. A selection that already matches is left alone, which
// ends the round trip started by OnSelectionChanged.
func (r *Reconciler) OnValueChanged(value references.Value) {
	var ids []references.SelectionID
	if len(value) > 0 {
		ids = value.IDs()
	}
	current := r.selection.Get()
	if slices.Equal(current, ids) && (current == nil) == (ids == nil) {
		return
	}
	r.selection.Set(ids)
}

// FetchOptions searches the configured list and returns a prepared page.
// A failed search yields an empty page; the error is only logged.
func (r *Reconciler) FetchOptions(ctx context.Context, term string) references.OptionPage {
	if r.search == nil {
		return references.OptionPage{}
	}

	page, err := r.search.Search(ctx, r.cfg.ControlledList, term)
	if err != nil {
		r.logger.Warn().Err(err).Str("term", term).Msg("Option search failed")
		return references.OptionPage{}
	}
	if page == nil {
		return references.OptionPage{}
	}
	return r.ProcessResults(*page)
}

// ProcessResults prepares each option for the control. All results are
// returned as a single page.
func (r *Reconciler) ProcessResults(page references.OptionPage) references.OptionPage {
	results := make([]references.Option, len(page.Results))
	for i, opt := range page.Results {
		opt.Prepare()
		results[i] = opt
	}
	return references.OptionPage{Results: results, More: false}
}

// Search runs FetchOptions for term once the quiet period has passed
// without another call, then hands the page to done. Superseded searches
// never run.
func (r *Reconciler) Search(term string, done func(references.OptionPage)) {
	r.debouncer.Trigger(func() {
		if r.ctx.Err() != nil {
			return
		}
		done(r.FetchOptions(r.ctx, term))
	})
}

// RenderOptionLabel returns the indented display text of an option and
// records the option in the lookup cache so it can be selected.
// Options without a URI render as "".
func (r *Reconciler) RenderOptionLabel(opt references.Option) string {
	if opt.URI == "" {
		return ""
	}

	labels := opt.Labels
	if labels == nil {
		labels = references.FilterLabels(opt.Values)
	}

	text := r.DisplayLabel(labels)
	if text == "" {
		text = r.opts.translations.Searching + "..."
	}

	if id := opt.SelectionID(); id != "" {
		ref := opt.Reference()
		r.cache.Put(id, lookup.Entry{
			PrefLabel: text,
			Labels:    ref.Labels,
			ListID:    ref.ListID,
			URI:       ref.URI,
		})
	}

	return r.indent(opt.Depth) + text
}

func (r *Reconciler) indent(depth int) string {
	if depth <= 0 {
		return ""
	}
	return strings.Repeat(r.opts.indent, depth)
}

// SelectedEntry is a row shown in the control's selection area. Rows
// restored at startup carry only ID and Text; rows picked from search
// results also carry a URI.
type SelectedEntry struct {
	ID   references.SelectionID
	Text string
	URI  string
}

// RenderSelectedLabel returns the text for a selected row. Rows from search
// results use the cached preferred label; restored rows use their own text.
func (r *Reconciler) RenderSelectedLabel(entry SelectedEntry) string {
	if entry.URI == "" {
		return entry.Text
	}
	if cached, ok := r.cache.Get(entry.ID); ok {
		return cached.PrefLabel
	}
	r.logger.Debug().Str("id", entry.ID).Msg("Selected row missing from lookup cache")
	return entry.Text
}

// Close detaches the reconciler from the value slot and drops any pending
// search.
func (r *Reconciler) Close() error {
	r.debouncer.Stop()
	r.cancel()
	for _, unsub := range r.unsubs {
		unsub()
	}
	r.unsubs = nil
	return nil
}
