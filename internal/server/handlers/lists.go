package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/agentstation/refselect/internal/server/cache"
	"github.com/agentstation/refselect/internal/server/response"
	"github.com/agentstation/refselect/pkg/controlledlists"
	"github.com/agentstation/refselect/pkg/logging"
)

// listPayload is the wire shape of one list. Items are either the nested
// tree or, with flat=true, the depth-annotated options.
type listPayload struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Dynamic    bool   `json:"dynamic"`
	SearchOnly bool   `json:"search_only"`
	Items      any    `json:"items"`
}

func serializeList(list *controlledlists.ControlledList, flat bool, term string) listPayload {
	payload := listPayload{
		ID:         list.ID,
		Name:       list.Name,
		Dynamic:    list.Dynamic,
		SearchOnly: list.SearchOnly,
	}
	if !flat {
		payload.Items = list.Items
		return payload
	}

	items := controlledlists.Filter(list.Flat(), term)
	opts := make([]any, 0, len(items))
	for _, item := range items {
		opts = append(opts, item.Option())
	}
	payload.Items = opts
	return payload
}

func parseFlat(r *http.Request) bool {
	flat, err := strconv.ParseBool(r.URL.Query().Get("flat"))
	return err == nil && flat
}

// HandleListLists handles GET /controlled_lists.
// Returns every list, as a tree by default or flat with ?flat=true.
func (h *Handlers) HandleListLists(w http.ResponseWriter, r *http.Request) {
	h.cached(w, r, func() (any, error) {
		flat := parseFlat(r)
		lists := h.lists.List()
		out := make([]listPayload, 0, len(lists))
		for _, l := range lists {
			out = append(out, serializeList(l, flat, ""))
		}
		return map[string]any{"controlled_lists": out}, nil
	})
}

// HandleGetList handles GET /controlled_list/{id}.
// With ?flat=true the items are flattened and may be narrowed by ?term=.
func (h *Handlers) HandleGetList(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	r = r.WithContext(logging.WithList(r.Context(), id))
	h.cached(w, r, func() (any, error) {
		list, err := h.lists.Get(id)
		if err != nil {
			return nil, err
		}
		return serializeList(list, parseFlat(r), r.URL.Query().Get("term")), nil
	})
}

// cached serves the body cached for r, or renders, caches and serves it.
// Errors are not cached.
func (h *Handlers) cached(w http.ResponseWriter, r *http.Request, render func() (any, error)) {
	key := cache.Key(r)
	if body, ok := h.cache.Get(key); ok {
		w.Header().Set("X-Cache", "HIT")
		response.Raw(w, http.StatusOK, body)
		return
	}

	v, err := render()
	if err != nil {
		logging.FromContext(r.Context()).Debug().Err(err).Msg("List request failed")
		response.ErrorFromType(w, err)
		return
	}

	body, err := json.Marshal(v)
	if err != nil {
		logging.FromContext(r.Context()).Error().Err(err).Msg("Failed to encode list")
		response.InternalError(w, err)
		return
	}

	h.cache.Set(key, body)
	w.Header().Set("X-Cache", "MISS")
	response.Raw(w, http.StatusOK, body)
}

// HandleResolve handles GET /controlled_list/{id}/resolve?value=...
// Each value is a list item id or the text of one of its labels; the
// response holds the references they resolve to, in request order.
func (h *Handlers) HandleResolve(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	r = r.WithContext(logging.WithList(r.Context(), id))

	inputs := r.URL.Query()["value"]
	if len(inputs) == 0 {
		response.BadRequest(w, "Missing value", "Pass one or more value query parameters")
		return
	}

	h.cached(w, r, func() (any, error) {
		list, err := h.lists.Get(id)
		if err != nil {
			return nil, err
		}
		value, err := list.Resolve(inputs...)
		if err != nil {
			return nil, err
		}
		return map[string]any{"value": value}, nil
	})
}
