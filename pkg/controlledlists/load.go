package controlledlists

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/google/uuid"

	"github.com/agentstation/refselect/pkg/errors"
)

// URIBase prefixes the URI of items that do not declare one.
var URIBase = "http://localhost:8000/plugins/controlled-list-manager/item/"

// listNamespace seeds ids derived for lists whose fixture id is not a UUID.
var listNamespace = uuid.MustParse("4a8f9c1e-2b6d-5e3f-9a7c-1d0e8b2f6c4a")

// LoadFile reads one controlled list from a YAML or JSON fixture and
// normalizes it.
func LoadFile(file string) (*ControlledList, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.WrapIO("read", file, err)
	}
	return decode(data, file)
}

// LoadDir loads every .yaml, .yml and .json file in dir, sorted by name.
func LoadDir(dir string) ([]*ControlledList, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, errors.WrapIO("read", dir, err)
	}
	return LoadFS(os.DirFS(dir), ".")
}

// LoadFS is LoadDir over any file system, such as an embedded one.
func LoadFS(fsys fs.FS, dir string) ([]*ControlledList, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, errors.WrapIO("read", dir, err)
	}

	var lists []*ControlledList
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(path.Ext(entry.Name())) {
		case ".yaml", ".yml", ".json":
		default:
			continue
		}
		name := path.Join(dir, entry.Name())
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, errors.WrapIO("read", name, err)
		}
		list, err := decode(data, name)
		if err != nil {
			return nil, err
		}
		lists = append(lists, list)
	}

	sort.Slice(lists, func(i, j int) bool { return lists[i].Name < lists[j].Name })
	return lists, nil
}

// decode parses a fixture. YAML is a superset of JSON, so one decoder
// serves both.
func decode(data []byte, name string) (*ControlledList, error) {
	var list ControlledList
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, errors.WrapParse("yaml", name, err)
	}
	if list.Name == "" {
		base := path.Base(filepath.ToSlash(name))
		list.Name = strings.TrimSuffix(base, path.Ext(base))
	}
	Normalize(&list)
	return &list, nil
}

// Normalize fills in what fixtures may leave out. Ids that are not UUIDs
// are replaced by name-based UUIDs so they stay stable across loads. List
// and parent ids, depth, URIs and label ownership are set from the tree.
func Normalize(list *ControlledList) {
	if list.ID == "" {
		list.ID = list.Name
	}
	list.ID = stableID(listNamespace, list.ID)
	ns := uuid.MustParse(list.ID)
	normalizeItems(list.Items, list.ID, "", 0, ns)
}

func normalizeItems(items []Item, listID, parentID string, depth int, ns uuid.UUID) {
	for i := range items {
		item := &items[i]
		if item.ID == "" {
			item.ID = firstLabelText(*item)
		}
		item.ID = stableID(ns, item.ID)
		item.ListID = listID
		item.ParentID = parentID
		item.Depth = depth
		if item.URI == "" {
			item.URI = URIBase + item.ID
		}
		for j := range item.Values {
			v := &item.Values[j]
			v.ListItemID = item.ID
			if v.ID == "" {
				v.ID = uuid.NewSHA1(ns, []byte(item.ID+"/"+v.ValueTypeID+"/"+v.LanguageID+"/"+v.Value)).String()
			}
		}
		normalizeItems(item.Children, listID, item.ID, depth+1, ns)
	}
}

func stableID(ns uuid.UUID, id string) string {
	if parsed, err := uuid.Parse(id); err == nil {
		return parsed.String()
	}
	return uuid.NewSHA1(ns, []byte(id)).String()
}

func firstLabelText(item Item) string {
	for _, l := range item.Labels() {
		if l.Value != "" {
			return l.Value
		}
	}
	return item.URI
}
