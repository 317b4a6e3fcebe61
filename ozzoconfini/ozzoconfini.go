// Package ozzoconfini adapts the confini engine to ozzo-config's
// extension-keyed UnmarshalFuncMap, the same seam the teacher's vendored
// tick-config/config.go used to wire the teacher's own ini codec in as its
// ".ini" decoder.
package ozzoconfini

import (
	"encoding/json"
	"fmt"

	libconfig "github.com/go-ozzo/ozzo-config"

	confini "github.com/ltick/goconfini"
)

// Format is the dialect used to decode ".ini"/".conf" files registered
// through this package's init. ozzo-config's UnmarshalFuncMap has no room
// for a per-call format argument, so -- in the spirit of the engine's own
// process-wide knobs (global.go) -- callers wanting a different dialect
// set this before ozzo-config loads any file.
var Format = confini.DefaultFormat

func init() {
	libconfig.UnmarshalFuncMap[".ini"] = Unmarshal
	libconfig.UnmarshalFuncMap[".conf"] = Unmarshal
}

// Unmarshal parses data under Format and populates v, matching the
// func([]byte, interface{}) error shape ozzo-config's UnmarshalFuncMap
// expects. Dispatched sections become nested maps keyed by their dotted
// path segments; keys become string leaves. v must be a *map[string]interface{}
// or a pointer to a type json.Unmarshal can decode a JSON object into.
func Unmarshal(data []byte, v interface{}) error {
	tree, err := Decode(data, Format)
	if err != nil {
		return err
	}
	if out, ok := v.(*map[string]interface{}); ok {
		*out = tree
		return nil
	}
	buf, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("ozzoconfini: re-encode intermediate tree: %w", err)
	}
	return json.Unmarshal(buf, v)
}

// Decode runs the confini engine over a copy of data under format and
// assembles its dispatch stream into a nested map: one level of nesting
// per dotted segment of a node's AppendTo, keys as string leaves. Comment
// and unknown nodes are dropped, since ozzo-config's tree has no slot for
// them.
func Decode(data []byte, format confini.IniFormat) (map[string]interface{}, error) {
	buf := append([]byte(nil), data...)
	root := make(map[string]interface{})

	rc := confini.StripIniCache(buf, format, nil, func(d *confini.IniDispatch, _ any) int {
		switch d.Type {
		case confini.INIKey, confini.INIDisabledKey:
			section := sectionMap(root, d.AppendTo)
			section[d.Data] = d.Value
		case confini.INISection, confini.INIDisabledSection:
			sectionMap(root, d.Data)
		}
		return 0
	}, nil)
	if rc.IsError() {
		return nil, fmt.Errorf("ozzoconfini: parse failed: %s", rc)
	}
	return root, nil
}

// sectionMap walks/creates the nested map addressed by a dotted section
// path, creating intermediate maps as needed.
func sectionMap(root map[string]interface{}, path string) map[string]interface{} {
	if path == "" {
		return root
	}
	cur := root
	start := 0
	for i := 0; i <= len(path); i++ {
		if i == len(path) || path[i] == '.' {
			name := path[start:i]
			start = i + 1
			next, ok := cur[name].(map[string]interface{})
			if !ok {
				next = make(map[string]interface{})
				cur[name] = next
			}
			cur = next
		}
	}
	return cur
}
