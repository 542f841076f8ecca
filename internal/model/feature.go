package model

import (
	"encoding/json"
	"sort"
	"strings"
)

// Feature is an avatar customization slot on a post. Stored data carries two
// shapes for the same field: a bare string ("Flowing Silver Waves") or an
// object with a name plus numeric measurements. Both shapes resolve into this
// one type at the unmarshal boundary so render code never shape-sniffs.
type Feature struct {
	Name         string
	Color        string
	Measurements map[string]float64
}

// Detailed reports whether the feature carries measurement data.
func (f Feature) Detailed() bool { return len(f.Measurements) > 0 || f.Color != "" }

func (f Feature) Empty() bool { return strings.TrimSpace(f.Name) == "" }

func (f *Feature) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = Feature{Name: s}
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := Feature{}
	for k, v := range raw {
		switch k {
		case "name":
			if err := json.Unmarshal(v, &out.Name); err != nil {
				return err
			}
		case "color":
			if err := json.Unmarshal(v, &out.Color); err != nil {
				return err
			}
		default:
			var n float64
			if err := json.Unmarshal(v, &n); err == nil {
				if out.Measurements == nil {
					out.Measurements = map[string]float64{}
				}
				out.Measurements[k] = n
			}
			// non-numeric extras are dropped, matching the source renderer
		}
	}
	*f = out
	return nil
}

func (f Feature) MarshalJSON() ([]byte, error) {
	if !f.Detailed() {
		return json.Marshal(f.Name)
	}
	obj := map[string]interface{}{"name": f.Name}
	if f.Color != "" {
		obj["color"] = f.Color
	}
	keys := make([]string, 0, len(f.Measurements))
	for k := range f.Measurements {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		obj[k] = f.Measurements[k]
	}
	return json.Marshal(obj)
}
