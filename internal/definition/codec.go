package definition

import (
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// argsDoc is the on-disk shape of an argument schema.
type argsDoc struct {
	Fixed        []string         `json:"fixed"`
	Configurable []map[string]any `json:"configurable"`
}

// slotDoc is the on-disk shape of one configurable slot.
type slotDoc struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Required    bool     `json:"required"`
	Type        string   `json:"type"`
	Flag        string   `json:"flag,omitempty"`
	Style       ArgStyle `json:"style,omitempty"`
}

// UnmarshalJSON decodes the args block, dispatching each configurable entry on
// its "type" field.
func (s *ArgsSchema) UnmarshalJSON(data []byte) error {
	var doc argsDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	slots, err := DecodeSlots(doc.Configurable)
	if err != nil {
		return err
	}
	s.Fixed = doc.Fixed
	s.Configurable = slots
	return nil
}

// MarshalJSON encodes the schema in the on-disk shape.
func (s ArgsSchema) MarshalJSON() ([]byte, error) {
	out := struct {
		Fixed        []string  `json:"fixed"`
		Configurable []slotDoc `json:"configurable"`
	}{
		Fixed:        s.Fixed,
		Configurable: make([]slotDoc, 0, len(s.Configurable)),
	}
	if out.Fixed == nil {
		out.Fixed = []string{}
	}
	for i, slot := range s.Configurable {
		switch a := slot.(type) {
		case PositionalArg:
			out.Configurable = append(out.Configurable, slotDoc{
				Name: a.Name, Description: a.Description, Required: a.Required, Type: TypePosition,
			})
		case NamedArg:
			out.Configurable = append(out.Configurable, slotDoc{
				Name: a.Name, Description: a.Description, Required: a.Required, Type: TypeNamed,
				Flag: a.Flag, Style: a.Style,
			})
		case FixedArg:
			return nil, fmt.Errorf("configurable[%d]: fixed argument %q cannot be configurable", i, a.Value)
		}
	}
	return json.Marshal(out)
}

// DecodeSlots converts raw configurable entries into typed slots.
func DecodeSlots(raw []map[string]any) ([]ArgSlot, error) {
	slots := make([]ArgSlot, 0, len(raw))
	for i, entry := range raw {
		slot, err := decodeSlot(entry)
		if err != nil {
			return nil, ErrInvalidDefinition.Msg(fmt.Sprintf("configurable[%d]: %v", i, err))
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

func decodeSlot(entry map[string]any) (ArgSlot, error) {
	kind, _ := entry["type"].(string)
	switch kind {
	case TypePosition:
		var a PositionalArg
		if err := mapstructure.Decode(entry, &a); err != nil {
			return nil, err
		}
		return a, nil
	case TypeNamed:
		var a NamedArg
		if err := mapstructure.Decode(entry, &a); err != nil {
			return nil, err
		}
		return a, nil
	case "":
		return nil, fmt.Errorf("missing argument type")
	default:
		return nil, fmt.Errorf("unsupported argument type %q", kind)
	}
}
