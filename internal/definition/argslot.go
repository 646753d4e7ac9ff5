package definition

// ArgStyle selects how a named argument is rendered.
type ArgStyle string

const (
	// StyleSpace renders a named argument as two tokens: flag, value.
	StyleSpace ArgStyle = "space"
	// StyleEquals renders a named argument as one token: flag=value.
	StyleEquals ArgStyle = "equals"
)

// Slot type discriminators used in definition files.
const (
	TypePosition = "position"
	TypeNamed    = "named"
)

// ArgSlot is one entry of an argument schema. The set of implementations is
// closed: FixedArg, PositionalArg and NamedArg. Code that handles slots should use
// an exhaustive type switch over these three.
type ArgSlot interface {
	// SlotName is the slot's identifier; fixed slots return their literal value.
	SlotName() string
	isArgSlot()
}

// FixedArg is a literal token that is always emitted and never prompted for.
type FixedArg struct {
	Value string
}

// PositionalArg contributes one bare token when given a non-empty value.
type PositionalArg struct {
	Name        string `mapstructure:"name" validate:"required,noSpaces"`
	Description string `mapstructure:"description"`
	Required    bool   `mapstructure:"required"`
}

// NamedArg contributes a flag and its value, either as two tokens or as
// flag=value depending on Style.
type NamedArg struct {
	Name        string   `mapstructure:"name" validate:"required,noSpaces"`
	Description string   `mapstructure:"description"`
	Required    bool     `mapstructure:"required"`
	Flag        string   `mapstructure:"flag" validate:"required,flag"`
	Style       ArgStyle `mapstructure:"style" validate:"omitempty,oneof=space equals"`
}

func (FixedArg) SlotName() string { return "" }

func (a PositionalArg) SlotName() string { return a.Name }

func (a NamedArg) SlotName() string { return a.Name }

func (FixedArg) isArgSlot() {}

func (PositionalArg) isArgSlot() {}

func (NamedArg) isArgSlot() {}

// EffectiveStyle returns the style, defaulting to StyleSpace.
func (a NamedArg) EffectiveStyle() ArgStyle {
	if a.Style == "" {
		return StyleSpace
	}
	return a.Style
}

// ArgsSchema is a definition's argument schema. Fixed tokens always render
// before configurable ones.
type ArgsSchema struct {
	Fixed        []string
	Configurable []ArgSlot
}

// Slots returns the whole schema in render order: fixed slots then configurable ones.
func (s ArgsSchema) Slots() []ArgSlot {
	slots := make([]ArgSlot, 0, len(s.Fixed)+len(s.Configurable))
	for _, f := range s.Fixed {
		slots = append(slots, FixedArg{Value: f})
	}
	return append(slots, s.Configurable...)
}

// Describe returns the slot's name and description in the form used for prompts.
func Describe(slot ArgSlot) string {
	switch s := slot.(type) {
	case FixedArg:
		return s.Value
	case PositionalArg:
		return label(s.Name, s.Description)
	case NamedArg:
		return label(s.Name, s.Description)
	}
	return ""
}

// IsRequired reports whether a configurable slot must receive a non-empty value.
func IsRequired(slot ArgSlot) bool {
	switch s := slot.(type) {
	case PositionalArg:
		return s.Required
	case NamedArg:
		return s.Required
	}
	return false
}

func label(name, description string) string {
	if description == "" {
		return name
	}
	return name + " (" + description + ")"
}
