package render

// Slot names one template in Templates.
type Slot string

const (
	SlotHeader               Slot = "header"
	SlotUsing                Slot = "using"
	SlotNamespaceOpen        Slot = "namespace_open"
	SlotNamespaceClose       Slot = "namespace_close"
	SlotInterfaceName        Slot = "interface_name"
	SlotInterfaceMember      Slot = "interface_member"
	SlotClassName            Slot = "class_name"
	SlotClassBase            Slot = "class_base"
	SlotMember               Slot = "member"
	SlotStringRepresentation Slot = "string_representation"
	SlotBlockOpen            Slot = "block_open"
	SlotBlockClose           Slot = "block_close"
)

// AnyModifier as InterfaceModifier makes every modifier-bearing message
// qualify for its entity's aggregate interface.
const AnyModifier = "*"

// Templates is the renderer configuration. Every slot except
// InterfaceModifier, Engine and Indent is a template compiled by the engine.
type Templates struct {
	// Engine selects the template engine by name; empty means composite.
	Engine string `toml:"engine" yaml:"engine" json:"engine"`

	// InterfaceModifier is the modifier name that makes a message part of its
	// entity's aggregate interface. Empty disables interfaces.
	InterfaceModifier string `toml:"interface_modifier" yaml:"interface_modifier" json:"interface_modifier"`

	// InterfaceName: {0} entity name.
	InterfaceName string `toml:"interface_name" yaml:"interface_name" json:"interface_name"`
	// InterfaceMember: {0} message name, {1} message kind.
	InterfaceMember string `toml:"interface_member" yaml:"interface_member" json:"interface_member"`
	// ClassName: {0} message name, {1} extern marker or quoted namespace,
	// {2} message kind, {3} modifier values joined by ", ".
	ClassName string `toml:"class_name" yaml:"class_name" json:"class_name"`
	// ClassBase: {0} modifier values joined by ", ". Appended to the last line
	// of ClassName, only for messages that carry modifiers.
	ClassBase string `toml:"class_base" yaml:"class_base" json:"class_base"`
	// Member: {0} 1-based ordinal, {1} type, {2} name.
	Member string `toml:"member" yaml:"member" json:"member"`

	Header               string `toml:"header" yaml:"header" json:"header"`
	Using                string `toml:"using" yaml:"using" json:"using"`
	NamespaceOpen        string `toml:"namespace_open" yaml:"namespace_open" json:"namespace_open"`
	NamespaceClose       string `toml:"namespace_close" yaml:"namespace_close" json:"namespace_close"`
	StringRepresentation string `toml:"string_representation" yaml:"string_representation" json:"string_representation"`
	BlockOpen            string `toml:"block_open" yaml:"block_open" json:"block_open"`
	BlockClose           string `toml:"block_close" yaml:"block_close" json:"block_close"`
	Indent               string `toml:"indent" yaml:"indent" json:"indent"`
}

// DefaultTemplates produce C# data-contract records.
func DefaultTemplates() Templates {
	return Templates{
		Engine:               EngineComposite,
		InterfaceModifier:    "?",
		InterfaceName:        "public interface I{0}Aggregate",
		InterfaceMember:      "void When({0} c);",
		ClassName:            "[DataContract(Namespace = {1})]\npublic partial record {0}",
		ClassBase:            " : {0}",
		Member:               "[DataMember(Order = {0})] public {1} {2} {{ get; init; }}",
		Header:               "// <auto-generated/>",
		Using:                "using {0};",
		NamespaceOpen:        "namespace {0}\n{{",
		NamespaceClose:       "}}",
		StringRepresentation: "public override string ToString() => $\"{{{0}}}\";",
		BlockOpen:            "{{",
		BlockClose:           "}}",
		Indent:               "    ",
	}
}

// slots lists the engine-compiled templates with their argument prototypes,
// in a fixed order so errors are reported deterministically.
func (t Templates) slots() []slotDef {
	return []slotDef{
		{SlotHeader, t.Header, noArgs{}},
		{SlotUsing, t.Using, NameArgs{}},
		{SlotNamespaceOpen, t.NamespaceOpen, NameArgs{}},
		{SlotNamespaceClose, t.NamespaceClose, noArgs{}},
		{SlotInterfaceName, t.InterfaceName, NameArgs{}},
		{SlotInterfaceMember, t.InterfaceMember, InterfaceMemberArgs{}},
		{SlotClassName, t.ClassName, ClassArgs{}},
		{SlotClassBase, t.ClassBase, BaseArgs{}},
		{SlotMember, t.Member, MemberArgs{}},
		{SlotStringRepresentation, t.StringRepresentation, NameArgs{}},
		{SlotBlockOpen, t.BlockOpen, noArgs{}},
		{SlotBlockClose, t.BlockClose, noArgs{}},
	}
}

type slotDef struct {
	slot  Slot
	text  string
	proto Args
}
