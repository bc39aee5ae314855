package domain

// ServiceMetadata holds the display attributes an entity opted into via
// annotation labels.
//
// A ServiceMetadata record exists ONLY for entities that carried at least one
// recognized annotation key. Entities without one stay invisible to the merge
// engine even when they have routed URLs; this is the opt-in gate that keeps
// every sibling container from showing up on the dashboard by accident.
type ServiceMetadata struct {
	Icon  string
	Alias string // display-name override, may be empty
	Hide  bool
	Admin bool
	// Enable is tri-state: explicit true/false, or unset.
	Enable *bool
}

// ExternalApp is a manually declared dashboard entry, independent of any
// single runtime entity. Declarations are read from the annotation namespace
// of the designated control entity.
type ExternalApp struct {
	Name        string
	Enabled     bool // defaults to false: declarations fail closed
	Alias       string
	Icon        string
	Category    string
	Description string
	Admin       bool

	// URLs are explicit targets; Router is an explicit router reference.
	// When both are empty, fuzzy matching against the URL map applies.
	URLs   []string
	Router string
}

// OverrideRecord is a user-authored record adjusting or supplying display
// attributes for a named entity. Fields are sparse: a zero value means
// "defer to other sources".
type OverrideRecord struct {
	Name        string   `json:"Name,omitempty" yaml:"Name,omitempty"`
	Icon        string   `json:"Icon,omitempty" yaml:"Icon,omitempty"`
	Description string   `json:"Description,omitempty" yaml:"Description,omitempty"`
	Category    string   `json:"Category,omitempty" yaml:"Category,omitempty"`
	Badge       string   `json:"Badge,omitempty" yaml:"Badge,omitempty"`
	Enable      *bool    `json:"Enable,omitempty" yaml:"Enable,omitempty"`
	Hide        bool     `json:"Hide,omitempty" yaml:"Hide,omitempty"`
	URL         string   `json:"Url,omitempty" yaml:"Url,omitempty"`
	URLs        []string `json:"URLs,omitempty" yaml:"URLs,omitempty"`
}

// defaultCategory picks the category for an entry without an explicit one.
func defaultCategory(admin bool) string {
	if admin {
		return CategoryAdmin
	}
	return CategoryApps
}
