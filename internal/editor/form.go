package editor

// FieldType tells the web UI which input to draw.
type FieldType string

const (
	FieldText   FieldType = "text"
	FieldNumber FieldType = "number"
	FieldSelect FieldType = "select"
	FieldToggle FieldType = "toggle"
	FieldColor  FieldType = "color"
	FieldDate   FieldType = "date"
	FieldTime   FieldType = "time"
)

// Option is one choice of a select field.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Field is one editable value. Editing it sends a Patch with Op set to the
// row's update op and Field set to Name.
type Field struct {
	Name        string    `json:"name"`
	Label       string    `json:"label"`
	Type        FieldType `json:"type"`
	Value       any       `json:"value"`
	Options     []Option  `json:"options,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
	Disabled    bool      `json:"disabled,omitempty"`
}

// Action is a button. Pressing it sends Patch.
type Action struct {
	Label string `json:"label"`
	Patch Patch  `json:"patch"`
}

// Row is one list entry of a section.
type Row struct {
	Key       string   `json:"key"`
	Level     int      `json:"level,omitempty"`
	Draggable bool     `json:"draggable,omitempty"`
	UpdateOp  string   `json:"updateOp,omitempty"`
	Patch     Patch    `json:"patch"`
	Fields    []Field  `json:"fields"`
	Actions   []Action `json:"actions,omitempty"`
}

// Section groups rows under a heading, with add buttons at the end.
type Section struct {
	Title   string   `json:"title"`
	Rows    []Row    `json:"rows"`
	Actions []Action `json:"actions,omitempty"`
}

// Form is the full description of an editor panel.
type Form struct {
	Kind     string    `json:"kind"`
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}
