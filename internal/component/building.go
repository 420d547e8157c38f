package component

// Building marks an entity as a placed structure. Width/Height duplicate the
// template footprint so a snapshot restores without the template table.
type Building struct {
	Template string `json:"template"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

func (Building) Type() string { return TagBuilding }

// Name is a display label.
type Name struct {
	Value string `json:"value"`
}

func (Name) Type() string { return TagName }
