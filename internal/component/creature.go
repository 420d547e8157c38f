package component

// Animal is a park inhabitant.
type Animal struct {
	Species string `json:"species"`
	Hunger  int    `json:"hunger"`
}

func (Animal) Type() string { return TagAnimal }

// Visitor is a paying guest.
type Visitor struct {
	Happiness int `json:"happiness"`
	Money     int `json:"money"`
}

func (Visitor) Type() string { return TagVisitor }
