package plugin

import (
	"time"

	"gopkg.in/mgo.v2/bson"
)

// Pie is the per-factor breakdown behind a risk result.  Each slice is one factor of the scoring model, sized
// by its weight and filled by the points it contributed.
type Pie struct {
	Id      bson.ObjectId `bson:"_id" json:"id"`
	Slices  []Slice       `bson:"slices" json:"slices"`
	Subject string        `bson:"subject" json:"subject"`
	Created time.Time     `bson:"created" json:"created"`
}

// Slice represents a component that factors into the overall risk assessment
// algorithm.  In the chart, it appears as a slice in the pie.
type Slice struct {
	Name     string `bson:"name" json:"name"`
	Weight   int    `bson:"weight" json:"weight"`
	Value    int    `bson:"value" json:"value"`
	MaxValue int    `bson:"maxValue,omitempty" json:"maxValue,omitempty"`
}

// NewPie constructs a new pie for the given subject, sets the Create time to
// now, and generates a new ID.  Slices are initially empty.
func NewPie(subject string) *Pie {
	pie := &Pie{}
	pie.Subject = subject
	pie.Created = time.Now()
	pie.Id = bson.NewObjectId()
	return pie
}

// NewPieWithSlices constructs a new pie whose slices are a copy of the given defaults.
func NewPieWithSlices(subject string, defaults []Slice) *Pie {
	pie := NewPie(subject)
	pie.Slices = make([]Slice, len(defaults))
	copy(pie.Slices, defaults)
	return pie
}

// Clone creates a copy of the pie.  If generateNewID is true, it will give
// the clone a new identity.  Slices of the clone can be modified without
// affecting the original.
func (p *Pie) Clone(generateNewID bool) *Pie {
	cloned := *p
	if generateNewID {
		cloned.Id = bson.NewObjectId()
	}
	cloned.Slices = make([]Slice, len(p.Slices))
	copy(cloned.Slices, p.Slices)
	return &cloned
}

// UpdateSliceValue is a convenience function that finds the slice with
// the given name and updates its value.
func (p *Pie) UpdateSliceValue(name string, value int) {
	for i := range p.Slices {
		if p.Slices[i].Name == name {
			p.Slices[i].Value = value
			return
		}
	}
}

// TotalValues sums up all the values in the slices.
func (p *Pie) TotalValues() int {
	total := 0
	for i := range p.Slices {
		total += p.Slices[i].Value
	}
	return total
}
