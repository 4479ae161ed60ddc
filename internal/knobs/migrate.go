package knobs

import (
	"github.com/ivoronin/knobcompat/internal/compat"
)

// ChangeKind tells which lookup produced a change.
type ChangeKind string

const (
	ChangeName   ChangeKind = "name"
	ChangeOption ChangeKind = "option"
)

// Change records one rewritten parameter name or choice value. Param is the
// name as stored, before any rename.
type Change struct {
	Kind  ChangeKind `json:"kind"`
	Param string     `json:"param"`
	From  string     `json:"from"`
	To    string     `json:"to"`
}

// Report summarizes a migration.
type Report struct {
	Plugin  string   `json:"plugin"`
	Host    string   `json:"host"`
	Params  int      `json:"params"`
	Changes []Change `json:"changes"`
}

// Changed reports whether anything was rewritten.
func (r Report) Changed() bool { return len(r.Changes) > 0 }

// Migrate rewrites s in place. Choice values are looked up with the stored
// parameter name, before the name itself is rewritten, since the stored name
// is what the option table is keyed on.
func Migrate(r *compat.Rewriter, s *State) (Report, error) {
	q, err := s.Query()
	if err != nil {
		return Report{}, err
	}

	rep := Report{
		Plugin:  s.Plugin,
		Host:    q.Host.String(),
		Params:  len(s.Params),
		Changes: []Change{},
	}

	for i := range s.Params {
		p := &s.Params[i]
		stored := p.Name

		if p.Choice {
			value := p.Value
			if r.ChoiceOption(q, stored, &value) {
				rep.Changes = append(rep.Changes, Change{Kind: ChangeOption, Param: stored, From: p.Value, To: value})
				p.Value = value
			}
		}

		name := stored
		if r.ParameterName(q, &name) {
			rep.Changes = append(rep.Changes, Change{Kind: ChangeName, Param: stored, From: stored, To: name})
			p.Name = name
		}
	}
	return rep, nil
}
