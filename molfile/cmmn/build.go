package cmmn

import (
	"sort"
)

// resAcc is a residue while it is still growing.
type resAcc struct {
	Residue
	ssSet bool
}

// chainAcc collects residues for one chain in order of appearance.
type chainAcc struct {
	id    string
	res   []*resAcc
	byNum map[int]*resAcc
}

// Builder groups atoms into residues and chains while a parser
// works through a file. It lives for one parse only.
// The zero value is not usable, call NewBuilder.
type Builder struct {
	atoms  []Atom
	chains []*chainAcc
	byID   map[string]*chainAcc
	ids    map[int]bool
	maxID  int
	nSkip  int
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		byID: make(map[string]*chainAcc),
		ids:  make(map[int]bool),
	}
}

// getOrMakeChain returns the accumulator for chain id, making it if
// this is the first time we see it.
func (b *Builder) getOrMakeChain(id string) *chainAcc {
	if c, ok := b.byID[id]; ok {
		return c
	}
	c := &chainAcc{id: id, byNum: make(map[int]*resAcc)}
	b.byID[id] = c
	b.chains = append(b.chains, c)
	return c
}

// AddAtom stores an atom and files it under its chain and residue.
// If haveID is false, or the id was used before, the atom gets the next
// free id. The atom as stored is returned.
func (b *Builder) AddAtom(a Atom, haveID bool) Atom {
	if !haveID || b.ids[a.ID] {
		a.ID = b.maxID + 1
	}
	b.ids[a.ID] = true
	if a.ID > b.maxID {
		b.maxID = a.ID
	}
	if a.Chain == "" {
		a.Chain = DfltChain
	}
	if a.Residue == "" {
		a.Residue = DfltResName
	}
	b.atoms = append(b.atoms, a)

	c := b.getOrMakeChain(a.Chain)
	r, ok := c.byNum[a.ResidueNumber]
	if !ok {
		r = &resAcc{Residue: Residue{
			ID:    a.ResidueNumber,
			Name:  a.Residue,
			Chain: a.Chain,
		}}
		c.byNum[a.ResidueNumber] = r
		c.res = append(c.res, r)
	}
	r.Atoms = append(r.Atoms, a)
	return a
}

// Skip counts a record that could not be used.
func (b *Builder) Skip() { b.nSkip++ }

// NSkip is the number of records passed to Skip.
func (b *Builder) NSkip() int { return b.nSkip }

// NAtom is the number of atoms stored so far.
func (b *Builder) NAtom() int { return len(b.atoms) }

// HasChain says if we have seen an atom in chain id.
func (b *Builder) HasChain(id string) bool {
	_, ok := b.byID[id]
	return ok
}

// TagRange sets the secondary structure of every residue in chain with
// start <= id <= end. Only residues seen so far are touched. It returns
// the number of residues changed, or -1 if the chain is unknown.
func (b *Builder) TagRange(chain string, start, end int, ss SecStruct) int {
	c, ok := b.byID[chain]
	if !ok {
		return -1
	}
	n := 0
	for _, r := range c.res {
		if r.ID >= start && r.ID <= end {
			r.SecondaryStructure = ss
			r.ssSet = true
			n++
		}
	}
	return n
}

// MarkFunctional flags one residue. It returns false if the chain or
// residue has not been seen.
func (b *Builder) MarkFunctional(chain string, resNum int, ftype string) bool {
	c, ok := b.byID[chain]
	if !ok {
		return false
	}
	r, ok := c.byNum[resNum]
	if !ok {
		return false
	}
	r.IsFunctional = true
	r.FunctionalType = ftype
	return true
}

// Finish turns what we have collected into a Structure. Residues without
// secondary structure become loops and each chain is sorted by residue id.
// The builder should not be used afterwards.
func (b *Builder) Finish(h Header, format Format, raw string) *Structure {
	s := &Structure{
		ID:               NewID(),
		Name:             h.Name,
		Description:      h.Description,
		Code:             h.Code,
		Source:           h.Source,
		Resolution:       h.Resolution,
		ExperimentMethod: h.ExperimentMethod,
		ReleaseDate:      h.ReleaseDate,
		Chains:           make([]Chain, 0, len(b.chains)),
		Atoms:            b.atoms,
		FileFormat:       format,
		RawContent:       raw,
	}
	if s.Atoms == nil {
		s.Atoms = []Atom{}
	}
	for _, c := range b.chains {
		chain := Chain{ID: c.id, Residues: make([]Residue, 0, len(c.res))}
		for _, r := range c.res {
			if !r.ssSet {
				r.SecondaryStructure = Loop
			}
			chain.Residues = append(chain.Residues, r.Residue)
		}
		sort.SliceStable(chain.Residues, func(i, j int) bool {
			return chain.Residues[i].ID < chain.Residues[j].ID
		})
		s.Chains = append(s.Chains, chain)
	}
	return s
}
