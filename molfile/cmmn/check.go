package cmmn

import (
	"fmt"
	"math"
)

// Check tests the invariants a parsed structure has to satisfy.
//  - the format is one of the four tags
//  - every atom in Atoms sits in exactly one residue of one chain
//  - residues in a chain are in strictly ascending order
//  - coordinates are finite and atom ids unique
// A fallback structure, no chains and no atoms, passes if it has raw text.
func Check(s *Structure) error {
	if s == nil {
		return fmt.Errorf("nil structure")
	}
	if !s.FileFormat.Valid() {
		return fmt.Errorf("bad file format %q", s.FileFormat)
	}
	if s.IsDegenerate() {
		if s.RawContent == "" {
			return fmt.Errorf("fallback structure without raw content")
		}
		return nil
	}
	inRes := make(map[int]int, len(s.Atoms))
	seenChain := make(map[string]bool)
	for _, c := range s.Chains {
		if seenChain[c.ID] {
			return fmt.Errorf("chain %s appears twice", c.ID)
		}
		seenChain[c.ID] = true
		for i, r := range c.Residues {
			if i > 0 && c.Residues[i-1].ID >= r.ID {
				return fmt.Errorf("chain %s residues out of order at %d", c.ID, r.ID)
			}
			if r.SecondaryStructure == "" {
				return fmt.Errorf("chain %s residue %d no secondary structure", c.ID, r.ID)
			}
			for _, a := range r.Atoms {
				if a.Chain != c.ID || a.ResidueNumber != r.ID {
					return fmt.Errorf("atom %d filed under wrong residue", a.ID)
				}
				inRes[a.ID]++
			}
		}
	}
	ids := make(map[int]bool, len(s.Atoms))
	for _, a := range s.Atoms {
		if ids[a.ID] {
			return fmt.Errorf("atom id %d used twice", a.ID)
		}
		ids[a.ID] = true
		for _, x := range []float64{a.X, a.Y, a.Z} {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return fmt.Errorf("atom %d has broken coordinates", a.ID)
			}
		}
		if inRes[a.ID] != 1 {
			return fmt.Errorf("atom %d is in %d residues", a.ID, inRes[a.ID])
		}
	}
	if len(inRes) != len(s.Atoms) {
		return fmt.Errorf("%d atoms in residues, %d in atom list", len(inRes), len(s.Atoms))
	}
	return nil
}
