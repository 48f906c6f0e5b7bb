package population

import "github.com/KiraVill/genomicSimulation/simerrs"

// findByID walks blocks to the one whose [first_id,last_id] range
// contains id, then binary-searches within it, per §4.E.
func (s *Store) findByID(id uint32) (bi, slot int, err error) {
	if id == 0 {
		return 0, 0, simerrs.New(simerrs.InvalidArgument, "id 0 denotes unknown, cannot be looked up")
	}
	for i, b := range s.blocks {
		first, last, ok := b.idRange()
		if !ok || id < first || id > last {
			continue
		}
		if slot, found := b.findSlotByID(id); found {
			return i, slot, nil
		}
	}
	return 0, 0, simerrs.New(simerrs.NotFound, "could not find id %d", id)
}

// NameOf returns the name of the individual with the given id.
func (s *Store) NameOf(id uint32) (string, error) {
	bi, slot, err := s.findByID(id)
	if err != nil {
		return "", err
	}
	return s.blocks[bi].Names[slot], nil
}

// GenesOf returns the (borrowed) allele string of the individual with the
// given id.
func (s *Store) GenesOf(id uint32) (string, error) {
	bi, slot, err := s.findByID(id)
	if err != nil {
		return "", err
	}
	return s.blocks[bi].Alleles[slot], nil
}

// ParentsOf returns (p1, p2) if at least one is non-zero, else an error
// ("unknown").
func (s *Store) ParentsOf(id uint32) (p1, p2 uint32, err error) {
	bi, slot, err := s.findByID(id)
	if err != nil {
		return 0, 0, err
	}
	b := s.blocks[bi]
	if b.Parent1[slot] == 0 && b.Parent2[slot] == 0 {
		return 0, 0, simerrs.New(simerrs.NotFound, "parents of id %d are unknown", id)
	}
	return b.Parent1[slot], b.Parent2[slot], nil
}

// IDsOfNames looks up each name by a linear scan across blocks in order,
// assigning 0 (sentinel "unknown") when a name isn't found.
func (s *Store) IDsOfNames(names []string) []uint32 {
	out := make([]uint32, len(names))
	for i, name := range names {
		out[i] = 0
		for _, b := range s.blocks {
			found := false
			for _, slot := range b.occupiedSlots() {
				if b.Names[slot] == name {
					out[i] = b.IDs[slot]
					found = true
					break
				}
			}
			if found {
				break
			}
		}
	}
	return out
}

// unorderedEqual reports whether {a1,a2} and {b1,b2} are the same
// unordered pair.
func unorderedEqual(a1, a2, b1, b2 uint32) bool {
	return (a1 == b1 && a2 == b2) || (a1 == b2 && a2 == b1)
}

// IDOfChild scans blocks in order, returning the first individual whose
// parent pair equals {p1,p2} as an unordered set.
func (s *Store) IDOfChild(p1, p2 uint32) (uint32, error) {
	for _, b := range s.blocks {
		for _, slot := range b.occupiedSlots() {
			if unorderedEqual(p1, p2, b.Parent1[slot], b.Parent2[slot]) {
				return b.IDs[slot], nil
			}
		}
	}
	return 0, simerrs.New(simerrs.NotFound, "no child of %d & %d found", p1, p2)
}

// IndexOfChild is IDOfChild's global-index counterpart.
func (s *Store) IndexOfChild(p1, p2 uint32) (int, error) {
	idx := 0
	for _, b := range s.blocks {
		for _, slot := range b.occupiedSlots() {
			if unorderedEqual(p1, p2, b.Parent1[slot], b.Parent2[slot]) {
				return idx, nil
			}
			idx++
		}
	}
	return 0, simerrs.New(simerrs.NotFound, "no child of %d & %d found", p1, p2)
}

// IndexOfName returns the first global index whose name matches.
func (s *Store) IndexOfName(name string) (int, error) {
	idx := 0
	for _, b := range s.blocks {
		for _, slot := range b.occupiedSlots() {
			if b.Names[slot] == name {
				return idx, nil
			}
			idx++
		}
	}
	return 0, simerrs.New(simerrs.NotFound, "name %q not found", name)
}

// locate walks blocks accumulating occupancy until it finds the block and
// slot containing the given global index.
func (s *Store) locate(index int) (bi, slot int, err error) {
	if index < 0 {
		return 0, 0, simerrs.New(simerrs.InvalidArgument, "negative index %d", index)
	}
	remaining := index
	for i, b := range s.blocks {
		if remaining < b.NSubjects {
			return i, b.occupiedSlots()[remaining], nil
		}
		remaining -= b.NSubjects
	}
	return 0, 0, simerrs.New(simerrs.NotFound, "index %d out of range", index)
}

// GenesOfIndex returns the allele string at global index i.
func (s *Store) GenesOfIndex(i int) (string, error) {
	bi, slot, err := s.locate(i)
	if err != nil {
		return "", err
	}
	return s.blocks[bi].Alleles[slot], nil
}

// IDOfIndex returns the id at global index i.
func (s *Store) IDOfIndex(i int) (uint32, error) {
	bi, slot, err := s.locate(i)
	if err != nil {
		return 0, err
	}
	return s.blocks[bi].IDs[slot], nil
}

// NameOfIndex returns the name at global index i (convenience beyond the
// original's public surface, mirroring the id/genes accessors).
func (s *Store) NameOfIndex(i int) (string, error) {
	bi, slot, err := s.locate(i)
	if err != nil {
		return "", err
	}
	return s.blocks[bi].Names[slot], nil
}
