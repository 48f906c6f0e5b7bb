package population

import (
	"fmt"
	"math"

	"github.com/KiraVill/genomicSimulation/simerrs"
)

// Store is the segmented, append-only genotype store: a chain of
// fixed-capacity blocks, an id allocator, and the current occupant count.
// Its alleles never mutate after creation; only group tag, name and (at
// creation time) parent ids vary.
type Store struct {
	NMarkers  int
	blocks    []*block
	currentID uint32
}

// NewStore creates an empty store over a genetic map of nMarkers markers.
func NewStore(nMarkers int) (*Store, error) {
	if nMarkers <= 0 {
		return nil, simerrs.New(simerrs.InvalidArgument, "nMarkers must be positive, got %d", nMarkers)
	}
	return &Store{NMarkers: nMarkers, blocks: []*block{newBlock()}}, nil
}

// NIndividuals returns the number of individuals currently occupying the
// store.
func (s *Store) NIndividuals() int {
	total := 0
	for _, b := range s.blocks {
		total += b.NSubjects
	}
	return total
}

// Append places a new individual into the first slot with free capacity,
// allocating a new block if needed, and returns its global index. The
// allele string's length must equal 2*NMarkers. group 0 means unassigned.
func (s *Store) Append(alleleString string, parent1, parent2 uint32, name string, group uint32) (int, error) {
	if len(alleleString) != 2*s.NMarkers {
		return 0, simerrs.New(simerrs.InvalidArgument, "genotype string length %d, want %d (2 x %d markers)", len(alleleString), 2*s.NMarkers, s.NMarkers)
	}

	bi, slot := -1, -1
	for i, b := range s.blocks {
		if fs := b.firstFreeSlot(); fs >= 0 {
			bi, slot = i, fs
			break
		}
	}
	if bi == -1 {
		s.blocks = append(s.blocks, newBlock())
		bi, slot = len(s.blocks)-1, 0
	}

	b := s.blocks[bi]
	b.Occupied[slot] = true
	b.Alleles[slot] = alleleString
	b.Parent1[slot] = parent1
	b.Parent2[slot] = parent2
	b.Names[slot] = name
	b.Groups[slot] = group
	b.NSubjects++

	idx := 0
	for i := 0; i < bi; i++ {
		idx += s.blocks[i].NSubjects
	}
	for i := 0; i < slot; i++ {
		if b.Occupied[i] {
			idx++
		}
	}
	return idx, nil
}

// AllocateIDs sequentially assigns ++currentID to every individual in the
// inclusive global-index range [fromIndex, toIndex], overwriting any ids
// already assigned. If the counter would pass math.MaxUint32 it returns
// overflowed=true together with a non-fatal simerrs.Overflow error.
func (s *Store) AllocateIDs(fromIndex, toIndex int) (overflowed bool, err error) {
	n := s.NIndividuals()
	if fromIndex < 0 || toIndex < fromIndex || toIndex >= n {
		return false, simerrs.New(simerrs.InvalidArgument, "index range [%d,%d] invalid for store of size %d", fromIndex, toIndex, n)
	}

	idx := 0
	for _, b := range s.blocks {
		for slot := 0; slot < BlockCapacity; slot++ {
			if !b.Occupied[slot] {
				continue
			}
			if idx >= fromIndex && idx <= toIndex {
				if s.currentID == math.MaxUint32 {
					overflowed = true
				} else {
					s.currentID++
				}
				b.IDs[slot] = s.currentID
			}
			idx++
		}
	}
	if overflowed {
		return true, simerrs.New(simerrs.Overflow, "id counter reached math.MaxUint32; pedigree lookups after this point are undefined")
	}
	return false, nil
}

// SetNames rewrites names in [fromSlot, NSubjects) of the block at
// blockIndex to "{prefix}{suffix:0Wd}", W being the digit count of
// NSubjects-fromSlot, suffix incrementing per row starting at
// startingSuffix.
func (s *Store) SetNames(blockIndex int, prefix string, startingSuffix, fromSlot int) error {
	if blockIndex < 0 || blockIndex >= len(s.blocks) {
		return simerrs.New(simerrs.InvalidArgument, "block index %d out of range [0,%d)", blockIndex, len(s.blocks))
	}
	b := s.blocks[blockIndex]
	if fromSlot < 0 || fromSlot > b.NSubjects {
		return simerrs.New(simerrs.InvalidArgument, "from-slot %d out of range [0,%d]", fromSlot, b.NSubjects)
	}

	count := b.NSubjects - fromSlot
	width := digitCount(count)
	occ := b.occupiedSlots()
	suffix := startingSuffix
	for _, slot := range occ {
		if slot < fromSlot {
			continue
		}
		b.Names[slot] = fmt.Sprintf("%s%0*d", prefix, width, suffix)
		suffix++
	}
	return nil
}

// SetNamesForIndices rewrites the names of exactly the given global indices
// to "{prefix}{suffix:0Wd}", in the order given, starting at startingSuffix
// (W the digit count of len(indices)). Used by the crossing orchestrator to
// name freshly produced offspring, whose indices need not all share one
// block the way SetNames's contiguous from-slot range assumes.
func (s *Store) SetNamesForIndices(indices []int, prefix string, startingSuffix int) error {
	width := digitCount(len(indices))
	suffix := startingSuffix
	for _, idx := range indices {
		bi, slot, err := s.locate(idx)
		if err != nil {
			return err
		}
		s.blocks[bi].Names[slot] = fmt.Sprintf("%s%0*d", prefix, width, suffix)
		suffix++
	}
	return nil
}

func digitCount(n int) int {
	if n <= 0 {
		return 1
	}
	w := 0
	for n > 0 {
		w++
		n /= 10
	}
	return w
}

// DeleteByGroup frees every slot tagged with group g, then compacts the
// store, and reports the number of deletions.
func (s *Store) DeleteByGroup(g uint32) int {
	if g == 0 {
		return 0
	}
	deleted := 0
	for _, b := range s.blocks {
		for slot := 0; slot < BlockCapacity; slot++ {
			if b.Occupied[slot] && b.Groups[slot] == g {
				b.clearSlot(slot)
				deleted++
			}
		}
	}
	if deleted > 0 {
		s.Compact()
	}
	return deleted
}

// Compact moves surviving individuals from later slots into earlier empty
// slots, preserving relative order, and unlinks (truncates) any fully
// empty trailing blocks. Ids remain strictly increasing within each
// non-empty block, but need not be globally increasing across blocks —
// see §4.D of the design.
func (s *Store) Compact() {
	checkerBlock, checkerSlot := 0, 0
	fillerBlock, fillerSlot := 0, 0

	advanceFiller := func() bool {
		for {
			if fillerSlot >= BlockCapacity {
				fillerBlock++
				fillerSlot = 0
				if fillerBlock >= len(s.blocks) {
					return false
				}
			}
			if s.blocks[fillerBlock].Occupied[fillerSlot] {
				return true
			}
			fillerSlot++
		}
	}

	for {
		if checkerBlock >= len(s.blocks) {
			break
		}
		cb := s.blocks[checkerBlock]
		if checkerSlot >= BlockCapacity {
			checkerBlock++
			checkerSlot = 0
			continue
		}
		if cb.Occupied[checkerSlot] {
			checkerSlot++
			continue
		}
		// checkerSlot is a hole; make sure filler is strictly ahead of it.
		if fillerBlock < checkerBlock || (fillerBlock == checkerBlock && fillerSlot <= checkerSlot) {
			fillerBlock, fillerSlot = checkerBlock, checkerSlot+1
		}
		if !advanceFiller() {
			break // no more occupied slots anywhere ahead: done
		}
		fb := s.blocks[fillerBlock]
		cb.Occupied[checkerSlot] = true
		cb.Alleles[checkerSlot] = fb.Alleles[fillerSlot]
		cb.IDs[checkerSlot] = fb.IDs[fillerSlot]
		cb.Parent1[checkerSlot] = fb.Parent1[fillerSlot]
		cb.Parent2[checkerSlot] = fb.Parent2[fillerSlot]
		cb.Names[checkerSlot] = fb.Names[fillerSlot]
		cb.Groups[checkerSlot] = fb.Groups[fillerSlot]
		cb.NSubjects++
		fb.clearSlot(fillerSlot) // decrements fb.NSubjects; nets to zero when cb == fb
		checkerSlot++
		fillerSlot++
	}

	// unlink fully-empty trailing blocks, always keeping at least one.
	last := len(s.blocks) - 1
	for last > 0 && s.blocks[last].NSubjects == 0 {
		last--
	}
	s.blocks = s.blocks[:last+1]
}
