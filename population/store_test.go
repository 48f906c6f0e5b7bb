package population_test

import (
	"testing"

	"github.com/KiraVill/genomicSimulation/population"
)

func TestAppendAndAllocateIDs(t *testing.T) {
	s, err := population.NewStore(2)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	i0, err := s.Append("AAAA", 0, 0, "", 0)
	if err != nil || i0 != 0 {
		t.Fatalf("Append#0 = %d, %v", i0, err)
	}
	i1, err := s.Append("TTTT", 0, 0, "", 0)
	if err != nil || i1 != 1 {
		t.Fatalf("Append#1 = %d, %v", i1, err)
	}

	if _, err := s.Append("AA", 0, 0, "", 0); err == nil {
		t.Fatal("expected error for wrong-length genotype")
	}

	if overflowed, err := s.AllocateIDs(0, 1); overflowed || err != nil {
		t.Fatalf("AllocateIDs: overflowed=%v err=%v", overflowed, err)
	}
	id0, _ := s.IDOfIndex(0)
	id1, _ := s.IDOfIndex(1)
	if id0 == 0 || id1 == 0 || id0 >= id1 {
		t.Fatalf("ids not strictly increasing: %d, %d", id0, id1)
	}
}

func TestSetNames(t *testing.T) {
	s, _ := population.NewStore(1)
	for i := 0; i < 12; i++ {
		s.Append("AA", 0, 0, "", 0)
	}
	if err := s.SetNames(0, "L", 1, 0); err != nil {
		t.Fatalf("SetNames: %v", err)
	}
	name0, _ := s.NameOfIndex(0)
	name11, _ := s.NameOfIndex(11)
	if name0 != "L01" {
		t.Fatalf("name0 = %q, want L01 (width 2 for count 12)", name0)
	}
	if name11 != "L12" {
		t.Fatalf("name11 = %q, want L12", name11)
	}
}

func TestDeleteByGroupAndCompactByteEquivalence(t *testing.T) {
	s, _ := population.NewStore(1)
	for i := 0; i < 5; i++ {
		s.Append("AA", 0, 0, "keep", 0)
	}
	preState := s.NIndividuals()

	for i := 0; i < 3; i++ {
		s.Append("TT", 0, 0, "doomed", 7)
	}

	if got := s.DeleteByGroup(7); got != 3 {
		t.Fatalf("DeleteByGroup = %d, want 3", got)
	}
	if got := s.NIndividuals(); got != preState {
		t.Fatalf("after delete+compact, NIndividuals = %d, want %d", got, preState)
	}
	for i := 0; i < preState; i++ {
		name, err := s.NameOfIndex(i)
		if err != nil || name != "keep" {
			t.Fatalf("index %d: name=%q err=%v, want \"keep\"", i, name, err)
		}
	}
}

func TestCompactionFullBlockScenario(t *testing.T) {
	s, _ := population.NewStore(1)
	for i := 0; i < population.BlockCapacity; i++ {
		s.Append("AA", 0, 0, "", 7)
	}
	for i := 0; i < 500; i++ {
		s.Append("AA", 0, 0, "", 7)
	}
	if n := s.NIndividuals(); n != population.BlockCapacity+500 {
		t.Fatalf("setup: NIndividuals = %d", n)
	}

	lastID := uint32(0)
	s.AllocateIDs(0, s.NIndividuals()-1)
	lastID, _ = s.IDOfIndex(s.NIndividuals() - 1)

	if got := s.DeleteByGroup(7); got != population.BlockCapacity+500 {
		t.Fatalf("DeleteByGroup = %d", got)
	}
	if got := s.NIndividuals(); got != 0 {
		t.Fatalf("expected empty store after deleting everything, got %d", got)
	}

	idx, err := s.Append("AA", 0, 0, "", 0)
	if err != nil || idx != 0 {
		t.Fatalf("Append after full clear: idx=%d err=%v", idx, err)
	}
	s.AllocateIDs(0, 0)
	newID, _ := s.IDOfIndex(0)
	if newID <= lastID {
		t.Fatalf("new id %d should exceed prior max id %d", newID, lastID)
	}
}

func TestNameOfAndGenesOfAndParentsOf(t *testing.T) {
	s, _ := population.NewStore(1)
	idx, _ := s.Append("AT", 10, 20, "Bessie", 0)
	s.AllocateIDs(idx, idx)
	id, _ := s.IDOfIndex(idx)

	if name, err := s.NameOf(id); err != nil || name != "Bessie" {
		t.Fatalf("NameOf = %q, %v", name, err)
	}
	if genes, err := s.GenesOf(id); err != nil || genes != "AT" {
		t.Fatalf("GenesOf = %q, %v", genes, err)
	}
	p1, p2, err := s.ParentsOf(id)
	if err != nil || p1 != 10 || p2 != 20 {
		t.Fatalf("ParentsOf = %d,%d,%v", p1, p2, err)
	}

	orphanIdx, _ := s.Append("AT", 0, 0, "Orphan", 0)
	s.AllocateIDs(orphanIdx, orphanIdx)
	orphanID, _ := s.IDOfIndex(orphanIdx)
	if _, _, err := s.ParentsOf(orphanID); err == nil {
		t.Fatal("expected error for unknown parents")
	}
}

func TestIDsOfNamesUnknownSentinel(t *testing.T) {
	s, _ := population.NewStore(1)
	s.Append("AA", 0, 0, "Alice", 0)
	s.AllocateIDs(0, 0)

	ids := s.IDsOfNames([]string{"Alice", "Bob"})
	if ids[1] != 0 {
		t.Fatalf("unknown name should resolve to sentinel 0, got %d", ids[1])
	}
	if ids[0] == 0 {
		t.Fatal("known name should resolve to non-zero id")
	}
}

func TestIDOfChildUnorderedParents(t *testing.T) {
	s, _ := population.NewStore(1)
	s.Append("AA", 10, 20, "", 0)
	s.AllocateIDs(0, 0)

	if _, err := s.IDOfChild(20, 10); err != nil {
		t.Fatalf("IDOfChild should match unordered parent pair: %v", err)
	}
	if _, err := s.IDOfChild(99, 100); err == nil {
		t.Fatal("expected not-found for unrelated parents")
	}
}
