package population_test

import (
	"sort"
	"testing"

	"github.com/KiraVill/genomicSimulation/population"
)

func newFilledStore(t *testing.T, n int) *population.Store {
	t.Helper()
	s, err := population.NewStore(1)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	for i := 0; i < n; i++ {
		if _, err := s.Append("AA", 0, 0, "", 0); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	return s
}

func TestCombineGroups(t *testing.T) {
	s := newFilledStore(t, 5)
	s.SplitByIndices([]int{0, 1}) // group tag 1
	s.SplitByIndices([]int{2, 3}) // group tag 2

	s.Combine(1, []uint32{2})

	groups := s.EnumerateGroups()
	if len(groups) != 1 {
		t.Fatalf("expected one group after combine, got %+v", groups)
	}
	if groups[0].Tag != 1 || groups[0].Count != 4 {
		t.Fatalf("combined group = %+v, want tag 1 count 4", groups[0])
	}
}

func TestSplitIntoIndividualsThenCombineRestoresOriginal(t *testing.T) {
	s := newFilledStore(t, 4)
	g := s.SplitByIndices([]int{0, 1, 2, 3})

	produced := s.SplitIntoIndividuals(g)
	if len(produced) != 4 {
		t.Fatalf("SplitIntoIndividuals produced %d tags, want 4", len(produced))
	}
	seen := make(map[uint32]bool)
	for _, tag := range produced {
		if seen[tag] {
			t.Fatalf("duplicate tag %d produced", tag)
		}
		seen[tag] = true
	}

	newTag := s.NewGroupTag()
	s.Combine(newTag, produced)

	groups := s.EnumerateGroups()
	if len(groups) != 1 || groups[0].Count != 4 {
		t.Fatalf("after recombine, groups = %+v, want one group of 4", groups)
	}
}

func TestSplitIntoFamiliesUnorderedParentPair(t *testing.T) {
	s, _ := population.NewStore(1)
	s.Append("AA", 10, 20, "", 0)
	s.Append("AA", 20, 10, "", 0)
	s.Append("AA", 10, 20, "", 0)
	s.Append("AA", 30, 40, "", 0)
	g := s.SplitByIndices([]int{0, 1, 2, 3})

	tags := s.SplitIntoFamilies(g)
	if len(tags) != 2 {
		t.Fatalf("expected 2 families, got %d: %v", len(tags), tags)
	}

	groups := s.EnumerateGroups()
	var counts []int
	for _, gc := range groups {
		counts = append(counts, gc.Count)
	}
	sort.Ints(counts)
	if len(counts) != 2 || counts[0] != 1 || counts[1] != 3 {
		t.Fatalf("family sizes = %v, want [1 3]", counts)
	}
}

func TestSplitByIndicesSortsFirst(t *testing.T) {
	s := newFilledStore(t, 5)
	tag := s.SplitByIndices([]int{4, 0, 2})

	idxs := s.GroupIndexes(tag)
	sort.Ints(idxs)
	if len(idxs) != 3 || idxs[0] != 0 || idxs[1] != 2 || idxs[2] != 4 {
		t.Fatalf("GroupIndexes = %v, want [0 2 4]", idxs)
	}
}

func TestNewGroupTagReusesGap(t *testing.T) {
	s := newFilledStore(t, 5)
	s.SplitByIndices([]int{0}) // tag 1
	_ = s.SplitByIndices([]int{1}) // tag 2
	tag3 := s.SplitByIndices([]int{2}) // tag 3
	if tag3 != 3 {
		t.Fatalf("tag3 = %d, want 3", tag3)
	}

	// free up tag 2 entirely; next allocation should reuse it.
	s.Combine(1, []uint32{2})
	tag := s.NewGroupTag()
	if tag != 2 {
		t.Fatalf("NewGroupTag after freeing tag 2 = %d, want 2", tag)
	}
}

func TestEnumerateGroupsSortedAscending(t *testing.T) {
	s := newFilledStore(t, 6)
	s.SplitByIndices([]int{0})
	s.SplitByIndices([]int{1, 2})
	s.SplitByIndices([]int{3, 4, 5})

	groups := s.EnumerateGroups()
	for i := 1; i < len(groups); i++ {
		if groups[i-1].Tag >= groups[i].Tag {
			t.Fatalf("groups not ascending: %+v", groups)
		}
	}
	total := 0
	for _, g := range groups {
		if g.Count < 1 {
			t.Fatalf("group %+v has count < 1", g)
		}
		total += g.Count
	}
	if total != 6 {
		t.Fatalf("total grouped = %d, want 6", total)
	}
}
