package catalog

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"skillup_backend/internal/model"
)

func TestFilterCache_HitsOnSameKey(t *testing.T) {
	store := NewStore()
	c := store.Replace(DefaultSeed())

	var hits, misses int
	fc := NewFilterCache(8)
	fc.OnLookup = func(hit bool) {
		if hit {
			hits++
		} else {
			misses++
		}
	}

	first := fc.Filter(c, model.SectionPopular, "design", "All")
	second := fc.Filter(c, model.SectionPopular, "  DESIGN ", "All")

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"UX for Mobile Apps"}, titles(first))
	assert.Equal(t, 1, misses)
	assert.Equal(t, 1, hits)

	fc.Filter(c, model.SectionPopular, "design", "Design")
	assert.Equal(t, 2, misses)
}

func TestFilterCache_VersionInvalidates(t *testing.T) {
	store := NewStore()
	fc := NewFilterCache(8)

	v1 := store.Replace(DefaultSeed())
	assert.Len(t, fc.Filter(v1, model.SectionContinue, "", "All"), 2)

	seed := DefaultSeed()
	seed.Courses.Continue = seed.Courses.Continue[:1]
	v2 := store.Replace(seed)

	assert.Greater(t, v2.Version, v1.Version)
	assert.Len(t, fc.Filter(v2, model.SectionContinue, "", "All"), 1)
}

func TestFilterCache_Evicts(t *testing.T) {
	c := NewStore().Replace(DefaultSeed())
	fc := NewFilterCache(2)

	fc.Filter(c, model.SectionPopular, "a", "All")
	fc.Filter(c, model.SectionPopular, "b", "All")
	fc.Filter(c, model.SectionPopular, "c", "All")

	assert.Equal(t, 2, fc.Len())
}

func TestFilterCache_ResultIsCopy(t *testing.T) {
	c := NewStore().Replace(DefaultSeed())
	fc := NewFilterCache(4)

	got := fc.Filter(c, model.SectionPopular, "", "All")
	got[0].Title = "mutated"

	again := fc.Filter(c, model.SectionPopular, "", "All")
	assert.Equal(t, "Android Jetpack Compose", again[0].Title)
}

func TestFilterCache_Concurrent(t *testing.T) {
	c := NewStore().Replace(DefaultSeed())
	fc := NewFilterCache(4)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			q := []string{"", "ux", "kotlin", "data", "design"}[i%5]
			fc.Filter(c, model.SectionPopular, q, "All")
		}(i)
	}
	wg.Wait()
	assert.LessOrEqual(t, fc.Len(), 4)
}
