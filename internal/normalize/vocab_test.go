package normalize

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Run with -race: every store path normalizes through the shared
// vocabularies.
func TestVocabularyMapConcurrent(t *testing.T) {
	const workers = 8
	var wg sync.WaitGroup
	got := make([][]string, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				got[w] = append(got[w],
					EducationLevels.Map("técnico profesional"),
					SubsidyPrograms.Map("PRO RETENCIÓN"),
				)
			}
		}(w)
	}
	wg.Wait()

	for _, results := range got {
		for i := 0; i < len(results); i += 2 {
			assert.Equal(t, "Técnico-Profesional", results[i])
			assert.Equal(t, "Pro-Retención", results[i+1])
		}
	}
}
