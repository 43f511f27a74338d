package lci

import (
	"sync"

	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/records"
)

// OfficeResult pairs an office name with its score.
type OfficeResult struct {
	Office string `json:"office"`
	Result Result `json:"result"`
}

// ComputeAllOffices scores every office in rs concurrently, returned in
// ListOffices order. Each goroutine writes only its own slot.
func (e *Engine) ComputeAllOffices(rs []records.Record) []OfficeResult {
	offices := records.ListOffices(rs)
	out := make([]OfficeResult, len(offices))

	var wg sync.WaitGroup
	for i, office := range offices {
		i, office := i, office
		wg.Add(1)
		go func() {
			defer wg.Done()
			out[i] = OfficeResult{Office: office, Result: e.ComputeOffice(rs, office)}
		}()
	}
	wg.Wait()
	return out
}
