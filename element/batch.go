package element

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/notargets/fermi/utils"
)

// Contribution is the pair of local matrices of one element, ready to be
// scattered through Element.NodeIndexes.
type Contribution struct {
	Element *Element
	Ae, Be  utils.Matrix
}

// ComputeAll computes the contributions of independent elements in parallel,
// one goroutine per contiguous bucket of elements. The result keeps the input
// order. When any element fails, no contributions are returned and the error
// is that of the failing element with the lowest index.
func ComputeAll(elements []*Element, parallelDegree int) (contribs []Contribution, err error) {
	var (
		K  = len(elements)
		wg sync.WaitGroup
	)
	if K == 0 {
		return
	}
	if parallelDegree <= 0 {
		parallelDegree = runtime.NumCPU()
	}
	if parallelDegree > K {
		parallelDegree = K
	}
	var (
		pm   = utils.NewPartitionMap(parallelDegree, K)
		errs = make([]error, K)
	)
	contribs = make([]Contribution, K)
	for np := 0; np < pm.ParallelDegree; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			kMin, kMax := pm.GetBucketRange(np)
			for k := kMin; k < kMax; k++ {
				el := elements[k]
				if el == nil {
					errs[k] = fmt.Errorf("element at position %d is nil", k)
					continue
				}
				c := &contribs[k]
				c.Element = el
				c.Ae, c.Be, errs[k] = el.ComputeAeBe()
			}
		}(np)
	}
	wg.Wait()
	for _, e := range errs {
		if e != nil {
			return nil, e
		}
	}
	return
}
