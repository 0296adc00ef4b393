package partitions

import (
	"fmt"
)

// Partition is a group of elements processed together by one worker
type Partition struct {
	ID          int
	Elements    []int // Global element indices in this partition
	NumElements int
}

// Layout is a complete decomposition of the element loop
type Layout struct {
	Partitions []Partition

	MaxElements   int // max(NumElements) across all partitions
	TotalElements int
	NumPartitions int

	// Element to partition mapping: element k belongs to partition EToP[k]
	EToP []int
}

// GetPartition returns the partition containing element k, -1 if k is out of range
func (pl *Layout) GetPartition(elementID int) int {
	if elementID < 0 || elementID >= len(pl.EToP) {
		return -1
	}
	return pl.EToP[elementID]
}

// ValidateLayout checks that every element appears exactly once, in the
// partition EToP names
func (pl *Layout) ValidateLayout() error {
	if len(pl.Partitions) != pl.NumPartitions {
		return fmt.Errorf("layout has %d partitions, NumPartitions=%d", len(pl.Partitions), pl.NumPartitions)
	}
	if len(pl.EToP) != pl.TotalElements {
		return fmt.Errorf("EToP length %d does not match %d elements", len(pl.EToP), pl.TotalElements)
	}
	seen := make([]bool, pl.TotalElements)
	actualMax, total := 0, 0
	for _, p := range pl.Partitions {
		if p.NumElements != len(p.Elements) {
			return fmt.Errorf("partition %d: NumElements %d != %d listed", p.ID, p.NumElements, len(p.Elements))
		}
		for _, k := range p.Elements {
			if k < 0 || k >= pl.TotalElements {
				return fmt.Errorf("partition %d: element %d out of range", p.ID, k)
			}
			if seen[k] {
				return fmt.Errorf("partition %d: element %d assigned twice", p.ID, k)
			}
			if pl.EToP[k] != p.ID {
				return fmt.Errorf("partition %d: element %d mapped to partition %d", p.ID, k, pl.EToP[k])
			}
			seen[k] = true
		}
		total += p.NumElements
		if p.NumElements > actualMax {
			actualMax = p.NumElements
		}
	}
	if total != pl.TotalElements {
		return fmt.Errorf("partitions hold %d elements, expected %d", total, pl.TotalElements)
	}
	if actualMax != pl.MaxElements {
		return fmt.Errorf("computed MaxElements %d != stored MaxElements %d", actualMax, pl.MaxElements)
	}
	return nil
}
