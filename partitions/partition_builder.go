package partitions

import (
	"fmt"
	"runtime"
)

// PartitionStrategy defines how elements are grouped
type PartitionStrategy int

const (
	BlockPartition PartitionStrategy = iota // Consecutive elements
	RoundRobin                              // Distribute cyclically
)

func (s PartitionStrategy) String() string {
	switch s {
	case BlockPartition:
		return "block"
	case RoundRobin:
		return "round-robin"
	}
	return fmt.Sprintf("PartitionStrategy(%d)", int(s))
}

// PartitionBuilder splits an element loop of NumElements into NumPartitions
// groups. NumPartitions <= 0 means one partition per CPU. No partition is
// left empty: the count is capped at NumElements.
type PartitionBuilder struct {
	NumElements   int
	NumPartitions int
	Strategy      PartitionStrategy
}

// BuildPartitions creates a validated layout
func (pb *PartitionBuilder) BuildPartitions() (*Layout, error) {
	if pb.NumElements < 0 {
		return nil, fmt.Errorf("negative element count %d", pb.NumElements)
	}
	numPartitions := pb.calculateNumPartitions()

	eToP, err := pb.partitionElements(numPartitions)
	if err != nil {
		return nil, err
	}
	partitions := pb.createPartitions(eToP, numPartitions)

	maxElements := 0
	for _, p := range partitions {
		if p.NumElements > maxElements {
			maxElements = p.NumElements
		}
	}

	layout := &Layout{
		Partitions:    partitions,
		MaxElements:   maxElements,
		TotalElements: pb.NumElements,
		NumPartitions: numPartitions,
		EToP:          eToP,
	}
	if err := layout.ValidateLayout(); err != nil {
		return nil, fmt.Errorf("invalid partition layout: %w", err)
	}
	return layout, nil
}

func (pb *PartitionBuilder) calculateNumPartitions() int {
	n := pb.NumPartitions
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	if n > pb.NumElements {
		n = pb.NumElements
	}
	if n < 1 {
		n = 1
	}
	return n
}

func (pb *PartitionBuilder) partitionElements(numPartitions int) ([]int, error) {
	eToP := make([]int, pb.NumElements)

	switch pb.Strategy {
	case BlockPartition:
		// the first NumElements % numPartitions blocks take one extra element
		base, extra := pb.NumElements/numPartitions, pb.NumElements%numPartitions
		k := 0
		for p := 0; p < numPartitions; p++ {
			size := base
			if p < extra {
				size++
			}
			for i := 0; i < size; i++ {
				eToP[k] = p
				k++
			}
		}
	case RoundRobin:
		for i := range eToP {
			eToP[i] = i % numPartitions
		}
	default:
		return nil, fmt.Errorf("unknown partition strategy %v", pb.Strategy)
	}
	return eToP, nil
}

func (pb *PartitionBuilder) createPartitions(eToP []int, numPartitions int) []Partition {
	partitions := make([]Partition, numPartitions)
	for i := range partitions {
		partitions[i] = Partition{ID: i, Elements: make([]int, 0, pb.NumElements/numPartitions+1)}
	}
	for elem, part := range eToP {
		partitions[part].Elements = append(partitions[part].Elements, elem)
		partitions[part].NumElements++
	}
	return partitions
}
