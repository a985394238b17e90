package fault

import "errors"

var (
	ErrUnknownPartition = errors.New("unknown partition")

	ErrPartitionExists = errors.New("partition already active")
)
