package regions

import "fmt"

type Kind string

const (
	KindBlock    Kind = "block"
	KindDistrict Kind = "district"
)

type UnknownRegionError struct {
	Kind Kind
	Name string
}

func (e *UnknownRegionError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Kind, e.Name)
}

type SeatConfigMismatchError struct {
	Want int
	Got  int
}

func (e *SeatConfigMismatchError) Error() string {
	return fmt.Sprintf("block seats sum to %d, expected %d PR seats", e.Got, e.Want)
}
