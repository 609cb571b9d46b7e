package cleanup

import "fmt"

// RemovalError describes a candidate whose removal failed.
type RemovalError struct {
	SeriesID   string
	SeriesName string
	GameID     string
	Err        error
}

func (e *RemovalError) Error() string {
	return fmt.Sprintf("remove series %s (%s, game %s): %v", e.SeriesID, e.SeriesName, e.GameID, e.Err)
}

func (e *RemovalError) Unwrap() error { return e.Err }
