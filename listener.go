package xlpanel

// CellListener is notified for every data cell as it is rendered or exported.
// Implement it to collect band statistics, audit output, or log per-cell decisions.
type CellListener interface {
	// OnCell is called once per data cell. row and col are 0-based positions
	// within the ResultSet body (the header row is not reported).
	OnCell(row, col int, cell Cell, band Band)
}

// CellListenerFunc adapts a function to the CellListener interface.
type CellListenerFunc func(row, col int, cell Cell, band Band)

// OnCell calls f.
func (f CellListenerFunc) OnCell(row, col int, cell Cell, band Band) { f(row, col, cell, band) }

// BandCounter is a CellListener that counts cells per band.
type BandCounter struct {
	Counts map[Band]int
}

// NewBandCounter creates an empty BandCounter.
func NewBandCounter() *BandCounter {
	return &BandCounter{Counts: make(map[Band]int)}
}

// OnCell implements CellListener.
func (c *BandCounter) OnCell(_, _ int, _ Cell, band Band) {
	c.Counts[band]++
}

func notifyCell(listeners []CellListener, row, col int, cell Cell, band Band) {
	for _, l := range listeners {
		l.OnCell(row, col, cell, band)
	}
}
