package hough

import "github.com/gridlens/gridlens/internal/geometry"

// Peak is an above-threshold local maximum of the accumulator converted
// back to line parameters.
type Peak struct {
	Line  geometry.Line
	Votes int
}

// ExtractPeaks scans the accumulator for cells whose count is at least
// threshold and is a local maximum within the (2*window+1)-sized
// neighborhood, collapsing each vote blob to a single candidate. The angle
// axis wraps; the distance axis clips at its ends. Peaks are returned in
// scan order, which carries no semantic meaning.
func ExtractPeaks(acc *Accumulator, threshold, window int) []Peak {
	var peaks []Peak
	if acc.AngleBins == 0 || acc.DistBins == 0 {
		return peaks
	}

	for t := 0; t < acc.AngleBins; t++ {
		for r := 0; r < acc.DistBins; r++ {
			votes := int(acc.At(t, r))
			if votes < threshold {
				continue
			}

			isMax := true
			for dt := -window; dt <= window && isMax; dt++ {
				nt := (t + dt + acc.AngleBins) % acc.AngleBins
				for dr := -window; dr <= window && isMax; dr++ {
					if dt == 0 && dr == 0 {
						continue
					}
					nr := r + dr
					if nr < 0 || nr >= acc.DistBins {
						continue
					}
					if int(acc.At(nt, nr)) > votes {
						isMax = false
					}
				}
			}
			if isMax {
				peaks = append(peaks, Peak{Line: acc.Line(t, r), Votes: votes})
			}
		}
	}
	return peaks
}
