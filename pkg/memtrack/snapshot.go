package memtrack

// Snapshot is the serializable form of a Recorder's state, consumed by the
// persist package.
type Snapshot struct {
	Samples map[string][]uint64 `yaml:"samples"`
}

func (r *Recorder) Snapshot() Snapshot {
	samples := make(map[string][]uint64, len(r.samples))
	for k, seq := range r.samples {
		cp := make([]uint64, len(seq))
		copy(cp, seq)
		samples[k] = cp
	}
	return Snapshot{Samples: samples}
}

func (r *Recorder) Restore(s Snapshot) {
	r.samples = make(map[string][]uint64, len(s.Samples))
	for k, seq := range s.Samples {
		if len(seq) == 0 {
			continue
		}
		cp := make([]uint64, len(seq))
		copy(cp, seq)
		r.samples[k] = cp
	}
}
