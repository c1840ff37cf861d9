package audio

type voice struct {
	samples []float32
	gain    float32
	pos     int
}

// mixer sums active voices into an output buffer.
type mixer struct {
	voices []voice
}

// add starts a voice playing samples scaled by gain. samples is shared, not copied.
func (m *mixer) add(samples []float32, gain float32) {
	if len(samples) == 0 || gain <= 0 {
		return
	}
	m.voices = append(m.voices, voice{samples: samples, gain: gain})
}

func (m *mixer) active() int {
	return len(m.voices)
}

// fill overwrites out with the mix and drops finished voices.
func (m *mixer) fill(out []float32) {
	for i := range out {
		out[i] = 0
	}
	live := m.voices[:0]
	for _, v := range m.voices {
		n := mixInto(out, v.samples[v.pos:], v.gain)
		v.pos += n
		if v.pos < len(v.samples) {
			live = append(live, v)
		}
	}
	m.voices = live
	for i, s := range out {
		if s > 1 {
			out[i] = 1
		} else if s < -1 {
			out[i] = -1
		}
	}
}

func mixInto(dst, src []float32, gain float32) int {
	n := min(len(dst), len(src))
	for i := 0; i < n; i++ {
		dst[i] += src[i] * gain
	}
	return n
}
