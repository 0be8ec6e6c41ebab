package section

import "strings"

// LabelSet is the fixed set of ten 80-character title labels in the header.
//
// Slots are filled from the front: the number of labels is the index of the
// first empty slot, and deleting a label compacts the slots behind it.
// The zero value is an empty set.
type LabelSet struct {
	slots [MaxLabels]label
	count int
}

type label struct {
	text string
	ok   bool
}

// Len returns the number of labels, i.e. the index of the first empty slot.
func (s *LabelSet) Len() int {
	return s.count
}

// Get returns the label at pos. It returns false when pos is outside [0, Len()).
func (s *LabelSet) Get(pos int) (string, bool) {
	if pos < 0 || pos >= s.count {
		return "", false
	}

	return s.slots[pos].text, true
}

// Title returns label 0.
func (s *LabelSet) Title() (string, bool) {
	return s.Get(0)
}

// All returns a copy of the labels in slot order.
func (s *LabelSet) All() []string {
	out := make([]string, 0, s.count)
	for i := range s.count {
		out = append(out, s.slots[i].text)
	}

	return out
}

// Set stores text at pos, replacing any previous label there.
//
// pos is clamped into [0, Len()], so setting past the end appends.
// Returns the slot actually written.
func (s *LabelSet) Set(text string, pos int) int {
	pos = s.clamp(pos)
	s.slots[pos] = label{text: text, ok: true}
	s.recount()

	return pos
}

// Delete clears the label at pos (clamped like Set) and moves later labels
// down to fill the gap. Returns the slot cleared.
func (s *LabelSet) Delete(pos int) int {
	pos = s.clamp(pos)
	s.slots[pos] = label{}

	for i := pos; i < MaxLabels; i++ {
		if s.slots[i].ok {
			continue
		}
		for j := i + 1; j < MaxLabels; j++ {
			if s.slots[j].ok {
				s.slots[i] = s.slots[j]
				s.slots[j] = label{}

				break
			}
		}
	}
	s.recount()

	return pos
}

// Reset removes all labels.
func (s *LabelSet) Reset() {
	*s = LabelSet{}
}

func (s *LabelSet) clamp(pos int) int {
	if pos < 0 {
		return 0
	}
	if pos > s.count {
		pos = s.count
	}
	if pos >= MaxLabels {
		pos = MaxLabels - 1
	}

	return pos
}

func (s *LabelSet) recount() {
	s.count = 0
	for s.count < MaxLabels && s.slots[s.count].ok {
		s.count++
	}
}

// parse decodes count labels from the 800-byte label area.
func (s *LabelSet) parse(area []byte, count int) {
	s.Reset()
	count = max(0, min(count, MaxLabels))

	for i := range count {
		raw := area[i*LabelSize : (i+1)*LabelSize]
		s.slots[i] = label{text: strings.TrimRight(string(raw), " \x00"), ok: true}
	}
	s.recount()
}

// encode writes the label area: each label space-padded or truncated to 80
// bytes, unused slots as 80 spaces.
func (s *LabelSet) encode(area []byte) {
	for i := range MaxLabels {
		slot := area[i*LabelSize : (i+1)*LabelSize]
		n := 0
		if i < s.count {
			n = copy(slot, s.slots[i].text)
		}
		for j := n; j < LabelSize; j++ {
			slot[j] = ' '
		}
	}
}

// PadRecord space-pads or truncates text to exactly size bytes.
func PadRecord(text string, size int) []byte {
	rec := make([]byte, size)
	n := copy(rec, text)
	for i := n; i < size; i++ {
		rec[i] = ' '
	}

	return rec
}
