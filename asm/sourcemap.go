package asm

import "sort"

// AddressEntry records that the instruction or directive occupying
// SizeBytes bytes starting at Address was produced by source Line.
type AddressEntry struct {
	Address   uint16
	Line      int
	SizeBytes uint8
}

// LineRange records the contiguous address span a single source line
// assembled to. End is exclusive.
type LineRange struct {
	Line         int
	StartAddress uint16
	EndAddress   uint16
}

// SourceMap is a bidirectional address<->line index built during pass
// 2. Both directions are plain sorted slices searched with binary
// search rather than hash maps, since address ranges and line ranges
// both need ordered nearest-match lookups, not just exact hits.
type SourceMap struct {
	byAddress []AddressEntry
	byLine    []LineRange
	finalized bool
}

// NewSourceMap returns an empty, unfinalized source map.
func NewSourceMap() *SourceMap {
	return &SourceMap{}
}

// Record appends one emitted region. Call Finalize once every region
// of the encode pass has been recorded.
func (m *SourceMap) Record(address uint16, line int, size uint8) {
	m.byAddress = append(m.byAddress, AddressEntry{Address: address, Line: line, SizeBytes: size})
	end := address + uint16(size)
	m.byLine = append(m.byLine, LineRange{Line: line, StartAddress: address, EndAddress: end})
	m.finalized = false
}

// Finalize sorts both indices so LineForAddress and AddressRangeForLine
// can binary search them. Must be called after the last Record.
func (m *SourceMap) Finalize() {
	sort.Slice(m.byAddress, func(i, j int) bool { return m.byAddress[i].Address < m.byAddress[j].Address })
	sort.Slice(m.byLine, func(i, j int) bool { return m.byLine[i].Line < m.byLine[j].Line })
	m.finalized = true
}

// LineForAddress returns the source line that produced the byte at
// addr, if any region covers it.
func (m *SourceMap) LineForAddress(addr uint16) (int, bool) {
	i := sort.Search(len(m.byAddress), func(i int) bool { return m.byAddress[i].Address > addr })
	if i == 0 {
		return 0, false
	}
	e := m.byAddress[i-1]
	if addr >= e.Address && addr < e.Address+uint16(e.SizeBytes) {
		return e.Line, true
	}
	return 0, false
}

// AddressRangeForLine returns the [start,end) address span line
// assembled to, if the line emitted anything.
func (m *SourceMap) AddressRangeForLine(line int) (start, end uint16, ok bool) {
	i := sort.Search(len(m.byLine), func(i int) bool { return m.byLine[i].Line >= line })
	if i < len(m.byLine) && m.byLine[i].Line == line {
		return m.byLine[i].StartAddress, m.byLine[i].EndAddress, true
	}
	return 0, 0, false
}
