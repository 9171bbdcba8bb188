package outline

// Scanner returns a path scanner.
func (p *Path) Scanner() *PathScanner {
	return &PathScanner{p, -1}
}

// ReverseScanner returns a path scanner in reverse order.
func (p *Path) ReverseScanner() *PathReverseScanner {
	return &PathReverseScanner{p, len(p.d)}
}

// PathScanner scans the path.
type PathScanner struct {
	p *Path
	i int
}

// Scan scans a new path segment and should be called before the other methods.
func (s *PathScanner) Scan() bool {
	if s.i+1 < len(s.p.d) {
		s.i += cmdLen(s.p.d[s.i+1])
		return true
	}
	return false
}

// Cmd returns the current path segment command.
func (s *PathScanner) Cmd() float64 {
	return s.p.d[s.i]
}

// Values returns the current path segment values.
func (s *PathScanner) Values() []float64 {
	return s.p.d[s.i-cmdLen(s.p.d[s.i])+2 : s.i]
}

// Start returns the current path segment start position.
func (s *PathScanner) Start() Point {
	i := s.i - cmdLen(s.p.d[s.i])
	if i == -1 {
		return Point{}
	}
	return Point{s.p.d[i-2], s.p.d[i-1]}
}

// End returns the current path segment end position.
func (s *PathScanner) End() Point {
	return Point{s.p.d[s.i-2], s.p.d[s.i-1]}
}

// Segment returns the current path segment. Closes are returned as lines.
func (s *PathScanner) Segment() Segment {
	return segmentAt(s.p.d, s.i-cmdLen(s.p.d[s.i])+1, s.Start())
}

// PathReverseScanner scans the path in reverse order.
type PathReverseScanner struct {
	p *Path
	i int
}

// Scan scans a new path segment and should be called before the other methods.
func (s *PathReverseScanner) Scan() bool {
	if 0 < s.i {
		s.i -= cmdLen(s.p.d[s.i-1])
		return true
	}
	return false
}

// Cmd returns the current path segment command.
func (s *PathReverseScanner) Cmd() float64 {
	return s.p.d[s.i]
}

// Values returns the current path segment values.
func (s *PathReverseScanner) Values() []float64 {
	return s.p.d[s.i+1 : s.i+cmdLen(s.p.d[s.i])-1]
}

// Start returns the current path segment start position.
func (s *PathReverseScanner) Start() Point {
	if s.i == 0 {
		return Point{}
	}
	return Point{s.p.d[s.i-3], s.p.d[s.i-2]}
}

// End returns the current path segment end position.
func (s *PathReverseScanner) End() Point {
	i := s.i + cmdLen(s.p.d[s.i])
	return Point{s.p.d[i-3], s.p.d[i-2]}
}

// Segment returns the current path segment. Closes are returned as lines.
func (s *PathReverseScanner) Segment() Segment {
	return segmentAt(s.p.d, s.i, s.Start())
}
