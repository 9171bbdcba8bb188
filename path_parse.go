package outline

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	strconvParse "github.com/tdewolff/parse/v2/strconv"
)

func skipCommaWhitespace(path []byte) int {
	i := 0
	for i < len(path) && (path[i] == ' ' || path[i] == ',' || path[i] == '\n' || path[i] == '\r' || path[i] == '\t') {
		i++
	}
	return i
}

// MustParseSVGPath parses an SVG path data string and panics if it fails.
func MustParseSVGPath(s string) *Path {
	p, err := ParseSVGPath(s)
	if err != nil {
		panic(err)
	}
	return p
}

// ParseSVGPath parses an SVG path data string into a path.
func ParseSVGPath(s string) (*Path, error) {
	if len(s) == 0 {
		return &Path{}, nil
	}

	i := 0
	path := []byte(s)
	i += skipCommaWhitespace(path[i:])
	if len(path) <= i {
		return &Path{}, nil
	} else if path[0] == ',' || path[i] != 'M' && path[i] != 'm' {
		return &Path{}, fmt.Errorf("bad path: path should start with command 'M' or 'm'")
	}

	var prevCmd byte
	var cpx, cpy float64 // last control point
	p := &Path{}
	for {
		i += skipCommaWhitespace(path[i:])
		if len(path) <= i {
			break
		}

		cmd := prevCmd
		repeat := true
		if cmd == 0 || 'A' <= path[i] && path[i] <= 'Z' || 'a' <= path[i] && path[i] <= 'z' {
			cmd = path[i]
			repeat = false
			i++
			i += skipCommaWhitespace(path[i:])
		}

		n := 0
		switch cmd {
		case 'M', 'm', 'L', 'l', 'T', 't':
			n = 2
		case 'H', 'h', 'V', 'v':
			n = 1
		case 'C', 'c':
			n = 6
		case 'S', 's', 'Q', 'q':
			n = 4
		case 'A', 'a':
			n = 7
		case 'Z', 'z':
			if repeat {
				return &Path{}, fmt.Errorf("bad path: %d: unexpected numbers after close", i)
			}
		default:
			return &Path{}, fmt.Errorf("bad path: %d: unknown command '%c'", i, cmd)
		}

		f := [7]float64{}
		for j := 0; j < n; j++ {
			if (cmd == 'A' || cmd == 'a') && (j == 3 || j == 4) {
				// parse largeArc and sweep booleans for A command
				if i < len(path) && (path[i] == '1' || path[i] == '0') {
					f[j] = float64(path[i] - '0')
					i++
				} else {
					return &Path{}, fmt.Errorf("bad path: %d: largeArc and sweep flags should be 0 or 1 in command '%c'", i, cmd)
				}
			} else {
				v, m := strconvParse.ParseFloat(path[i:])
				if m == 0 {
					if repeat && j == 0 && i < len(path) {
						return &Path{}, fmt.Errorf("bad path: %d: unknown command '%c'", i, path[i])
					} else if i < len(path) {
						return &Path{}, fmt.Errorf("bad path: %d: bad number '%s' in command '%c'", i, path[i:], cmd)
					}
					return &Path{}, fmt.Errorf("bad path: %d: sets of %d numbers should follow command '%c'", i, n, cmd)
				}
				f[j] = v
				i += m
			}
			i += skipCommaWhitespace(path[i:])
		}

		pos := p.Pos()
		switch cmd {
		case 'M', 'm':
			if cmd == 'm' {
				f[0] += pos.X
				f[1] += pos.Y
			}
			if repeat {
				p.LineTo(f[0], f[1])
			} else {
				p.MoveTo(f[0], f[1])
			}
		case 'Z', 'z':
			p.Close()
		case 'L', 'l':
			if cmd == 'l' {
				f[0] += pos.X
				f[1] += pos.Y
			}
			p.LineTo(f[0], f[1])
		case 'H', 'h':
			if cmd == 'h' {
				f[0] += pos.X
			}
			p.LineTo(f[0], pos.Y)
		case 'V', 'v':
			if cmd == 'v' {
				f[0] += pos.Y
			}
			p.LineTo(pos.X, f[0])
		case 'C', 'c':
			if cmd == 'c' {
				for j := 0; j < 6; j += 2 {
					f[j] += pos.X
					f[j+1] += pos.Y
				}
			}
			p.CubeTo(f[0], f[1], f[2], f[3], f[4], f[5])
			cpx, cpy = f[2], f[3]
		case 'S', 's':
			if cmd == 's' {
				for j := 0; j < 4; j += 2 {
					f[j] += pos.X
					f[j+1] += pos.Y
				}
			}
			a, b := pos.X, pos.Y
			if prevCmd == 'C' || prevCmd == 'c' || prevCmd == 'S' || prevCmd == 's' {
				a, b = 2*pos.X-cpx, 2*pos.Y-cpy
			}
			p.CubeTo(a, b, f[0], f[1], f[2], f[3])
			cpx, cpy = f[0], f[1]
		case 'Q', 'q':
			if cmd == 'q' {
				for j := 0; j < 4; j += 2 {
					f[j] += pos.X
					f[j+1] += pos.Y
				}
			}
			p.QuadTo(f[0], f[1], f[2], f[3])
			cpx, cpy = f[0], f[1]
		case 'T', 't':
			if cmd == 't' {
				f[0] += pos.X
				f[1] += pos.Y
			}
			a, b := pos.X, pos.Y
			if prevCmd == 'Q' || prevCmd == 'q' || prevCmd == 'T' || prevCmd == 't' {
				a, b = 2*pos.X-cpx, 2*pos.Y-cpy
			}
			p.QuadTo(a, b, f[0], f[1])
			cpx, cpy = a, b
		case 'A', 'a':
			if cmd == 'a' {
				f[5] += pos.X
				f[6] += pos.Y
			}
			phi := f[2] * math.Pi / 180.0
			large := f[3] == 1.0
			sweep := f[4] == 1.0
			p.ArcTo(f[0], f[1], phi, large, sweep, f[5], f[6])
		}
		prevCmd = cmd
	}
	return p, nil
}

func num(f float64) string {
	if equal(f, 0.0) {
		return "0"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// ToSVG returns a string that represents the path as SVG path data with absolute coordinates.
func (p *Path) ToSVG() string {
	sb := strings.Builder{}
	scanner := p.Scanner()
	for scanner.Scan() {
		end := scanner.End()
		switch scanner.Cmd() {
		case MoveToCmd:
			fmt.Fprintf(&sb, "M%s %s", num(end.X), num(end.Y))
		case LineToCmd:
			start := scanner.Start()
			if equal(start.Y, end.Y) {
				fmt.Fprintf(&sb, "H%s", num(end.X))
			} else if equal(start.X, end.X) {
				fmt.Fprintf(&sb, "V%s", num(end.Y))
			} else {
				fmt.Fprintf(&sb, "L%s %s", num(end.X), num(end.Y))
			}
		case QuadToCmd:
			s := scanner.Segment()
			fmt.Fprintf(&sb, "Q%s %s %s %s", num(s.CP1.X), num(s.CP1.Y), num(end.X), num(end.Y))
		case CubeToCmd:
			s := scanner.Segment()
			fmt.Fprintf(&sb, "C%s %s %s %s %s %s", num(s.CP1.X), num(s.CP1.Y), num(s.CP2.X), num(s.CP2.Y), num(end.X), num(end.Y))
		case ArcToCmd:
			s := scanner.Segment()
			flarge, fsweep := 0, 0
			if s.Large {
				flarge = 1
			}
			if s.Sweep {
				fsweep = 1
			}
			fmt.Fprintf(&sb, "A%s %s %s %d %d %s %s", num(s.RX), num(s.RY), num(s.Phi*180.0/math.Pi), flarge, fsweep, num(end.X), num(end.Y))
		case CloseCmd:
			sb.WriteString("z")
		}
	}
	return sb.String()
}

// String returns the SVG path data of the path.
func (p *Path) String() string {
	return p.ToSVG()
}
