// Package svgfp implements the SVG fingerprinter of §4.3: a bit-exact,
// deterministic identity surface for vector-graphic elements, used by both
// the generator (to stamp a target's Fingerprint) and the matcher (to
// recompute one from a candidate for comparison). The two sides must agree
// on every rounding and hashing rule; nothing here may depend on floating
// point formatting that differs by platform.
package svgfp

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/domanchor/eid/dom"
	"github.com/domanchor/eid/internal/model"
)

var pathCommand = regexp.MustCompile(`[MLHVCSQTAZmlhvcsqtaz][^MLHVCSQTAZmlhvcsqtaz]*`)
var number = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

var smilTags = map[string]bool{
	"animate": true, "animateTransform": true, "animateMotion": true,
	"animatetransform": true, "animatemotion": true,
}

// ClassifyShape maps a tag name to the Shape enumeration. Unknown SVG tags
// default to path, per §4.3.
func ClassifyShape(tag string) model.ShapeKind {
	switch strings.ToLower(tag) {
	case "rect":
		return model.ShapeRect
	case "circle":
		return model.ShapeCircle
	case "ellipse":
		return model.ShapeEllipse
	case "line":
		return model.ShapeLine
	case "polyline":
		return model.ShapePolyline
	case "polygon":
		return model.ShapePolygon
	case "g":
		return model.ShapeGroup
	case "text":
		return model.ShapeText
	case "use":
		return model.ShapeUse
	case "svg":
		return model.ShapeSVG
	case "path":
		return model.ShapePath
	default:
		return model.ShapePath
	}
}

// Compute builds the full Fingerprint for el, whose tag is assumed to be an
// SVG element. Geometry and style failures degrade gracefully rather than
// propagating: a missing attribute simply leaves the corresponding hash
// empty.
func Compute(el dom.Element) model.Fingerprint {
	shape := ClassifyShape(el.Tag())
	fp := model.Fingerprint{Shape: shape}

	switch shape {
	case model.ShapePath:
		if d, ok := el.Attribute("d"); ok && strings.TrimSpace(d) != "" {
			fp.DHash = DHash(d)
		}
	case model.ShapeRect:
		w := parseFloatAttr(el, "width")
		h := parseFloatAttr(el, "height")
		if w > 0 && h > 0 {
			fp.GeomHash = GeomHash(fmt.Sprintf("rect:%s", round1(w/h)))
		}
	case model.ShapeCircle:
		r := parseFloatAttr(el, "r")
		if r > 0 {
			fp.GeomHash = GeomHash(fmt.Sprintf("circle:%s", round1(r)))
		}
	case model.ShapeEllipse:
		rx := parseFloatAttr(el, "rx")
		ry := parseFloatAttr(el, "ry")
		if rx > 0 && ry > 0 {
			fp.GeomHash = GeomHash(fmt.Sprintf("ellipse:%s", round1(rx/ry)))
		}
	case model.ShapeLine:
		x1 := parseFloatAttr(el, "x1")
		y1 := parseFloatAttr(el, "y1")
		x2 := parseFloatAttr(el, "x2")
		y2 := parseFloatAttr(el, "y2")
		angle := math.Atan2(y2-y1, x2-x1)
		fp.GeomHash = GeomHash(fmt.Sprintf("line:%s", round1(angle)))
	}

	fp.HasAnimation = HasAnimation(el)

	if role, ok := el.Attribute("role"); ok {
		fp.Role = role
	}
	fp.TitleText = titleText(el)

	return fp
}

// DHash hashes a path's `d` attribute: the first five drawing commands,
// every coordinate rounded to one decimal place. It is the generator/matcher
// bit-exact interface of §4.3 and §6 — changing the rounding or the command
// count changes what elements a previously generated EID can still match.
func DHash(d string) string {
	commands := pathCommand.FindAllString(d, -1)
	if len(commands) > 5 {
		commands = commands[:5]
	}
	var b strings.Builder
	for _, cmd := range commands {
		b.WriteString(roundCommand(cmd))
	}
	return djb2(b.String())
}

// GeomHash hashes an already-rounded geometry descriptor string.
func GeomHash(s string) string {
	return djb2(s)
}

func roundCommand(cmd string) string {
	letter := cmd[:1]
	nums := number.FindAllString(cmd, -1)
	var b strings.Builder
	b.WriteString(letter)
	for _, n := range nums {
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			continue
		}
		b.WriteString(round1(f))
		b.WriteByte(',')
	}
	return b.String()
}

func round1(f float64) string {
	return strconv.FormatFloat(math.Round(f*10)/10, 'f', 1, 64)
}

func parseFloatAttr(el dom.Element, name string) float64 {
	v, ok := el.Attribute(name)
	if !ok {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0
	}
	return f
}

// HasAnimation reports whether el carries any SMIL animation child, or its
// computed style names an active animation or transition property. Style
// access failures are tolerated and treated as "no animation" (§5).
func HasAnimation(el dom.Element) bool {
	for _, child := range el.Children() {
		if smilTags[child.Tag()] {
			return true
		}
	}
	style, ok := el.ComputedStyle()
	if !ok {
		return false
	}
	if style.AnimationName != "" && style.AnimationName != "none" {
		return true
	}
	if style.TransitionProperty != "" && style.TransitionProperty != "none" {
		return true
	}
	return false
}

func titleText(el dom.Element) string {
	for _, child := range el.Children() {
		if strings.ToLower(child.Tag()) == "title" {
			return strings.TrimSpace(child.DirectText())
		}
	}
	return ""
}

// djb2 is a deterministic, non-cryptographic string hash rendered as hex.
// Both the generator and the matcher link against this same function, so a
// dHash/geomHash computed during generation is directly comparable to one
// recomputed during resolution (§4.3, §6 bit-exact compatibility surface).
func djb2(s string) string {
	var h uint32 = 5381
	for i := 0; i < len(s); i++ {
		h = ((h << 5) + h) + uint32(s[i])
	}
	return strconv.FormatUint(uint64(h), 16)
}
