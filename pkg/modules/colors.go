package modules

import (
	"math"

	"eel/interpreter-go/pkg/runtime"
)

// Colors converts between RGB and the YIQ, HLS and HSV colour spaces. All
// components are floats in [0, 1]; results are three-element lists.
func Colors() *Module {
	m := New("colors")
	conv := func(name string, params []string, f func(a, b, c float64) (float64, float64, float64)) {
		m.Func(name, params, func(call *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
			var in [3]float64
			for i := range in {
				v, err := floatArg(call, name, args, i)
				if err != nil {
					return nil, err
				}
				in[i] = v
			}
			x, y, z := f(in[0], in[1], in[2])
			return floatList(x, y, z), nil
		})
	}
	conv("rgb_to_yiq", []string{"r", "g", "b"}, rgbToYIQ)
	conv("yiq_to_rgb", []string{"y", "i", "q"}, yiqToRGB)
	conv("rgb_to_hls", []string{"r", "g", "b"}, rgbToHLS)
	conv("hls_to_rgb", []string{"h", "l", "s"}, hlsToRGB)
	conv("rgb_to_hsv", []string{"r", "g", "b"}, rgbToHSV)
	conv("hsv_to_rgb", []string{"h", "s", "v"}, hsvToRGB)
	return m
}

func rgbToYIQ(r, g, b float64) (float64, float64, float64) {
	y := 0.30*r + 0.59*g + 0.11*b
	i := 0.74*(r-y) - 0.27*(b-y)
	q := 0.48*(r-y) + 0.41*(b-y)
	return y, i, q
}

func yiqToRGB(y, i, q float64) (float64, float64, float64) {
	r := y + 0.9468822170900693*i + 0.6235565819861433*q
	g := y - 0.27478764629897834*i - 0.6356910791873801*q
	b := y - 1.1085450346420322*i + 1.7090069284064666*q
	return clamp01(r), clamp01(g), clamp01(b)
}

func rgbToHLS(r, g, b float64) (float64, float64, float64) {
	maxc := math.Max(r, math.Max(g, b))
	minc := math.Min(r, math.Min(g, b))
	sumc := maxc + minc
	rangec := maxc - minc
	l := sumc / 2
	if minc == maxc {
		return 0, l, 0
	}
	var s float64
	if l <= 0.5 {
		s = rangec / sumc
	} else {
		s = rangec / (2 - maxc - minc)
	}
	return hue(r, g, b, maxc, rangec), l, s
}

func hlsToRGB(h, l, s float64) (float64, float64, float64) {
	if s == 0 {
		return l, l, l
	}
	var m2 float64
	if l <= 0.5 {
		m2 = l * (1 + s)
	} else {
		m2 = l + s - l*s
	}
	m1 := 2*l - m2
	return hueChannel(m1, m2, h+1.0/3), hueChannel(m1, m2, h), hueChannel(m1, m2, h-1.0/3)
}

func rgbToHSV(r, g, b float64) (float64, float64, float64) {
	maxc := math.Max(r, math.Max(g, b))
	minc := math.Min(r, math.Min(g, b))
	rangec := maxc - minc
	if minc == maxc {
		return 0, 0, maxc
	}
	return hue(r, g, b, maxc, rangec), rangec / maxc, maxc
}

func hsvToRGB(h, s, v float64) (float64, float64, float64) {
	if s == 0 {
		return v, v, v
	}
	i := math.Floor(h * 6)
	f := h*6 - i
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))
	k := int(i) % 6
	if k < 0 {
		k += 6
	}
	switch k {
	case 0:
		return v, t, p
	case 1:
		return q, v, p
	case 2:
		return p, v, t
	case 3:
		return p, q, v
	case 4:
		return t, p, v
	default:
		return v, p, q
	}
}

// hue computes the shared hue term of HLS and HSV.
func hue(r, g, b, maxc, rangec float64) float64 {
	rc := (maxc - r) / rangec
	gc := (maxc - g) / rangec
	bc := (maxc - b) / rangec
	var h float64
	switch maxc {
	case r:
		h = bc - gc
	case g:
		h = 2 + rc - bc
	default:
		h = 4 + gc - rc
	}
	return unitMod(h / 6)
}

func hueChannel(m1, m2, h float64) float64 {
	h = unitMod(h)
	switch {
	case h < 1.0/6:
		return m1 + (m2-m1)*h*6
	case h < 0.5:
		return m2
	case h < 2.0/3:
		return m1 + (m2-m1)*(2.0/3-h)*6
	}
	return m1
}

// unitMod is x modulo 1 with a non-negative result.
func unitMod(x float64) float64 {
	return x - math.Floor(x)
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
