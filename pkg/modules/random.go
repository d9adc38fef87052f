package modules

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"eel/interpreter-go/pkg/diagnostics"
	"eel/interpreter-go/pkg/runtime"
)

// randomSource is a seedable generator shared by one random module.
type randomSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func newRandomSource(seed uint64) *randomSource {
	return &randomSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *randomSource) seed(seed uint64) {
	s.mu.Lock()
	s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	s.mu.Unlock()
}

func (s *randomSource) float() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

func (s *randomSource) normal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.NormFloat64()
}

func (s *randomSource) intN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

// gamma draws from Gamma(alpha, 1) using Marsaglia and Tsang's method.
func (s *randomSource) gamma(alpha float64) float64 {
	if alpha < 1 {
		return s.gamma(alpha+1) * math.Pow(s.float(), 1/alpha)
	}
	d := alpha - 1.0/3
	c := 1 / math.Sqrt(9*d)
	for {
		x := s.normal()
		v := 1 + c*x
		if v <= 0 {
			continue
		}
		v = v * v * v
		u := s.float()
		if math.Log(u) < 0.5*x*x+d-d*v+d*math.Log(v) {
			return d * v
		}
	}
}

// Random returns a random module seeded from the clock.
func Random() *Module {
	return randomModule(newRandomSource(uint64(time.Now().UnixNano())))
}

func randomModule(src *randomSource) *Module {
	m := New("random")

	m.FuncOpt("seed", nil, []string{"a"}, func(call *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
		if len(args) == 0 {
			src.seed(uint64(time.Now().UnixNano()))
			return runtime.NewNull(), nil
		}
		switch v := runtime.Resolve(args[0]).(type) {
		case runtime.Number:
			src.seed(math.Float64bits(v.Val))
		case runtime.String:
			var h uint64 = 14695981039346656037
			for i := 0; i < len(v.Val); i++ {
				h ^= uint64(v.Val[i])
				h *= 1099511628211
			}
			src.seed(h)
		default:
			return nil, argError(call, "seed", 0, "a number or string")
		}
		return runtime.NewNull(), nil
	})

	m.Func("random", nil, func(*runtime.NativeCall, []runtime.Value) (runtime.Value, error) {
		return runtime.NewFloat(src.float()), nil
	})

	m.FuncOpt("randrange", []string{"start"}, []string{"stop", "step"}, func(call *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
		ints := make([]int, len(args))
		for i := range args {
			v, err := intArg(call, "randrange", args, i)
			if err != nil {
				return nil, err
			}
			ints[i] = v
		}
		start, stop, step := 0, ints[0], 1
		if len(ints) > 1 {
			start, stop = ints[0], ints[1]
		}
		if len(ints) > 2 {
			step = ints[2]
		}
		if step == 0 {
			return nil, call.Error(diagnostics.RuntimeError, "zero step for randrange()")
		}
		n := (stop - start + step - sign(step)) / step
		if n <= 0 {
			return nil, call.Errorf(diagnostics.RuntimeError, "empty range for randrange() (%d, %d, %d)", start, stop, step)
		}
		return runtime.NewInt(start + step*src.intN(n)), nil
	})

	m.Func("randint", []string{"a", "b"}, func(call *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
		a, err := intArg(call, "randint", args, 0)
		if err != nil {
			return nil, err
		}
		b, err := intArg(call, "randint", args, 1)
		if err != nil {
			return nil, err
		}
		if b < a {
			return nil, call.Errorf(diagnostics.RuntimeError, "empty range for randint() (%d, %d)", a, b)
		}
		return runtime.NewInt(a + src.intN(b-a+1)), nil
	})

	m.Func("choice", []string{"list"}, func(call *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
		list, err := listArg(call, "choice", args, 0)
		if err != nil {
			return nil, err
		}
		if list.Len() == 0 {
			return nil, call.Error(diagnostics.IndexOutOfBounds, "Cannot choose from an empty sequence")
		}
		return list.Elements()[src.intN(list.Len())], nil
	})

	m.Func("shuffle", []string{"list"}, func(call *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
		list, err := listArg(call, "shuffle", args, 0)
		if err != nil {
			return nil, err
		}
		items := list.Elements()
		for i := len(items) - 1; i > 0; i-- {
			j := src.intN(i + 1)
			items[i], items[j] = items[j], items[i]
		}
		return runtime.NewNull(), nil
	})

	// dist registers a float-valued distribution whose parameters all have
	// defaults when defaults is non-nil.
	dist := func(name string, params []string, defaults []float64, draw func(call *runtime.NativeCall, p []float64) (float64, error)) {
		impl := func(call *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
			p := make([]float64, len(params))
			for i := range params {
				var def float64
				if defaults != nil {
					def = defaults[i]
				}
				v, err := floatOpt(call, name, args, i, def)
				if err != nil {
					return nil, err
				}
				p[i] = v
			}
			v, err := draw(call, p)
			if err != nil {
				return nil, err
			}
			return runtime.NewFloat(v), nil
		}
		if defaults != nil {
			m.FuncOpt(name, nil, params, impl)
		} else {
			m.Func(name, params, impl)
		}
	}
	positive := func(call *runtime.NativeCall, name string, vals ...float64) error {
		for _, v := range vals {
			if v <= 0 {
				return call.Errorf(diagnostics.RuntimeError, "%s: parameters must be positive", name)
			}
		}
		return nil
	}

	dist("uniform", []string{"a", "b"}, nil, func(_ *runtime.NativeCall, p []float64) (float64, error) {
		return p[0] + (p[1]-p[0])*src.float(), nil
	})
	m.FuncOpt("triangular", nil, []string{"low", "high", "mode"}, func(call *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
		low, err := floatOpt(call, "triangular", args, 0, 0)
		if err != nil {
			return nil, err
		}
		high, err := floatOpt(call, "triangular", args, 1, 1)
		if err != nil {
			return nil, err
		}
		mode, err := floatOpt(call, "triangular", args, 2, (low+high)/2)
		if err != nil {
			return nil, err
		}
		if high == low {
			return runtime.NewFloat(low), nil
		}
		u := src.float()
		c := (mode - low) / (high - low)
		if u > c {
			u, c = 1-u, 1-c
			low, high = high, low
		}
		return runtime.NewFloat(low + (high-low)*math.Sqrt(u*c)), nil
	})
	normal := func(_ *runtime.NativeCall, p []float64) (float64, error) {
		return p[0] + p[1]*src.normal(), nil
	}
	dist("normalvariate", []string{"mu", "sigma"}, []float64{0, 1}, normal)
	dist("gauss", []string{"mu", "sigma"}, []float64{0, 1}, normal)
	dist("lognormvariate", []string{"mu", "sigma"}, nil, func(_ *runtime.NativeCall, p []float64) (float64, error) {
		return math.Exp(p[0] + p[1]*src.normal()), nil
	})
	dist("expovariate", []string{"lambd"}, []float64{1}, func(call *runtime.NativeCall, p []float64) (float64, error) {
		if p[0] == 0 {
			return 0, call.Error(diagnostics.DivisionByZero, "Division by zero")
		}
		return -math.Log(1-src.float()) / p[0], nil
	})
	dist("gammavariate", []string{"alpha", "beta"}, nil, func(call *runtime.NativeCall, p []float64) (float64, error) {
		if err := positive(call, "gammavariate", p...); err != nil {
			return 0, err
		}
		return src.gamma(p[0]) * p[1], nil
	})
	dist("betavariate", []string{"alpha", "beta"}, nil, func(call *runtime.NativeCall, p []float64) (float64, error) {
		if err := positive(call, "betavariate", p...); err != nil {
			return 0, err
		}
		y := src.gamma(p[0])
		if y == 0 {
			return 0, nil
		}
		return y / (y + src.gamma(p[1])), nil
	})
	dist("paretovariate", []string{"alpha"}, nil, func(call *runtime.NativeCall, p []float64) (float64, error) {
		if err := positive(call, "paretovariate", p...); err != nil {
			return 0, err
		}
		return 1 / math.Pow(1-src.float(), 1/p[0]), nil
	})
	dist("weibullvariate", []string{"alpha", "beta"}, nil, func(call *runtime.NativeCall, p []float64) (float64, error) {
		if err := positive(call, "weibullvariate", p...); err != nil {
			return 0, err
		}
		return p[0] * math.Pow(-math.Log(1-src.float()), 1/p[1]), nil
	})
	// vonmisesvariate follows Best and Fisher's rejection method; the result
	// is an angle in [0, 2*pi).
	dist("vonmisesvariate", []string{"mu", "kappa"}, nil, func(_ *runtime.NativeCall, p []float64) (float64, error) {
		mu, kappa := p[0], p[1]
		if kappa <= 1e-6 {
			return 2 * math.Pi * src.float(), nil
		}
		s := 0.5 / kappa
		r := s + math.Sqrt(1+s*s)
		var z float64
		for {
			z = math.Cos(math.Pi * src.float())
			d := z / (r + z)
			u := src.float()
			if u < 1-d*d || u <= (1-d)*math.Exp(d) {
				break
			}
		}
		q := 1 / r
		f := (q + z) / (1 + q*z)
		theta := mu - math.Acos(f)
		if src.float() > 0.5 {
			theta = mu + math.Acos(f)
		}
		theta = math.Mod(theta, 2*math.Pi)
		if theta < 0 {
			theta += 2 * math.Pi
		}
		return theta, nil
	})

	m.FuncOpt("binomialvariate", nil, []string{"n", "p"}, func(call *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
		n := 1
		if len(args) > 0 {
			v, err := intArg(call, "binomialvariate", args, 0)
			if err != nil {
				return nil, err
			}
			n = v
		}
		p, err := floatOpt(call, "binomialvariate", args, 1, 0.5)
		if err != nil {
			return nil, err
		}
		if n < 0 || p < 0 || p > 1 {
			return nil, call.Error(diagnostics.RuntimeError, "binomialvariate: n must be non-negative and p in [0, 1]")
		}
		successes := 0
		for i := 0; i < n; i++ {
			if src.float() < p {
				successes++
			}
		}
		return runtime.NewInt(successes), nil
	})
	return m
}

func sign(n int) int {
	if n < 0 {
		return -1
	}
	return 1
}
