// Package optim: Param storage and the SGD/Adam update rules.
//
// Update rules follow the standard formulations; Adam keeps per-parameter
// first (m) and second (v) moment buffers and applies bias correction
// 1−βᵗ before the step. Gradients may be clipped elementwise to ±clip
// before the moments are updated.

package optim

import (
	"math"
)

// Defaults - single source of truth for updater hyperparameters.
const (
	// DefaultLR is the default learning rate for both SGD and Adam.
	DefaultLR = 1e-3
	// DefaultBeta1 is Adam's first-moment decay.
	DefaultBeta1 = 0.9
	// DefaultBeta2 is Adam's second-moment decay.
	DefaultBeta2 = 0.999
	// DefaultEps is Adam's denominator stabilizer.
	DefaultEps = 1e-8
	// DefaultClip disables gradient clipping (clip <= 0 means off).
	DefaultClip = 0.0
)

// Internal panic messages; option constructors panic only on programmer error.
const (
	panicLRInvalid    = "optim: WithLR: lr must be finite, positive"
	panicBetasInvalid = "optim: WithBetas: betas must lie in [0,1)"
	panicEpsInvalid   = "optim: WithEps: eps must be finite, positive"
)

// Param couples one trainable value slice with its gradient accumulator.
// Data and Grad always have identical length. A Param is owned by exactly
// one condition; updaters hold the same pointer, never a copy.
type Param struct {
	Data []float64
	Grad []float64
}

// NewParam allocates a zero-initialized Param of length n.
func NewParam(n int) *Param {
	return &Param{Data: make([]float64, n), Grad: make([]float64, n)}
}

// ZeroGrad clears the gradient accumulator in place.
func (p *Param) ZeroGrad() {
	for i := range p.Grad {
		p.Grad[i] = 0
	}
}

// Updater advances a fixed set of Params. Implementations must be safe to
// call any number of times, including before any gradient has ever been
// accumulated (a step over zero gradients is a no-op by construction).
type Updater interface {
	// Step applies one update using the current Param.Grad values.
	Step()
	// ZeroGrad clears every registered Param's gradient accumulator.
	ZeroGrad()
}

// Option configures an updater at construction time.
type Option func(*config)

type config struct {
	lr    float64
	beta1 float64
	beta2 float64
	eps   float64
	clip  float64
}

func gatherOptions(opts ...Option) config {
	cfg := config{
		lr:    DefaultLR,
		beta1: DefaultBeta1,
		beta2: DefaultBeta2,
		eps:   DefaultEps,
		clip:  DefaultClip,
	}
	for _, set := range opts {
		set(&cfg)
	}

	return cfg
}

// WithLR sets the learning rate. Panics on non-finite or non-positive values
// (programmer error, per package policy).
func WithLR(lr float64) Option {
	if math.IsNaN(lr) || math.IsInf(lr, 0) || lr <= 0 {
		panic(panicLRInvalid)
	}

	return func(c *config) { c.lr = lr }
}

// WithBetas sets Adam's moment decays. Panics when either value falls
// outside [0, 1). Ignored by SGD.
func WithBetas(beta1, beta2 float64) Option {
	if beta1 < 0 || beta1 >= 1 || beta2 < 0 || beta2 >= 1 {
		panic(panicBetasInvalid)
	}

	return func(c *config) { c.beta1, c.beta2 = beta1, beta2 }
}

// WithEps sets Adam's denominator stabilizer. Panics on non-finite or
// non-positive values. Ignored by SGD.
func WithEps(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps <= 0 {
		panic(panicEpsInvalid)
	}

	return func(c *config) { c.eps = eps }
}

// WithClip enables elementwise gradient clipping to ±clip before the update.
// Non-positive values disable clipping.
func WithClip(clip float64) Option {
	return func(c *config) { c.clip = clip }
}

// SGD is the plain stochastic-gradient-descent rule p ← p − lr·g.
type SGD struct {
	params []*Param
	lr     float64
	clip   float64
}

// Compile-time conformance checks.
var (
	_ Updater = (*SGD)(nil)
	_ Updater = (*Adam)(nil)
)

// NewSGD binds the updater to params. The slice is retained as-is; callers
// must not reuse the same Param across two updaters.
func NewSGD(params []*Param, opts ...Option) *SGD {
	cfg := gatherOptions(opts...)

	return &SGD{params: params, lr: cfg.lr, clip: cfg.clip}
}

// Step applies one SGD update. Safe on zero gradients. Complexity: O(Σ len).
func (s *SGD) Step() {
	clipGrads(s.params, s.clip)
	for _, p := range s.params {
		for j, g := range p.Grad {
			p.Data[j] -= s.lr * g
		}
	}
}

// ZeroGrad clears all registered gradients. Complexity: O(Σ len).
func (s *SGD) ZeroGrad() {
	for _, p := range s.params {
		p.ZeroGrad()
	}
}

// Adam implements the Adam update with bias-corrected moments.
type Adam struct {
	params []*Param
	lr     float64
	beta1  float64
	beta2  float64
	eps    float64
	clip   float64

	m [][]float64 // first moments, one buffer per param
	v [][]float64 // second moments, one buffer per param
	t int         // step counter for bias correction
}

// NewAdam binds the updater to params and allocates moment buffers matching
// each param's length. The slice is retained as-is.
func NewAdam(params []*Param, opts ...Option) *Adam {
	cfg := gatherOptions(opts...)
	a := &Adam{
		params: params,
		lr:     cfg.lr,
		beta1:  cfg.beta1,
		beta2:  cfg.beta2,
		eps:    cfg.eps,
		clip:   cfg.clip,
		m:      make([][]float64, len(params)),
		v:      make([][]float64, len(params)),
	}
	for i, p := range params {
		a.m[i] = make([]float64, len(p.Data))
		a.v[i] = make([]float64, len(p.Data))
	}

	return a
}

// Step applies one Adam update using the current gradients.
// Gradients are left untouched; pair with ZeroGrad per iteration.
// Complexity: O(Σ len).
func (a *Adam) Step() {
	a.t++
	b1Corr := 1.0 - math.Pow(a.beta1, float64(a.t))
	b2Corr := 1.0 - math.Pow(a.beta2, float64(a.t))

	clipGrads(a.params, a.clip)

	for i, p := range a.params {
		mi, vi := a.m[i], a.v[i]
		for j, g := range p.Grad {
			mi[j] = a.beta1*mi[j] + (1-a.beta1)*g
			vi[j] = a.beta2*vi[j] + (1-a.beta2)*(g*g)
			mhat := mi[j] / b1Corr
			vhat := vi[j] / b2Corr
			p.Data[j] -= a.lr * mhat / (math.Sqrt(vhat) + a.eps)
		}
	}
}

// ZeroGrad clears all registered gradients. Complexity: O(Σ len).
func (a *Adam) ZeroGrad() {
	for _, p := range a.params {
		p.ZeroGrad()
	}
}

// clipGrads clamps every gradient component to ±clip; clip<=0 disables.
func clipGrads(params []*Param, clip float64) {
	if clip <= 0 {
		return
	}
	for _, p := range params {
		for j := range p.Grad {
			if p.Grad[j] > clip {
				p.Grad[j] = clip
			} else if p.Grad[j] < -clip {
				p.Grad[j] = -clip
			}
		}
	}
}
