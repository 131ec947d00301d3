// SPDX-License-Identifier: MIT

// Package network: record types, option constructors and the Network
// container. All electrical quantities are per-unit on the network base
// power; angles are in radians.
package network

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"
)

// BusType is the data-model classification of a bus. The numeric values
// follow the usual case-file codes.
type BusType int

const (
	// PQ bus: active and reactive injections are specified.
	PQ BusType = 1
	// PV bus: active injection and voltage magnitude are specified.
	PV BusType = 2
	// Slack bus: voltage magnitude and angle are specified.
	Slack BusType = 3
)

// String returns "PQ", "PV" or "Slack".
func (t BusType) String() string {
	switch t {
	case PQ:
		return "PQ"
	case PV:
		return "PV"
	case Slack:
		return "Slack"
	default:
		return fmt.Sprintf("BusType(%d)", int(t))
	}
}

// Status is the in-service flag of a branch or generator.
type Status int

const (
	OutOfService Status = 0
	InService    Status = 1
)

// Power is a complex power split into its components.
type Power struct {
	Active   float64
	Reactive float64
}

// Shunt is a bus shunt admittance, positive susceptance is capacitive.
type Shunt struct {
	Conductance float64
	Susceptance float64
}

// Voltage holds the initial phasor, the magnitude limits and the base
// voltage of a bus.
type Voltage struct {
	Magnitude    float64
	Angle        float64
	MinMagnitude float64
	MaxMagnitude float64
	Base         float64
}

// Bus is a network node.
type Bus struct {
	Label    int
	Type     BusType
	Demand   Power
	Shunt    Shunt
	Area     int
	LossZone int
	Voltage  Voltage
}

// Parameter holds the electrical parameters of a branch.
// TurnsRatio 0 marks an untransformed line and is treated as 1.
type Parameter struct {
	Resistance  float64
	Reactance   float64
	Susceptance float64 // total line-charging susceptance
	TurnsRatio  float64
	ShiftAngle  float64
}

// Tap returns the effective off-nominal turns ratio.
func (p Parameter) Tap() float64 {
	if p.TurnsRatio == 0 {
		return 1
	}

	return p.TurnsRatio
}

// Rating holds thermal limits; 0 means unlimited.
type Rating struct {
	LongTerm  float64
	ShortTerm float64
	Emergency float64
}

// AngleLimit bounds the voltage angle difference across a branch.
type AngleLimit struct {
	Min float64
	Max float64
}

// Branch is a line or transformer between two buses.
type Branch struct {
	Label     int
	From      int
	To        int
	Status    Status
	Parameter Parameter
	Rating    Rating
	Angle     AngleLimit
}

// Capability holds the active/reactive limits of a generator, including
// the corner points of its PQ capability curve.
type Capability struct {
	MinActive        float64
	MaxActive        float64
	MinReactive      float64
	MaxReactive      float64
	LowerActive      float64
	MinReactiveLower float64
	MaxReactiveLower float64
	UpperActive      float64
	MinReactiveUpper float64
	MaxReactiveUpper float64
}

// Ramp holds ramp-rate attributes. Not used by the power flow.
type Ramp struct {
	LoadFollowing     float64
	Reserve10Minute   float64
	Reserve30Minute   float64
	ReactiveTimescale float64
}

// Cost model codes.
const (
	PiecewiseLinear = 1
	Polynomial      = 2
)

// Cost holds dispatch cost data. Not used by the power flow.
type Cost struct {
	ActiveModel   int
	ReactiveModel int
	Startup       float64
	Shutdown      float64
	Active        []float64 // polynomial coefficients or flattened (x, y) points
	Reactive      []float64
}

// Generator is a source attached to a bus.
type Generator struct {
	Label      int
	Bus        int
	Status     Status
	Output     Power
	Magnitude  float64 // voltage setpoint for PV and slack buses
	Capability Capability
	Ramp       Ramp
	Cost       Cost
	Area       float64
}

// DefaultBasePower is the system base in volt-amperes.
const DefaultBasePower = 1e8

// Network is the in-memory power system model.
//
// It is single-writer: every method takes mu, and every mutation bumps the
// version token so derived artifacts can detect staleness.
type Network struct {
	mu sync.RWMutex

	basePower float64
	version   uint64 // drawn from versionSeq; 0 until the first mutation
	lineage   uint64 // shared by a network and its snapshots

	buses      map[int]*Bus
	branches   map[int]*Branch
	generators map[int]*Generator

	// busOrder caches label-ascending bus labels; nil when stale.
	busOrder []int
}

// NetworkOption configures a Network before first use.
type NetworkOption func(n *Network)

// WithBasePower sets the system base power in volt-amperes.
// Panics if va is not a positive finite number.
func WithBasePower(va float64) NetworkOption {
	if !(va > 0) || math.IsInf(va, 0) {
		panic("network: WithBasePower requires a positive finite value")
	}

	return func(n *Network) { n.basePower = va }
}

// lineageSeq hands out lineage identifiers.
var lineageSeq uint64

// versionSeq hands out version tokens. It is process-wide, so two networks
// of one lineage share a token only while neither has changed since a Snapshot.
var versionSeq uint64

// bump assigns a fresh version token. Callers hold mu.
func (n *Network) bump() {
	n.version = atomic.AddUint64(&versionSeq, 1)
}

// New creates an empty Network.
// Complexity: O(1).
func New(opts ...NetworkOption) *Network {
	n := &Network{
		basePower:  DefaultBasePower,
		lineage:    atomic.AddUint64(&lineageSeq, 1),
		buses:      make(map[int]*Bus),
		branches:   make(map[int]*Branch),
		generators: make(map[int]*Generator),
	}
	for _, opt := range opts {
		opt(n)
	}

	return n
}

// BusOption configures a bus on AddBus.
type BusOption func(*Bus)

// WithBusType sets the data-model bus type.
func WithBusType(t BusType) BusOption { return func(b *Bus) { b.Type = t } }

// WithDemand sets the active and reactive demand.
func WithDemand(active, reactive float64) BusOption {
	return func(b *Bus) { b.Demand = Power{Active: active, Reactive: reactive} }
}

// WithShunt sets the bus shunt conductance and susceptance.
func WithShunt(conductance, susceptance float64) BusOption {
	return func(b *Bus) { b.Shunt = Shunt{Conductance: conductance, Susceptance: susceptance} }
}

// WithInitialVoltage sets the initial magnitude and angle.
func WithInitialVoltage(magnitude, angle float64) BusOption {
	return func(b *Bus) { b.Voltage.Magnitude, b.Voltage.Angle = magnitude, angle }
}

// WithMagnitudeLimits sets the allowed voltage magnitude band.
func WithMagnitudeLimits(min, max float64) BusOption {
	return func(b *Bus) { b.Voltage.MinMagnitude, b.Voltage.MaxMagnitude = min, max }
}

// WithBaseVoltage sets the base voltage in volts.
func WithBaseVoltage(v float64) BusOption { return func(b *Bus) { b.Voltage.Base = v } }

// WithArea sets the area number.
func WithArea(area int) BusOption { return func(b *Bus) { b.Area = area } }

// WithLossZone sets the loss-zone number.
func WithLossZone(zone int) BusOption { return func(b *Bus) { b.LossZone = zone } }

// BranchOption configures a branch on AddBranch and ParameterBranch.
type BranchOption func(*Branch)

// WithImpedance sets series resistance and reactance.
func WithImpedance(resistance, reactance float64) BranchOption {
	return func(br *Branch) { br.Parameter.Resistance, br.Parameter.Reactance = resistance, reactance }
}

// WithResistance sets series resistance.
func WithResistance(r float64) BranchOption {
	return func(br *Branch) { br.Parameter.Resistance = r }
}

// WithReactance sets series reactance.
func WithReactance(x float64) BranchOption {
	return func(br *Branch) { br.Parameter.Reactance = x }
}

// WithCharging sets total line-charging susceptance.
func WithCharging(b float64) BranchOption {
	return func(br *Branch) { br.Parameter.Susceptance = b }
}

// WithTurnsRatio sets the off-nominal turns ratio (0 = none).
func WithTurnsRatio(ratio float64) BranchOption {
	return func(br *Branch) { br.Parameter.TurnsRatio = ratio }
}

// WithShiftAngle sets the phase-shift angle in radians.
func WithShiftAngle(angle float64) BranchOption {
	return func(br *Branch) { br.Parameter.ShiftAngle = angle }
}

// WithRating sets thermal ratings.
func WithRating(longTerm, shortTerm, emergency float64) BranchOption {
	return func(br *Branch) { br.Rating = Rating{LongTerm: longTerm, ShortTerm: shortTerm, Emergency: emergency} }
}

// WithAngleLimits sets the allowed angle difference band.
func WithAngleLimits(min, max float64) BranchOption {
	return func(br *Branch) { br.Angle = AngleLimit{Min: min, Max: max} }
}

// WithBranchStatus sets the initial status.
func WithBranchStatus(s Status) BranchOption { return func(br *Branch) { br.Status = s } }

// GeneratorOption configures a generator on AddGenerator.
type GeneratorOption func(*Generator)

// WithOutput sets active and reactive output.
func WithOutput(active, reactive float64) GeneratorOption {
	return func(g *Generator) { g.Output = Power{Active: active, Reactive: reactive} }
}

// WithSetpoint sets the voltage magnitude setpoint.
func WithSetpoint(magnitude float64) GeneratorOption {
	return func(g *Generator) { g.Magnitude = magnitude }
}

// WithActiveLimits sets MinActive and MaxActive.
func WithActiveLimits(min, max float64) GeneratorOption {
	return func(g *Generator) { g.Capability.MinActive, g.Capability.MaxActive = min, max }
}

// WithReactiveLimits sets MinReactive and MaxReactive.
func WithReactiveLimits(min, max float64) GeneratorOption {
	return func(g *Generator) { g.Capability.MinReactive, g.Capability.MaxReactive = min, max }
}

// WithCapabilityCurve sets the PQ capability curve corner points.
func WithCapabilityCurve(lowerActive, minLower, maxLower, upperActive, minUpper, maxUpper float64) GeneratorOption {
	return func(g *Generator) {
		c := &g.Capability
		c.LowerActive, c.MinReactiveLower, c.MaxReactiveLower = lowerActive, minLower, maxLower
		c.UpperActive, c.MinReactiveUpper, c.MaxReactiveUpper = upperActive, minUpper, maxUpper
	}
}

// WithRamp sets ramp-rate data.
func WithRamp(r Ramp) GeneratorOption { return func(g *Generator) { g.Ramp = r } }

// WithCost sets cost data. Coefficient slices are copied.
func WithCost(c Cost) GeneratorOption {
	return func(g *Generator) {
		g.Cost = c
		g.Cost.Active = append([]float64(nil), c.Active...)
		g.Cost.Reactive = append([]float64(nil), c.Reactive...)
	}
}

// WithGeneratorStatus sets the initial status.
func WithGeneratorStatus(s Status) GeneratorOption { return func(g *Generator) { g.Status = s } }

// WithGeneratorArea sets the area participation factor.
func WithGeneratorArea(area float64) GeneratorOption { return func(g *Generator) { g.Area = area } }
