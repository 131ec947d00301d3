// SPDX-License-Identifier: MIT

package results

import "github.com/katalvlaran/gridflow/network"

// Current is a phasor given by magnitude and angle.
type Current struct {
	Magnitude float64
	Angle     float64
}

// Bus holds the solved quantities of one bus, per-unit.
type Bus struct {
	Label      int
	Magnitude  float64
	Angle      float64
	Injection  network.Power // net injection into the network
	Generation network.Power
	Demand     network.Power
	Shunt      network.Power // consumed by the bus shunt
	Violation  bool          // magnitude outside [MinMagnitude, MaxMagnitude]
}

// Branch holds the solved flows of one branch. From and To are the powers
// entering the branch at each end.
type Branch struct {
	Label       int
	InService   bool
	From        network.Power
	To          network.Power
	Charging    float64 // reactive power injected by line charging
	Loss        network.Power
	FromCurrent Current
	ToCurrent   Current
	Overloaded  bool // apparent power above the long-term rating
}

// Generator holds the output attributed to one generator.
type Generator struct {
	Label  int
	Bus    int
	Output network.Power
}

// AC is the full AC result set, label-ascending in every slice.
type AC struct {
	Buses      []Bus
	Branches   []Branch
	Generators []Generator
	Loss       network.Power // total over in-service branches
}

// DCBus holds the solved quantities of one bus in the DC model.
type DCBus struct {
	Label      int
	Angle      float64
	Injection  float64
	Generation float64
	Demand     float64
}

// DCBranch holds the active flows of one branch in the DC model.
type DCBranch struct {
	Label      int
	InService  bool
	From       float64
	To         float64
	Overloaded bool
}

// DC is the DC result set, label-ascending in every slice.
type DC struct {
	Buses      []DCBus
	Branches   []DCBranch
	Generators []Generator
}
