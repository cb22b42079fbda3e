// Package rocket models the mass, thrust, and staging behaviour of a
// launch vehicle for discrete-time flight simulation.
//
// The aggregate is built from three parts:
//
//   - [Payload]: inert mass riding on the vehicle
//   - [Stage]: a propulsive unit with dry mass, fuel, and a throttle
//   - [Rocket]: the vehicle itself, owning an ordered stage sequence,
//     a booster group, payloads, and the bulk kinematic state
//
// The package performs no integration of its own: a driver loop sets
// control inputs, calls [Rocket.UpdateTotalMass] each tick, reads
// [Rocket.TotalThrust] and [Rocket.TotalMass] to integrate motion, and
// triggers separations at staging events. Stage separation preserves the
// vehicle's instantaneous bulk velocity, so momentum scales down with
// the jettisoned mass.
//
// All validation happens at the API boundary and reports either
// [ErrInvalidArgument] or [ErrPrecondition].
//
// # Thread Safety
//
// A Rocket and its parts are NOT thread-safe; they are meant to be owned
// and mutated by a single simulation loop.
package rocket
