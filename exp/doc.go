// Package exp assembles the configuration of a two-role multi-agent
// traffic grid training run and hands it to an external trainer.
//
// An Experiment is built once by New from Options and is immutable
// afterwards: network geometry (NetParams), the vehicle population split
// into a non-learning human majority and a fixed pair of learning CAVs
// (VehicleParams), episode settings (EnvParams), and the inflow set
// derived from the grid dimensions. A ProbeEnv instantiated from the same
// parameters derives per-role observation/action spaces, which bind into
// one PolicyDef per role; RoleFor routes agent identifiers to roles by
// the "cav" prefix convention.
//
// None of the heavy machinery lives here. The traffic microsimulation,
// PPO optimization and distributed rollout scheduling belong to the
// trainer behind the Launcher boundary; this package only builds the
// parameter surfaces those systems consume and serializes the experiment
// verbatim so a run can be replayed.
package exp
