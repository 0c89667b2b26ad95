package engine

// Protocol-fixed constants (§3 "Constants (protocol)"). These are not
// environment-configurable: the harness is an embedded library, not a
// standalone service, so there is no env-var configuration layer here
// — every tunable below is consensus-critical and baked in as an
// untyped Go constant.
const (
	// Ratio relates meter units to the external fixed-point gas unit:
	// external gas = meter units / Ratio.
	Ratio = 100000

	// GasFree is the free gas allowance, already expressed in meter
	// units (10 GAS at the token's 8-decimal fixed-point precision).
	GasFree = 10 * 100000000

	MaxBigIntBytes      = 32
	MaxStackSize        = 2048
	MaxItemSize         = 1048576
	MaxInvocationStack  = 1024
	MaxArraySize        = 1024
)
