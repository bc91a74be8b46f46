package engine

// constError is an immutable error type for sentinel errors.
// It implements the error interface and provides compile-time safety.
type constError string

func (e constError) Error() string { return string(e) }

// ErrUnknownEnergyUnit indicates energy unit text that is not kWh, MMBtu or therm.
// Calculation functions never return errors; this is only produced when
// parsing unit text at the input boundary.
const ErrUnknownEnergyUnit = constError("unknown energy unit")
