// Package session owns one calculation session: the raw inputs, the unit
// pairs that cross-fill them, the A/C ceiling override and the latest
// snapshot of every derived result.
//
// Every accepted input triggers a full recompute; a Session is not safe for
// concurrent use.
package session

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/rshade/baghouse/internal/design"
	"github.com/rshade/baghouse/internal/engine"
	"github.com/rshade/baghouse/internal/field"
	"github.com/rshade/baghouse/internal/logging"
	"github.com/rshade/baghouse/internal/units"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// ErrUnknownKey is returned by Apply for a key not in the catalog.
const ErrUnknownKey = constError("unknown input key")

// ErrInvalidChoice is returned by Apply for enumerated text it cannot parse.
const ErrInvalidChoice = constError("invalid choice")

// mgPerKg converts mg/m³ × m³/h to kg/h.
const mgPerKg = 1e6

type binding struct {
	pair *units.Pair
	side units.Side
}

// Session is a single-user calculation session.
type Session struct {
	id     string
	name   string
	logger zerolog.Logger

	designType design.Type
	rowType    design.RowType
	energyUnit engine.EnergyUnit

	// override accepts an A/C ratio above the design ceiling. It is cleared
	// whenever the design type changes.
	override bool

	window time.Duration
	now    func() time.Time

	flow        *units.Pair
	temperature *units.Pair
	dust        *units.Pair
	emission    *units.Pair
	dpCurrent   *units.Pair
	dpImproved  *units.Pair
	bindings    map[Key]binding

	values map[Key]field.Value

	// notes are advisories raised by the current Apply, ApplyAll or setter call.
	notes []string

	revision int
	snapshot Snapshot
}

// Option configures a Session.
type Option func(*Session)

// WithGuardWindow sets the unit pair re-entrancy window.
func WithGuardWindow(d time.Duration) Option {
	return func(s *Session) { s.window = d }
}

// WithClock replaces time.Now for the unit pair guards.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithName labels the session in reports.
func WithName(name string) Option {
	return func(s *Session) { s.name = name }
}

// New creates a session with bolt-weld defaults and runs the first recompute.
// The logger is taken from ctx.
func New(ctx context.Context, opts ...Option) *Session {
	s := &Session{
		id:         ulid.Make().String(),
		designType: design.BoltWeld,
		rowType:    design.Single,
		energyUnit: engine.KWh,
		window:     units.DefaultGuardWindow,
		now:        time.Now,
		values:     make(map[Key]field.Value),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.ComponentLogger(*logging.FromContext(ctx), "session").
		With().Str("session_id", s.id).Logger()

	pairOpts := []units.Option{units.WithGuardWindow(s.window), units.WithClock(s.now)}
	s.flow = units.NewPair(units.Flow, pairOpts...)
	s.temperature = units.NewPair(units.Temperature, pairOpts...)
	s.dust = units.NewPair(units.DustConcentration, pairOpts...)
	s.emission = units.NewPair(units.EmissionRate, pairOpts...)
	s.dpCurrent = units.NewPair(units.Pressure, pairOpts...)
	s.dpImproved = units.NewPair(units.Pressure, pairOpts...)

	s.bindings = map[Key]binding{
		KeyAirVolumeM3h:   {s.flow, units.SideA},
		KeyAirVolumeACFM:  {s.flow, units.SideB},
		KeyTemperatureC:   {s.temperature, units.SideA},
		KeyTemperatureF:   {s.temperature, units.SideB},
		KeyDustMgM3:       {s.dust, units.SideA},
		KeyDustGrFt3:      {s.dust, units.SideB},
		KeyEmissionKgH:    {s.emission, units.SideA},
		KeyEmissionLbH:    {s.emission, units.SideB},
		KeyDPCurrentMbar:  {s.dpCurrent, units.SideA},
		KeyDPCurrentInWG:  {s.dpCurrent, units.SideB},
		KeyDPImprovedMbar: {s.dpImproved, units.SideA},
		KeyDPImprovedInWG: {s.dpImproved, units.SideB},
	}

	s.recompute()
	return s
}

// ID returns the session's ULID.
func (s *Session) ID() string { return s.id }

// Snapshot returns the latest recompute.
func (s *Session) Snapshot() Snapshot { return s.snapshot }

// DesignType returns the current design type.
func (s *Session) DesignType() design.Type { return s.designType }

// Override reports whether the A/C ceiling override is active.
func (s *Session) Override() bool { return s.override }

// SetOverride grants or revokes the A/C ceiling override and recomputes.
func (s *Session) SetOverride(on bool) Snapshot {
	s.notes = nil
	s.setOverride(on)
	s.recompute()
	return s.snapshot
}

func (s *Session) setOverride(on bool) {
	if s.override != on {
		s.logger.Info().Bool("override", on).Msg("A/C ceiling override changed")
	}
	s.override = on
}

// SetDesignType switches the design type. A change clears the override and
// every unit pair guard, then recomputes.
func (s *Session) SetDesignType(t design.Type) Snapshot {
	s.notes = nil
	s.setDesignType(t)
	s.recompute()
	return s.snapshot
}

func (s *Session) setDesignType(t design.Type) {
	if t != s.designType {
		s.logger.Info().
			Stringer("from", s.designType).
			Stringer("to", t).
			Msg("design type changed; override and sync guards reset")
		s.designType = t
		s.override = false
		for _, p := range s.pairs() {
			p.Reset()
		}
	}
}

// Apply routes raw text to the named input and recomputes.
//
// Numeric text never fails: unparseable input clears the field and adds an
// advisory to the snapshot. An error is returned only for an unknown key or
// unrecognised text for an enumerated key; state is unchanged in both cases.
func (s *Session) Apply(key, raw string) (Snapshot, error) {
	s.notes = nil
	return s.apply(key, raw)
}

func (s *Session) apply(key, raw string) (Snapshot, error) {
	info, ok := LookupKey(key)
	if !ok {
		return s.snapshot, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}

	if err := s.applyInput(info.Key, raw); err != nil {
		return s.snapshot, err
	}
	s.recompute()
	return s.snapshot, nil
}

// ApplyAll applies inputs in catalog order so that a design type change is
// handled before the fields it affects. The first error stops the run.
func (s *Session) ApplyAll(inputs map[string]string) (Snapshot, error) {
	for name := range inputs {
		if _, ok := LookupKey(name); !ok {
			return s.snapshot, fmt.Errorf("%w: %q", ErrUnknownKey, name)
		}
	}

	s.notes = nil
	seen := make(map[Key]bool, len(inputs))
	for _, info := range keyCatalog {
		for name, raw := range inputs {
			k, ok := LookupKey(name)
			if !ok || k.Key != info.Key || seen[k.Key] {
				continue
			}
			seen[k.Key] = true
			if _, err := s.apply(name, raw); err != nil {
				return s.snapshot, err
			}
		}
	}
	return s.snapshot, nil
}

func (s *Session) applyInput(k Key, raw string) error {
	switch k {
	case KeyDesignType:
		t, err := design.ParseType(raw)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidChoice, err)
		}
		s.setDesignType(t)
		return nil
	case KeyRowType:
		r, err := design.ParseRowType(raw)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidChoice, err)
		}
		s.rowType = r
		return nil
	case KeyEnergyUnit:
		u, err := engine.ParseEnergyUnit(raw)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidChoice, err)
		}
		s.energyUnit = u
		return nil
	case KeyOverrideCeiling:
		on, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("%w: override_ac_ceiling %q", ErrInvalidChoice, raw)
		}
		s.setOverride(on)
		return nil
	}

	if b, ok := s.bindings[k]; ok {
		s.updatePair(k, b, raw)
		return nil
	}

	v, err := field.Parse(raw)
	if err != nil {
		s.note(fmt.Sprintf("%s: %v; field cleared", k, err))
		s.logger.Debug().Str("key", string(k)).Err(err).Msg("input cleared")
	}
	s.values[k] = v
	return nil
}

func (s *Session) updatePair(k Key, b binding, raw string) {
	res := b.pair.Update(b.side, raw)
	switch {
	case res.Suppressed:
		s.note(fmt.Sprintf("%s: ignored while %s is syncing", k, b.pair.Quantity().Name))
		s.logger.Warn().
			Str("key", string(k)).
			Str("quantity", b.pair.Quantity().Name).
			Msg("update suppressed by sync guard")
		return
	case res.Err != nil:
		s.note(fmt.Sprintf("%s: %v; field cleared", k, res.Err))
		s.logger.Debug().Str("key", string(k)).Err(res.Err).Msg("input cleared")
	}

	if b.pair == s.flow || b.pair == s.dust {
		s.deriveEmission()
	}
}

// deriveEmission fills the emission rate from concentration × flow when both are known.
func (s *Session) deriveEmission() {
	dust, flow := s.dust.A(), s.flow.A()
	if !dust.IsSet() || !flow.IsSet() {
		return
	}
	s.emission.Set(units.SideA, field.Number(dust.Float()*flow.Float()/mgPerKg).Round(units.EmissionRate.PrecisionA))
}

func (s *Session) pairs() []*units.Pair {
	return []*units.Pair{s.flow, s.temperature, s.dust, s.emission, s.dpCurrent, s.dpImproved}
}

func (s *Session) note(msg string) {
	s.notes = append(s.notes, msg)
}

// Value returns the current value of a numeric key.
func (s *Session) Value(k Key) field.Value {
	if b, ok := s.bindings[k]; ok {
		return b.pair.Value(b.side)
	}
	return s.values[k]
}

// Text returns the current text of any key, as a form would show it.
func (s *Session) Text(k Key) string {
	switch k {
	case KeyDesignType:
		return s.designType.String()
	case KeyRowType:
		return s.rowType.String()
	case KeyEnergyUnit:
		return s.energyUnit.String()
	case KeyOverrideCeiling:
		return strconv.FormatBool(s.override)
	default:
		return s.Value(k).Text()
	}
}

func (s *Session) configuration() design.Configuration {
	return design.Configuration{
		Type:            s.designType,
		AirVolumeM3h:    s.flow.A(),
		AirVolumeACFM:   s.flow.B(),
		NumEMCFlaps:     s.values[KeyFlaps],
		BagsPerRow:      s.values[KeyBagsPerRow],
		BagLength:       s.values[KeyBagLength],
		RowType:         s.rowType,
		ChannelWidthMm:  s.values[KeyChannelWidthMm],
		ChannelHeightMm: s.values[KeyChannelHeightMm],
	}
}

func (s *Session) baselines() engine.Baselines {
	return engine.Baselines{
		BagLifetimeMonths:        engine.Baseline{Current: s.values[KeyBagLifeCurrent], Improved: s.values[KeyBagLifeImproved]},
		DifferentialPressureMbar: engine.Baseline{Current: s.dpCurrent.A(), Improved: s.dpImproved.A()},
		CompressedAir:            engine.Baseline{Current: s.values[KeyCompressedAirCurrent], Improved: s.values[KeyCompressedAirImprove]},
		MotorPowerKW:             engine.Baseline{Current: s.values[KeyMotorPowerCurrent], Improved: s.values[KeyMotorPowerImproved]},
	}
}

func (s *Session) replacementInput() engine.ReplacementInput {
	return engine.ReplacementInput{
		BagPrice:             s.values[KeyBagPrice],
		CagePrice:            s.values[KeyCagePrice],
		BagChangeTimeMinutes: s.values[KeyBagChangeMinutes],
		CrewSize:             s.values[KeyCrewSize],
		HourlyRate:           s.values[KeyHourlyRate],
		SiteDistance:         s.values[KeySiteDistance],
		TravelCost:           s.values[KeyTravelCost],
		BagReplacementCost:   s.values[KeyBagReplacementCost],
	}
}

func (s *Session) projection() engine.Projection {
	return engine.Projection{
		Years:               s.values[KeySavingYears],
		WorkingHoursPerYear: s.values[KeyWorkingHours],
		EnergyCost:          s.values[KeyEnergyCost],
		EnergyUnit:          s.energyUnit,
		CompressedAirCost:   s.values[KeyCompressedAirCost],
	}
}
