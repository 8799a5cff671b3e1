package interaction

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/cast"
)

// ValidationError names the option that failed to decode and why. Its message
// is meant for the invoking user.
type ValidationError struct {
	Option string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Option + " " + e.Reason
}

// Values holds decoded option values keyed by option name: strings as string
// and integers as int64.
type Values map[string]any

func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}

func (v Values) Int(name string) int64 {
	i, _ := v[name].(int64)
	return i
}

// DecodeOptions checks the options Discord sent against the command's declared
// schema, in schema order, and returns the first failure as a *ValidationError.
// Options not declared in the schema are ignored.
func DecodeOptions(schema []*discordgo.ApplicationCommandOption, given []*discordgo.ApplicationCommandInteractionDataOption) (Values, error) {
	raw := make(map[string]any, len(given))
	for _, o := range given {
		raw[o.Name] = o.Value
	}

	vals := make(Values, len(schema))
	for _, opt := range schema {
		v, ok := raw[opt.Name]
		if !ok || v == nil {
			if opt.Required {
				return nil, &ValidationError{Option: opt.Name, Reason: "is required"}
			}
			continue
		}

		decoded, err := decodeValue(opt, v)
		if err != nil {
			return nil, err
		}
		if decoded != nil {
			vals[opt.Name] = decoded
		}
	}

	return vals, nil
}

func decodeValue(opt *discordgo.ApplicationCommandOption, v any) (any, error) {
	switch opt.Type {
	case discordgo.ApplicationCommandOptionString:
		s, err := cast.ToStringE(v)
		if err != nil {
			return nil, &ValidationError{Option: opt.Name, Reason: "must be text"}
		}
		s = strings.TrimSpace(s)
		if s == "" {
			if opt.Required {
				return nil, &ValidationError{Option: opt.Name, Reason: "is required"}
			}
			return nil, nil
		}
		if opt.MaxLength > 0 && utf8.RuneCountInString(s) > opt.MaxLength {
			return nil, &ValidationError{Option: opt.Name, Reason: fmt.Sprintf("must be at most %d characters", opt.MaxLength)}
		}
		return s, nil

	case discordgo.ApplicationCommandOptionInteger:
		f, ok := toFloat(v)
		if !ok || f != math.Trunc(f) || !inRange(opt, f) {
			return nil, &ValidationError{Option: opt.Name, Reason: "must be a whole number" + describeRange(opt)}
		}
		return int64(f), nil
	}

	return nil, fmt.Errorf("option %s: unsupported option type %d", opt.Name, opt.Type)
}

// toFloat accepts JSON numbers and numeric strings, nothing else.
func toFloat(v any) (float64, bool) {
	if _, isBool := v.(bool); isBool {
		return 0, false
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// discordgo models an unset maximum as zero.
func inRange(opt *discordgo.ApplicationCommandOption, f float64) bool {
	if opt.MinValue != nil && f < *opt.MinValue {
		return false
	}
	if opt.MaxValue != 0 && f > opt.MaxValue {
		return false
	}
	return true
}

func describeRange(opt *discordgo.ApplicationCommandOption) string {
	switch {
	case opt.MinValue != nil && opt.MaxValue != 0:
		return fmt.Sprintf(" between %g and %g", *opt.MinValue, opt.MaxValue)
	case opt.MinValue != nil:
		return fmt.Sprintf(" of at least %g", *opt.MinValue)
	case opt.MaxValue != 0:
		return fmt.Sprintf(" of at most %g", opt.MaxValue)
	}
	return ""
}
