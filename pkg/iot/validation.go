package iot

import (
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode"

	z "github.com/Oudwins/zog"
	"liyu1981.xyz/eldercare-telemetry/pkg/common"
	"liyu1981.xyz/eldercare-telemetry/pkg/models"
)

const (
	MaxListLimit     = 1000
	DefaultListLimit = 100
	maxDeviceIDLen   = 64
	maxRTCDriftMs    = 86_400_000
)

var (
	hexPattern   = regexp.MustCompile(`^(0[xX])?[0-9a-fA-F]+$`)
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9_%+-]+(\.[A-Za-z0-9_%+-]+)*@[A-Za-z0-9-]+(\.[A-Za-z0-9-]+)*\.[A-Za-z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\d{2,3}-?\d{4}-?\d{4}$`)
)

var SoundEventTypes = []string{
	"ambient", "movement_rustle", "water_running", "cooking_clatter",
	"television", "phone_conversation", "shower", "coughing", "snoring",
	"thud_fall", "shout_for_help", "smoke_alarm",
}

var (
	buzzerTypes  = []string{"piezo", "magnetic", "mechanical", "digital"}
	buzzerStates = []string{"on", "off", "pulse", "tone"}
	relayStates  = []string{"on", "off", "toggle", "pulse"}
	buttonStates = []string{"PRESSED", "RELEASED", "LONG_PRESS"}
	buttonEvents = []string{"crisis_acknowledged", "assistance_request", "medication_check"}
	genders      = []string{string(models.GenderMale), string(models.GenderFemale), string(models.GenderOther)}
	relStatuses  = []string{string(models.RelationshipActive), string(models.RelationshipPending)}
)

// zog treats zero values as absent, fields where zero is out of range are
// marked Required so a literal 0 is still rejected.
func analog() *z.PointerSchema { return z.Ptr(z.Int().GTE(0).LTE(1023)) }
func ratio() *z.PointerSchema  { return z.Ptr(z.Float64().GTE(0).LTE(1)) }
func percent() *z.PointerSchema {
	return z.Ptr(z.Float64().GTE(0).LTE(100))
}
func nonNegative() *z.PointerSchema { return z.Ptr(z.Float64().GTE(0)) }
func oneOf(values []string) *z.PointerSchema {
	return z.Ptr(z.String().Required().OneOf(values))
}

var (
	cdsSchema = z.Struct(z.Shape{
		"AnalogValue": analog(),
		"LuxValue":    nonNegative(),
	})
	dhtSchema = z.Struct(z.Shape{
		"Temperature": z.Ptr(z.Float64().GTE(-50).LTE(100)),
		"Humidity":    percent(),
	})
	flameSchema = z.Struct(z.Shape{
		"AnalogValue": analog(),
	})
	loadCellSchema = z.Struct(z.Shape{
		"WeightKg": nonNegative(),
	})
	mq5Schema = z.Struct(z.Shape{
		"AnalogValue": analog(),
		"GasPpm":      nonNegative(),
		"Status":      oneOf([]string{"ok", "danger"}),
	})
	mq7Schema = z.Struct(z.Shape{
		"AnalogValue": analog(),
		"CoPpm":       nonNegative(),
		"Status":      oneOf([]string{"ok", "warning"}),
	})
	rfidSchema = z.Struct(z.Shape{
		"Status": oneOf([]string{"in", "out"}),
	})
	soundSchema = z.Struct(z.Shape{
		"AnalogValue": analog(),
		"DbLevel":     z.Ptr(z.Float64().GTE(0).LTE(200)),
		"EventType":   oneOf(SoundEventTypes),
	})
	tcrtSchema = z.Struct(z.Shape{
		"AnalogValue": analog(),
	})
	ultrasonicSchema = z.Struct(z.Shape{
		"DistanceCm": z.Ptr(z.Float64().GTE(0).LTE(1000)),
	})
	edgeSchema = z.Struct(z.Shape{
		"Confidence": ratio(),
	})
	buzzerSchema = z.Struct(z.Shape{
		"BuzzerType": z.String().Required().OneOf(buzzerTypes),
		"State":      z.String().Required().OneOf(buzzerStates),
		"FreqHz":     z.Ptr(z.Int().Required().GTE(20).LTE(20000)),
		"DurationMs": z.Ptr(z.Int().GTE(0).LTE(60000)),
	})
	irtxSchema = z.Struct(z.Shape{
		"CommandHex": z.String().Required().Match(hexPattern),
		"AddressHex": z.Ptr(z.String().Required().Match(hexPattern)),
		"RepeatCnt":  z.Ptr(z.Int().Required().GTE(1).LTE(100)),
	})
	relaySchema = z.Struct(z.Shape{
		"Channel": z.Int().Required().GTE(1).LTE(16),
		"State":   z.String().Required().OneOf(relayStates),
	})
	servoSchema = z.Struct(z.Shape{
		"Channel":  z.Int().Required().GTE(1).LTE(16),
		"AngleDeg": z.Ptr(z.Float64().GTE(0).LTE(180)),
		"PwmUs":    z.Ptr(z.Int().Required().GTE(500).LTE(2500)),
	})
	rtcSchema = z.Struct(z.Shape{
		"DriftMs": z.Ptr(z.Int().GTE(-maxRTCDriftMs).LTE(maxRTCDriftMs)),
	})
	buttonSchema = z.Struct(z.Shape{
		"ButtonState":     z.String().Required().OneOf(buttonStates),
		"EventType":       oneOf(buttonEvents),
		"PressDurationMs": z.Ptr(z.Int().GTE(0)),
	})
	temperatureSchema = z.Struct(z.Shape{
		"TemperatureCelsius": z.Float64().GTE(-50).LTE(100),
		"HumidityPercent":    percent(),
	})

	userSchema = z.Struct(z.Shape{
		"UserName":    z.String().Required().Min(1).Max(100),
		"Email":       z.Ptr(z.String().Required().Match(emailPattern)),
		"PhoneNumber": z.Ptr(z.String().Required().Match(phonePattern)),
	})
	profileSchema = z.Struct(z.Shape{
		"Address":       z.Ptr(z.String().Max(255)),
		"AddressDetail": z.Ptr(z.String().Max(255)),
		"CurrentStatus": z.Ptr(z.String().Max(64)),
	})
	relationshipSchema = z.Struct(z.Shape{
		"RelationshipType": z.String().Required().Min(1).Max(32),
	})

	deviceIDSchema = z.String().Required().Min(1).Max(maxDeviceIDLen)
)

// validate runs schema on rec and folds the issues into one Invalid error.
func validate[T any](schema *z.StructSchema, rec *T) error {
	if schema == nil {
		return nil
	}
	if issues := schema.Validate(rec); len(issues) > 0 {
		return common.Invalid("%s", issuesMessage(issues))
	}
	return nil
}

func issuesMessage(issues z.ZogIssueMap) string {
	keys := make([]string, 0, len(issues))
	for k := range issues {
		if strings.HasPrefix(k, "$") || len(issues[k]) == 0 {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := common.Mapper(keys, func(k string) string {
		return snakeCase(k) + ": " + issues[k][0].Message
	})
	if len(parts) == 0 {
		return "invalid record"
	}
	return strings.Join(parts, "; ")
}

// snakeCase turns a Go field name into its json name, LuxValue -> lux_value.
func snakeCase(field string) string {
	var b strings.Builder
	runes := []rune(field)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1]) ||
				(i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func validateKey(key models.EventKey) error {
	id := key.DeviceID
	if issues := deviceIDSchema.Validate(&id); len(issues) > 0 {
		return common.Invalid("device_id: %s", issues[0].Message)
	}
	if key.Time.IsZero() {
		return common.Invalid("time: is required")
	}
	return nil
}

// ValidateListQuery applies the limit default and rejects bad ranges.
func ValidateListQuery(q *models.ListQuery) error {
	if q.Limit == 0 {
		q.Limit = DefaultListLimit
	}
	if q.Limit < 1 || q.Limit > MaxListLimit {
		return common.Invalid("limit must be between 1 and %d", MaxListLimit)
	}
	if q.Offset < 0 {
		return common.Invalid("offset must be >= 0")
	}
	if err := validateRange(q.Start, q.End); err != nil {
		return err
	}
	if q.Start != nil {
		q.Start = common.Ptr(q.Start.UTC())
	}
	if q.End != nil {
		q.End = common.Ptr(q.End.UTC())
	}
	return nil
}

func validateRange(start, end *time.Time) error {
	if start != nil && end != nil && start.After(*end) {
		return common.Invalid("start_time must not be after end_time")
	}
	return nil
}

func validateEnum(field, value string, allowed []string) error {
	v := value
	if issues := z.String().Required().OneOf(allowed).Validate(&v); len(issues) > 0 {
		return common.Invalid("%s must be one of %s", field, strings.Join(allowed, ", "))
	}
	return nil
}
