package models

type ActuatorLogBuzzer struct {
	EventKey
	BuzzerType string  `json:"buzzer_type"`
	State      string  `json:"state"`
	FreqHz     *int    `json:"freq_hz,omitempty"`
	DurationMs *int    `json:"duration_ms,omitempty"`
	Reason     *string `json:"reason,omitempty"`
}

func (ActuatorLogBuzzer) TableName() string { return "actuator_log_buzzer" }

type ActuatorLogIRTX struct {
	EventKey
	Protocol   *string `json:"protocol,omitempty"`
	AddressHex *string `json:"address_hex,omitempty"`
	CommandHex string  `json:"command_hex"`
	RepeatCnt  *int    `json:"repeat_cnt,omitempty"`
}

func (ActuatorLogIRTX) TableName() string { return "actuator_log_ir_tx" }

type ActuatorLogRelay struct {
	EventKey
	Channel int     `gorm:"type:smallint" json:"channel"`
	State   string  `json:"state"`
	Reason  *string `json:"reason,omitempty"`
}

func (ActuatorLogRelay) TableName() string { return "actuator_log_relay" }

type ActuatorLogServo struct {
	EventKey
	Channel  int      `gorm:"type:smallint" json:"channel"`
	AngleDeg *float64 `json:"angle_deg,omitempty"`
	PwmUs    *int     `json:"pwm_us,omitempty"`
	Reason   *string  `json:"reason,omitempty"`
}

func (ActuatorLogServo) TableName() string { return "actuator_log_servo" }
func (s ActuatorLogServo) Measurement() (float64, bool) { return measured(s.AngleDeg) }

const (
	BuzzerStateOn  = "on"
	BuzzerStateOff = "off"

	ButtonStatePressed = "PRESSED"

	ButtonEventCrisisAcknowledged = "crisis_acknowledged"
)
